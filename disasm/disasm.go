// Package disasm turns Brainfuck back into MindBlown.
package disasm

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.creack.net/brainfuck/assets"
	"go.creack.net/brainfuck/mindblown"
	"go.creack.net/brainfuck/mindblown/parser"
	"go.creack.net/brainfuck/op"
	"go.creack.net/brainfuck/vm"
)

func md5sum(data []byte) string {
	h := md5.New()
	h.Write(data)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// search is the md5 of the cleaned code.
func searchExistingSrc(targzData []byte, search string) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(targzData))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer func() { _ = r.Close() }() // Best effort.

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break // End of archive
			}
			return nil, fmt.Errorf("failed to read tar entry: %w", err)
		}
		if !strings.HasSuffix(hdr.Name, search+mindblown.Extension) {
			continue
		}
		buf := bytes.NewBuffer(nil)
		if _, err := io.Copy(buf, tr); err != nil {
			return nil, fmt.Errorf("failed to read file %q: %w", hdr.Name, err)
		}
		return buf.Bytes(), nil
	}

	return nil, nil
}

// Tokens lowers Brainfuck into MindBlown tokens, collapsing runs of moves
// and arithmetic into a single counted keyword.
func Tokens(code string) []parser.Token {
	code = vm.Clean(code)
	var tokens []parser.Token
	line := 1
	for i := 0; i < len(code); {
		c := code[i]
		kw, ok := op.KeywordFor(c)
		if !ok {
			// Clean only keeps instructions, which all have a keyword.
			i++
			continue
		}
		n := 1
		if kw.Operand == op.OperandRepeat {
			for i+n < len(code) && code[i+n] == c && n < op.MaxRepeat {
				n++
			}
		}
		tokens = append(tokens, parser.Token{Val: kw.Name, Kind: parser.KindKeyword, Pos: parser.Pos(i), Line: line})
		if kw.Operand == op.OperandRepeat {
			if n > 1 {
				tokens = append(tokens, parser.Token{Val: strconv.Itoa(n), Kind: parser.KindConstant, Pos: parser.Pos(i), Line: line})
			}
			tokens = append(tokens, parser.Token{Val: string(op.Terminator), Kind: parser.KindFormatting, Pos: parser.Pos(i + n - 1), Line: line})
		}
		i += n
		line++
	}
	return tokens
}

// Disasm returns MindBlown source for the given Brainfuck code.
// Known programs come back as their hand written source, anything else
// is disassembled instruction by instruction.
func Disasm(inputName, code string) (string, error) {
	clean := vm.Clean(code)

	existingSrc, err := searchExistingSrc(assets.KnownSrcsTargz, md5sum([]byte(clean)))
	if err != nil {
		return "", fmt.Errorf("failed to unpack srcs: %w", err)
	}
	if existingSrc != nil {
		// Make sure the match is not a collision.
		known, _, err := mindblown.Compile("known-srcs", string(existingSrc))
		if err != nil {
			// Should not happen.
			return "", fmt.Errorf("failed to compile known srcs for %q: %w", inputName, err)
		}
		if known == clean {
			return string(existingSrc), nil
		}
	}

	return parser.Print(Tokens(clean)), nil
}
