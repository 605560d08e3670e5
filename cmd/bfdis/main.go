package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.creack.net/brainfuck/disasm"
)

func main() {
	log.SetFlags(0)
	output := flag.String("o", "", "output file, default to stdout")
	flag.Parse()
	f := flag.Arg(0)
	if f == "" {
		tmp := strings.Split(os.Args[0], "/")
		binName := tmp[len(tmp)-1]
		fmt.Fprintf(os.Stderr, "usage: %s [options] <.b|.bf path>\n", binName)
		flag.PrintDefaults()
		return
	}
	data, err := os.ReadFile(f)
	if err != nil {
		log.Fatalf("failed to read file %q: %s", f, err)
	}
	src, err := disasm.Disasm(f, string(data))
	if err != nil {
		log.Fatalf("fail: %s.", err)
	}
	if *output == "" {
		fmt.Print(src)
		return
	}
	if err := os.WriteFile(*output, []byte(src), 0o644); err != nil {
		log.Fatalf("failed to write file: %s", err)
	}
}
