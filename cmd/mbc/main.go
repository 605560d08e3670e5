package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.creack.net/brainfuck/mindblown"
)

func run(input, output string, prettyPrint bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	code, pr, err := mindblown.Compile(input, string(data))
	if err != nil {
		return fmt.Errorf("failed to compile: %w", err)
	}
	if prettyPrint {
		fmt.Print(pr.PrettyPrint())
		return nil
	}
	if output == "-" {
		fmt.Println(code)
		return nil
	}

	if err := os.WriteFile(output, []byte(code+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func main() {
	log.SetFlags(0)
	output := flag.String("o", "", "output file, '-' for stdout, default to <input>.bf")
	prettyPrint := flag.Bool("pretty", false, "pretty print, do not output compiled file")
	flag.Parse()
	input := flag.Arg(0)
	if input == "" {
		tmp := strings.Split(os.Args[0], "/")
		binName := tmp[len(tmp)-1]
		fmt.Fprintf(os.Stderr, "usage: %s [options] <.mb path>\n", binName)
		flag.PrintDefaults()
		return
	}
	if *output == "" {
		*output = strings.TrimSuffix(input, mindblown.Extension) + ".bf"
	}

	if err := run(input, *output, *prettyPrint); err != nil {
		log.Fatalf("fail: %s.", err)
	}
}
