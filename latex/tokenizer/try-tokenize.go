//go:build ignore
// +build ignore

// Tokenize input (either given on the command line or in a file)
package main

import (
	"fmt"
	"log"
	"os"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/seehuhn/flatlatex/latex/tokenizer"
)

func main() {
	opts, optind, err := getopt.Getopts(os.Args, "i:")
	if err != nil {
		log.Fatal(err)
	}

	show := func(text, source string) {
		s := tokenizer.NewStream(tokenizer.NewLexer(text, source, nil))
		for !s.IsEmpty() {
			tok := s.Take()
			fmt.Printf("%s\t%-12s %q\n", tok.Pos, tok.Category, tok.Text)
		}
	}

	for _, opt := range opts {
		if opt.Option == 'i' {
			show(opt.Value, "input")
		}
	}
	for _, fname := range os.Args[optind:] {
		data, err := os.ReadFile(fname)
		if err != nil {
			log.Fatal(err)
		}
		show(string(data), fname)
	}
}
