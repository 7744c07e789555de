// Command lambda parses, reduces, prints, and BLC-encodes untyped lambda
// calculus source. See the root command's help for its flags and
// subcommands.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
