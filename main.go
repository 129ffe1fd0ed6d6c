// Command thanatos is a tree-walking interpreter for the Language: run a
// script file, or start an interactive REPL with no arguments.
package main

import (
	"os"

	"github.com/tangerineArc/thanatos/cmd/thanatos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
