// Package repl implements the interactive read-eval-print loop: one
// interpreter session whose global environment persists across lines,
// with the front-end error flag reset after each line so an earlier
// mistake does not stick around.
//
// Grounded on the original implementation's Repl class: an ANSI-colored
// prompt plus a handful of line-editing bindings, rebuilt here on top of
// github.com/chzyer/readline (history, Ctrl-W/Ctrl-U/Ctrl-K word and line
// kill bindings, EOF/interrupt handling) instead of GNU readline, with
// github.com/fatih/color standing in for the original's raw ANSI escape.
package repl

import (
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/tangerineArc/thanatos/internal/diagnostics"
	"github.com/tangerineArc/thanatos/internal/run"
)

// promptColor is the color of the prompt the original implementation used,
// applied here with fatih/color instead of a raw escape sequence.
var promptColor = color.RGB(0x5f, 0xaf, 0xff)

// Run starts the loop, reading one line at a time from stdin until
// end-of-input or interrupt, echoing interpreter output to out. Each
// line runs through the full pipeline against one persistent Session;
// the diagnostic sink's error flag is reset before each line so that a
// mistake on one line never affects the next.
func Run(out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptColor.Sprint("thanatos >"),
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	sink := diagnostics.New(out)
	session := run.NewSession(out, sink)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if line == "" {
			continue
		}

		sink.Reset()
		if err := session.Source(line); err != nil {
			fmt.Fprintln(out, err)
		}
	}

	return nil
}
