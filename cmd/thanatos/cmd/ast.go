package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tangerineArc/thanatos/internal/diagnostics"
	"github.com/tangerineArc/thanatos/internal/run"
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Parse a file and print its Lisp-style AST",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}

		sink := diagnostics.New(os.Stderr)
		printed, _ := run.PrintAST(sink, string(content))

		if sink.HadError {
			os.Exit(exitDataErr)
		}

		fmt.Print(printed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(astCmd)
}
