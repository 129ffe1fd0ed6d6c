package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tangerineArc/thanatos/internal/diagnostics"
	"github.com/tangerineArc/thanatos/internal/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Scan a file and print its token stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}

		sink := diagnostics.New(os.Stderr)
		scanner := lexer.New(string(content), sink)
		for _, tok := range scanner.ScanTokens() {
			fmt.Println(tok)
		}

		if sink.HadError {
			os.Exit(exitDataErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
