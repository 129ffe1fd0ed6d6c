// Package cmd implements the thanatos command-line driver: the external
// collaborator that turns the core pipeline (scanner, parser, resolver,
// interpreter) into a runnable program. Argument handling and exit codes
// live here; diagnostic formatting lives in internal/diagnostics and the
// REPL line editor in internal/repl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tangerineArc/thanatos/internal/diagnostics"
	"github.com/tangerineArc/thanatos/internal/repl"
	"github.com/tangerineArc/thanatos/internal/run"
)

var (
	// Version is set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes per the external interface: 0 success, 64 CLI misuse, 65
// compile/parse/resolve errors, 70 runtime error.
const (
	exitUsage   = 64
	exitDataErr = 65
	exitFailure = 70
)

var rootCmd = &cobra.Command{
	Use:     "thanatos [script]",
	Short:   "thanatos is a tree-walking interpreter for the Language",
	Version: Version,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			fmt.Fprintln(os.Stderr, cmd.UsageString())
			os.Exit(exitUsage)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runFile(args[0])
		}
		return repl.Run(os.Stdout)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

// runFile runs one script file to completion and exits with the code
// specified in the external interface: 65 on any front-end error, 70 on
// any runtime error, 0 otherwise.
func runFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	sink := diagnostics.New(os.Stderr)
	if err := run.Source(os.Stdout, sink, string(content)); err != nil {
		return err
	}

	if sink.HadError {
		os.Exit(exitDataErr)
	}
	if sink.HadRuntimeError {
		os.Exit(exitFailure)
	}
	return nil
}
