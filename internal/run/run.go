// Package run wires together the scanner, parser, resolver, and
// interpreter into the single linear pipeline described by the
// specification: each stage halts the pipeline if a prior stage reported
// errors.
package run

import (
	"io"

	"github.com/tangerineArc/thanatos/internal/ast"
	"github.com/tangerineArc/thanatos/internal/diagnostics"
	"github.com/tangerineArc/thanatos/internal/interp"
	"github.com/tangerineArc/thanatos/internal/lexer"
	"github.com/tangerineArc/thanatos/internal/parser"
	"github.com/tangerineArc/thanatos/internal/resolver"
)

// Session holds interpreter state that must persist across multiple
// Source calls — the REPL's one interpreter across lines, with its own
// global environment retained between them.
type Session struct {
	out  io.Writer
	sink *diagnostics.Sink
	in   *interp.Interpreter
}

// NewSession creates a Session whose interpreter writes to out and whose
// diagnostics are reported to sink.
func NewSession(out io.Writer, sink *diagnostics.Sink) *Session {
	return &Session{out: out, sink: sink, in: interp.New(out, nil)}
}

// Source runs one chunk of source text through the full pipeline,
// reusing the session's interpreter (and therefore its global
// environment) across calls — the behavior the REPL needs to keep
// previously defined variables and functions alive from line to line.
//
// Scanning and parsing errors halt before resolution; resolution errors
// halt before execution; in each case sink.HadError is left set so the
// caller can decide on an exit code. A resolver pass is re-run (and its
// locals table merged into the interpreter's) on every call, since new
// top-level declarations change what the resolver can see.
func (s *Session) Source(source string) error {
	scanner := lexer.New(source, s.sink)
	tokens := scanner.ScanTokens()

	p := parser.New(tokens, s.sink)
	statements := p.Parse()

	if s.sink.HadError {
		return nil
	}

	res := resolver.New(s.sink)
	locals := res.Resolve(statements)

	if s.sink.HadError {
		return nil
	}

	s.in.SetLocals(locals)

	if err := s.in.Interpret(statements); err != nil {
		if rtErr, ok := err.(*interp.RuntimeError); ok {
			s.sink.Runtime(rtErr.Token.Line, rtErr.Message)
			return nil
		}
		return err
	}

	return nil
}

// Source runs a single, one-shot chunk of source text through the full
// pipeline (scan, parse, resolve, interpret), reporting errors to sink
// and writing `print` output to out. Used for file-mode execution, where
// no state needs to survive past the one run.
func Source(out io.Writer, sink *diagnostics.Sink, source string) error {
	return NewSession(out, sink).Source(source)
}

// PrintAST scans and parses source, returning its Lisp-style printed
// form. Used by the `ast` CLI subcommand; halts (returning "") if
// scanning or parsing reported an error.
func PrintAST(sink *diagnostics.Sink, source string) (string, []ast.Stmt) {
	scanner := lexer.New(source, sink)
	tokens := scanner.ScanTokens()

	p := parser.New(tokens, sink)
	statements := p.Parse()

	if sink.HadError {
		return "", nil
	}

	return ast.Print(statements), statements
}
