package diagnostics

import (
	"bytes"
	"testing"
)

func TestLineFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := New(&buf)
	sink.Line(3, "Unexpected character @.")

	want := "[line 3] Error : Unexpected character @.\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if !sink.HadError {
		t.Error("expected HadError to be set")
	}
}

func TestAtEndFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := New(&buf)
	sink.AtEnd(5, "Expect expression.")

	want := "[line 5] Error at end: Expect expression.\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestAtLexemeFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := New(&buf)
	sink.AtLexeme(7, "x", "Expect ';' after value.")

	want := "[line 7] Error at 'x': Expect ';' after value.\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestRuntimeFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := New(&buf)
	sink.Runtime(9, "Undefined variable 'x'.")

	want := "Undefined variable 'x'.\n[line 9]\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if !sink.HadRuntimeError {
		t.Error("expected HadRuntimeError to be set")
	}
}

func TestReset(t *testing.T) {
	var buf bytes.Buffer
	sink := New(&buf)
	sink.Line(1, "x")
	sink.Runtime(1, "y")
	sink.Reset()

	if sink.HadError || sink.HadRuntimeError {
		t.Error("expected both flags cleared after Reset")
	}
}
