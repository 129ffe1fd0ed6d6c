package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tangerineArc/thanatos/internal/diagnostics"
	"github.com/tangerineArc/thanatos/internal/lexer"
	"github.com/tangerineArc/thanatos/internal/parser"
	"github.com/tangerineArc/thanatos/internal/resolver"
)

// runProgram scans, parses, resolves, and interprets source, returning
// whatever was written to stdout and whether a runtime error occurred.
func runProgram(t *testing.T, source string) (string, error) {
	t.Helper()

	var diagBuf, outBuf bytes.Buffer
	sink := diagnostics.New(&diagBuf)

	tokens := lexer.New(source, sink).ScanTokens()
	statements := parser.New(tokens, sink).Parse()
	if sink.HadError {
		t.Fatalf("unexpected parse error: %s", diagBuf.String())
	}

	locals := resolver.New(sink).Resolve(statements)
	if sink.HadError {
		t.Fatalf("unexpected resolve error: %s", diagBuf.String())
	}

	in := New(&outBuf, locals)
	err := in.Interpret(statements)
	return outBuf.String(), err
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out, err := runProgram(t, `print 1 + 2 * 3;`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "7\n" {
		t.Errorf("got %q, want %q", out, "7\n")
	}
}

func TestInterpretWholeNumberDropsTrailingZero(t *testing.T) {
	out, _ := runProgram(t, `print 4 / 2;`)
	if out != "2\n" {
		t.Errorf("got %q, want %q", out, "2\n")
	}
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, err := runProgram(t, `print "foo" + "bar";`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "foobar\n" {
		t.Errorf("got %q, want %q", out, "foobar\n")
	}
}

func TestInterpretStringPlusNumberFails(t *testing.T) {
	_, err := runProgram(t, `print "x" + 1;`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if err.(*RuntimeError).Message != "Operands must be two numbers or two strings." {
		t.Errorf("got %q", err.(*RuntimeError).Message)
	}
}

func TestInterpretArityMismatch(t *testing.T) {
	_, err := runProgram(t, `function f(a, b) {} f(1);`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	want := "Expected 2 arguments but got 1."
	if err.(*RuntimeError).Message != want {
		t.Errorf("got %q, want %q", err.(*RuntimeError).Message, want)
	}
}

func TestInterpretClosureCapture(t *testing.T) {
	out, err := runProgram(t, `
function makeCounter() {
	let i = 0;
	function inc() {
		i = i + 1;
		print i;
	}
	return inc;
}
let counter = makeCounter();
counter();
counter();
counter();
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "1\n2\n3\n" {
		t.Errorf("got %q, want %q", out, "1\n2\n3\n")
	}
}

func TestInterpretInitializerForcesThisReturn(t *testing.T) {
	out, err := runProgram(t, `class A { construct() { return; } } print A();`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "<instance of 'A'>\n" {
		t.Errorf("got %q, want %q", out, "<instance of 'A'>\n")
	}
}

func TestInterpretSuperclassMethodBinding(t *testing.T) {
	out, err := runProgram(t, `
class A { greet() { print "a"; } }
class B < A { greet() { super.greet(); print "b"; } }
B().greet();
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "a\nb\n" {
		t.Errorf("got %q, want %q", out, "a\nb\n")
	}
}

func TestInterpretShortCircuitOr(t *testing.T) {
	out, err := runProgram(t, `print true or undefined_var;`)
	if err != nil {
		t.Fatalf("unexpected runtime error (should short-circuit): %v", err)
	}
	if out != "true\n" {
		t.Errorf("got %q, want %q", out, "true\n")
	}
}

func TestInterpretShortCircuitAnd(t *testing.T) {
	out, err := runProgram(t, `print false and undefined_var;`)
	if err != nil {
		t.Fatalf("unexpected runtime error (should short-circuit): %v", err)
	}
	if out != "false\n" {
		t.Errorf("got %q, want %q", out, "false\n")
	}
}

func TestInterpretScopeShadowing(t *testing.T) {
	out, err := runProgram(t, `let a = "outer"; { let a = "inner"; print a; } print a;`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "inner\nouter\n" {
		t.Errorf("got %q, want %q", out, "inner\nouter\n")
	}
}

func TestInterpretForDesugaringEquivalence(t *testing.T) {
	forOut, err := runProgram(t, `for (let i = 0; i < 3; i = i + 1) print i;`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}

	handWritten, err := runProgram(t, `{ let i = 0; while (i < 3) { print i; i = i + 1; } }`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}

	if forOut != handWritten {
		t.Errorf("desugared for-loop output %q differs from hand-written equivalent %q", forOut, handWritten)
	}
}

func TestInterpretUndefinedVariable(t *testing.T) {
	_, err := runProgram(t, `print undefined_var;`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.(*RuntimeError).Message, "Undefined variable") {
		t.Errorf("got %q", err.(*RuntimeError).Message)
	}
}

func TestInterpretFieldsAndMethods(t *testing.T) {
	out, err := runProgram(t, `
class Point {
	construct(x, y) {
		this.x = x;
		this.y = y;
	}
	sum() {
		return this.x + this.y;
	}
}
let p = Point(3, 4);
print p.sum();
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if out != "7\n" {
		t.Errorf("got %q, want %q", out, "7\n")
	}
}
