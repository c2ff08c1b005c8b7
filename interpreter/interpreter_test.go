package interpreter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcelang/checker"
	"sourcelang/diag"
	"sourcelang/lexer"
	"sourcelang/parser"
)

// run lexes, parses, checks, and interprets src, capturing whatever
// print wrote to stdout.
func run(t *testing.T, src string) (string, *diag.Sink) {
	t.Helper()
	return runConfigured(t, src, nil)
}

// runConfigured is run, but lets a test tweak the Interpreter (e.g.
// TrimTrailingZeros, SetMaxCallDepth) before it executes the program.
func runConfigured(t *testing.T, src string, configure func(*Interpreter)) (string, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	toks := lexer.Tokenize(src, sink)
	prog := parser.New(toks, sink).Parse()
	require.False(t, sink.HadError(), "parse errors: %s", sink.Render())
	checker.New(sink).Check(prog)
	require.False(t, sink.HadError(), "check errors: %s", sink.Render())

	var out bytes.Buffer
	interp := New(sink)
	interp.Stdout = &out
	if configure != nil {
		configure(interp)
	}
	err := interp.Run(prog)
	if err != nil {
		return out.String(), sink
	}
	return out.String(), sink
}

func TestArithmeticAndPrint(t *testing.T) {
	out, sink := run(t, `print(1 + 2 * 3);`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "7\n", out)
}

func TestDoubleDivisionByZeroIsNotAnError(t *testing.T) {
	out, sink := run(t, `print(1.0 / 0.0);`)
	assert.False(t, sink.HadError())
	assert.Contains(t, out, "Inf")
}

func TestIntDivisionByZeroIsRuntimeError(t *testing.T) {
	_, sink := run(t, `int x = 1 / 0;`)
	assert.True(t, sink.HadKind(diag.RuntimeError))
}

func TestIntModuloByZeroIsRuntimeError(t *testing.T) {
	_, sink := run(t, `int x = 1 % 0;`)
	assert.True(t, sink.HadKind(diag.RuntimeError))
}

func TestShortCircuitAndDoesNotEvaluateRight(t *testing.T) {
	out, sink := run(t, `
bool f() { print("evaluated"); return true; }
bool r = false && f();
`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "", out)
}

func TestShortCircuitOrDoesNotEvaluateRight(t *testing.T) {
	out, sink := run(t, `
bool f() { print("evaluated"); return true; }
bool r = true || f();
`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "", out)
}

func TestWhileLoopWithBreakAndContinue(t *testing.T) {
	out, sink := run(t, `
int i = 0;
while (i < 5) {
  i = i + 1;
  if (i == 2) { continue; }
  if (i == 4) { break; }
  print(i);
}
`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "1\n3\n", out)
}

func TestForLoop(t *testing.T) {
	out, sink := run(t, `
for (int i = 0; i < 3; i = i + 1) {
  print(i);
}
`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestFunctionCallAndReturn(t *testing.T) {
	out, sink := run(t, `
int add(int a, int b) { return a + b; }
print(add(2, 3));
`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "5\n", out)
}

func TestClosureCapturesSnapshotAtDeclaration(t *testing.T) {
	out, sink := run(t, `
int counter = 0;
int readCounter() { return counter; }
counter = 99;
print(readCounter());
`)
	assert.False(t, sink.HadError())
	// the closure snapshotted counter's value (0) when readCounter was
	// declared; the later assignment to counter does not reach it.
	assert.Equal(t, "0\n", out)
}

func TestTernaryEvaluatesOnlyChosenBranch(t *testing.T) {
	out, sink := run(t, `
int other() { print("evaluated"); return 2; }
print(true ? 1 : other());
`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "1\n", out)
}

func TestStringConcatenationWithPlus(t *testing.T) {
	out, sink := run(t, `print("a" + "b");`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "ab\n", out)
}

func TestDoublePrintFormatting(t *testing.T) {
	out, sink := run(t, `print(2.0); print(3.1415);`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "2.0\n3.1415\n", out)
}

func TestDoublePrintFormattingWithTrimTrailingZerosDisabled(t *testing.T) {
	out, sink := runConfigured(t, `print(2.0);`, func(i *Interpreter) {
		i.TrimTrailingZeros = false
	})
	assert.False(t, sink.HadError())
	assert.Equal(t, "2.000000\n", out)
}

func TestRecursiveFunctionCallsItself(t *testing.T) {
	out, sink := run(t, `
int fact(int n) { return n <= 1 ? 1 : n * fact(n - 1); }
print(fact(5));
`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "120\n", out)
}

func TestStringOrderingIsLexicographic(t *testing.T) {
	out, sink := run(t, `
print("apple" < "banana");
print("banana" < "apple");
`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "true\nfalse\n", out)
}

func TestCharOrderingIsByCodepoint(t *testing.T) {
	out, sink := run(t, `
print('a' < 'b');
print('b' < 'a');
`)
	assert.False(t, sink.HadError())
	assert.Equal(t, "true\nfalse\n", out)
}
