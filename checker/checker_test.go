package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcelang/ast"
	"sourcelang/diag"
	"sourcelang/lexer"
	"sourcelang/parser"
)

func check(t *testing.T, src string) (*ast.Program, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	toks := lexer.Tokenize(src, sink)
	prog := parser.New(toks, sink).Parse()
	require.False(t, sink.HadError(), "unexpected parse errors: %s", sink.Render())
	New(sink).Check(prog)
	return prog, sink
}

func TestVarDeclTypeMismatchIsTypeError(t *testing.T) {
	_, sink := check(t, `int x = "hi";`)
	assert.True(t, sink.HadKind(diag.TypeError))
}

func TestVarDeclMatchingTypeIsClean(t *testing.T) {
	_, sink := check(t, `int x = 1; double y = 2.5; string s = "ok";`)
	assert.False(t, sink.HadError())
}

func TestNullAssignableToAnyNonFunctionPrimitive(t *testing.T) {
	_, sink := check(t, `string s = null;`)
	assert.False(t, sink.HadError())
}

func TestUseBeforeAssignmentIsLogicError(t *testing.T) {
	_, sink := check(t, `int x; int y = x;`)
	assert.True(t, sink.HadKind(diag.LogicError))
}

func TestRedeclarationInSameScopeIsLogicError(t *testing.T) {
	_, sink := check(t, `int x = 1; int x = 2;`)
	assert.True(t, sink.HadKind(diag.LogicError))
}

func TestBreakOutsideLoopIsLogicError(t *testing.T) {
	_, sink := check(t, `break;`)
	assert.True(t, sink.HadKind(diag.LogicError))
}

func TestBreakInsideLoopIsClean(t *testing.T) {
	_, sink := check(t, `while (true) { break; }`)
	assert.False(t, sink.HadError())
}

func TestReturnOutsideFunctionIsLogicError(t *testing.T) {
	_, sink := check(t, `return 1;`)
	assert.True(t, sink.HadKind(diag.LogicError))
}

func TestFunctionReturnTypeMismatchIsTypeError(t *testing.T) {
	_, sink := check(t, `int f() { return "no"; }`)
	assert.True(t, sink.HadKind(diag.TypeError))
}

func TestFunctionCallArityMismatchIsTypeError(t *testing.T) {
	_, sink := check(t, `int f(int a) { return a; } int x = f(1, 2);`)
	assert.True(t, sink.HadKind(diag.TypeError))
}

func TestTernaryProducesUnionOfBranchTypes(t *testing.T) {
	_, sink := check(t, `bool b = true; int x = 1; double y = 2.5; string s = b ? x : y;`)
	assert.True(t, sink.HadKind(diag.TypeError))
}

func TestClosureCapturesFreeVariables(t *testing.T) {
	prog, sink := check(t, `
int outer = 1;
int makeAdder() {
  int inner = outer;
  return inner;
}
`)
	require.False(t, sink.HadError())
	fn, ok := prog.Stmts[1].(*ast.FuncDeclStat)
	require.True(t, ok)
	assert.Contains(t, fn.Captures, "outer")
	assert.NotContains(t, fn.Captures, "inner")
}

func TestLogicalOperatorsRequireBool(t *testing.T) {
	_, sink := check(t, `int x = 1; bool b = x && true;`)
	assert.True(t, sink.HadKind(diag.TypeError))
}

func TestBitwiseOperatorsRequireInt(t *testing.T) {
	_, sink := check(t, `double d = 1.5; int x = d & 1;`)
	assert.True(t, sink.HadKind(diag.TypeError))
}
