package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcelang/ast"
	"sourcelang/diag"
	"sourcelang/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	toks := lexer.Tokenize(src, sink)
	return New(toks, sink).Parse(), sink
}

func TestParsesVarDecl(t *testing.T) {
	prog, sink := parse(t, `int x = 1 + 2;`)
	require.False(t, sink.HadError())
	require.Len(t, prog.Stmts, 1)
	decl, ok := prog.Stmts[0].(*ast.VarDeclStat)
	require.True(t, ok)
	assert.Equal(t, "int", decl.Type.Name)
	assert.Equal(t, "x", decl.Name)
}

func TestParsesFuncDecl(t *testing.T) {
	prog, sink := parse(t, `int add(int a, int b) { return a + b; }`)
	require.False(t, sink.HadError())
	require.Len(t, prog.Stmts, 1)
	fn, ok := prog.Stmts[0].(*ast.FuncDeclStat)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestTernaryIsRightAssociativeAndLooserThanComparison(t *testing.T) {
	prog, sink := parse(t, `bool b = true; int x = b ? 1 : 2 < 3 ? 4 : 5;`)
	require.False(t, sink.HadError())
	decl := prog.Stmts[1].(*ast.VarDeclStat)
	tern, ok := decl.Init.(*ast.TernaryExpr)
	require.True(t, ok)
	// the else-branch is itself a ternary whose condition is the
	// comparison "2 < 3", confirming comparison binds tighter.
	elseTern, ok := tern.Else.(*ast.TernaryExpr)
	require.True(t, ok)
	_, ok = elseTern.Cond.(*ast.BinaryExpr)
	assert.True(t, ok)
}

func TestOperatorPrecedenceChain(t *testing.T) {
	prog, sink := parse(t, `bool r = 1 + 2 * 3 < 10 && 1 == 1;`)
	require.False(t, sink.HadError())
	decl := prog.Stmts[0].(*ast.VarDeclStat)
	top, ok := decl.Init.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "&&", top.OpLexeme)
}

func TestInvalidAssignmentTargetDoesNotPanicRecovery(t *testing.T) {
	prog, sink := parse(t, `1 = 2; int x = 3;`)
	assert.True(t, sink.HadError())
	// recovery must still pick up the statement that follows.
	found := false
	for _, s := range prog.Stmts {
		if decl, ok := s.(*ast.VarDeclStat); ok && decl.Name == "x" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMissingSemicolonRecoversAtNextStatement(t *testing.T) {
	prog, sink := parse(t, `int x = 1 int y = 2;`)
	assert.True(t, sink.HadError())
	found := false
	for _, s := range prog.Stmts {
		if decl, ok := s.(*ast.VarDeclStat); ok && decl.Name == "y" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParsesIfWhileForBreakContinueReturn(t *testing.T) {
	src := `
int f() {
  for (int i = 0; i < 10; i = i + 1) {
    if (i == 5) { break; } else { continue; }
  }
  while (false) {}
  return 0;
}`
	prog, sink := parse(t, src)
	require.False(t, sink.HadError())
	fn := prog.Stmts[0].(*ast.FuncDeclStat)
	_, ok := fn.Body.Stmts[0].(*ast.ForStat)
	assert.True(t, ok)
	_, ok = fn.Body.Stmts[1].(*ast.WhileStat)
	assert.True(t, ok)
	_, ok = fn.Body.Stmts[2].(*ast.ReturnStat)
	assert.True(t, ok)
}
