package interpreter

import (
	"github.com/benbjohnson/immutable"

	"sourcelang/ast"
	"sourcelang/value"
)

// Function is a user-defined function value: the declaration that
// describes its parameters and body, paired with the immutable snapshot
// of its free variables taken when the declaration executed (spec.md §3
// and §9 — "closures as (declaration, captured-environment) pairs").
type Function struct {
	decl     *ast.FuncDeclStat
	captured *immutable.Map[string, value.Value]
	interp   *Interpreter
}

func (f *Function) Arity() int  { return len(f.decl.Params) }
func (f *Function) Name() string { return f.decl.Name }

func (f *Function) Call(line int, args []value.Value) (value.Value, error) {
	i := f.interp
	i.callDepth++
	defer func() { i.callDepth-- }()
	if i.callDepth > i.maxCallDepth {
		return value.Null, i.runtimeErrf(line, "call depth exceeded %d, probable runaway recursion in '%s'", i.maxCallDepth, f.decl.Name)
	}

	env := environmentFromSnapshot(f.captured)
	for idx, p := range f.decl.Params {
		env.Define(p.Name, args[idx])
	}

	sig, err := i.execBlock(f.decl.Body, env)
	if err != nil {
		return value.Null, err
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return value.Null, nil
}
