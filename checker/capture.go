package checker

import (
	"sort"

	"github.com/xtgo/set"

	"sourcelang/ast"
)

// computeCaptures implements the free-variable analysis from spec.md §9:
// a conservative overapproximation of which enclosing-scope names a
// function's closure needs to capture, computed as every identifier
// referenced in the body minus the function's own parameters and the
// locals it declares. Nested function declarations contribute their own
// captures (names they in turn pull from further out) rather than their
// locals, since a nested function's locals are never visible to its
// enclosing function.
func computeCaptures(fn *ast.FuncDeclStat) []string {
	referenced := referencedNames(fn.Body)
	bound := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		bound = append(bound, p.Name)
	}
	bound = append(bound, boundLocals(fn.Body.Stmts)...)

	return diffStrings(referenced, bound)
}

// diffStrings returns the elements of a not present in b, using xtgo/set's
// sorted-slice set algebra the way free-variable sets are computed from
// two already-deduplicated name lists.
func diffStrings(a, b []string) []string {
	a = uniqSorted(a)
	b = uniqSorted(b)
	combined := make([]string, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	data := sort.StringSlice(combined)
	n := set.Diff(data, len(a))
	result := make([]string, n)
	copy(result, data[:n])
	return result
}

func uniqSorted(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	cp := append([]string(nil), names...)
	data := sort.StringSlice(cp)
	sort.Sort(data)
	n := set.Uniq(data)
	return data[:n]
}

// boundLocals collects every name a block's direct VarDeclStat and
// FuncDeclStat children bind, plus those bound in nested blocks/branches,
// since a local declared inside a nested "if" block is still a local of
// the enclosing function body, not a capture of it.
func boundLocals(stmts []ast.Stat) []string {
	var names []string
	for _, s := range stmts {
		switch s := s.(type) {
		case *ast.VarDeclStat:
			names = append(names, s.Name)
		case *ast.FuncDeclStat:
			names = append(names, s.Name)
		case *ast.BlockStat:
			names = append(names, boundLocals(s.Stmts)...)
		case *ast.IfStat:
			names = append(names, boundLocalsOne(s.Then)...)
			if s.Else != nil {
				names = append(names, boundLocalsOne(s.Else)...)
			}
		case *ast.WhileStat:
			names = append(names, boundLocalsOne(s.Body)...)
		case *ast.ForStat:
			if s.Init != nil {
				names = append(names, boundLocalsOne(s.Init)...)
			}
			names = append(names, boundLocalsOne(s.Body)...)
		}
	}
	return names
}

func boundLocalsOne(s ast.Stat) []string {
	if block, ok := s.(*ast.BlockStat); ok {
		return boundLocals(block.Stmts)
	}
	return boundLocals([]ast.Stat{s})
}

// referencedNames walks every expression reachable from a function body
// and collects the names of every VariableExpr and AssignExpr target —
// the full set of identifiers the body reads or writes, before bound
// names are subtracted.
func referencedNames(body *ast.BlockStat) []string {
	var names []string
	var walkStat func(ast.Stat)
	var walkExpr func(ast.Expr)

	walkExpr = func(e ast.Expr) {
		if e == nil {
			return
		}
		switch e := e.(type) {
		case *ast.VariableExpr:
			names = append(names, e.Name)
		case *ast.AssignExpr:
			names = append(names, e.Name)
			walkExpr(e.Value)
		case *ast.GroupingExpr:
			walkExpr(e.Inner)
		case *ast.UnaryExpr:
			walkExpr(e.Right)
		case *ast.BinaryExpr:
			walkExpr(e.Left)
			walkExpr(e.Right)
		case *ast.TernaryExpr:
			walkExpr(e.Cond)
			walkExpr(e.Then)
			walkExpr(e.Else)
		case *ast.CallExpr:
			walkExpr(e.Callee)
			for _, a := range e.Args {
				walkExpr(a)
			}
		}
	}

	walkStat = func(s ast.Stat) {
		switch s := s.(type) {
		case *ast.VarDeclStat:
			walkExpr(s.Init)
		case *ast.ExprStat:
			walkExpr(s.X)
		case *ast.BlockStat:
			for _, st := range s.Stmts {
				walkStat(st)
			}
		case *ast.IfStat:
			walkExpr(s.Cond)
			walkStat(s.Then)
			if s.Else != nil {
				walkStat(s.Else)
			}
		case *ast.WhileStat:
			walkExpr(s.Cond)
			walkStat(s.Body)
		case *ast.ForStat:
			if s.Init != nil {
				walkStat(s.Init)
			}
			walkExpr(s.Cond)
			walkExpr(s.Incr)
			walkStat(s.Body)
		case *ast.ReturnStat:
			walkExpr(s.Value)
		case *ast.FuncDeclStat:
			// a nested function's own captures are what it pulls from
			// outside itself; those names are free in this body too.
			names = append(names, s.Captures...)
		}
	}

	for _, st := range body.Stmts {
		walkStat(st)
	}
	return names
}
