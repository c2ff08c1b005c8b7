// Package checker implements the static checker (spec.md §4.3): a
// recursive walk over the AST that assigns every expression a static
// Type, enforces the subtyping rules from package types, and flags
// logic errors (use-before-assignment, re-declaration, break/continue
// outside a loop, return outside a function) the grammar alone cannot
// rule out.
package checker

import (
	"sourcelang/ast"
	"sourcelang/diag"
	"sourcelang/types"
)

// nativeSignature is a fixed native function's arity and parameter/return
// typing. arity is value.Unlimited for variadic natives (print).
type nativeSignature struct {
	name    string
	arity   int
	param   types.Type // the type every argument must satisfy; ignored if arity == 0
	ret     types.Type
}

// natives mirrors the data-driven native function table the interpreter
// package also builds from, one row per builtin (spec.md's supplemented
// "native_functions" feature).
var natives = []nativeSignature{
	{name: "print", arity: -1, param: types.NewUnion(types.Bool, types.Int, types.Double, types.String, types.Char, types.Null), ret: types.Void},
	{name: "clock", arity: 0, ret: types.Double},
	{name: "sleep", arity: 1, param: types.Double, ret: types.Void},
}

// Checker walks a Program and reports every diagnostic to sink. A fresh
// Checker (like a fresh diag.Sink) is created per run.
type Checker struct {
	sink       *diag.Sink
	env        *typeEnvironment
	loopDepth  int
	funcReturn *types.Type // nil when not inside a function body
	natives    map[string]nativeSignature
}

func New(sink *diag.Sink) *Checker {
	c := &Checker{
		sink:    sink,
		env:     newTypeEnvironment(nil),
		natives: make(map[string]nativeSignature),
	}
	for _, n := range natives {
		c.natives[n.name] = n
	}
	return c
}

// Check type-checks an entire program, populating FuncDeclStat.Captures
// as a side effect of checking each function declaration. It reports
// diagnostics to the sink rather than returning an error; callers should
// check sink.HadError() afterward.
//
// Functions bind in declaration order, the same as any other statement —
// a function may call one declared earlier in the same or an enclosing
// scope, but not one declared later (no mutual recursion between
// siblings; spec.md is silent here, see DESIGN.md).
func (c *Checker) Check(prog *ast.Program) {
	for _, s := range prog.Stmts {
		c.checkStat(s)
	}
}

func (c *Checker) computeSig(fn *ast.FuncDeclStat) types.Function {
	ret := c.resolveTypeName(fn.ReturnType.Name, fn.Line())
	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = c.resolveTypeName(p.Type.Name, fn.Line())
	}
	return types.Function{Return: ret, Params: params}
}

func (c *Checker) resolveTypeName(name string, line int) types.Type {
	switch name {
	case "bool":
		return types.Bool
	case "int":
		return types.Int
	case "double":
		return types.Double
	case "char":
		return types.Char
	case "string":
		return types.String
	case "void":
		return types.Void
	default:
		c.sink.Internalf("unknown type name '%s'", name)
		return types.Void
	}
}

// ---- statements ----

func (c *Checker) checkStat(s ast.Stat) {
	switch s := s.(type) {
	case *ast.VarDeclStat:
		c.checkVarDecl(s)
	case *ast.ExprStat:
		c.checkExpr(s.X)
	case *ast.BlockStat:
		c.withScope(func() {
			for _, st := range s.Stmts {
				c.checkStat(st)
			}
		})
	case *ast.IfStat:
		c.checkCondition(s.Cond)
		c.checkStat(s.Then)
		if s.Else != nil {
			c.checkStat(s.Else)
		}
	case *ast.WhileStat:
		c.checkCondition(s.Cond)
		c.loopDepth++
		c.checkStat(s.Body)
		c.loopDepth--
	case *ast.ForStat:
		c.withScope(func() {
			if s.Init != nil {
				c.checkStat(s.Init)
			}
			if s.Cond != nil {
				c.checkCondition(s.Cond)
			}
			if s.Incr != nil {
				c.checkExpr(s.Incr)
			}
			c.loopDepth++
			c.checkStat(s.Body)
			c.loopDepth--
		})
	case *ast.BreakStat:
		if c.loopDepth == 0 {
			c.sink.Logicf(s.Line(), "'break' outside of a loop")
		}
	case *ast.ContinueStat:
		if c.loopDepth == 0 {
			c.sink.Logicf(s.Line(), "'continue' outside of a loop")
		}
	case *ast.ReturnStat:
		c.checkReturn(s)
	case *ast.FuncDeclStat:
		c.checkFuncDecl(s)
	default:
		c.sink.Internalf("checker: unhandled statement %T", s)
	}
}

func (c *Checker) checkCondition(cond ast.Expr) {
	ty := c.checkExpr(cond)
	if !types.IsSubtype(ty, types.Bool) {
		c.sink.Typef(cond.Line(), "condition must be bool, got %s", ty)
	}
}

func (c *Checker) checkVarDecl(s *ast.VarDeclStat) {
	declTy := c.resolveTypeName(s.Type.Name, s.Line())
	if c.env.declaredHere(s.Name) {
		c.sink.Logicf(s.Line(), "'%s' is already declared in this scope", s.Name)
	}
	assigned := s.Init != nil
	if s.Init != nil {
		initTy := c.checkExpr(s.Init)
		if !types.IsSubtype(initTy, declTy) {
			c.sink.Typef(s.Line(), "cannot initialize '%s' of type %s with value of type %s", s.Name, declTy, initTy)
		}
	}
	c.env.declare(s.Name, declTy, assigned)
}

func (c *Checker) checkReturn(s *ast.ReturnStat) {
	if c.funcReturn == nil {
		c.sink.Logicf(s.Line(), "'return' outside of a function")
		return
	}
	want := *c.funcReturn
	if s.Value == nil {
		if !types.IsSubtype(types.Void, want) {
			c.sink.Typef(s.Line(), "missing return value, expected %s", want)
		}
		return
	}
	got := c.checkExpr(s.Value)
	if !types.IsSubtype(got, want) {
		c.sink.Typef(s.Line(), "return value of type %s is not compatible with declared return type %s", got, want)
	}
}

func (c *Checker) checkFuncDecl(s *ast.FuncDeclStat) {
	sig := c.computeSig(s)
	if c.env.declaredHere(s.Name) {
		c.sink.Logicf(s.Line(), "'%s' is already declared in this scope", s.Name)
	} else {
		c.env.declare(s.Name, sig, true)
	}

	c.withScope(func() {
		for i, p := range s.Params {
			c.env.declare(p.Name, sig.Params[i], true)
		}
		savedReturn := c.funcReturn
		savedLoop := c.loopDepth
		ret := sig.Return
		c.funcReturn = &ret
		c.loopDepth = 0
		for _, st := range s.Body.Stmts {
			c.checkStat(st)
		}
		c.funcReturn = savedReturn
		c.loopDepth = savedLoop
	})

	s.Captures = computeCaptures(s)
}

func (c *Checker) withScope(body func()) {
	c.env = newTypeEnvironment(c.env)
	body()
	c.env = c.env.enclosing
}

// ---- expressions ----

func (c *Checker) checkExpr(e ast.Expr) types.Type {
	switch e := e.(type) {
	case *ast.NullLiteralExpr:
		return types.Null
	case *ast.BoolLiteralExpr:
		return types.Bool
	case *ast.IntLiteralExpr:
		return types.Int
	case *ast.DoubleLiteralExpr:
		return types.Double
	case *ast.StringLiteralExpr:
		return types.String
	case *ast.CharLiteralExpr:
		return types.Char
	case *ast.GroupingExpr:
		return c.checkExpr(e.Inner)
	case *ast.VariableExpr:
		return c.checkVariable(e)
	case *ast.AssignExpr:
		return c.checkAssign(e)
	case *ast.UnaryExpr:
		return c.checkUnary(e)
	case *ast.BinaryExpr:
		return c.checkBinary(e)
	case *ast.TernaryExpr:
		return c.checkTernary(e)
	case *ast.CallExpr:
		return c.checkCall(e)
	default:
		c.sink.Internalf("checker: unhandled expression %T", e)
		return types.Void
	}
}

func (c *Checker) checkVariable(e *ast.VariableExpr) types.Type {
	ty, assigned, found := c.env.lookup(e.Name)
	if !found {
		c.sink.Logicf(e.Line(), "undeclared identifier '%s'", e.Name)
		return types.Void
	}
	if !assigned {
		c.sink.Logicf(e.Line(), "'%s' is used before being assigned a value", e.Name)
	}
	return ty
}

func (c *Checker) checkAssign(e *ast.AssignExpr) types.Type {
	valTy := c.checkExpr(e.Value)
	declTy, _, found := c.env.lookup(e.Name)
	if !found {
		c.sink.Logicf(e.Line(), "undeclared identifier '%s'", e.Name)
		return valTy
	}
	if !types.IsSubtype(valTy, declTy) {
		c.sink.Typef(e.Line(), "cannot assign value of type %s to '%s' of type %s", valTy, e.Name, declTy)
	}
	c.env.markAssigned(e.Name)
	return declTy
}

func (c *Checker) checkUnary(e *ast.UnaryExpr) types.Type {
	operand := c.checkExpr(e.Right)
	switch e.OpLexeme {
	case "-":
		if types.IsSubtype(operand, types.Int) {
			return types.Int
		}
		if types.IsSubtype(operand, types.Double) {
			return types.Double
		}
		c.sink.Typef(e.Line(), "unary '-' requires int or double, got %s", operand)
		return types.Void
	case "!":
		if !types.IsSubtype(operand, types.Bool) {
			c.sink.Typef(e.Line(), "unary '!' requires bool, got %s", operand)
		}
		return types.Bool
	case "~":
		if !types.IsSubtype(operand, types.Int) {
			c.sink.Typef(e.Line(), "unary '~' requires int, got %s", operand)
		}
		return types.Int
	default:
		c.sink.Internalf("checker: unhandled unary operator %q", e.OpLexeme)
		return types.Void
	}
}

var bitwiseOps = map[string]bool{"&": true, "|": true, "^": true, "<<": true, ">>": true}
var comparisonOps = map[string]bool{"<": true, "<=": true, ">": true, ">=": true}
var equalityOps = map[string]bool{"==": true, "!=": true}
var logicalOps = map[string]bool{"&&": true, "||": true}

func (c *Checker) checkBinary(e *ast.BinaryExpr) types.Type {
	op := e.OpLexeme
	left := c.checkExpr(e.Left)

	if logicalOps[op] {
		// short-circuit: still type both operands so the checker surfaces
		// errors in the unevaluated branch too.
		right := c.checkExpr(e.Right)
		if !types.IsSubtype(left, types.Bool) {
			c.sink.Typef(e.Left.Line(), "'%s' requires bool operands, got %s", op, left)
		}
		if !types.IsSubtype(right, types.Bool) {
			c.sink.Typef(e.Right.Line(), "'%s' requires bool operands, got %s", op, right)
		}
		return types.Bool
	}

	right := c.checkExpr(e.Right)

	if bitwiseOps[op] {
		if !types.IsSubtype(left, types.Int) || !types.IsSubtype(right, types.Int) {
			c.sink.Typef(e.Line(), "'%s' requires int operands, got %s and %s", op, left, right)
		}
		return types.Int
	}

	if equalityOps[op] {
		if !types.IsSubtype(left, right) && !types.IsSubtype(right, left) {
			c.sink.Typef(e.Line(), "cannot compare %s with %s", left, right)
		}
		return types.Bool
	}

	if comparisonOps[op] {
		bothString := types.IsSubtype(left, types.String) && types.IsSubtype(right, types.String)
		bothChar := types.IsSubtype(left, types.Char) && types.IsSubtype(right, types.Char)
		if !bothString && !bothChar && (!isNumeric(left) || !isNumeric(right)) {
			c.sink.Typef(e.Line(), "'%s' requires numeric, string, or char operands, got %s and %s", op, left, right)
		}
		return types.Bool
	}

	// arithmetic: + - * / %
	if op == "+" && types.IsSubtype(left, types.String) && types.IsSubtype(right, types.String) {
		return types.String
	}
	if !isNumeric(left) || !isNumeric(right) {
		c.sink.Typef(e.Line(), "'%s' requires numeric operands, got %s and %s", op, left, right)
		return types.Void
	}
	if types.Equal(left, types.Double) || types.Equal(right, types.Double) {
		return types.Double
	}
	return types.Int
}

func isNumeric(t types.Type) bool {
	return types.IsSubtype(t, types.Int) || types.IsSubtype(t, types.Double)
}

func (c *Checker) checkTernary(e *ast.TernaryExpr) types.Type {
	condTy := c.checkExpr(e.Cond)
	if !types.IsSubtype(condTy, types.Bool) {
		c.sink.Typef(e.Cond.Line(), "ternary condition must be bool, got %s", condTy)
	}
	thenTy := c.checkExpr(e.Then)
	elseTy := c.checkExpr(e.Else)
	if types.Equal(thenTy, elseTy) {
		return thenTy
	}
	return types.NewUnion(thenTy, elseTy)
}

func (c *Checker) checkCall(e *ast.CallExpr) types.Type {
	name, ok := e.Callee.(*ast.VariableExpr)
	if !ok {
		c.sink.Typef(e.Line(), "callee is not callable")
		for _, a := range e.Args {
			c.checkExpr(a)
		}
		return types.Void
	}

	if sig, ok := c.natives[name.Name]; ok {
		return c.checkNativeCall(e, sig)
	}

	calleeTy, assigned, found := c.env.lookup(name.Name)
	if !found {
		c.sink.Logicf(e.Line(), "undeclared identifier '%s'", name.Name)
		for _, a := range e.Args {
			c.checkExpr(a)
		}
		return types.Void
	}
	if !assigned {
		c.sink.Logicf(e.Line(), "'%s' is used before being assigned a value", name.Name)
	}
	fn, ok := calleeTy.(types.Function)
	if !ok {
		c.sink.Typef(e.Line(), "'%s' is not a function", name.Name)
		for _, a := range e.Args {
			c.checkExpr(a)
		}
		return types.Void
	}
	if len(e.Args) != len(fn.Params) {
		c.sink.Typef(e.Line(), "'%s' expects %d argument(s), got %d", name.Name, len(fn.Params), len(e.Args))
	}
	for i, a := range e.Args {
		argTy := c.checkExpr(a)
		if i < len(fn.Params) && !types.IsSubtype(argTy, fn.Params[i]) {
			c.sink.Typef(a.Line(), "argument %d to '%s' must be %s, got %s", i+1, name.Name, fn.Params[i], argTy)
		}
	}
	return fn.Return
}

func (c *Checker) checkNativeCall(e *ast.CallExpr, sig nativeSignature) types.Type {
	if sig.arity >= 0 && len(e.Args) != sig.arity {
		c.sink.Typef(e.Line(), "'%s' expects %d argument(s), got %d", sig.name, sig.arity, len(e.Args))
	}
	for _, a := range e.Args {
		argTy := c.checkExpr(a)
		if sig.param != nil && !types.IsSubtype(argTy, sig.param) {
			c.sink.Typef(a.Line(), "argument to '%s' must be %s, got %s", sig.name, sig.param, argTy)
		}
	}
	return sig.ret
}
