// Package ast defines the two sum hierarchies the parser builds and the
// checker/interpreter walk: Expr and Stat. Each node carries a 1-based
// source line, the way quoi's ast package tags every node with the token
// that introduced it.
package ast

import (
	"fmt"
	"strings"

	"sourcelang/token"
)

// Node is the common interface of every AST node.
type Node interface {
	String() string
	Line() int
}

// Expr is implemented by every expression-node variant.
type Expr interface {
	Node
	exprNode()
}

// Stat is implemented by every statement-node variant.
type Stat interface {
	Node
	statNode()
}

// TypeExpr is implemented by the two type-annotation-node variants:
// primitive names and function signatures written in source.
type TypeExpr interface {
	Node
	typeExprNode()
}

type Pos struct{ Ln int }

func (p Pos) Line() int { return p.Ln }

// ---- Type expressions ----

// PrimitiveTypeExpr is a bare type keyword: bool, int, double, char,
// string, or void.
type PrimitiveTypeExpr struct {
	Pos
	Name string
}

func (p *PrimitiveTypeExpr) typeExprNode() {}
func (p *PrimitiveTypeExpr) String() string { return p.Name }

// FuncTypeExpr is a function signature written as a type. Neither the
// parser nor the checker builds or reads it; the grammar (§4.2) does not
// let source declare function-typed parameters beyond the fixed natives.
type FuncTypeExpr struct {
	Pos
	Return TypeExpr
	Params []TypeExpr
}

func (f *FuncTypeExpr) typeExprNode() {}
func (f *FuncTypeExpr) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", f.Return.String(), strings.Join(parts, ", "))
}

// ---- Expressions ----

type GroupingExpr struct {
	Pos
	Inner Expr
}

func (e *GroupingExpr) exprNode()     {}
func (e *GroupingExpr) String() string { return "(" + e.Inner.String() + ")" }

type UnaryExpr struct {
	Pos
	Op      token.Kind
	OpLexeme string
	Right   Expr
}

func (e *UnaryExpr) exprNode() {}
func (e *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", e.OpLexeme, e.Right.String()) }

type BinaryExpr struct {
	Pos
	Left     Expr
	Op       token.Kind
	OpLexeme string
	Right    Expr
}

func (e *BinaryExpr) exprNode() {}
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.OpLexeme, e.Right.String())
}

type TernaryExpr struct {
	Pos
	Cond, Then, Else Expr
}

func (e *TernaryExpr) exprNode() {}
func (e *TernaryExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", e.Cond.String(), e.Then.String(), e.Else.String())
}

type NullLiteralExpr struct{ Pos }

func (e *NullLiteralExpr) exprNode()      {}
func (e *NullLiteralExpr) String() string { return "null" }

type BoolLiteralExpr struct {
	Pos
	Value bool
}

func (e *BoolLiteralExpr) exprNode()      {}
func (e *BoolLiteralExpr) String() string { return fmt.Sprint(e.Value) }

type IntLiteralExpr struct {
	Pos
	Value int64
}

func (e *IntLiteralExpr) exprNode()      {}
func (e *IntLiteralExpr) String() string { return fmt.Sprint(e.Value) }

type DoubleLiteralExpr struct {
	Pos
	Value float64
}

func (e *DoubleLiteralExpr) exprNode()      {}
func (e *DoubleLiteralExpr) String() string { return fmt.Sprint(e.Value) }

type StringLiteralExpr struct {
	Pos
	Value string
}

func (e *StringLiteralExpr) exprNode()      {}
func (e *StringLiteralExpr) String() string { return fmt.Sprintf("%q", e.Value) }

type CharLiteralExpr struct {
	Pos
	Value rune
}

func (e *CharLiteralExpr) exprNode()      {}
func (e *CharLiteralExpr) String() string { return fmt.Sprintf("'%c'", e.Value) }

// VariableExpr is a read of a named variable.
type VariableExpr struct {
	Pos
	Name string
}

func (e *VariableExpr) exprNode()      {}
func (e *VariableExpr) String() string { return e.Name }

// AssignExpr is `name = value`.
type AssignExpr struct {
	Pos
	Name  string
	Value Expr
}

func (e *AssignExpr) exprNode() {}
func (e *AssignExpr) String() string {
	return fmt.Sprintf("(%s = %s)", e.Name, e.Value.String())
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Pos
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) exprNode() {}
func (e *CallExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee.String(), strings.Join(parts, ", "))
}

// ---- Statements ----

// VarDeclStat declares a name of a given static type, optionally with an
// initializer expression.
type VarDeclStat struct {
	Pos
	Type WithType
	Name string
	Init Expr // nil if absent
}

func (s *VarDeclStat) statNode() {}
func (s *VarDeclStat) String() string {
	if s.Init == nil {
		return fmt.Sprintf("%s %s;", s.Type.String(), s.Name)
	}
	return fmt.Sprintf("%s %s = %s;", s.Type.String(), s.Name, s.Init.String())
}

// WithType is the parsed spelling of a type annotation (a typeName in the
// grammar); kept distinct from TypeExpr so declarations can carry it
// without pulling in the checker's internal Union variant.
type WithType struct {
	Pos
	Name string // "bool", "int", "double", "char", "string", "void"
}

func (t WithType) String() string { return t.Name }

type ExprStat struct {
	Pos
	X Expr
}

func (s *ExprStat) statNode()      {}
func (s *ExprStat) String() string { return s.X.String() + ";" }

type BlockStat struct {
	Pos
	Stmts []Stat
}

func (s *BlockStat) statNode() {}
func (s *BlockStat) String() string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, st := range s.Stmts {
		b.WriteString("  ")
		b.WriteString(st.String())
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String()
}

type IfStat struct {
	Pos
	Cond Expr
	Then Stat
	Else Stat // nil if absent; may be another *IfStat (else if) or *BlockStat
}

func (s *IfStat) statNode() {}
func (s *IfStat) String() string {
	res := fmt.Sprintf("if (%s) %s", s.Cond.String(), s.Then.String())
	if s.Else != nil {
		res += " else " + s.Else.String()
	}
	return res
}

type WhileStat struct {
	Pos
	Cond Expr
	Body Stat
}

func (s *WhileStat) statNode() {}
func (s *WhileStat) String() string {
	return fmt.Sprintf("while (%s) %s", s.Cond.String(), s.Body.String())
}

// ForStat is `for (init; cond; incr) body`. Each clause may be nil.
type ForStat struct {
	Pos
	Init Stat // VarDeclStat or ExprStat, or nil
	Cond Expr // nil means "always true"
	Incr Expr // nil if absent
	Body Stat
}

func (s *ForStat) statNode() {}
func (s *ForStat) String() string {
	init, cond, incr := "", "", ""
	if s.Init != nil {
		init = s.Init.String()
	}
	if s.Cond != nil {
		cond = s.Cond.String()
	}
	if s.Incr != nil {
		incr = s.Incr.String()
	}
	return fmt.Sprintf("for (%s %s; %s) %s", init, cond, incr, s.Body.String())
}

type BreakStat struct{ Pos }

func (s *BreakStat) statNode()      {}
func (s *BreakStat) String() string { return "break;" }

type ContinueStat struct{ Pos }

func (s *ContinueStat) statNode()      {}
func (s *ContinueStat) String() string { return "continue;" }

type ReturnStat struct {
	Pos
	Value Expr // nil if absent
}

func (s *ReturnStat) statNode() {}
func (s *ReturnStat) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// Param is one declared function parameter.
type Param struct {
	Type WithType
	Name string
}

// FuncDeclStat declares a named function with a fixed arity, a declared
// return type, and a body block.
type FuncDeclStat struct {
	Pos
	ReturnType WithType
	Name       string
	Params     []Param
	Body       *BlockStat

	// Captures is the conservative free-variable set computed during
	// checking (spec.md §9 "Capture computation"): identifiers referenced
	// in Body that are not parameters or locals declared in Body.
	Captures []string
}

func (s *FuncDeclStat) statNode() {}
func (s *FuncDeclStat) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = fmt.Sprintf("%s %s", p.Type.String(), p.Name)
	}
	return fmt.Sprintf("%s %s(%s) %s", s.ReturnType.String(), s.Name, strings.Join(parts, ", "), s.Body.String())
}

// Program is the ordered list of top-level statements the parser produces.
type Program struct {
	Stmts []Stat
}
