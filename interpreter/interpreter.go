// Package interpreter implements the tree-walking evaluator (spec.md
// §4.4): a recursive walk over the checked AST that evaluates
// expressions to value.Value and executes statements against a chain of
// lexically-scoped Environments, threading non-local control flow
// (break/continue/return) through an explicit signal result instead of
// panics or exceptions.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"sourcelang/ast"
	"sourcelang/diag"
	"sourcelang/value"
)

// signalKind tags how a statement finished: by falling through normally,
// or by unwinding toward the nearest loop (break/continue) or function
// call (return).
type signalKind int

const (
	sigNormal signalKind = iota
	sigBreak
	sigContinue
	sigReturn
)

type signal struct {
	kind  signalKind
	value value.Value
}

var normalSignal = signal{kind: sigNormal}

// runtimeError is returned up the call stack when evaluation hits a
// condition spec.md §4.4 assigns to the Runtime Error kind (division by
// zero, etc). The sink has already been told; the error value just
// unwinds Go's own call stack back to the driver.
type runtimeError struct{ message string }

func (e *runtimeError) Error() string { return e.message }

// Interpreter walks one Program against one global Environment. Stdout
// is injectable so tests can capture what the native print writes
// instead of going to the process's real stdout.
type Interpreter struct {
	sink    *diag.Sink
	env     *Environment
	globals *Environment
	Stdout  io.Writer

	callDepth    int
	maxCallDepth int

	// TrimTrailingZeros selects which of value.FormatDouble's renderings
	// print uses; config.Config.TrimTrailingZeros drives it.
	TrimTrailingZeros bool
}

func New(sink *diag.Sink) *Interpreter {
	globals := NewEnvironment(nil)
	i := &Interpreter{sink: sink, env: globals, globals: globals, Stdout: os.Stdout, maxCallDepth: 1000, TrimTrailingZeros: true}
	for _, n := range newNatives(i) {
		i.globals.Define(n.Name(), value.Call(n))
	}
	return i
}

// SetMaxCallDepth overrides the recursion-depth ceiling a runaway
// user-defined function call chain trips before it is reported as a
// Runtime Error rather than left to overflow the Go call stack.
func (i *Interpreter) SetMaxCallDepth(depth int) {
	i.maxCallDepth = depth
}

// Stringify renders a value the way this interpreter's native print does,
// honoring TrimTrailingZeros for doubles.
func (i *Interpreter) Stringify(v value.Value) string {
	return value.Stringify(v, i.TrimTrailingZeros)
}

// Run executes every top-level statement in order, stopping at the first
// runtime error. It returns that error (nil on a clean run) so the
// driver can map it to the spec's exit code without inspecting the sink.
func (i *Interpreter) Run(prog *ast.Program) error {
	for _, s := range prog.Stmts {
		if _, err := i.execStat(s); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) runtimeErrf(line int, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	i.sink.Runtimef(line, msg)
	return &runtimeError{message: msg}
}

// internalErrf reports a broken-invariant guard (an AST node or operator
// the rest of the pipeline should have ruled out) as the distinct Internal
// Compiler Error kind, rendered verbatim without a line number, rather
// than as an ordinary Runtime Error.
func (i *Interpreter) internalErrf(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	i.sink.Internalf(msg)
	return &runtimeError{message: msg}
}

// ---- statements ----

func (i *Interpreter) execStat(s ast.Stat) (signal, error) {
	switch s := s.(type) {
	case *ast.VarDeclStat:
		return i.execVarDecl(s)
	case *ast.ExprStat:
		_, err := i.eval(s.X)
		return normalSignal, err
	case *ast.BlockStat:
		return i.execBlock(s, NewEnvironment(i.env))
	case *ast.IfStat:
		return i.execIf(s)
	case *ast.WhileStat:
		return i.execWhile(s)
	case *ast.ForStat:
		return i.execFor(s)
	case *ast.BreakStat:
		return signal{kind: sigBreak}, nil
	case *ast.ContinueStat:
		return signal{kind: sigContinue}, nil
	case *ast.ReturnStat:
		return i.execReturn(s)
	case *ast.FuncDeclStat:
		return i.execFuncDecl(s)
	default:
		return normalSignal, i.internalErrf("interpreter: unhandled statement %T", s)
	}
}

// requireBool repeats, at runtime, the bool-condition requirement the
// checker already enforced statically (spec.md §4.4, §7) — a defensive
// guard rather than dead code, since it is what turns a broken invariant
// into a reported Runtime Error instead of execIf/execWhile/execFor
// silently reinterpreting a non-bool value's zero-valued bool field.
func (i *Interpreter) requireBool(v value.Value, line int) error {
	if !v.IsBool() {
		return i.runtimeErrf(line, "condition must be bool, got %s", v.TypeName())
	}
	return nil
}

func (i *Interpreter) execVarDecl(s *ast.VarDeclStat) (signal, error) {
	v := value.Null
	if s.Init != nil {
		var err error
		v, err = i.eval(s.Init)
		if err != nil {
			return normalSignal, err
		}
	}
	i.env.Define(s.Name, v)
	return normalSignal, nil
}

// execBlock runs a block's statements against env, then restores
// whatever environment was active before — the "environment scope
// guard" from spec.md §4.4, implemented with defer so the restoration
// happens on every exit path including an early return from a runtime
// error or a break/continue/return signal propagating out.
func (i *Interpreter) execBlock(b *ast.BlockStat, env *Environment) (signal, error) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, st := range b.Stmts {
		sig, err := i.execStat(st)
		if err != nil {
			return sig, err
		}
		if sig.kind != sigNormal {
			return sig, nil
		}
	}
	return normalSignal, nil
}

func (i *Interpreter) execIf(s *ast.IfStat) (signal, error) {
	cond, err := i.eval(s.Cond)
	if err != nil {
		return normalSignal, err
	}
	if err := i.requireBool(cond, s.Cond.Line()); err != nil {
		return normalSignal, err
	}
	if cond.AsBool() {
		return i.execStat(s.Then)
	}
	if s.Else != nil {
		return i.execStat(s.Else)
	}
	return normalSignal, nil
}

func (i *Interpreter) execWhile(s *ast.WhileStat) (signal, error) {
	for {
		cond, err := i.eval(s.Cond)
		if err != nil {
			return normalSignal, err
		}
		if err := i.requireBool(cond, s.Cond.Line()); err != nil {
			return normalSignal, err
		}
		if !cond.AsBool() {
			return normalSignal, nil
		}
		sig, err := i.execStat(s.Body)
		if err != nil {
			return sig, err
		}
		switch sig.kind {
		case sigBreak:
			return normalSignal, nil
		case sigReturn:
			return sig, nil
		}
	}
}

func (i *Interpreter) execFor(s *ast.ForStat) (signal, error) {
	env := NewEnvironment(i.env)
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	if s.Init != nil {
		if sig, err := i.execStat(s.Init); err != nil {
			return sig, err
		}
	}
	for {
		if s.Cond != nil {
			cond, err := i.eval(s.Cond)
			if err != nil {
				return normalSignal, err
			}
			if err := i.requireBool(cond, s.Cond.Line()); err != nil {
				return normalSignal, err
			}
			if !cond.AsBool() {
				return normalSignal, nil
			}
		}
		sig, err := i.execStat(s.Body)
		if err != nil {
			return sig, err
		}
		if sig.kind == sigBreak {
			return normalSignal, nil
		}
		if sig.kind == sigReturn {
			return sig, nil
		}
		if s.Incr != nil {
			if _, err := i.eval(s.Incr); err != nil {
				return normalSignal, err
			}
		}
	}
}

func (i *Interpreter) execReturn(s *ast.ReturnStat) (signal, error) {
	v := value.Null
	if s.Value != nil {
		var err error
		v, err = i.eval(s.Value)
		if err != nil {
			return normalSignal, err
		}
	}
	return signal{kind: sigReturn, value: v}, nil
}

// execFuncDecl binds s.Name before taking the closure's capture snapshot,
// so a self-recursive call inside the body resolves to the function's own
// value rather than finding nothing in the environment — the free-variable
// analysis in checker.computeCaptures treats a recursive call the same as
// any other outer reference, so the name is always among s.Captures.
func (i *Interpreter) execFuncDecl(s *ast.FuncDeclStat) (signal, error) {
	i.env.Define(s.Name, value.Null)
	fn := &Function{decl: s, interp: i}
	i.env.Assign(s.Name, value.Call(fn))
	fn.captured = captureSnapshot(i.env, s.Captures)
	return normalSignal, nil
}
