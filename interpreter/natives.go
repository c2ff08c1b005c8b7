package interpreter

import (
	"fmt"
	"time"

	"sourcelang/value"
)

// nativeFunc is the signature every native's effect is implemented with;
// each receives the owning Interpreter as an argument so it can reach
// Stdout without the value package depending on this one.
type nativeFunc func(interp *Interpreter, args []value.Value) (value.Value, error)

type nativeSpec struct {
	name  string
	arity int
	fn    nativeFunc
}

// nativeSpecs is the data-driven table every built-in is generated from,
// grounded in the original implementation's native_functions table:
// print is variadic, clock takes no arguments and returns wall-clock
// seconds, sleep blocks the calling goroutine for a number of seconds.
var nativeSpecs = []nativeSpec{
	{name: "print", arity: value.Unlimited, fn: nativePrint},
	{name: "clock", arity: 0, fn: nativeClock},
	{name: "sleep", arity: 1, fn: nativeSleep},
}

type nativeFunction struct {
	spec   nativeSpec
	interp *Interpreter
}

func (n *nativeFunction) Arity() int   { return n.spec.arity }
func (n *nativeFunction) Name() string { return n.spec.name }

func (n *nativeFunction) Call(line int, args []value.Value) (value.Value, error) {
	return n.spec.fn(n.interp, args)
}

func newNatives(interp *Interpreter) []*nativeFunction {
	fns := make([]*nativeFunction, len(nativeSpecs))
	for i, spec := range nativeSpecs {
		fns[i] = &nativeFunction{spec: spec, interp: interp}
	}
	return fns
}

func nativePrint(interp *Interpreter, args []value.Value) (value.Value, error) {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(interp.Stdout, " ")
		}
		fmt.Fprint(interp.Stdout, interp.Stringify(a))
	}
	fmt.Fprintln(interp.Stdout)
	return value.Null, nil
}

func nativeClock(interp *Interpreter, args []value.Value) (value.Value, error) {
	return value.Double(float64(time.Now().UnixNano()) / float64(time.Second)), nil
}

func nativeSleep(interp *Interpreter, args []value.Value) (value.Value, error) {
	seconds := args[0].AsDouble()
	time.Sleep(time.Duration(seconds * float64(time.Second)))
	return value.Null, nil
}
