package interpreter

import (
	"hash/fnv"

	"github.com/benbjohnson/immutable"

	"sourcelang/value"
)

// Environment is the runtime analogue of checker.typeEnvironment: a
// mutable scope chained to its enclosing scope. Ordinary block scoping
// (if/while/for bodies, function call frames) uses this directly; a
// closure instead snapshots the subset of bindings it needs into an
// immutable.Map (see captureSnapshot below) so later mutation of an
// enclosing variable cannot reach back into an already-created closure.
type Environment struct {
	vars      map[string]*value.Value
	enclosing *Environment
}

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{vars: make(map[string]*value.Value), enclosing: enclosing}
}

func (e *Environment) Define(name string, v value.Value) {
	e.vars[name] = &v
}

func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if p, ok := env.vars[name]; ok {
			return *p, true
		}
	}
	return value.Null, false
}

func (e *Environment) Assign(name string, v value.Value) bool {
	for env := e; env != nil; env = env.enclosing {
		if p, ok := env.vars[name]; ok {
			*p = v
			return true
		}
	}
	return false
}

// stringHasher adapts hash/fnv to immutable.Hasher[string] so closure
// capture snapshots can be kept in a benbjohnson/immutable.Map.
type stringHasher struct{}

func (stringHasher) Hash(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32()
}

func (stringHasher) Equal(a, b string) bool { return a == b }

// captureSnapshot builds the immutable, point-in-time map of values a
// closure needs for the names its free-variable analysis found (spec.md
// §9): read each name once, at the moment the function value is created,
// out of the environment chain in effect there.
func captureSnapshot(env *Environment, names []string) *immutable.Map[string, value.Value] {
	m := immutable.NewMap[string, value.Value](stringHasher{})
	for _, name := range names {
		if v, ok := env.Get(name); ok {
			m = m.Set(name, v)
		}
	}
	return m
}

// environmentFromSnapshot materializes a capture snapshot into a fresh
// mutable Environment for a function call frame to build its parameter
// bindings on top of.
func environmentFromSnapshot(snapshot *immutable.Map[string, value.Value]) *Environment {
	env := NewEnvironment(nil)
	it := snapshot.Iterator()
	for !it.Done() {
		k, v, _ := it.Next()
		env.Define(k, v)
	}
	return env
}
