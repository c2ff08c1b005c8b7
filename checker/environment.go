package checker

import "sourcelang/types"

// typeEnvironment is the static analogue of the interpreter's runtime
// Environment: a chain of scopes, each a flat map from name to declared
// type plus an "has this name been assigned a value yet" flag, linked to
// an enclosing scope the way quoi's scopeStack links scopes but as a
// parent pointer instead of a flat slice (lexical scoping needs a tree,
// not a stack, once closures can outlive the scope that created them).
type typeEnvironment struct {
	enclosing *typeEnvironment
	declared  map[string]types.Type
	assigned  map[string]bool
}

func newTypeEnvironment(enclosing *typeEnvironment) *typeEnvironment {
	return &typeEnvironment{
		enclosing: enclosing,
		declared:  make(map[string]types.Type),
		assigned:  make(map[string]bool),
	}
}

// declare binds name to ty in this scope. assigned is true for
// declarations with an initializer, false for "int x;" with none.
func (e *typeEnvironment) declare(name string, ty types.Type, assigned bool) {
	e.declared[name] = ty
	e.assigned[name] = assigned
}

// declaredHere reports whether name is bound in this scope specifically,
// not an enclosing one — used for the re-declaration check.
func (e *typeEnvironment) declaredHere(name string) bool {
	_, ok := e.declared[name]
	return ok
}

// lookup searches this scope and every enclosing scope, innermost first.
func (e *typeEnvironment) lookup(name string) (ty types.Type, assigned bool, found bool) {
	for env := e; env != nil; env = env.enclosing {
		if t, ok := env.declared[name]; ok {
			return t, env.assigned[name], true
		}
	}
	return nil, false, false
}

// markAssigned records that name has now been given a value, searching
// outward the same way lookup does.
func (e *typeEnvironment) markAssigned(name string) bool {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.declared[name]; ok {
			env.assigned[name] = true
			return true
		}
	}
	return false
}
