package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReflexiveSubtyping(t *testing.T) {
	for _, p := range []Primitive{Null, Bool, Int, Double, String, Char, Void} {
		assert.True(t, IsSubtype(p, p), "%s <: %s", p, p)
	}
	fn := Function{Return: Int, Params: []Type{Bool, String}}
	assert.True(t, IsSubtype(fn, fn))
}

func TestNullIsSubtypeOfEveryNonFunctionPrimitive(t *testing.T) {
	for _, p := range []Primitive{Bool, Int, Double, String, Char, Void} {
		assert.True(t, IsSubtype(Null, p), "null <: %s", p)
	}
	assert.False(t, IsSubtype(Null, Function{Return: Void, Params: nil}))
}

func TestFunctionContravariance(t *testing.T) {
	// Function(null, [int]) <: Function(int, [null]) requires
	// null <: int (return) and null <: int (contravariant param: the
	// super's parameter type must be a subtype of the sub's).
	f1 := Function{Return: Null, Params: []Type{Int}}
	f2 := Function{Return: Int, Params: []Type{Null}}
	assert.True(t, IsSubtype(f1, f2))

	// arity mismatch is never a subtype.
	f3 := Function{Return: Int, Params: []Type{Int, Int}}
	assert.False(t, IsSubtype(f1, f3))
}

func TestUnionSubtyping(t *testing.T) {
	u := NewUnion(Int, Double, String)
	assert.True(t, IsSubtype(Int, u))
	assert.True(t, IsSubtype(Double, u))
	assert.False(t, IsSubtype(Bool, u))

	sub := NewUnion(Int, Double)
	assert.True(t, IsSubtype(sub, u))

	notSub := NewUnion(Int, Bool)
	assert.False(t, IsSubtype(notSub, u))
}

func TestNewUnionCollapsesSingleton(t *testing.T) {
	got := NewUnion(Int)
	assert.Equal(t, Int, got)
}
