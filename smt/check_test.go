// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/horn/form"
)

func check(t *testing.T, m *form.M, fs ...form.F) Result {
	t.Helper()
	k := New(m, Config{})
	defer k.Release()
	for _, f := range fs {
		k.Assert(f)
	}
	return k.Check()
}

func TestBooleanUnsat(t *testing.T) {
	m := form.NewM()
	p := m.Sym("p", form.SBool)
	assert.Equal(t, Unsat, check(t, m, p, m.Not(p)))
}

func TestBooleanSat(t *testing.T) {
	m := form.NewM()
	p := m.Sym("p", form.SBool)
	q := m.Sym("q", form.SBool)
	assert.Equal(t, Sat, check(t, m, m.Or(p, q), m.Not(p)))
}

func TestConstants(t *testing.T) {
	m := form.NewM()
	assert.Equal(t, Sat, check(t, m, m.True))
	assert.Equal(t, Unsat, check(t, m, m.False))
}

func TestBoundConflict(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	assert.Equal(t, Unsat, check(t, m, m.Le(x, m.Num(5)), m.Ge(x, m.Num(7))))
}

func TestBoundConsistent(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	assert.Equal(t, Sat, check(t, m, m.Ge(x, m.Num(0)), m.Le(x, m.Num(5))))
}

func TestNegatedBoundConflict(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	// not (x <= 5) is x >= 6, conflicting with x <= 5.
	assert.Equal(t, Unsat, check(t, m, m.Not(m.Le(x, m.Num(5))), m.Le(x, m.Num(5))))
}

func TestEquationBounds(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	assert.Equal(t, Unsat, check(t, m, m.Eq(x, m.Num(4)), m.Ge(x, m.Num(5))))
	assert.Equal(t, Sat, check(t, m, m.Eq(x, m.Num(4)), m.Le(x, m.Num(5))))
}

func TestDifferenceBounds(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	y := m.Sym("y", form.SInt)
	// x - y bounded below by 1 and above by 0.
	r := check(t, m, m.Ge(x, m.Add(y, m.Num(1))), m.Le(x, y))
	assert.Equal(t, Unsat, r)
}

func TestChainedBoundsUnknown(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	y := m.Sym("y", form.SInt)
	// x >= 1, y <= 0 and x <= y conflict only through the chain,
	// which per-key propagation cannot decide.
	r := check(t, m, m.Ge(x, m.Num(1)), m.Le(y, m.Num(0)), m.Le(x, y))
	assert.Equal(t, Unknown, r)
}

func TestScaledTermUnknown(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	// x and x+x live under distinct keys.
	r := check(t, m, m.Ge(x, m.Num(1)), m.Le(m.Add(x, x), m.Num(1)))
	assert.Equal(t, Unknown, r)
}

func TestBooleanStructureRefines(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	lo := m.Ge(x, m.Num(10))
	hi := m.Le(x, m.Num(3))
	mid := m.Le(x, m.Num(20))
	// Either branch of the disjunction conflicts with lo except mid.
	r := check(t, m, lo, m.Or(hi, mid))
	assert.Equal(t, Sat, r)
	assert.Equal(t, Unsat, check(t, m, lo, hi, mid))
}

func TestOpaqueAtomUnknown(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	// A satisfied mod constraint lies outside the bound fragment.
	r := check(t, m, m.Eq(m.Mod(x, m.Num(2)), m.Num(0)))
	assert.Equal(t, Unknown, r)
}

func TestDisequationUnknown(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	// A falsified equation carries no single bound.
	r := check(t, m, m.Not(m.Eq(x, m.Num(3))))
	assert.Equal(t, Unknown, r)
}

func TestQuantifierUnknown(t *testing.T) {
	m := form.NewM()
	p := m.Decl("p", form.SInt)
	q := m.Forall([]form.Sort{form.SInt}, m.App(p, m.Bound(0, form.SInt)))
	assert.Equal(t, Unknown, check(t, m, q))
}

func TestRelease(t *testing.T) {
	m := form.NewM()
	k := New(m, Config{})
	k.Assert(m.True)
	k.Release()
	require.Panics(t, func() { k.Assert(m.True) })
	require.Panics(t, func() { k.Check() })
}
