// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package farkas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/horn/form"
)

func TestLearnerFindsLemma(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	y := m.Sym("y", form.SInt)
	l := &Learner{M: m}

	a := m.And(m.Ge(x, m.Num(20)), m.Le(y, m.Num(3)))
	b := m.Le(x, m.Num(10))
	lemmas, ok := l.GetLemmaGuesses(a, b)
	require.True(t, ok)
	assert.Equal(t, []form.F{m.Ge(x, m.Num(20))}, lemmas)
	assert.Equal(t, 1, l.Lemmas)
}

func TestLearnerNoConflict(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	l := &Learner{M: m}

	lemmas, ok := l.GetLemmaGuesses(m.Le(x, m.Num(30)), m.Le(x, m.Num(10)))
	assert.False(t, ok)
	assert.Nil(t, lemmas)
	assert.Equal(t, 0, l.Lemmas)
}

func TestLearnerNegatedBound(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	l := &Learner{M: m}

	// not (x <= 19) is x >= 20, refuting x <= 10.
	a := m.Not(m.Le(x, m.Num(19)))
	lemmas, ok := l.GetLemmaGuesses(a, m.Le(x, m.Num(10)))
	require.True(t, ok)
	assert.Equal(t, []form.F{a}, lemmas)
}

func TestLearnerEquation(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	l := &Learner{M: m}

	a := m.Eq(x, m.Num(15))
	lemmas, ok := l.GetLemmaGuesses(a, m.Le(x, m.Num(10)))
	require.True(t, ok)
	assert.Equal(t, []form.F{a}, lemmas)

	lemmas, ok = l.GetLemmaGuesses(a, m.Ge(x, m.Num(20)))
	require.True(t, ok)
	assert.Equal(t, []form.F{a}, lemmas)
}

func TestLearnerDifferenceTerms(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	y := m.Sym("y", form.SInt)
	l := &Learner{M: m}

	// x - y >= 5 refutes x <= y.
	a := m.Ge(x, m.Add(y, m.Num(5)))
	lemmas, ok := l.GetLemmaGuesses(a, m.Le(x, y))
	require.True(t, ok)
	assert.Equal(t, []form.F{a}, lemmas)
}

func TestLearnerDedupesSources(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	l := &Learner{M: m}

	// One a-conjunct refutes both b-conjuncts but appears once.
	a := m.Ge(x, m.Num(20))
	b := m.And(m.Le(x, m.Num(10)), m.Le(x, m.Num(5)))
	lemmas, ok := l.GetLemmaGuesses(a, b)
	require.True(t, ok)
	assert.Equal(t, []form.F{a}, lemmas)
	assert.Equal(t, 1, l.Lemmas)
}

func TestLearnerNonArith(t *testing.T) {
	m := form.NewM()
	p := m.Decl("p", form.SInt)
	x := m.Sym("x", form.SInt)
	l := &Learner{M: m}

	lemmas, ok := l.GetLemmaGuesses(m.App(p, x), m.Le(x, m.Num(10)))
	assert.False(t, ok)
	assert.Nil(t, lemmas)
}
