// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package horn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/horn/form"
)

func TestCube(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	a := m.Le(x, m.Num(1))
	b := m.Ge(x, m.Num(0))
	c := Cube{a, b}
	d := c.Clone()
	d[0] = m.True
	assert.Equal(t, a, c[0])
	assert.True(t, c.Contains(a))
	assert.False(t, c.Contains(m.True))
}

func TestSystem(t *testing.T) {
	m := form.NewM()
	p := &StaticPred{M: m, Decl: m.Decl("p", form.SInt)}
	q := &StaticPred{M: m, Decl: m.Decl("q", form.SInt, form.SInt)}
	s := NewSystem()
	s.Add(p)
	s.Add(q)
	assert.Equal(t, []Pred{p, q}, s.All())
	assert.Equal(t, Pred(p), s.Find(p.Decl))
	assert.Nil(t, s.Find(m.Decl("r", form.SBool)))
	require.Panics(t, func() { s.Add(&StaticPred{M: m, Decl: p.Decl}) })
}

func TestNode(t *testing.T) {
	m := form.NewM()
	p := &StaticPred{M: m, Decl: m.Decl("p", form.SInt)}
	root := NewNode(p, 4, nil)
	child := NewNode(p, 3, root)
	assert.Nil(t, root.Parent())
	assert.Equal(t, root, child.Parent())
	assert.Equal(t, 3, child.Level())
	assert.Equal(t, Pred(p), child.PT())
}

func TestStaticPredDefaults(t *testing.T) {
	m := form.NewM()
	p := &StaticPred{M: m, Decl: m.Decl("p", form.SInt, form.SBool)}
	assert.Equal(t, 2, p.Arity())
	assert.Equal(t, form.SInt, p.Sig(0))
	assert.Equal(t, form.SBool, p.Sig(1))
	assert.Equal(t, m.True, p.Formulas(3, true))
	assert.Equal(t, m.True, p.PropagationFormula(nil, 3))

	// A nil oracle rejects every cube.
	ul := false
	assert.False(t, p.CheckInductive(1, Cube{m.True}, &ul))
	assert.False(t, ul)
}

func TestStaticPredTables(t *testing.T) {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	inv := m.Le(x, m.Num(5))
	prop := m.Ge(x, m.Num(0))
	p := &StaticPred{
		M:     m,
		Decl:  m.Decl("p", form.SInt),
		Props: map[int]form.F{2: inv},
		Prop:  map[int]form.F{2: prop},
		Inductive: func(level int, cube Cube, usesLevel *bool) bool {
			*usesLevel = true
			return level == 2
		},
	}
	assert.Equal(t, inv, p.Formulas(2, false))
	assert.Equal(t, prop, p.PropagationFormula(nil, 2))
	ul := false
	assert.True(t, p.CheckInductive(2, nil, &ul))
	assert.True(t, ul)
	assert.False(t, p.CheckInductive(1, nil, &ul))
}
