// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-air/horn"
	"github.com/go-air/horn/form"
)

func TestBoolMinimizes(t *testing.T) {
	m := form.NewM()
	a := m.Sym("a", form.SBool)
	b := m.Sym("b", form.SBool)
	c := m.Sym("c", form.SBool)
	n := testNode(m, 2, scripted(m, "b c", "c"))
	stats := &Stats{}
	g := &Bool{M: m, Stats: stats}

	cube := horn.Cube{a, b, c}
	ul := false
	g.Apply(n, &cube, &ul)
	assert.Equal(t, horn.Cube{c}, cube)
	assert.False(t, ul)
	assert.Equal(t, 1, stats.BoolCubes)
	assert.Equal(t, 2, stats.BoolDropped)
}

func TestBoolKeepsNecessary(t *testing.T) {
	m := form.NewM()
	a := m.Sym("a", form.SBool)
	b := m.Sym("b", form.SBool)
	c := m.Sym("c", form.SBool)
	n := testNode(m, 2, scripted(m, "a c"))
	g := &Bool{M: m}

	cube := horn.Cube{a, b, c}
	ul := false
	g.Apply(n, &cube, &ul)
	assert.Equal(t, horn.Cube{a, c}, cube)
}

func TestBoolIdempotent(t *testing.T) {
	m := form.NewM()
	a := m.Sym("a", form.SBool)
	b := m.Sym("b", form.SBool)
	n := testNode(m, 2, scripted(m, "b"))
	g := &Bool{M: m}

	cube := horn.Cube{a, b}
	ul := false
	g.Apply(n, &cube, &ul)
	assert.Equal(t, horn.Cube{b}, cube)
	g.Apply(n, &cube, &ul)
	assert.Equal(t, horn.Cube{b}, cube)
}

func TestBoolSingletonNoOp(t *testing.T) {
	m := form.NewM()
	a := m.Sym("a", form.SBool)
	n := testNode(m, 2, nil)
	g := &Bool{M: m}

	cube := horn.Cube{a}
	ul := false
	g.Apply(n, &cube, &ul)
	assert.Equal(t, horn.Cube{a}, cube)
}

func TestBoolAllNecessaryUnchanged(t *testing.T) {
	m := form.NewM()
	a := m.Sym("a", form.SBool)
	b := m.Sym("b", form.SBool)
	c := m.Sym("c", form.SBool)
	n := testNode(m, 2, scripted(m)) // reject everything
	stats := &Stats{}
	g := &Bool{M: m, Stats: stats}

	cube := horn.Cube{a, b, c}
	ul := false
	g.Apply(n, &cube, &ul)
	assert.Equal(t, horn.Cube{a, b, c}, cube)
	assert.Equal(t, 0, stats.BoolCubes)
}

func TestBoolFailureLimit(t *testing.T) {
	m := form.NewM()
	a := m.Sym("a", form.SBool)
	b := m.Sym("b", form.SBool)
	c := m.Sym("c", form.SBool)
	checks := 0
	n := testNode(m, 2, func(level int, cube horn.Cube, usesLevel *bool) bool {
		checks++
		return false
	})
	g := &Bool{M: m, FailureLimit: 1}

	cube := horn.Cube{a, b, c}
	ul := false
	g.Apply(n, &cube, &ul)
	assert.Equal(t, horn.Cube{a, b, c}, cube)
	assert.Equal(t, 2, checks)
}

func TestBoolUsesLevel(t *testing.T) {
	m := form.NewM()
	a := m.Sym("a", form.SBool)
	b := m.Sym("b", form.SBool)
	n := testNode(m, 2, func(level int, cube horn.Cube, usesLevel *bool) bool {
		*usesLevel = true
		return cubeKey(m, cube) == "b"
	})
	g := &Bool{M: m}

	cube := horn.Cube{a, b}
	ul := false
	g.Apply(n, &cube, &ul)
	assert.Equal(t, horn.Cube{b}, cube)
	assert.True(t, ul)
}
