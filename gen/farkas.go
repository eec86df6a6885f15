// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"github.com/sirupsen/logrus"

	"github.com/go-air/horn"
	"github.com/go-air/horn/form"
	"github.com/go-air/horn/internal/logx"
)

// Farkas weakens the disjuncts of an arithmetic cube against the
// relation's level-below propagation formula.  Each disjunct for which
// the learner produces lemma guesses is replaced by their conjunction;
// when any disjunct changes, the rebuilt disjunction is flattened back
// into a cube and the lemma becomes level-dependent.
type Farkas struct {
	M   *form.M
	Sys *horn.System
	L   Learner

	Log   logrus.FieldLogger
	Stats *Stats
}

var _ Generalizer = (*Farkas)(nil)

func (g *Farkas) Apply(n *horn.Node, core *horn.Cube, usesLevel *bool) {
	if len(*core) == 0 {
		return
	}
	m := g.M
	for _, lit := range *core {
		if !g.arith(lit) {
			return
		}
	}
	b := m.And(*core...)
	bs := m.Disjuncts(b, nil)
	a := n.PT().PropagationFormula(g.Sys.All(), n.Level())
	log := logx.Or(g.Log)
	change := false
	for i, bi := range bs {
		lemmas, ok := g.L.GetLemmaGuesses(a, bi)
		if !ok || len(lemmas) == 0 {
			// An empty lemma list would splice in true and
			// collapse the cube to false.
			continue
		}
		log.WithFields(logrus.Fields{
			"disjunct": m.String(bi),
			"lemmas":   len(lemmas),
		}).Debug("farkas: disjunct weakened")
		bs[i] = m.And(lemmas...)
		change = true
		if g.Stats != nil {
			g.Stats.FarkasLemmas += len(lemmas)
		}
	}
	if !change {
		return
	}
	c := m.Or(bs...)
	*core = m.Conjuncts(c, (*core)[:0])
	*usesLevel = true
}

// arith reports whether f lies in the arithmetic fragment: boolean
// structure over integer comparisons, free of predicate applications
// and quantifiers.
func (g *Farkas) arith(f form.F) bool {
	m := g.M
	switch m.Kind(f) {
	case form.KApp, form.KExists, form.KForall:
		return false
	}
	for _, a := range m.Args(f) {
		if !g.arith(a) {
			return false
		}
	}
	return true
}
