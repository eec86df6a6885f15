// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/go-air/horn"
	"github.com/go-air/horn/form"
	"github.com/go-air/horn/internal/logx"
)

// Arith looks for a lower bound and an upper bound of equal magnitude
// on the same integer term — together implying an equality — and tries
// relaxing the pair into a parity constraint plus a one-sided bound.
type Arith struct {
	M *form.M

	Log   logrus.FieldLogger
	Stats *Stats
}

var _ Generalizer = (*Arith)(nil)

// eq records a matched bound pair: term is bounded below and above by
// val at literal positions lo and hi.
type eq struct {
	term   form.F
	val    int64
	lo, hi int
}

type termLoc struct {
	term form.F
	idx  int
}

func (g *Arith) Apply(n *horn.Node, core *horn.Cube, usesLevel *bool) {
	if len(*core) <= 1 {
		return
	}
	m := g.M
	eqs := g.eqs(*core)
	if len(eqs) == 0 {
		return
	}
	log := logx.Or(g.Log)
	c := *core
	for _, e := range eqs {
		if g.Stats != nil {
			g.Stats.ArithEqs++
		}
		cand := make(horn.Cube, len(c))
		for i, lit := range c {
			switch i {
			case e.lo:
				cand[i] = m.Eq(m.Mod(e.term, m.Num(2)), m.Num(0))
			case e.hi:
				cand[i] = m.Le(e.term, m.Num(e.val))
			default:
				if sub, ok := g.substAlias(e.val, e.term, lit); ok {
					cand[i] = sub
				} else {
					cand[i] = lit
				}
			}
		}
		if !n.PT().CheckInductive(n.Level(), cand, usesLevel) {
			continue
		}
		log.WithFields(logrus.Fields{
			"term":  m.String(e.term),
			"value": e.val,
		}).Debug("arith: equality relaxed to parity and bound")
		c = cand
		if g.Stats != nil {
			g.Stats.ArithCommits++
		}
	}
	*core = c
}

// bounds indexes the cube's literals as signed bounds on integer
// terms, keyed by absolute bound value.  Negative values are
// normalized by negating the term and swapping the bound's role.
type bounds struct {
	lb, ub map[int64][]termLoc
	keys   []int64 // lb keys, ascending, for deterministic iteration
}

func (g *Arith) insertBound(b *bounds, lower bool, x form.F, r int64, i int) {
	if r < 0 {
		x = g.M.Neg(x)
		lower = !lower
		r = -r
	}
	if lower {
		if _, ok := b.lb[r]; !ok {
			b.keys = append(b.keys, r)
		}
		b.lb[r] = append(b.lb[r], termLoc{term: x, idx: i})
	} else {
		b.ub[r] = append(b.ub[r], termLoc{term: x, idx: i})
	}
}

func (g *Arith) eqs(c horn.Cube) []eq {
	m := g.M
	b := bounds{lb: map[int64][]termLoc{}, ub: map[int64][]termLoc{}}
	for i, lit := range c {
		if e1, ok := m.IsNot(lit); ok {
			if x, y, ok := m.IsLe(e1); ok {
				if r, ok := m.NumVal(y); ok && m.IsInt(x) {
					// not (x <= r)  <=>  x >= r+1
					g.insertBound(&b, true, x, r+1, i)
				}
				continue
			}
			if x, y, ok := m.IsGe(e1); ok {
				if r, ok := m.NumVal(y); ok && m.IsInt(x) {
					// not (x >= r)  <=>  x <= r-1
					g.insertBound(&b, false, x, r-1, i)
				}
				continue
			}
			continue
		}
		if x, y, ok := m.IsLe(lit); ok {
			if r, ok := m.NumVal(y); ok && m.IsInt(x) {
				g.insertBound(&b, false, x, r, i)
			}
			continue
		}
		if x, y, ok := m.IsGe(lit); ok {
			if r, ok := m.NumVal(y); ok && m.IsInt(x) {
				g.insertBound(&b, true, x, r, i)
			}
		}
	}
	sort.Slice(b.keys, func(i, j int) bool { return b.keys[i] < b.keys[j] })
	var eqs []eq
	for _, r := range b.keys {
		// The parity relaxation is meaningless below 2.
		if r < 2 {
			continue
		}
		uppers, ok := b.ub[r]
		if !ok {
			continue
		}
		for _, l := range b.lb[r] {
			for _, u := range uppers {
				if l.term == u.term || m.ProveEq(l.term, u.term) {
					eqs = append(eqs, eq{term: l.term, val: r, lo: l.idx, hi: u.idx})
					break
				}
			}
		}
	}
	return eqs
}

// substAlias rewrites a literal comparing some term against the
// numeral r into the same comparison against the bounded term x, where
// syntactically recognizable.
func (g *Arith) substAlias(r int64, x, e form.F) (form.F, bool) {
	m := g.M
	if e1, ok := m.IsNot(e); ok {
		if res, ok := g.substAlias(r, x, e1); ok {
			return m.Not(res), true
		}
	}
	if y, z, ok := m.IsLe(e); ok {
		if r2, ok := m.NumVal(z); ok && r2 == r {
			return m.Le(y, x), true
		}
	}
	if y, z, ok := m.IsGe(e); ok {
		if r2, ok := m.NumVal(z); ok && r2 == r {
			return m.Ge(y, x), true
		}
	}
	return form.FNull, false
}
