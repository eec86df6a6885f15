// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package smt embeds a boolean satisfiability kernel (gini) behind a
// formula-level check.
//
// A Check encodes the boolean skeleton of its asserted formulas into a
// gini circuit, treating theory atoms as opaque inputs.  On a boolean
// model it refines with integer bound propagation over the linearized
// atoms, blocking theory-inconsistent assignments and re-solving.
// Boolean unsatisfiability is conclusive.  Propagation is per term and
// does not chain across terms, so satisfiability is reported only when
// every satisfied atom is a unit bound on a single symbol; anything
// else is Unknown.  Callers treat Sat and Unknown identically.
//
// Checks are call-scoped: created, queried and released within one
// call of the enclosing operation, never stored or reused.
package smt

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/sirupsen/logrus"

	"github.com/go-air/horn/form"
	"github.com/go-air/horn/internal/logx"
)

// Result is the outcome of a satisfiability check, with gini's value
// conventions.
type Result int8

const (
	Unknown Result = 0
	Sat     Result = 1
	Unsat   Result = -1
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	}
	return "unknown"
}

// Config parameterizes a Check.
type Config struct {
	// Rounds bounds the theory refinement loop.  0 means the
	// default of 32.
	Rounds int

	// Logger receives debug traces.  nil discards.
	Logger logrus.FieldLogger
}

const defaultRounds = 32

func (cfg Config) rounds() int {
	if cfg.Rounds <= 0 {
		return defaultRounds
	}
	return cfg.Rounds
}

func (cfg Config) logger() logrus.FieldLogger {
	return logx.Or(cfg.Logger)
}

// Check is a call-scoped satisfiability check.
type Check struct {
	m   *form.M
	cfg Config
	c   *logic.C
	g   *gini.Gini

	enc   map[form.F]z.Lit // encoding memo
	atoms []form.F         // opaque inputs, in creation order
	alits map[form.F]z.Lit
	roots []z.Lit
}

// New creates a Check over formulas of m.
func New(m *form.M, cfg Config) *Check {
	return &Check{
		m:     m,
		cfg:   cfg,
		c:     logic.NewC(),
		g:     gini.New(),
		enc:   make(map[form.F]z.Lit),
		alits: make(map[form.F]z.Lit),
	}
}

// Assert adds f to the conjunction to be checked.
func (k *Check) Assert(f form.F) {
	k.mustLive()
	k.roots = append(k.roots, k.encode(f))
}

// Release ends the check's scope.  Any use after Release is a
// programmer error.
func (k *Check) Release() {
	k.c = nil
	k.g = nil
	k.enc = nil
	k.alits = nil
}

func (k *Check) mustLive() {
	if k.g == nil {
		panic("smt: use of released check")
	}
}

func (k *Check) encode(f form.F) z.Lit {
	if l, ok := k.enc[f]; ok {
		return l
	}
	m := k.m
	var l z.Lit
	switch m.Kind(f) {
	case form.KTrue:
		l = k.c.T
	case form.KFalse:
		l = k.c.F
	case form.KNot:
		l = k.encode(m.Arg(f, 0)).Not()
	case form.KAnd:
		ms := make([]z.Lit, len(m.Args(f)))
		for i, a := range m.Args(f) {
			ms[i] = k.encode(a)
		}
		l = k.c.Ands(ms...)
	case form.KOr:
		ms := make([]z.Lit, len(m.Args(f)))
		for i, a := range m.Args(f) {
			ms[i] = k.encode(a)
		}
		l = k.c.Ors(ms...)
	case form.KImplies:
		l = k.c.Implies(k.encode(m.Arg(f, 0)), k.encode(m.Arg(f, 1)))
	case form.KIff:
		l = k.c.Xor(k.encode(m.Arg(f, 0)), k.encode(m.Arg(f, 1))).Not()
	default:
		if m.SortOf(f) != form.SBool {
			panic("smt: encoding a non-boolean term")
		}
		l = k.c.Lit()
		k.atoms = append(k.atoms, f)
		k.alits[f] = l
	}
	k.enc[f] = l
	return l
}

// Check decides the asserted conjunction.
func (k *Check) Check() Result {
	k.mustLive()
	log := k.cfg.logger()
	root := k.c.Ands(k.roots...)
	k.c.ToCnfFrom(k.g, root)
	// The circuit's constant-true var gets no defining clauses.
	k.g.Add(k.c.T)
	k.g.Add(z.LitNull)
	for round := 0; round < k.cfg.rounds(); round++ {
		k.g.Assume(root)
		switch k.g.Solve() {
		case -1:
			log.WithField("rounds", round).Debug("smt: unsat")
			return Unsat
		case 0:
			return Unknown
		}
		exact, conflict := k.refine()
		if conflict {
			continue
		}
		if exact {
			log.WithField("rounds", round).Debug("smt: sat")
			return Sat
		}
		log.WithField("rounds", round).Debug("smt: model outside bound fragment")
		return Unknown
	}
	log.WithField("rounds", k.cfg.rounds()).Debug("smt: refinement rounds exhausted")
	return Unknown
}

// termBound is one bound on a linearized term derived from an atom's
// assignment.
type termBound struct {
	val   int64
	lit   z.Lit // the atom literal as assigned
	exact bool
}

type boundRec struct {
	key   string
	val   int64
	lower bool
	exact bool
}

// refine inspects the current boolean model.  It reports whether the
// model lies entirely in the bound fragment and whether a blocking
// clause was added.
func (k *Check) refine() (exact, conflict bool) {
	exact = true
	lo := map[string]termBound{}
	hi := map[string]termBound{}
	for _, f := range k.atoms {
		al := k.alits[f]
		val := k.g.Value(al)
		asLit := al
		if !val {
			asLit = al.Not()
		}
		recs := k.boundsOf(f, val)
		if recs == nil {
			// Pure boolean inputs are exact under either
			// polarity; anything else leaves the fragment.
			if k.m.Kind(f) != form.KSym {
				exact = false
			}
			continue
		}
		for _, r := range recs {
			b := termBound{val: r.val, lit: asLit, exact: r.exact}
			if r.lower {
				if cur, have := lo[r.key]; !have || b.val > cur.val {
					lo[r.key] = b
				}
			} else {
				if cur, have := hi[r.key]; !have || b.val < cur.val {
					hi[r.key] = b
				}
			}
			if !r.exact {
				exact = false
			}
		}
	}
	for key, l := range lo {
		h, ok := hi[key]
		if !ok || l.val <= h.val {
			continue
		}
		// Theory conflict: block this pair of assignments.
		k.g.Add(l.lit.Not())
		if h.lit != l.lit {
			k.g.Add(h.lit.Not())
		}
		k.g.Add(z.LitNull)
		return exact, true
	}
	return exact, false
}

// boundsOf interprets atom f under assignment val as bounds on a
// linearized term.  nil means f is outside the bound fragment.
func (k *Check) boundsOf(f form.F, val bool) []boundRec {
	m := k.m
	kind := m.Kind(f)
	switch kind {
	case form.KLe, form.KGe, form.KEq:
	default:
		return nil
	}
	x, y := m.Arg(f, 0), m.Arg(f, 1)
	if !m.IsInt(x) || !m.IsInt(y) {
		return nil
	}
	lx, okx := m.Linearize(x)
	ly, oky := m.Linearize(y)
	if !okx || !oky {
		return nil
	}
	// x - y compared against 0: bounds at (ly.Const - lx.Const).
	diff := form.Lin{Terms: map[form.F]int64{}}
	for t, c := range lx.Terms {
		diff.Terms[t] += c
	}
	for t, c := range ly.Terms {
		diff.Terms[t] -= c
	}
	for t, c := range diff.Terms {
		if c == 0 {
			delete(diff.Terms, t)
		}
	}
	key := diff.Key()
	bound := ly.Const - lx.Const
	// Bounds on sums or scaled terms interact across keys, which
	// per-key propagation cannot see.
	exact := len(diff.Terms) == 0
	if len(diff.Terms) == 1 {
		for t, c := range diff.Terms {
			exact = c == 1 && m.Kind(t) == form.KSym
		}
	}
	switch kind {
	case form.KLe:
		if val {
			return []boundRec{{key, bound, false, exact}}
		}
		return []boundRec{{key, bound + 1, true, exact}}
	case form.KGe:
		if val {
			return []boundRec{{key, bound, true, exact}}
		}
		return []boundRec{{key, bound - 1, false, exact}}
	default: // KEq
		if !val {
			// A disequation carries no single bound.
			return nil
		}
		return []boundRec{{key, bound, false, exact}, {key, bound, true, exact}}
	}
}
