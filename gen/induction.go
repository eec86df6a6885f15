// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/go-air/horn"
	"github.com/go-air/horn/form"
	"github.com/go-air/horn/internal/logx"
	"github.com/go-air/horn/smt"
)

// Induction instantiates a bounded structural induction schema over a
// relation's own recursive rules.  When the induction goal is proved
// unsatisfiable, the whole cube is replaced by a single literal — the
// negated blocked-transition formula of the parent node — which no
// longer depends on the cube's own literals.
//
// The goal for relation P at level L with lookback depth d conjoins
//
//	not (blocked(L) implies property(L))
//	blocked(l) implies property(l)        for l in [L-d, L)
//	the transition axiom and current invariant of every
//	(relation, level) pair reached while instantiating rule
//	bodies, with discovery pruned once level+d < L.
type Induction struct {
	M   *form.M
	Sys *horn.System

	// Depth is the induction lookback.  0 means the default of 2.
	Depth int

	// Smt parameterizes the per-call satisfiability check.
	Smt smt.Config

	// NewCheck creates the call-scoped checker; nil means the
	// embedded smt kernel.
	NewCheck func(m *form.M, cfg smt.Config) Checker

	Log   logrus.FieldLogger
	Stats *Stats
}

var _ Generalizer = (*Induction)(nil)

const defaultDepth = 2

func (g *Induction) depth() int {
	if g.Depth <= 0 {
		return defaultDepth
	}
	return g.Depth
}

func (g *Induction) Apply(n *horn.Node, core *horn.Cube, usesLevel *bool) {
	p := n.Parent()
	if p == nil {
		return
	}
	d := g.depth()
	if p.Level() < d {
		return
	}
	goal := g.goal(p.PT(), p.Level(), d)
	if g.Stats != nil {
		g.Stats.InductionGoals++
	}
	newCheck := g.NewCheck
	if newCheck == nil {
		newCheck = func(m *form.M, cfg smt.Config) Checker { return smt.New(m, cfg) }
	}
	chk := newCheck(g.M, g.Smt)
	defer chk.Release()
	chk.Assert(goal)
	r := chk.Check()
	log := logx.Or(g.Log).WithFields(logrus.Fields{
		"pred":   g.M.DeclName(p.PT().Head()),
		"level":  p.Level(),
		"result": r,
	})
	if r != smt.Unsat {
		// Sat and unknown alike mean the induction failed.
		log.Debug("induction: goal not proved")
		return
	}
	log.Debug("induction: level-independent lemma derived")
	phi := g.blockedTransition(p.PT(), p.Level())
	*core = horn.Cube{g.M.Not(phi)}
	*usesLevel = true
	if g.Stats != nil {
		g.Stats.InductionProofs++
	}
}

// pred returns the freshly indexed copy P_level of a declaration.
func (g *Induction) pred(level int, p form.Pr) form.Pr {
	m := g.M
	return m.Decl(fmt.Sprintf("%s_%d", m.DeclName(p), level), m.DeclSig(p)...)
}

// reps returns the representative constants for the relation's
// arguments.
func (g *Induction) reps(pt horn.Pred) []form.F {
	m := g.M
	name := m.DeclName(pt.Head())
	rs := make([]form.F, pt.Arity())
	for i := range rs {
		rs[i] = m.Sym(fmt.Sprintf("%s!%d", name, i), pt.Sig(i))
	}
	return rs
}

// transitionRule instantiates one rule at the given level: the rule
// body with every recursive call replaced by the callee's indexed copy
// at level-1, head arguments equated with reps, and the remaining rule
// variables existentially bound.  At level 0 a rule with a recursive
// premise contributes false.
func (g *Induction) transitionRule(reps []form.F, level int, r *horn.Rule) form.F {
	m := g.M
	if level == 0 && len(r.Prems) > 0 {
		return m.False
	}
	var conj []form.F
	var sub []form.F
	for i, rep := range reps {
		arg := m.Arg(r.Head, i)
		if m.Kind(arg) == form.KBound {
			idx := m.BoundIdx(arg)
			for idx >= len(sub) {
				sub = append(sub, form.FNull)
			}
			if sub[idx] != form.FNull {
				conj = append(conj, m.Eq(sub[idx], rep))
			} else {
				sub[idx] = rep
			}
		} else {
			conj = append(conj, m.Eq(arg, rep))
		}
	}
	if level > 0 {
		for _, atom := range r.Prems {
			fn := g.pred(level-1, m.AppDecl(atom))
			conj = append(conj, m.App(fn, m.Args(atom)...))
		}
	}
	conj = append(conj, r.Body...)
	res := m.And(conj...)
	if len(sub) > 0 {
		res = m.Subst(res, sub)
	}
	return m.CloseExists(res)
}

// bindHead abstracts reps out of f and binds them universally.
func (g *Induction) bindHead(reps []form.F, f form.F) form.F {
	m := g.M
	res := m.Abstract(f, reps)
	sorts := make([]form.Sort, len(reps))
	for i, rep := range reps {
		sorts[i] = m.SortOf(rep)
	}
	return m.Forall(sorts, res)
}

// transitionAxiom equates the indexed predicate at the given level
// with the disjunction of its rule instantiations:
//
//	forall x . P_l(x) iff (exists y . F[P_{l-1}, x, y] or ...)
func (g *Induction) transitionAxiom(pt horn.Pred, level int) form.F {
	m := g.M
	reps := g.reps(pt)
	fml := m.False
	for i, r := range pt.Rules() {
		tr := g.transitionRule(reps, level, r)
		if i == 0 {
			fml = tr
		} else {
			fml = m.Or(fml, tr)
		}
	}
	fn := g.pred(level, pt.Head())
	return g.bindHead(reps, m.Iff(m.App(fn, reps...), fml))
}

// predicateProperty builds forall x . P_level(x) implies phi.
func (g *Induction) predicateProperty(level int, pt horn.Pred, phi form.F) form.F {
	m := g.M
	reps := g.reps(pt)
	fn := g.pred(level, pt.Head())
	return g.bindHead(reps, m.Implies(m.App(fn, reps...), phi))
}

// blockedTransition conjoins the negations of every rule
// instantiation of the relation at the given level.
func (g *Induction) blockedTransition(pt horn.Pred, level int) form.F {
	if level <= 0 {
		panic("gen: blocked transition below level 1")
	}
	m := g.M
	reps := g.reps(pt)
	fmls := make([]form.F, 0, len(pt.Rules()))
	for _, r := range pt.Rules() {
		fmls = append(fmls, m.Not(g.transitionRule(reps, level, r)))
	}
	return m.And(fmls...)
}

// goal assembles the induction goal for pt at the target level.
func (g *Induction) goal(pt horn.Pred, level, depth int) form.F {
	m := g.M
	var conjs []form.F
	var pts []horn.Pred
	var levels []int
	// Negated conclusion.
	phi := g.blockedTransition(pt, level)
	conjs = append(conjs, m.Not(g.predicateProperty(level, pt, phi)))
	pts = append(pts, pt)
	levels = append(levels, level)
	// Induction hypotheses.
	for lvl := level - depth; lvl < level; lvl++ {
		if lvl > 0 {
			psi := g.blockedTransition(pt, lvl)
			conjs = append(conjs, g.predicateProperty(lvl, pt, psi))
			pts = append(pts, pt)
			levels = append(levels, lvl)
		}
	}
	// Transition axioms, invariants, and discovered dependencies.
	for qhead := 0; qhead < len(pts); qhead++ {
		qt := pts[qhead]
		lvl := levels[qhead]
		conjs = append(conjs, g.transitionAxiom(qt, lvl))
		conjs = append(conjs, g.predicateProperty(lvl, qt, qt.Formulas(lvl, true)))
		// Prune discovery to keep the goal finite for
		// self-recursive relations.
		if lvl+depth < level || lvl == 0 {
			continue
		}
		for _, r := range qt.Rules() {
			for _, atom := range r.Prems {
				rt := g.Sys.Find(m.AppDecl(atom))
				if rt == nil {
					panic("gen: rule references unregistered relation")
				}
				found := false
				for k := range pts {
					if rt == pts[k] && levels[k]+1 == lvl {
						found = true
						break
					}
				}
				if !found {
					pts = append(pts, rt)
					levels = append(levels, lvl-1)
				}
			}
		}
	}
	return m.And(conjs...)
}
