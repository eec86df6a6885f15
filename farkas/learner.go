// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package farkas guesses interpolating lemmas between an unreachable
// state description and a disjunct of a blocked cube.
//
// The learner works on the unit-coefficient bound fragment: it indexes
// the bounds asserted by the conjuncts of A, picks out the A conjuncts
// whose bounds directly contradict a bound in B, and keeps the guess
// only when the selected conjuncts alone refute B.  The verified
// lemmas over-approximate A while excluding B, which is what the
// disjunct-weakening generalizer needs.
package farkas

import (
	"github.com/sirupsen/logrus"

	"github.com/go-air/horn/form"
	"github.com/go-air/horn/internal/logx"
	"github.com/go-air/horn/smt"
)

// Learner produces lemma guesses for disjunct weakening.
type Learner struct {
	M *form.M

	// Smt parameterizes the verification check.
	Smt smt.Config

	Log logrus.FieldLogger

	// Lemmas counts verified lemmas produced over the learner's
	// lifetime.
	Lemmas int
}

// rec is one bound extracted from a conjunct: term (by linear key)
// compared against val from below or above.
type rec struct {
	key   string
	val   int64
	lower bool
	src   form.F
}

// GetLemmaGuesses returns a verified subset of a's conjuncts that
// refutes b, or (nil, false) when no such subset is found.
func (l *Learner) GetLemmaGuesses(a, b form.F) ([]form.F, bool) {
	m := l.M
	arecs := l.recs(m.Conjuncts(a, nil))
	if len(arecs) == 0 {
		return nil, false
	}
	// Strongest a-bound per key and direction.
	alo := map[string]rec{}
	ahi := map[string]rec{}
	for _, r := range arecs {
		if r.lower {
			if cur, ok := alo[r.key]; !ok || r.val > cur.val {
				alo[r.key] = r
			}
		} else {
			if cur, ok := ahi[r.key]; !ok || r.val < cur.val {
				ahi[r.key] = r
			}
		}
	}
	var lemmas []form.F
	seen := map[form.F]bool{}
	add := func(f form.F) {
		if !seen[f] {
			seen[f] = true
			lemmas = append(lemmas, f)
		}
	}
	for _, r := range l.recs(m.Conjuncts(b, nil)) {
		if r.lower {
			if ar, ok := ahi[r.key]; ok && ar.val < r.val {
				add(ar.src)
			}
		} else {
			if ar, ok := alo[r.key]; ok && ar.val > r.val {
				add(ar.src)
			}
		}
	}
	if len(lemmas) == 0 {
		return nil, false
	}
	chk := smt.New(m, l.Smt)
	defer chk.Release()
	for _, f := range lemmas {
		chk.Assert(f)
	}
	chk.Assert(b)
	if chk.Check() != smt.Unsat {
		logx.Or(l.Log).WithField("guesses", len(lemmas)).Debug("farkas: guess not verified")
		return nil, false
	}
	l.Lemmas += len(lemmas)
	logx.Or(l.Log).WithField("lemmas", len(lemmas)).Debug("farkas: lemmas verified")
	return lemmas, true
}

// recs interprets each conjunct as bounds on a linearized difference
// term.  Conjuncts outside the fragment are skipped.
func (l *Learner) recs(fs []form.F) []rec {
	var out []rec
	for _, f := range fs {
		out = append(out, l.boundsOf(f, true)...)
	}
	return out
}

func (l *Learner) boundsOf(f form.F, val bool) []rec {
	m := l.M
	if e, ok := m.IsNot(f); ok {
		return l.boundsOf(e, !val)
	}
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
	switch kind {
	case form.KLe:
		if val {
			return []rec{{key, bound, false, f}}
		}
		return []rec{{key, bound + 1, true, f}}
	case form.KGe:
		if val {
			return []rec{{key, bound, true, f}}
		}
		return []rec{{key, bound - 1, false, f}}
	default: // KEq
		if !val {
			return nil
		}
		return []rec{{key, bound, false, f}, {key, bound, true, f}}
	}
}
