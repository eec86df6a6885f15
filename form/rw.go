// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package form

import (
	"fmt"
	"sort"
	"strings"
)

// Lin is a linear normal form of an integer term: a sum of opaque
// atoms with integer coefficients plus a constant.
type Lin struct {
	Terms map[F]int64
	Const int64
}

// Linearize computes the linear normal form of an integer term over
// Add, Mul-by-numeral, Neg and numerals; every other subterm is an
// opaque atom.  ok is false when f is not an integer term.
func (m *M) Linearize(f F) (Lin, bool) {
	if !m.IsInt(f) {
		return Lin{}, false
	}
	l := Lin{Terms: map[F]int64{}}
	m.linearize(f, 1, &l)
	for t, c := range l.Terms {
		if c == 0 {
			delete(l.Terms, t)
		}
	}
	return l, true
}

func (m *M) linearize(f F, coef int64, l *Lin) {
	n := &m.nodes[f]
	switch n.kind {
	case KNum:
		l.Const += coef * n.pay
	case KAdd:
		for _, a := range n.args {
			m.linearize(a, coef, l)
		}
	case KNeg:
		m.linearize(n.args[0], -coef, l)
	case KMul:
		if v, ok := m.NumVal(n.args[0]); ok {
			m.linearize(n.args[1], coef*v, l)
			return
		}
		if v, ok := m.NumVal(n.args[1]); ok {
			m.linearize(n.args[0], coef*v, l)
			return
		}
		l.Terms[f] += coef
	default:
		l.Terms[f] += coef
	}
}

// Key returns a canonical string key for the atom part of l, ignoring
// the constant.  Two terms with equal keys differ by a constant.
func (l Lin) Key() string {
	if len(l.Terms) == 0 {
		return ""
	}
	fs := make([]F, 0, len(l.Terms))
	for t := range l.Terms {
		fs = append(fs, t)
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i] < fs[j] })
	var b strings.Builder
	for _, t := range fs {
		fmt.Fprintf(&b, "%d*%d;", l.Terms[t], t)
	}
	return b.String()
}

// ProveEq reports whether integer terms a and b are provably equal by
// linear normalization.  This is the rewriter equality check used when
// matching bound pairs: syntactically distinct terms such as x+1 and
// 1+x are recognized.
func (m *M) ProveEq(a, b F) bool {
	if a == b {
		return true
	}
	la, ok := m.Linearize(a)
	if !ok {
		return false
	}
	lb, ok := m.Linearize(b)
	if !ok {
		return false
	}
	if la.Const != lb.Const || len(la.Terms) != len(lb.Terms) {
		return false
	}
	for t, c := range la.Terms {
		if lb.Terms[t] != c {
			return false
		}
	}
	return true
}
