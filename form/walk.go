// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package form

import (
	"fmt"
	"strings"
)

// rebuild reconstructs a node of the given shape through the public
// constructors so normalization is preserved.
func (m *M) rebuild(kind Kind, pay int64, args []F) F {
	switch kind {
	case KNot:
		return m.Not(args[0])
	case KAnd:
		return m.And(args...)
	case KOr:
		return m.Or(args...)
	case KImplies:
		return m.Implies(args[0], args[1])
	case KIff:
		return m.Iff(args[0], args[1])
	case KEq:
		return m.Eq(args[0], args[1])
	case KLe:
		return m.Le(args[0], args[1])
	case KGe:
		return m.Ge(args[0], args[1])
	case KAdd:
		return m.Add(args...)
	case KMul:
		return m.Mul(args[0], args[1])
	case KNeg:
		return m.Neg(args[0])
	case KMod:
		return m.Mod(args[0], args[1])
	case KApp:
		return m.App(Pr(pay), args...)
	case KExists:
		return m.Exists(m.qsorts[pay], args[0])
	case KForall:
		return m.Forall(m.qsorts[pay], args[0])
	}
	panic(fmt.Sprintf("form: rebuild of kind %d", kind))
}

// Subst replaces free bound variable i by sub[i] wherever sub[i] is
// not FNull.  Substituted terms are lifted when they cross binders.
func (m *M) Subst(f F, sub []F) F {
	if len(sub) == 0 {
		return f
	}
	return m.subst(f, sub, 0)
}

func (m *M) subst(f F, sub []F, depth int) F {
	n := &m.nodes[f]
	switch n.kind {
	case KTrue, KFalse, KSym, KNum:
		return f
	case KBound:
		idx := m.BoundIdx(f)
		if idx < depth {
			return f
		}
		j := idx - depth
		if j < len(sub) && sub[j] != FNull {
			return m.lift(sub[j], depth, 0)
		}
		return f
	case KExists, KForall:
		body := m.subst(n.args[0], sub, depth+len(m.qsorts[n.pay]))
		if body == n.args[0] {
			return f
		}
		return m.rebuild(n.kind, n.pay, []F{body})
	}
	var args []F
	for i, a := range n.args {
		b := m.subst(a, sub, depth)
		if args == nil && b != a {
			args = make([]F, len(n.args))
			copy(args, n.args[:i])
		}
		if args != nil {
			args[i] = b
		}
	}
	if args == nil {
		return f
	}
	return m.rebuild(n.kind, n.pay, args)
}

// lift raises the free bound variables of f by d.
func (m *M) lift(f F, d, depth int) F {
	if d == 0 {
		return f
	}
	n := &m.nodes[f]
	switch n.kind {
	case KTrue, KFalse, KSym, KNum:
		return f
	case KBound:
		idx := m.BoundIdx(f)
		if idx < depth {
			return f
		}
		return m.Bound(idx+d, m.SortOf(f))
	case KExists, KForall:
		body := m.lift(n.args[0], d, depth+len(m.qsorts[n.pay]))
		if body == n.args[0] {
			return f
		}
		return m.rebuild(n.kind, n.pay, []F{body})
	}
	var args []F
	for i, a := range n.args {
		b := m.lift(a, d, depth)
		if args == nil && b != a {
			args = make([]F, len(n.args))
			copy(args, n.args[:i])
		}
		if args != nil {
			args[i] = b
		}
	}
	if args == nil {
		return f
	}
	return m.rebuild(n.kind, n.pay, args)
}

// Abstract replaces each occurrence of reps[i] in f by bound variable
// i, adjusting indices under binders.
func (m *M) Abstract(f F, reps []F) F {
	if len(reps) == 0 {
		return f
	}
	return m.abstract(f, reps, 0)
}

func (m *M) abstract(f F, reps []F, depth int) F {
	for i, r := range reps {
		if f == r {
			return m.Bound(i+depth, m.SortOf(f))
		}
	}
	n := &m.nodes[f]
	switch n.kind {
	case KTrue, KFalse, KSym, KNum, KBound:
		return f
	case KExists, KForall:
		body := m.abstract(n.args[0], reps, depth+len(m.qsorts[n.pay]))
		if body == n.args[0] {
			return f
		}
		return m.rebuild(n.kind, n.pay, []F{body})
	}
	var args []F
	for i, a := range n.args {
		b := m.abstract(a, reps, depth)
		if args == nil && b != a {
			args = make([]F, len(n.args))
			copy(args, n.args[:i])
		}
		if args != nil {
			args[i] = b
		}
	}
	if args == nil {
		return f
	}
	return m.rebuild(n.kind, n.pay, args)
}

// FreeBound returns the sorts of the free bound variables of f,
// indexed by de Bruijn index.  Indices that do not occur default to
// SBool.  The result is empty when f is closed.
func (m *M) FreeBound(f F) []Sort {
	seen := map[int]Sort{}
	m.freeBound(f, 0, seen)
	if len(seen) == 0 {
		return nil
	}
	max := -1
	for i := range seen {
		if i > max {
			max = i
		}
	}
	sorts := make([]Sort, max+1)
	for i := range sorts {
		sorts[i] = SBool
	}
	for i, s := range seen {
		sorts[i] = s
	}
	return sorts
}

func (m *M) freeBound(f F, depth int, seen map[int]Sort) {
	n := &m.nodes[f]
	switch n.kind {
	case KTrue, KFalse, KSym, KNum:
		return
	case KBound:
		idx := m.BoundIdx(f)
		if idx >= depth {
			seen[idx-depth] = m.SortOf(f)
		}
		return
	case KExists, KForall:
		m.freeBound(n.args[0], depth+len(m.qsorts[n.pay]), seen)
		return
	}
	for _, a := range n.args {
		m.freeBound(a, depth, seen)
	}
}

// CloseExists binds the free bound variables of f existentially.  A
// closed f is returned unchanged.
func (m *M) CloseExists(f F) F {
	return m.Exists(m.FreeBound(f), f)
}

// Conjuncts appends the conjuncts of f to dst, flattening nested
// conjunctions and negated disjunctions.  True is dropped.
func (m *M) Conjuncts(f F, dst []F) []F {
	n := &m.nodes[f]
	switch n.kind {
	case KTrue:
		return dst
	case KAnd:
		for _, a := range n.args {
			dst = m.Conjuncts(a, dst)
		}
		return dst
	case KNot:
		if m.nodes[n.args[0]].kind == KOr {
			for _, a := range m.nodes[n.args[0]].args {
				dst = m.Conjuncts(m.Not(a), dst)
			}
			return dst
		}
	}
	return append(dst, f)
}

// Disjuncts appends the top-level disjuncts of f to dst, flattening
// nested disjunctions.  False is dropped; a non-disjunction is its own
// single disjunct.
func (m *M) Disjuncts(f F, dst []F) []F {
	n := &m.nodes[f]
	switch n.kind {
	case KFalse:
		return dst
	case KOr:
		for _, a := range n.args {
			dst = m.Disjuncts(a, dst)
		}
		return dst
	}
	return append(dst, f)
}

// String renders f as an s-expression, for logs and tests.
func (m *M) String(f F) string {
	var b strings.Builder
	m.str(f, &b)
	return b.String()
}

var kindNames = map[Kind]string{
	KNot: "not", KAnd: "and", KOr: "or", KImplies: "=>", KIff: "iff",
	KEq: "=", KLe: "<=", KGe: ">=", KAdd: "+", KMul: "*", KNeg: "-",
	KMod: "mod", KExists: "exists", KForall: "forall",
}

func (m *M) str(f F, b *strings.Builder) {
	if f == FNull {
		b.WriteString("<null>")
		return
	}
	n := &m.nodes[f]
	switch n.kind {
	case KTrue:
		b.WriteString("true")
	case KFalse:
		b.WriteString("false")
	case KSym:
		b.WriteString(m.syms[n.pay].name)
	case KNum:
		fmt.Fprintf(b, "%d", n.pay)
	case KBound:
		fmt.Fprintf(b, "%%%d", m.BoundIdx(f))
	case KApp:
		b.WriteByte('(')
		b.WriteString(m.DeclName(Pr(n.pay)))
		for _, a := range n.args {
			b.WriteByte(' ')
			m.str(a, b)
		}
		b.WriteByte(')')
	case KExists, KForall:
		fmt.Fprintf(b, "(%s %d ", kindNames[n.kind], len(m.qsorts[n.pay]))
		m.str(n.args[0], b)
		b.WriteByte(')')
	default:
		b.WriteByte('(')
		b.WriteString(kindNames[n.kind])
		for _, a := range n.args {
			b.WriteByte(' ')
			m.str(a, b)
		}
		b.WriteByte(')')
	}
}
