// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package form provides hash-consed theory formulas.
//
// A manager M owns an arena of immutable nodes.  Nodes are interned by
// structural hash, so structural equality of formulas coincides with
// equality of their handles (type F).  Handles are never freed
// individually; the arena is released as a whole when the manager is
// garbage.
package form

import "fmt"

// Sort is the sort of a term: Boolean or integer.
type Sort uint8

const (
	SBool Sort = iota
	SInt
)

func (s Sort) String() string {
	if s == SInt {
		return "Int"
	}
	return "Bool"
}

// F is an opaque handle to an interned formula node.  The zero value
// FNull refers to no formula.
type F uint32

// FNull is the null formula handle.
const FNull F = 0

// Pr is an opaque handle to an interned predicate declaration.
type Pr uint32

// PrNull is the null declaration handle.
const PrNull Pr = 0

// Kind discriminates formula nodes.
type Kind uint8

const (
	KNull Kind = iota
	KTrue
	KFalse
	KSym    // named constant
	KBound  // de Bruijn bound variable
	KNum    // integer numeral
	KNot
	KAnd
	KOr
	KImplies
	KIff
	KEq
	KLe
	KGe
	KAdd
	KMul
	KNeg // unary minus
	KMod
	KApp    // predicate application
	KExists // quantifiers bind indices 0..n-1 of their body
	KForall
)

type node struct {
	kind Kind
	pay  int64 // numeral value, sym/decl/qsorts index, or bound index+sort
	args []F
	next uint32 // strash chain
}

type symInfo struct {
	name string
	sort Sort
}

type declInfo struct {
	name string
	sig  []Sort
}

// M is a formula manager: a growable arena of interned nodes with a
// chained strash table, plus symbol and declaration tables.
type M struct {
	nodes   []node
	strash  []uint32
	syms    []symInfo
	symIdx  map[string]F
	decls   []declInfo
	declIdx map[string]Pr
	qsorts  [][]Sort

	// True and False are the pre-interned constant formulas.
	True  F
	False F
}

// NewM creates a formula manager.
func NewM() *M {
	return NewMCap(256)
}

// NewMCap creates a formula manager with node capacity hint capHint.
func NewMCap(capHint int) *M {
	if capHint < 8 {
		capHint = 8
	}
	m := &M{
		nodes:   make([]node, 1, capHint),
		strash:  make([]uint32, capHint),
		symIdx:  make(map[string]F),
		declIdx: make(map[string]Pr),
	}
	m.True = m.mk(KTrue, 0, nil)
	m.False = m.mk(KFalse, 0, nil)
	return m
}

// Len returns the number of interned nodes.
func (m *M) Len() int { return len(m.nodes) }

func hashNode(kind Kind, pay int64, args []F) uint32 {
	h := uint32(2166136261)
	h = (h ^ uint32(kind)) * 16777619
	h = (h ^ uint32(pay)) * 16777619
	h = (h ^ uint32(pay>>32)) * 16777619
	for _, a := range args {
		h = (h ^ uint32(a)) * 16777619
	}
	return h
}

func eqArgs(a, b []F) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m *M) mk(kind Kind, pay int64, args []F) F {
	c := hashNode(kind, pay, args)
	i := c % uint32(cap(m.nodes))
	for si := m.strash[i]; si != 0; si = m.nodes[si].next {
		n := &m.nodes[si]
		if n.kind == kind && n.pay == pay && eqArgs(n.args, args) {
			return F(si)
		}
	}
	if len(m.nodes) == cap(m.nodes) {
		m.grow()
		i = c % uint32(cap(m.nodes))
	}
	id := uint32(len(m.nodes))
	var cargs []F
	if len(args) != 0 {
		cargs = make([]F, len(args))
		copy(cargs, args)
	}
	m.nodes = append(m.nodes, node{kind: kind, pay: pay, args: cargs, next: m.strash[i]})
	m.strash[i] = id
	return F(id)
}

func (m *M) grow() {
	newCap := cap(m.nodes) * 2
	nodes := make([]node, len(m.nodes), newCap)
	strash := make([]uint32, newCap)
	copy(nodes, m.nodes)
	ucap := uint32(newCap)
	for i := 1; i < len(nodes); i++ {
		n := &nodes[i]
		c := hashNode(n.kind, n.pay, n.args)
		j := c % ucap
		n.next = strash[j]
		strash[j] = uint32(i)
	}
	m.nodes = nodes
	m.strash = strash
}

// Sym returns the interned constant with the given name and sort.  It
// panics if name was interned before with a different sort.
func (m *M) Sym(name string, sort Sort) F {
	if f, ok := m.symIdx[name]; ok {
		if m.syms[m.nodes[f].pay].sort != sort {
			panic(fmt.Sprintf("form: sym %q redeclared with sort %s", name, sort))
		}
		return f
	}
	m.syms = append(m.syms, symInfo{name: name, sort: sort})
	f := m.mk(KSym, int64(len(m.syms)-1), nil)
	m.symIdx[name] = f
	return f
}

// SymName returns the name of a KSym formula.
func (m *M) SymName(f F) string { return m.syms[m.nodes[f].pay].name }

const boundSortShift = 8

// Bound returns the de Bruijn variable with the given index and sort.
func (m *M) Bound(idx int, sort Sort) F {
	return m.mk(KBound, int64(idx)<<boundSortShift|int64(sort), nil)
}

// BoundIdx returns the index of a KBound formula.
func (m *M) BoundIdx(f F) int { return int(m.nodes[f].pay >> boundSortShift) }

// Num returns the numeral v.
func (m *M) Num(v int64) F { return m.mk(KNum, v, nil) }

// NumVal reports the value of f if f is a numeral.
func (m *M) NumVal(f F) (int64, bool) {
	n := &m.nodes[f]
	if n.kind != KNum {
		return 0, false
	}
	return n.pay, true
}

// Decl returns the interned predicate declaration with the given name
// and argument sorts.  It panics if name was declared before with a
// different signature.
func (m *M) Decl(name string, sig ...Sort) Pr {
	if p, ok := m.declIdx[name]; ok {
		old := m.decls[p-1].sig
		if len(old) != len(sig) {
			panic(fmt.Sprintf("form: decl %q redeclared with arity %d", name, len(sig)))
		}
		for i := range sig {
			if old[i] != sig[i] {
				panic(fmt.Sprintf("form: decl %q redeclared with different signature", name))
			}
		}
		return p
	}
	csig := make([]Sort, len(sig))
	copy(csig, sig)
	m.decls = append(m.decls, declInfo{name: name, sig: csig})
	p := Pr(len(m.decls))
	m.declIdx[name] = p
	return p
}

// DeclName returns the name of declaration p.
func (m *M) DeclName(p Pr) string { return m.decls[p-1].name }

// DeclSig returns the argument sorts of declaration p.  The result
// must not be modified.
func (m *M) DeclSig(p Pr) []Sort { return m.decls[p-1].sig }

// App returns the application of p to args.
func (m *M) App(p Pr, args ...F) F {
	if len(args) != len(m.decls[p-1].sig) {
		panic(fmt.Sprintf("form: app of %q with %d args", m.DeclName(p), len(args)))
	}
	return m.mk(KApp, int64(p), args)
}

// AppDecl returns the declaration applied in a KApp formula.
func (m *M) AppDecl(f F) Pr { return Pr(m.nodes[f].pay) }

// Not returns the negation of a.
func (m *M) Not(a F) F {
	n := &m.nodes[a]
	switch n.kind {
	case KTrue:
		return m.False
	case KFalse:
		return m.True
	case KNot:
		return n.args[0]
	}
	return m.mk(KNot, 0, []F{a})
}

// And returns the conjunction of ms.  True conjuncts are dropped; a
// False conjunct absorbs.  And() is True.
func (m *M) And(ms ...F) F {
	args := make([]F, 0, len(ms))
	for _, f := range ms {
		switch m.nodes[f].kind {
		case KTrue:
		case KFalse:
			return m.False
		default:
			args = append(args, f)
		}
	}
	switch len(args) {
	case 0:
		return m.True
	case 1:
		return args[0]
	}
	return m.mk(KAnd, 0, args)
}

// Or returns the disjunction of ms.  False disjuncts are dropped; a
// True disjunct absorbs.  Or() is False.
func (m *M) Or(ms ...F) F {
	args := make([]F, 0, len(ms))
	for _, f := range ms {
		switch m.nodes[f].kind {
		case KFalse:
		case KTrue:
			return m.True
		default:
			args = append(args, f)
		}
	}
	switch len(args) {
	case 0:
		return m.False
	case 1:
		return args[0]
	}
	return m.mk(KOr, 0, args)
}

// Implies returns (a implies b).
func (m *M) Implies(a, b F) F {
	switch {
	case m.nodes[a].kind == KTrue:
		return b
	case m.nodes[a].kind == KFalse, m.nodes[b].kind == KTrue:
		return m.True
	case m.nodes[b].kind == KFalse:
		return m.Not(a)
	}
	return m.mk(KImplies, 0, []F{a, b})
}

// Iff returns (a iff b).
func (m *M) Iff(a, b F) F {
	switch {
	case a == b:
		return m.True
	case m.nodes[a].kind == KTrue:
		return b
	case m.nodes[b].kind == KTrue:
		return a
	case m.nodes[a].kind == KFalse:
		return m.Not(b)
	case m.nodes[b].kind == KFalse:
		return m.Not(a)
	}
	return m.mk(KIff, 0, []F{a, b})
}

// Eq returns the equation a = b.  Boolean equations are built as Iff.
func (m *M) Eq(a, b F) F {
	if a == b {
		return m.True
	}
	if m.SortOf(a) == SBool && m.SortOf(b) == SBool {
		return m.Iff(a, b)
	}
	if va, ok := m.NumVal(a); ok {
		if vb, ok := m.NumVal(b); ok {
			if va == vb {
				return m.True
			}
			return m.False
		}
	}
	return m.mk(KEq, 0, []F{a, b})
}

// Le returns a <= b.
func (m *M) Le(a, b F) F {
	if a == b {
		return m.True
	}
	if va, ok := m.NumVal(a); ok {
		if vb, ok := m.NumVal(b); ok {
			if va <= vb {
				return m.True
			}
			return m.False
		}
	}
	return m.mk(KLe, 0, []F{a, b})
}

// Ge returns a >= b.
func (m *M) Ge(a, b F) F {
	if a == b {
		return m.True
	}
	if va, ok := m.NumVal(a); ok {
		if vb, ok := m.NumVal(b); ok {
			if va >= vb {
				return m.True
			}
			return m.False
		}
	}
	return m.mk(KGe, 0, []F{a, b})
}

// Add returns the sum of ms.  Zero numerals are dropped and leading
// numerals folded.  Add() is 0.
func (m *M) Add(ms ...F) F {
	args := make([]F, 0, len(ms))
	var num int64
	for _, f := range ms {
		if v, ok := m.NumVal(f); ok {
			num += v
			continue
		}
		args = append(args, f)
	}
	if num != 0 || len(args) == 0 {
		args = append(args, m.Num(num))
	}
	if len(args) == 1 {
		return args[0]
	}
	return m.mk(KAdd, 0, args)
}

// Mul returns a * b, folding numerals and unit factors.
func (m *M) Mul(a, b F) F {
	va, oka := m.NumVal(a)
	vb, okb := m.NumVal(b)
	switch {
	case oka && okb:
		return m.Num(va * vb)
	case oka && va == 1:
		return b
	case oka && va == 0:
		return m.Num(0)
	case okb && vb == 1:
		return a
	case okb && vb == 0:
		return m.Num(0)
	}
	return m.mk(KMul, 0, []F{a, b})
}

// Neg returns -a.
func (m *M) Neg(a F) F {
	n := &m.nodes[a]
	switch n.kind {
	case KNum:
		return m.Num(-n.pay)
	case KNeg:
		return n.args[0]
	}
	return m.mk(KNeg, 0, []F{a})
}

// Mod returns a mod b.
func (m *M) Mod(a, b F) F {
	if va, ok := m.NumVal(a); ok {
		if vb, ok := m.NumVal(b); ok && vb > 0 {
			r := va % vb
			if r < 0 {
				r += vb
			}
			return m.Num(r)
		}
	}
	return m.mk(KMod, 0, []F{a, b})
}

func (m *M) qsortsIdx(sorts []Sort) int64 {
	for i, qs := range m.qsorts {
		if len(qs) != len(sorts) {
			continue
		}
		same := true
		for j := range qs {
			if qs[j] != sorts[j] {
				same = false
				break
			}
		}
		if same {
			return int64(i)
		}
	}
	cs := make([]Sort, len(sorts))
	copy(cs, sorts)
	m.qsorts = append(m.qsorts, cs)
	return int64(len(m.qsorts) - 1)
}

// Exists returns the existential closure of body over bound indices
// 0..len(sorts)-1.  With no sorts it returns body.
func (m *M) Exists(sorts []Sort, body F) F {
	if len(sorts) == 0 {
		return body
	}
	return m.mk(KExists, m.qsortsIdx(sorts), []F{body})
}

// Forall returns the universal closure of body over bound indices
// 0..len(sorts)-1.  With no sorts it returns body.
func (m *M) Forall(sorts []Sort, body F) F {
	if len(sorts) == 0 {
		return body
	}
	return m.mk(KForall, m.qsortsIdx(sorts), []F{body})
}

// QuantSorts returns the bound sorts of a quantifier.  The result must
// not be modified.
func (m *M) QuantSorts(f F) []Sort { return m.qsorts[m.nodes[f].pay] }

// Kind returns the kind of f.
func (m *M) Kind(f F) Kind { return m.nodes[f].kind }

// Args returns the arguments of f.  The result must not be modified.
func (m *M) Args(f F) []F { return m.nodes[f].args }

// Arg returns the i'th argument of f.
func (m *M) Arg(f F, i int) F { return m.nodes[f].args[i] }

// SortOf computes the sort of f.
func (m *M) SortOf(f F) Sort {
	n := &m.nodes[f]
	switch n.kind {
	case KNum, KAdd, KMul, KNeg, KMod:
		return SInt
	case KSym:
		return m.syms[n.pay].sort
	case KBound:
		return Sort(n.pay & ((1 << boundSortShift) - 1))
	}
	return SBool
}

// IsInt reports whether f has integer sort.
func (m *M) IsInt(f F) bool { return m.SortOf(f) == SInt }

// IsNot destructures a negation.
func (m *M) IsNot(f F) (F, bool) {
	n := &m.nodes[f]
	if n.kind != KNot {
		return FNull, false
	}
	return n.args[0], true
}

// IsLe destructures a <= b.
func (m *M) IsLe(f F) (a, b F, ok bool) {
	n := &m.nodes[f]
	if n.kind != KLe {
		return FNull, FNull, false
	}
	return n.args[0], n.args[1], true
}

// IsGe destructures a >= b.
func (m *M) IsGe(f F) (a, b F, ok bool) {
	n := &m.nodes[f]
	if n.kind != KGe {
		return FNull, FNull, false
	}
	return n.args[0], n.args[1], true
}
