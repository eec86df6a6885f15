// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package horn holds the shared vocabulary of a property directed
// reachability engine over recursive Horn-clause relations: cubes,
// rules, predicate-relation state and counterexample tree nodes.
//
// The search loop and frame bookkeeping live with the embedding
// verifier; this module supplies the vocabulary and the cube
// generalization engine (package gen).
package horn

import "github.com/go-air/horn/form"

// Cube is an ordered sequence of literals interpreted as a
// conjunction.  The negation of a cube is a candidate invariant
// clause.  Order matters only for index bookkeeping, not semantics.
type Cube []form.F

// Clone returns a copy of c.
func (c Cube) Clone() Cube {
	d := make(Cube, len(c))
	copy(d, c)
	return d
}

// Contains reports whether c contains the literal f.  Literals are
// hash-consed, so handle equality is structural equality.
func (c Cube) Contains(f form.F) bool {
	for _, g := range c {
		if g == f {
			return true
		}
	}
	return false
}

// Rule is one Horn clause defining a relation:
//
//	Head <- Prems[0], ..., Prems[k-1], Body[0], ..., Body[n-1]
//
// Head is an application of the defined predicate; Prems are the
// uninterpreted premises (recursive calls); Body holds the interpreted
// constraints.  Rule variables are de Bruijn bound variables, free in
// Head, Prems and Body.
type Rule struct {
	Head  form.F
	Prems []form.F
	Body  []form.F
}

// Pred is the accumulated state of one predicate relation: its
// defining rules, its signature, its per-level over-approximations,
// and the relative-inductiveness oracle.  It is implemented by the
// embedding verifier's frame layer.
type Pred interface {
	// Head returns the relation's declaration.
	Head() form.Pr

	// Sig returns the sort of the i'th argument.
	Sig(i int) form.Sort

	// Arity returns the number of arguments.
	Arity() int

	// Rules returns the rules defining the relation.
	Rules() []*Rule

	// Formulas returns the relation's invariant formula at the
	// given level; with lower set, levels below contribute too.
	Formulas(level int, lower bool) form.F

	// PropagationFormula returns an over-approximation of the
	// relation one level below, over all relations of the system.
	PropagationFormula(all []Pred, level int) form.F

	// CheckInductive reports whether the negation of cube is
	// inductive relative to the invariant at the given level.  It
	// may set *usesLevel when the answer is only valid relative to
	// the level.
	CheckInductive(level int, cube Cube, usesLevel *bool) bool
}

// Node is a node of the counterexample search tree.
type Node struct {
	pt     Pred
	level  int
	parent *Node
}

// NewNode creates a node for the given relation and level.  parent may
// be nil for a root node.
func NewNode(pt Pred, level int, parent *Node) *Node {
	return &Node{pt: pt, level: level, parent: parent}
}

// PT returns the node's predicate relation.
func (n *Node) PT() Pred { return n.pt }

// Level returns the node's frame level.
func (n *Node) Level() int { return n.level }

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// System is an ordered registry of the predicate relations of one
// Horn-clause problem.
type System struct {
	preds []Pred
	byPr  map[form.Pr]Pred
}

// NewSystem creates an empty system.
func NewSystem() *System {
	return &System{byPr: make(map[form.Pr]Pred)}
}

// Add registers pt.  Registering two relations with the same
// declaration is a programmer error.
func (s *System) Add(pt Pred) {
	if _, ok := s.byPr[pt.Head()]; ok {
		panic("horn: duplicate relation in system")
	}
	s.preds = append(s.preds, pt)
	s.byPr[pt.Head()] = pt
}

// Find returns the relation declared as p, or nil.
func (s *System) Find(p form.Pr) Pred { return s.byPr[p] }

// All returns the relations in registration order.  The result must
// not be modified.
func (s *System) All() []Pred { return s.preds }
