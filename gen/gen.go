// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen implements the cube generalization engine of the
// verifier: the transformations applied to a freshly derived unsat
// core to make it smaller, more general and, when possible,
// level-independent.
//
// Each generalizer obeys a universal no-op contract: when it cannot
// improve a cube it leaves the cube and its usesLevel flag untouched.
// Failure never surfaces as an error; internal inconsistencies (a
// "minimized" cube that grew, the unreachable single-core entry of
// Multi) panic.
package gen

import (
	"github.com/go-air/horn"
	"github.com/go-air/horn/form"
	"github.com/go-air/horn/smt"
)

// Generalizer shrinks or rewrites a cube in place.  usesLevel may only
// move from false to true.
type Generalizer interface {
	Apply(n *horn.Node, core *horn.Cube, usesLevel *bool)
}

// Learner is the Farkas lemma-guess oracle consumed by Farkas: given
// an antecedent a and a consequent disjunct b, it may produce lemmas
// implied by a whose conjunction is inconsistent with b.
type Learner interface {
	GetLemmaGuesses(a, b form.F) ([]form.F, bool)
}

// Checker is a call-scoped satisfiability check, consumed by
// Induction.  *smt.Check implements it.
type Checker interface {
	Assert(form.F)
	Check() smt.Result
	Release()
}

// Stats holds counters exposed for presentation layers.
type Stats struct {
	BoolCubes       int // cubes Bool shrank
	BoolDropped     int // literals Bool dropped
	MultiCores      int // extra cores emitted by Multi
	FarkasLemmas    int // lemmas spliced in by Farkas
	ArithEqs        int // bound pairs Arith found
	ArithCommits    int // relaxations Arith committed
	InductionGoals  int // induction goals discharged to the kernel
	InductionProofs int // goals proved, cubes replaced
}
