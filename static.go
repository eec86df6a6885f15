// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package horn

import "github.com/go-air/horn/form"

// StaticPred is an in-memory Pred with fixed rules, per-level formula
// tables and an injectable inductiveness oracle.  Embedders use it to
// drive the generalizers outside a full frame layer; the tests and the
// horngen command use it with scripted oracles.
type StaticPred struct {
	M     *form.M
	Decl  form.Pr
	Rs    []*Rule
	Props map[int]form.F // invariant formula per level
	Prop  map[int]form.F // propagation formula per level

	// Inductive is consulted by CheckInductive.  A nil Inductive
	// rejects every cube.
	Inductive func(level int, cube Cube, usesLevel *bool) bool
}

var _ Pred = (*StaticPred)(nil)

func (p *StaticPred) Head() form.Pr { return p.Decl }

func (p *StaticPred) Sig(i int) form.Sort { return p.M.DeclSig(p.Decl)[i] }

func (p *StaticPred) Arity() int { return len(p.M.DeclSig(p.Decl)) }

func (p *StaticPred) Rules() []*Rule { return p.Rs }

func (p *StaticPred) Formulas(level int, lower bool) form.F {
	if f, ok := p.Props[level]; ok {
		return f
	}
	return p.M.True
}

func (p *StaticPred) PropagationFormula(all []Pred, level int) form.F {
	if f, ok := p.Prop[level]; ok {
		return f
	}
	return p.M.True
}

func (p *StaticPred) CheckInductive(level int, cube Cube, usesLevel *bool) bool {
	if p.Inductive == nil {
		return false
	}
	return p.Inductive(level, cube, usesLevel)
}
