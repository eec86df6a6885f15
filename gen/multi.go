// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"github.com/sirupsen/logrus"

	"github.com/go-air/horn"
	"github.com/go-air/horn/form"
	"github.com/go-air/horn/internal/logx"
)

// Multi derives several diverse minimal cores to give the frame layer
// strengthening options: it minimizes the full cube first, then
// re-minimizes candidates that each exclude one literal still retained
// by every accepted core.
type Multi struct {
	B Bool

	Log   logrus.FieldLogger
	Stats *Stats
}

var _ Generalizer = (*Multi)(nil)

// Result is one emitted (cube, usesLevel) pair.
type Result struct {
	Cube      horn.Cube
	UsesLevel bool
}

// Apply is the single-core entry point.  It is a deliberately
// unreachable programmer-error path: Multi produces several cores and
// must be invoked through ApplyMulti.
func (g *Multi) Apply(n *horn.Node, core *horn.Cube, usesLevel *bool) {
	panic("gen: Multi.Apply is unreachable; use ApplyMulti")
}

// ApplyMulti returns at least one result.  The first is always the
// plain minimization of core; additional results come from exclusion
// candidates that strictly shrank under re-minimization and are
// therefore oracle-verified.  Exclusion removes by swap-with-last and
// does not preserve literal order.
func (g *Multi) ApplyMulti(n *horn.Node, core horn.Cube, usesLevel bool) []Result {
	old := core.Clone()
	c0 := core.Clone()
	ul0 := usesLevel
	g.B.Apply(n, &c0, &ul0)
	out := []Result{{Cube: c0, UsesLevel: ul0}}
	recent := c0
	retained := make(map[form.F]bool, len(c0))
	for _, f := range c0 {
		retained[f] = true
	}
	for _, lit := range old {
		if !retained[lit] {
			continue
		}
		cand := recent.Clone()
		idx := -1
		for j, f := range cand {
			if f == lit {
				idx = j
				break
			}
		}
		if idx < 0 {
			panic("gen: retained literal missing from accepted core")
		}
		cand[idx] = cand[len(cand)-1]
		cand = cand[:len(cand)-1]
		pre := len(cand)
		ul := usesLevel
		g.B.Apply(n, &cand, &ul)
		if len(cand) > pre {
			panic("gen: minimized cube grew")
		}
		if len(cand) == pre {
			continue
		}
		out = append(out, Result{Cube: cand, UsesLevel: ul})
		in := make(map[form.F]bool, len(cand))
		for _, f := range cand {
			in[f] = true
		}
		for f := range retained {
			if !in[f] {
				delete(retained, f)
			}
		}
		recent = cand
		if g.Stats != nil {
			g.Stats.MultiCores++
		}
	}
	logx.Or(g.Log).WithFields(logrus.Fields{
		"in":    len(core),
		"cores": len(out),
	}).Debug("multi: cores derived")
	return out
}
