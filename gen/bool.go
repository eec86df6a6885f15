// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"github.com/sirupsen/logrus"

	"github.com/go-air/horn"
	"github.com/go-air/horn/form"
	"github.com/go-air/horn/internal/logx"
)

// Bool is the main propositional induction generalizer: it drops
// literals one by one from the cube, keeping each drop that leaves the
// remainder relatively inductive.
type Bool struct {
	M *form.M

	// FailureLimit bounds the number of consecutive failed drops
	// before giving up.  0 means unlimited.
	FailureLimit int

	Log   logrus.FieldLogger
	Stats *Stats
}

var _ Generalizer = (*Bool)(nil)

// Apply minimizes core.  Literals are tried in discovery order; a
// literal confirmed necessary is never retried within the call.
func (g *Bool) Apply(n *horn.Node, core *horn.Cube, usesLevel *bool) {
	if len(*core) <= 1 {
		return
	}
	c := *core
	oldSize := len(c)
	processed := make(map[form.F]bool, len(c))
	failures, i := 0, 0
	for i < len(c) && 1 < len(c) && (g.FailureLimit == 0 || failures <= g.FailureLimit) {
		lit := c[i]
		c[i] = g.M.True
		if n.PT().CheckInductive(n.Level(), c, usesLevel) {
			c = append(c[:i], c[i+1:]...)
			failures = 0
			for i = 0; i < len(c) && processed[c[i]]; i++ {
			}
		} else {
			c[i] = lit
			processed[lit] = true
			failures++
			i++
		}
	}
	if len(c) > oldSize {
		panic("gen: minimized cube grew")
	}
	if len(c) < oldSize {
		logx.Or(g.Log).WithFields(logrus.Fields{
			"old": oldSize,
			"new": len(c),
		}).Debug("bool: cube minimized")
		if g.Stats != nil {
			g.Stats.BoolCubes++
			g.Stats.BoolDropped += oldSize - len(c)
		}
	}
	*core = c
}
