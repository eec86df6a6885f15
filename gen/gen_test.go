// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"sort"
	"strings"

	"github.com/go-air/horn"
	"github.com/go-air/horn/form"
)

// scripted builds an inductiveness oracle accepting exactly the cubes
// whose canonical keys appear in accepted.  True placeholders left by
// in-place literal masking are ignored.
func scripted(m *form.M, accepted ...string) func(int, horn.Cube, *bool) bool {
	ok := make(map[string]bool, len(accepted))
	for _, k := range accepted {
		ok[k] = true
	}
	return func(level int, cube horn.Cube, usesLevel *bool) bool {
		return ok[cubeKey(m, cube)]
	}
}

// cubeKey renders a cube as its sorted non-True literals.
func cubeKey(m *form.M, c horn.Cube) string {
	var lits []string
	for _, f := range c {
		if f == m.True {
			continue
		}
		lits = append(lits, m.String(f))
	}
	sort.Strings(lits)
	return strings.Join(lits, " ")
}

// testNode builds a relation with the given oracle and a node for it
// at the given level.
func testNode(m *form.M, level int, oracle func(int, horn.Cube, *bool) bool) *horn.Node {
	pt := &horn.StaticPred{
		M:         m,
		Decl:      m.Decl("p", form.SInt),
		Inductive: oracle,
	}
	return horn.NewNode(pt, level, nil)
}
