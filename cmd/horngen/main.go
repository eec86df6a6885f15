// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command horngen runs the cube generalization pipeline on a small
// built-in Horn system and prints what each generalizer did.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-air/horn"
	"github.com/go-air/horn/farkas"
	"github.com/go-air/horn/form"
	"github.com/go-air/horn/gen"
)

func main() {
	root := &cobra.Command{
		Use:   "horngen",
		Short: "horn cube generalization demo driver",

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.AddCommand(demoCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func demoCmd() *cobra.Command {
	var depth, failureLimit int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "generalize a cube over a counting relation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if depth < 0 {
				return errors.Errorf("demo: depth %d is negative", depth)
			}
			if failureLimit < 0 {
				return errors.Errorf("demo: failure limit %d is negative", failureLimit)
			}
			return runDemo(depth, failureLimit)
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 2, "induction lookback depth")
	cmd.Flags().IntVar(&failureLimit, "failure-limit", 0, "consecutive failed drops before giving up (0 = unlimited)")
	return cmd
}

// runDemo builds the relation count with rules
//
//	count(x) <- x = 0
//	count(x) <- count(y), x = y + 2
//
// and drives the generalizers over a blocked cube on count's argument,
// with a scripted inductiveness oracle accepting any cube that retains
// the upper bound.
func runDemo(depth, failureLimit int) error {
	m := form.NewM()
	x := m.Sym("x", form.SInt)
	count := m.Decl("count", form.SInt)

	base := &horn.Rule{
		Head: m.App(count, m.Bound(0, form.SInt)),
		Body: []form.F{m.Eq(m.Bound(0, form.SInt), m.Num(0))},
	}
	step := &horn.Rule{
		Head:  m.App(count, m.Bound(0, form.SInt)),
		Prems: []form.F{m.App(count, m.Bound(1, form.SInt))},
		Body:  []form.F{m.Eq(m.Bound(0, form.SInt), m.Add(m.Bound(1, form.SInt), m.Num(2)))},
	}

	upper := m.Le(x, m.Num(10))
	pt := &horn.StaticPred{
		M:    m,
		Decl: count,
		Rs:   []*horn.Rule{base, step},
		Prop: map[int]form.F{3: m.Ge(x, m.Num(20))},
		Inductive: func(level int, cube horn.Cube, usesLevel *bool) bool {
			return cube.Contains(upper)
		},
	}
	sys := horn.NewSystem()
	sys.Add(pt)

	stats := &gen.Stats{}
	lg := log.StandardLogger()
	node := horn.NewNode(pt, 3, horn.NewNode(pt, 4, nil))
	cube := horn.Cube{m.Ge(x, m.Num(10)), upper, m.Le(m.Sym("y", form.SInt), m.Num(20))}
	usesLevel := false
	report(m, "blocked cube", cube)

	arith := &gen.Arith{M: m, Log: lg, Stats: stats}
	arith.Apply(node, &cube, &usesLevel)
	report(m, "after arith", cube)

	multi := &gen.Multi{
		B:     gen.Bool{M: m, FailureLimit: failureLimit, Log: lg, Stats: stats},
		Log:   lg,
		Stats: stats,
	}
	results := multi.ApplyMulti(node, cube, usesLevel)
	for i, r := range results {
		report(m, fmt.Sprintf("core %d", i), r.Cube)
	}
	cube, usesLevel = results[0].Cube, results[0].UsesLevel

	fk := &gen.Farkas{
		M:     m,
		Sys:   sys,
		L:     &farkas.Learner{M: m, Log: lg},
		Log:   lg,
		Stats: stats,
	}
	fk.Apply(node, &cube, &usesLevel)
	report(m, "after farkas", cube)

	ind := &gen.Induction{M: m, Sys: sys, Depth: depth, Log: lg, Stats: stats}
	ind.Apply(node, &cube, &usesLevel)
	report(m, "after induction", cube)

	log.WithFields(log.Fields{
		"bool.cubes":       stats.BoolCubes,
		"bool.dropped":     stats.BoolDropped,
		"multi.cores":      stats.MultiCores,
		"farkas.lemmas":    stats.FarkasLemmas,
		"arith.eqs":        stats.ArithEqs,
		"arith.commits":    stats.ArithCommits,
		"induction.goals":  stats.InductionGoals,
		"induction.proofs": stats.InductionProofs,
		"usesLevel":        usesLevel,
	}).Info("done")
	return nil
}

func report(m *form.M, stage string, c horn.Cube) {
	lits := make([]string, len(c))
	for i, f := range c {
		lits[i] = m.String(f)
	}
	log.WithField("cube", lits).Info(stage)
}
