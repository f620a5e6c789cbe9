// Copyright (C) 2026 Souffle Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package lower

import (
	"fmt"

	"github.com/mmcgr/souffle/dlog"
	"github.com/mmcgr/souffle/ramast"
)

// deltaName and newName implement spec §4.4's deterministic naming:
// @delta(R) := "@delta_R", @new(R) := "@new_R".
func deltaName(rel string) string { return "@delta_" + rel }
func newName(rel string) string   { return "@new_" + rel }

// mergeInto emits the RAM shape for "To ← To ∪ From": a Query that
// scans every tuple of From and projects it into To. Since relations
// are sets, re-projecting an already-present tuple is a no-op, so
// this single Query/Project pair is the union. It also covers spec
// §4.6's propositional (arity-0) special case for free: a Scan over
// an empty From relation executes its nested Project zero times, so
// the merge is implicitly gated by ¬empty(From) without any extra
// conditional machinery.
func mergeInto(arity int, from, to string) ramast.Statement {
	args := make([]ramast.Expression, arity)
	for i := range args {
		args[i] = ramast.TupleElement{Level: 0, Pos: i}
	}
	return &ramast.Query{Op: &ramast.Project{
		Input: &ramast.Scan{Rel: from},
		Into:  to,
		Args:  args,
	}}
}

// lowerRecursiveSCC implements Component F for one recursive SCC:
// preamble, parallel fixpoint loop body, exit sequence, update
// sequence, and postamble, exactly per spec §4.6.
func (tr *translator) lowerRecursiveSCC(scc *dlog.SCC, prog *dlog.Program, opts Options) (ramast.Statement, error) {
	sccSet := make(map[string]bool, len(scc.Relations))
	for _, r := range scc.Relations {
		sccSet[r.Name] = true
	}

	preamble, err := tr.buildPreamble(scc, prog, sccSet)
	if err != nil {
		return nil, err
	}

	loopBody, err := tr.buildLoopBody(scc, prog, sccSet, opts)
	if err != nil {
		return nil, err
	}

	exits, err := buildExitStatements(scc)
	if err != nil {
		return nil, err
	}

	update := buildUpdateSequence(scc)

	loopStmts := []ramast.Statement{loopBody}
	loopStmts = append(loopStmts, exits...)
	loopStmts = append(loopStmts, update...)
	loop := &ramast.Loop{Body: &ramast.Sequence{Stmts: loopStmts}}

	var postamble []ramast.Statement
	for _, r := range scc.Relations {
		postamble = append(postamble, &ramast.Clear{Rel: deltaName(r.Name)}, &ramast.Clear{Rel: newName(r.Name)})
	}

	full := append([]ramast.Statement{}, preamble...)
	full = append(full, loop)
	full = append(full, postamble...)
	return &ramast.Sequence{Stmts: full}, nil
}

// buildPreamble computes each SCC relation's non-recursive clauses
// into the relation itself, then seeds @delta(R) ← R.
func (tr *translator) buildPreamble(scc *dlog.SCC, prog *dlog.Program, sccSet map[string]bool) ([]ramast.Statement, error) {
	var stmts []ramast.Statement
	for _, r := range scc.Relations {
		var nonRecursive []*dlog.Clause
		for _, c := range prog.Clauses[r.Name] {
			if !clauseDependsOnSCC(c, sccSet) {
				nonRecursive = append(nonRecursive, c)
			}
		}
		if len(nonRecursive) > 0 {
			s, err := tr.lowerNonRecursiveClauses(r.Name, nonRecursive)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
		}
		stmts = append(stmts, mergeInto(r.Arity(), r.Name, deltaName(r.Name)))
	}
	return stmts, nil
}

func clauseDependsOnSCC(c *dlog.Clause, sccSet map[string]bool) bool {
	for _, lit := range c.Body {
		if a, ok := lit.(*dlog.Atom); ok && sccSet[a.Relation] {
			return true
		}
	}
	return false
}

// buildLoopBody lowers every recursive clause version across every
// relation of the SCC and gathers them under a single Parallel
// (spec §8 prop 8).
func (tr *translator) buildLoopBody(scc *dlog.SCC, prog *dlog.Program, sccSet map[string]bool, opts Options) (ramast.Statement, error) {
	var versions []ramast.Statement
	for _, r := range scc.Relations {
		for _, c := range prog.Clauses[r.Name] {
			if !clauseDependsOnSCC(c, sccSet) {
				continue
			}
			drivers := driverIndices(c, sccSet)
			if c.Plan != nil {
				maxKey := -1
				for k := range c.Plan.Orders {
					if k > maxKey {
						maxKey = k
					}
				}
				if len(drivers) <= maxKey {
					panic(&InvariantViolation{What: fmt.Sprintf(
						"clause for %s emits %d versions but plan references version %d", r.Name, len(drivers), maxKey)})
				}
			}
			if opts.MaxVersionsPerClause > 0 && len(drivers) > opts.MaxVersionsPerClause {
				panic(&InvariantViolation{What: fmt.Sprintf(
					"clause for %s would emit %d versions, exceeding the configured maximum %d",
					r.Name, len(drivers), opts.MaxVersionsPerClause)})
			}
			for _, j := range drivers {
				v, err := tr.lowerClauseVersion(r.Name, c, j, sccSet)
				if err != nil {
					return nil, err
				}
				versions = append(versions, v)
			}
		}
	}
	return &ramast.Parallel{Stmts: versions}, nil
}

// driverIndices returns, in body order, every body-literal index
// whose atom belongs to the SCC — the candidate "versions" for a
// recursive clause (spec §4.6: "numbered by the position of the
// driver atom in body order, starting at 0").
func driverIndices(c *dlog.Clause, sccSet map[string]bool) []int {
	var idxs []int
	for i, lit := range c.Body {
		if a, ok := lit.(*dlog.Atom); ok && sccSet[a.Relation] {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// lowerClauseVersion lowers clause variant c[j]: the j-th in-SCC atom
// drives off @delta, later in-SCC atoms scan their main relation and
// are then negated against their @delta relation, earlier in-SCC
// atoms and every non-SCC atom scan their main relation, and (when
// the head has positive arity) the result
// is negated against the head relation's current contents before
// being projected into @new(head).
func (tr *translator) lowerClauseVersion(headRel string, c *dlog.Clause, driverIdx int, sccSet map[string]bool) (ramast.Statement, error) {
	idx := newValueIndex()
	view := func(i int, atom *dlog.Atom) (string, bool) {
		if i == driverIdx {
			return "delta", false
		}
		if sccSet[atom.Relation] && i > driverIdx {
			return "", true // later in-SCC atom: scan, then negate against @delta
		}
		return "", false
	}

	// The version number is the driver's rank among the clause's
	// in-SCC atoms (0..k-1), the same numbering buildLoopBody checks
	// the plan's keys against.
	version := 0
	for _, k := range driverIndices(c, sccSet) {
		if k < driverIdx {
			version++
		}
	}

	nameAnonymousVarsInClause(c)
	body, err := tr.buildBody(c.Body, planOrder(c, version), idx, view)
	if err != nil {
		return nil, err
	}

	headArgs, err := tr.atomArgs(c.Head, idx)
	if err != nil {
		return nil, err
	}

	op := body
	if len(c.Head.Args) > 0 {
		op = &ramast.Negation{Input: body, Rel: headRel, Args: headArgs}
	}
	proj := &ramast.Project{Input: op, Into: newName(headRel), Args: headArgs}

	text := fmt.Sprintf("%s := %s[%d]", newName(headRel), describeClause(headRel, c), driverIdx)
	return &ramast.DebugInfo{Inner: &ramast.Query{Op: proj}, Text: text}, nil
}

func nameAnonymousVarsInClause(c *dlog.Clause) {
	for i, lit := range c.Body {
		if a, ok := lit.(*dlog.Atom); ok {
			nameAnonymousVars(a.Args, i)
		}
	}
}

// buildExitStatements implements spec §4.6's exit sequence: one Exit
// testing that every SCC relation's @new view is empty, plus one
// further Exit per SCC relation that carries a size_limit (spec S5:
// "both empty(@new_a) ∧ empty(@new_b) and a second Exit(|a| ≥
// 1000)" — two distinct Exit statements, not one combined condition).
func buildExitStatements(scc *dlog.SCC) ([]ramast.Statement, error) {
	if len(scc.Relations) == 0 {
		panic(&InvariantViolation{What: "recursive SCC has no relations"})
	}

	var allEmpty ramast.Condition
	for _, r := range scc.Relations {
		c := ramast.Condition(&ramast.EmptinessCheck{Rel: r.Name, View: "new"})
		if allEmpty == nil {
			allEmpty = c
		} else {
			allEmpty = &ramast.ConjunctionCond{Left: allEmpty, Right: c}
		}
	}
	stmts := []ramast.Statement{&ramast.Exit{Cond: allEmpty}}

	for _, r := range scc.Relations {
		if r.SizeLimit <= 0 {
			continue
		}
		stmts = append(stmts, &ramast.Exit{Cond: &ramast.RelationSize{
			Rel: r.Name, Op: ramast.Ge,
			Bound: ramast.UnsignedConstant{Value: uint64(r.SizeLimit)},
		}})
	}
	return stmts, nil
}

// buildUpdateSequence implements spec §4.6's update sequence: for
// every SCC relation, merge @new into the main relation (preceded by
// an equivalence-closure Extend for EQREL relations), swap @delta and
// @new, and clear @new.
func buildUpdateSequence(scc *dlog.SCC) []ramast.Statement {
	var stmts []ramast.Statement
	for _, r := range scc.Relations {
		if r.Repr == dlog.Eqrel {
			stmts = append(stmts, &ramast.Extend{A: r.Name, B: newName(r.Name)})
		}
		stmts = append(stmts, mergeInto(r.Arity(), newName(r.Name), r.Name))
		stmts = append(stmts, &ramast.Swap{A: deltaName(r.Name), B: newName(r.Name)})
		stmts = append(stmts, &ramast.Clear{Rel: newName(r.Name)})
	}
	return stmts
}
