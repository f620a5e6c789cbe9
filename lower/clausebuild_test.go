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
	"testing"

	"github.com/mmcgr/souffle/dlog"
	"github.com/mmcgr/souffle/ramast"
	"github.com/mmcgr/souffle/symbol"
)

// TestPlanOrderDeclarationOrderFallback covers spec §4.5's default:
// absent an ExecutionPlan, buildBody visits body literals in plain
// declaration order.
func TestPlanOrderDeclarationOrderFallback(t *testing.T) {
	c := &dlog.Clause{Body: []dlog.Literal{
		&dlog.Atom{Relation: "a"},
		&dlog.Atom{Relation: "b"},
		&dlog.Atom{Relation: "c"},
	}}
	got := planOrder(c, 0)
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

// TestPlanOrderHonorsExecutionPlan covers spec §4.5's stated
// exception: when the clause carries an ExecutionPlan entry for the
// requested version, buildBody visits body literals in that order
// instead of declaration order.
func TestPlanOrderHonorsExecutionPlan(t *testing.T) {
	c := &dlog.Clause{
		Body: []dlog.Literal{
			&dlog.Atom{Relation: "a", Args: []dlog.Term{dlog.Var{Name: "x"}}},
			&dlog.Atom{Relation: "b", Args: []dlog.Term{dlog.Var{Name: "x"}}},
		},
		Plan: &dlog.ExecutionPlan{Orders: map[int][]int{0: {1, 0}}},
	}

	tr := newTranslator(symbol.NewTable(), &dlog.Polymorphic{}, dlog.NewSumTypes(nil, nil), dlog.NewFunctors(nil))
	idx := newValueIndex()
	op, err := tr.buildBody(c.Body, planOrder(c, 0), idx, nil)
	if err != nil {
		t.Fatalf("buildBody: %v", err)
	}

	conj, ok := op.(*ramast.Conjunction)
	if !ok {
		t.Fatalf("expected a Conjunction, got %T", op)
	}
	left, ok := conj.Left.(*ramast.Scan)
	if !ok || left.Rel != "b" {
		t.Fatalf("expected the plan's first scan to be b, got %#v", conj.Left)
	}
	right, ok := conj.Right.(*ramast.Scan)
	if !ok || right.Rel != "a" {
		t.Fatalf("expected the plan's second scan to be a, got %#v", conj.Right)
	}

	// x must resolve to its first-visited binding point (b's, level 0),
	// regardless of its declaration-order position in a.
	loc, ok := idx.definitionPoint("x")
	if !ok || loc.Level != 0 {
		t.Fatalf("expected x bound at level 0 (from b, the plan-ordered first scan), got %v", loc)
	}

	// A version with no matching plan entry for a clause that does
	// carry a Plan still falls back to declaration order.
	fallback := planOrder(c, 1)
	if fallback[0] != 0 || fallback[1] != 1 {
		t.Fatalf("expected declaration-order fallback for an unplanned version, got %v", fallback)
	}
}

// TestLowerNonRecursiveClauseHonorsExecutionPlan exercises Component
// E end to end with a clause that carries a non-nil Plan.
func TestLowerNonRecursiveClauseHonorsExecutionPlan(t *testing.T) {
	c := &dlog.Clause{
		Head: &dlog.Atom{Relation: "r", Args: []dlog.Term{dlog.Var{Name: "x"}}},
		Body: []dlog.Literal{
			&dlog.Atom{Relation: "a", Args: []dlog.Term{dlog.Var{Name: "x"}}},
			&dlog.Atom{Relation: "b", Args: []dlog.Term{dlog.Var{Name: "x"}}},
		},
		Plan: &dlog.ExecutionPlan{Orders: map[int][]int{0: {1, 0}}},
	}
	tr := newTranslator(symbol.NewTable(), &dlog.Polymorphic{}, dlog.NewSumTypes(nil, nil), dlog.NewFunctors(nil))

	stmt, err := tr.lowerNonRecursiveClause("r", c)
	if err != nil {
		t.Fatalf("lowerNonRecursiveClause: %v", err)
	}
	debug, ok := stmt.(*ramast.DebugInfo)
	if !ok {
		t.Fatalf("expected a DebugInfo wrapper, got %T", stmt)
	}
	query, ok := debug.Inner.(*ramast.Query)
	if !ok {
		t.Fatalf("expected a Query, got %T", debug.Inner)
	}
	proj, ok := query.Op.(*ramast.Project)
	if !ok {
		t.Fatalf("expected a Project, got %T", query.Op)
	}
	conj, ok := proj.Input.(*ramast.Conjunction)
	if !ok {
		t.Fatalf("expected the projected join to honor the plan order, got %T", proj.Input)
	}
	if scan, ok := conj.Left.(*ramast.Scan); !ok || scan.Rel != "b" {
		t.Fatalf("expected b scanned first per the plan, got %#v", conj.Left)
	}
}
