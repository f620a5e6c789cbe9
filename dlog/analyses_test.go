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

package dlog

import "testing"

// TestScenarioS6SumTypeBranchIDs reproduces spec scenario S6's branch
// numbering: lex-sorted C1, C2, C3 get ids 0, 1, 2, and only C1 is
// nullary.
func TestScenarioS6SumTypeBranchIDs(t *testing.T) {
	sumT := &SumType{Name: "T", Branches: []string{"C1", "C2", "C3"}}
	nullary := map[string]bool{"C1": true}
	types := NewSumTypes([]*SumType{sumT}, nullary)

	for branch, want := range map[string]int{"C1": 0, "C2": 1, "C3": 2} {
		id, ok := sumT.BranchID(branch)
		if !ok || id != want {
			t.Fatalf("BranchID(%s) = (%d, %v), want (%d, true)", branch, id, ok, want)
		}
	}

	if types.IsPureEnum(sumT) {
		t.Fatal("T has non-nullary branches and must not be treated as a pure enum")
	}
	if !types.IsNullary("C1") {
		t.Fatal("C1 should be nullary")
	}
	if types.IsNullary("C2") {
		t.Fatal("C2 takes an argument and must not be nullary")
	}

	resolved, ok := types.Resolve("C2")
	if !ok || resolved != sumT {
		t.Fatalf("Resolve(C2) = (%v, %v), want (%v, true)", resolved, ok, sumT)
	}
}

func TestPureEnumAllNullary(t *testing.T) {
	colors := &SumType{Name: "Color", Branches: []string{"Blue", "Green", "Red"}}
	types := NewSumTypes([]*SumType{colors}, map[string]bool{"Blue": true, "Green": true, "Red": true})
	if !types.IsPureEnum(colors) {
		t.Fatal("Color has only nullary branches and must be a pure enum")
	}
}

func TestFunctorsMultiValued(t *testing.T) {
	f := NewFunctors(map[string]bool{"range": true})
	if !f.IsMultiValued(&IntrinsicCall{Op: "range"}) {
		t.Fatal("range must be reported multi-valued")
	}
	if f.IsMultiValued(&IntrinsicCall{Op: "+"}) {
		t.Fatal("+ must not be reported multi-valued")
	}
}
