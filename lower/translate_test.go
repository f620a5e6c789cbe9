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

// TestScenarioS6BranchLowering reproduces spec S6: T = C1 | C2(int) |
// C3(int,int), with branch ids assigned by lexicographic rank
// (C1=0, C2=1, C3=2). C1 is nullary, so it lowers to the bare
// constant 0 even though T as a whole is not a pure enum; C2 and C3
// carry a payload, so they desugar to [branch_id, payload].
func TestScenarioS6BranchLowering(t *testing.T) {
	sumTypes := dlog.NewSumTypes(
		[]*dlog.SumType{{Name: "T", Branches: []string{"C1", "C2", "C3"}}},
		map[string]bool{"C1": true, "C2": false, "C3": false},
	)
	tr := newTranslator(symbol.NewTable(), &dlog.Polymorphic{}, sumTypes, dlog.NewFunctors(nil))
	idx := newValueIndex()

	c1, err := tr.branch(&dlog.BranchInit{Branch: "C1"}, idx)
	if err != nil {
		t.Fatalf("C1: %v", err)
	}
	if id, ok := c1.(ramast.SignedConstant); !ok || id.Value != 0 {
		t.Fatalf("expected C1 to lower to the bare constant 0, got %#v", c1)
	}

	c2, err := tr.branch(&dlog.BranchInit{Branch: "C2", Args: []dlog.Term{dlog.IntConst{Value: 5}}}, idx)
	if err != nil {
		t.Fatalf("C2: %v", err)
	}
	pr, ok := c2.(*ramast.PackRecord)
	if !ok || len(pr.Args) != 2 {
		t.Fatalf("expected C2(5) to lower to a 2-arg PackRecord, got %#v", c2)
	}
	if id, ok := pr.Args[0].(ramast.SignedConstant); !ok || id.Value != 1 {
		t.Fatalf("expected C2's branch id 1, got %v", pr.Args[0])
	}
	if payload, ok := pr.Args[1].(ramast.SignedConstant); !ok || payload.Value != 5 {
		t.Fatalf("expected C2's single-arg payload 5 directly, got %v", pr.Args[1])
	}

	c3, err := tr.branch(&dlog.BranchInit{
		Branch: "C3",
		Args:   []dlog.Term{dlog.IntConst{Value: 1}, dlog.IntConst{Value: 2}},
	}, idx)
	if err != nil {
		t.Fatalf("C3: %v", err)
	}
	pr, ok = c3.(*ramast.PackRecord)
	if !ok || len(pr.Args) != 2 {
		t.Fatalf("expected C3(1,2) to lower to a 2-arg PackRecord, got %#v", c3)
	}
	if id, ok := pr.Args[0].(ramast.SignedConstant); !ok || id.Value != 2 {
		t.Fatalf("expected C3's branch id 2, got %v", pr.Args[0])
	}
	payload, ok := pr.Args[1].(*ramast.PackRecord)
	if !ok || len(payload.Args) != 2 {
		t.Fatalf("expected C3's multi-arg payload packed into a record, got %#v", pr.Args[1])
	}
}

// TestPureEnumLowersToBareConstant covers the other half of spec
// §4.7's ADT rule: when every branch of the sum type is nullary, a
// branch application lowers to a bare branch-id constant rather than
// a [branch_id, payload] pair.
func TestPureEnumLowersToBareConstant(t *testing.T) {
	sumTypes := dlog.NewSumTypes(
		[]*dlog.SumType{{Name: "Color", Branches: []string{"Blue", "Green", "Red"}}},
		map[string]bool{"Blue": true, "Green": true, "Red": true},
	)
	tr := newTranslator(symbol.NewTable(), &dlog.Polymorphic{}, sumTypes, dlog.NewFunctors(nil))

	got, err := tr.branch(&dlog.BranchInit{Branch: "Green"}, newValueIndex())
	if err != nil {
		t.Fatalf("Green: %v", err)
	}
	c, ok := got.(ramast.SignedConstant)
	if !ok || c.Value != 1 {
		t.Fatalf("expected Green to lower to bare constant 1, got %#v", got)
	}
}

// TestValueVariableBinding covers the variable row of spec §4.7's
// value-mapping table: a variable resolves to the TupleElement at its
// binding point.
func TestValueVariableBinding(t *testing.T) {
	tr := newTranslator(symbol.NewTable(), &dlog.Polymorphic{}, dlog.NewSumTypes(nil, nil), dlog.NewFunctors(nil))
	idx := newValueIndex()
	idx.bindVar("x", Location{Level: 2, Pos: 3})

	got, err := tr.value(dlog.Var{Name: "x"}, idx)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	te, ok := got.(ramast.TupleElement)
	if !ok || te.Level != 2 || te.Pos != 3 {
		t.Fatalf("expected TupleElement{2,3}, got %#v", got)
	}

	if _, err := tr.value(dlog.Var{Name: "unbound"}, idx); err == nil {
		t.Fatalf("expected an error for an unbound variable")
	}
}

// TestValueStringConstantInternsThroughSymbolTable covers the string
// constant row: the symbol is interned into the shared table and the
// resulting id is carried as a signed constant.
func TestValueStringConstantInternsThroughSymbolTable(t *testing.T) {
	symbols := symbol.NewTable()
	tr := newTranslator(symbols, &dlog.Polymorphic{}, dlog.NewSumTypes(nil, nil), dlog.NewFunctors(nil))

	got, err := tr.value(dlog.StringConst{Value: "hello"}, newValueIndex())
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	sc, ok := got.(ramast.SignedConstant)
	if !ok {
		t.Fatalf("expected a SignedConstant, got %#v", got)
	}
	if !symbols.Contains([]byte("hello")) {
		t.Fatalf("expected \"hello\" to already be interned")
	}
	if uint32(sc.Value) != symbols.Lookup([]byte("hello")) {
		t.Fatalf("expected the constant to carry hello's interned id")
	}
}
