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
	"github.com/mmcgr/souffle/dlog"
	"github.com/mmcgr/souffle/ramast"
	"github.com/mmcgr/souffle/symbol"
)

// Location names a variable's binding point within the loop nest a
// clause lowers to: Level counts enclosing Scan/Conjunction operators
// outward-in, Pos is the column within that level's tuple. It mirrors
// ast2ram::Location (souffle's original ValueIndex.h) exactly.
type Location struct {
	Level, Pos int
}

// valueIndex tracks where every clause variable, record constructor,
// and generator (aggregate or multi-valued functor) is bound within
// the operator nest currently being built, so the translator can
// resolve a later reference to an earlier binding (Component G's
// namesake ValueIndex).
type valueIndex struct {
	vars       map[string]Location
	records    map[*dlog.RecordInit]Location
	generators map[dlog.Term]Location
}

func newValueIndex() *valueIndex {
	return &valueIndex{
		vars:       make(map[string]Location),
		records:    make(map[*dlog.RecordInit]Location),
		generators: make(map[dlog.Term]Location),
	}
}

func (v *valueIndex) bindVar(name string, loc Location) {
	if name == "_" || name == "" {
		return
	}
	if _, ok := v.vars[name]; !ok {
		v.vars[name] = loc
	}
}

func (v *valueIndex) definitionPoint(name string) (Location, bool) {
	loc, ok := v.vars[name]
	return loc, ok
}

func (v *valueIndex) bindGenerator(t dlog.Term, loc Location) {
	v.generators[t] = loc
}

func (v *valueIndex) generatorLoc(t dlog.Term) (Location, bool) {
	loc, ok := v.generators[t]
	return loc, ok
}

// translator lowers dlog.Term values to ramast.Expression, per spec
// §4.7's value-mapping table. It needs the symbol table (to intern
// string constants) and read access to the whole-program
// analyses the original implementation's AstToRamTranslator consults
// rather than guesses: Polymorphic, SumTypes, Functors.
type translator struct {
	symbols  *symbol.Table
	poly     *dlog.Polymorphic
	sumTypes *dlog.SumTypes
	functors *dlog.Functors
}

func newTranslator(symbols *symbol.Table, poly *dlog.Polymorphic, sumTypes *dlog.SumTypes, functors *dlog.Functors) *translator {
	return &translator{symbols: symbols, poly: poly, sumTypes: sumTypes, functors: functors}
}

// value translates a single clause argument to its IR expression,
// given the binding context built up so far by the enclosing clause
// lowering (Component G's per-clause walk).
func (tr *translator) value(t dlog.Term, idx *valueIndex) (ramast.Expression, error) {
	switch a := t.(type) {
	case dlog.Var:
		loc, ok := idx.definitionPoint(a.Name)
		if !ok {
			return nil, errorf("", "variable %q has no binding point", a.Name)
		}
		return ramast.TupleElement{Level: loc.Level, Pos: loc.Pos}, nil

	case dlog.Wildcard:
		return ramast.UndefValue{}, nil

	case dlog.IntConst:
		return ramast.SignedConstant{Value: a.Value}, nil

	case dlog.UintConst:
		return ramast.UnsignedConstant{Value: a.Value}, nil

	case dlog.FloatConst:
		return ramast.FloatConstant{Value: a.Value}, nil

	case dlog.StringConst:
		id := tr.symbols.Lookup([]byte(a.Value))
		return ramast.SignedConstant{Value: int64(id)}, nil

	case dlog.NilConst:
		return ramast.SignedConstant{Value: 0}, nil

	case *dlog.TypeCast:
		return tr.value(a.Inner, idx)

	case *dlog.RecordInit:
		if loc, ok := idx.records[a]; ok {
			return ramast.TupleElement{Level: loc.Level, Pos: loc.Pos}, nil
		}
		args := make([]ramast.Expression, len(a.Fields))
		for i, f := range a.Fields {
			e, err := tr.value(f, idx)
			if err != nil {
				return nil, err
			}
			args[i] = e
		}
		return &ramast.PackRecord{Args: args}, nil

	case *dlog.BranchInit:
		return tr.branch(a, idx)

	case *dlog.Aggregate:
		loc, ok := idx.generatorLoc(a)
		if !ok {
			return nil, errorf("", "aggregate %q has no generator binding", a.Func)
		}
		return ramast.TupleElement{Level: loc.Level, Pos: loc.Pos}, nil

	case *dlog.IntrinsicCall:
		if tr.functors.IsMultiValued(a) {
			loc, ok := idx.generatorLoc(a)
			if !ok {
				return nil, errorf("", "multi-valued functor %q has no generator binding", a.Op)
			}
			return ramast.TupleElement{Level: loc.Level, Pos: loc.Pos}, nil
		}
		args := make([]ramast.Expression, len(a.Args))
		for i, arg := range a.Args {
			e, err := tr.value(arg, idx)
			if err != nil {
				return nil, err
			}
			args[i] = e
		}
		return &ramast.IntrinsicOperator{Op: tr.poly.ResolvedOpcode(a), Args: args}, nil

	case *dlog.UserCall:
		args := make([]ramast.Expression, len(a.Args))
		for i, arg := range a.Args {
			e, err := tr.value(arg, idx)
			if err != nil {
				return nil, err
			}
			args[i] = e
		}
		return &ramast.UserDefinedOperator{
			Name:     a.Name,
			RetType:  dlogTypeToRamast(tr.poly.ReturnType(a)),
			Stateful: tr.poly.IsStateful(a),
			Args:     args,
		}, nil

	case dlog.Counter:
		return ramast.AutoIncrement{}, nil

	case dlog.SubroutineArg:
		return ramast.SubroutineArgument{N: a.N}, nil

	default:
		return nil, errorf("", "unrecognized term %T", t)
	}
}

// branch desugars an ADT constructor application per spec §4.7: a
// nullary branch application lowers to a bare branch-id constant
// (spec S6's `C1`); a payload-carrying branch lowers to [branch_id,
// payload], where payload is the sole argument directly or a packed
// record of several.
func (tr *translator) branch(b *dlog.BranchInit, idx *valueIndex) (ramast.Expression, error) {
	sumType, ok := tr.sumTypes.Resolve(b.Branch)
	if !ok {
		return nil, errorf("", "branch constructor %q has no resolved sum type", b.Branch)
	}
	branchID, ok := sumType.BranchID(b.Branch)
	if !ok {
		return nil, errorf("", "branch %q not found in sum type %q", b.Branch, sumType.Name)
	}

	idExpr := ramast.SignedConstant{Value: int64(branchID)}

	// A nullary branch lowers to its bare id whether or not the
	// parent type is a pure enum, so IsPureEnum is not consulted
	// here: a pure enum has no payload-carrying branch to wrap.
	if len(b.Args) == 0 {
		return idExpr, nil
	}

	var payload ramast.Expression
	if len(b.Args) == 1 {
		e, err := tr.value(b.Args[0], idx)
		if err != nil {
			return nil, err
		}
		payload = e
	} else {
		args := make([]ramast.Expression, len(b.Args))
		for i, a := range b.Args {
			e, err := tr.value(a, idx)
			if err != nil {
				return nil, err
			}
			args[i] = e
		}
		payload = &ramast.PackRecord{Args: args}
	}
	return &ramast.PackRecord{Args: []ramast.Expression{idExpr, payload}}, nil
}

func dlogTypeToRamast(t dlog.Type) ramast.Type {
	if t == nil {
		return ramast.TypeSigned
	}
	switch t.Kind() {
	case dlog.KindUnsigned:
		return ramast.TypeUnsigned
	case dlog.KindFloat:
		return ramast.TypeFloat
	case dlog.KindSymbol:
		return ramast.TypeSymbol
	case dlog.KindRecord, dlog.KindADT:
		return ramast.TypeRecord
	default:
		return ramast.TypeSigned
	}
}

func compareOp(op dlog.CompareOp) ramast.CompareOp {
	switch op {
	case dlog.Ne:
		return ramast.Ne
	case dlog.Lt:
		return ramast.Lt
	case dlog.Le:
		return ramast.Le
	case dlog.Gt:
		return ramast.Gt
	case dlog.Ge:
		return ramast.Ge
	default:
		return ramast.Eq
	}
}
