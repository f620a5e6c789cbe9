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
	"strings"

	"github.com/mmcgr/souffle/dlog"
	"github.com/mmcgr/souffle/ramast"
)

// atomView, given the body-literal index and the atom it names,
// returns which view of that relation to scan ("" for the main
// relation, "delta" or "new" for the semi-naive views of §4.6) and
// whether the scan should be followed by a negated check against the
// atom's @delta relation (used by the recursive clause-version
// builder for in-SCC atoms after the driver; never used by
// non-recursive lowering).
type atomView func(litIndex int, atom *dlog.Atom) (view string, negateDelta bool)

// planOrder returns the body-literal visitation order for the given
// clause version: the plan's stated permutation if c.Plan names one
// for version, otherwise plain declaration order (spec §4.5:
// "ordering follows the clause's stated execution order if any,
// otherwise declaration order").
func planOrder(c *dlog.Clause, version int) []int {
	if c.Plan != nil {
		if order, ok := c.Plan.Orders[version]; ok {
			return order
		}
	}
	order := make([]int, len(c.Body))
	for i := range order {
		order[i] = i
	}
	return order
}

// buildBody walks a clause body in the given visitation order
// (planOrder's result), threading a valueIndex that records each
// positive atom's variable bindings at the tuple level it introduces,
// and returns the resulting nested operator tree (Component G's
// per-clause join construction, shared by non-recursive lowering and
// every recursive clause version).
func (tr *translator) buildBody(body []dlog.Literal, order []int, idx *valueIndex, view atomView) (ramast.Operator, error) {
	var chain ramast.Operator
	level := 0

	for _, i := range order {
		lit := body[i]
		switch l := lit.(type) {
		case *dlog.Atom:
			v, negateDelta := "", false
			if view != nil {
				v, negateDelta = view(i, l)
			}
			nameAnonymousVars(l.Args, i)
			for pos, arg := range l.Args {
				if vr, ok := arg.(dlog.Var); ok {
					idx.bindVar(vr.Name, Location{Level: level, Pos: pos})
				}
			}
			scan := &ramast.Scan{Rel: l.Relation, View: v}
			if chain == nil {
				chain = scan
			} else {
				chain = &ramast.Conjunction{Left: chain, Right: scan}
			}
			level++
			if negateDelta {
				args, err := tr.atomArgs(l, idx)
				if err != nil {
					return nil, err
				}
				chain = &ramast.Negation{Input: chain, Rel: deltaName(l.Relation), Args: args}
			}

		case *dlog.Negation:
			args, err := tr.atomArgs(l.Atom, idx)
			if err != nil {
				return nil, err
			}
			chain = &ramast.Negation{Input: chain, Rel: l.Atom.Relation, Args: args}

		case *dlog.Constraint:
			left, err := tr.value(l.Left, idx)
			if err != nil {
				return nil, err
			}
			right, err := tr.value(l.Right, idx)
			if err != nil {
				return nil, err
			}
			chain = &ramast.Filter{Input: chain, Cond: &ramast.Constraint{
				Op: compareOp(l.Op), Left: left, Right: right,
			}}

		default:
			return nil, errorf("", "unrecognized body literal %T", lit)
		}
	}
	return chain, nil
}

func (tr *translator) atomArgs(a *dlog.Atom, idx *valueIndex) ([]ramast.Expression, error) {
	args := make([]ramast.Expression, len(a.Args))
	for i, arg := range a.Args {
		e, err := tr.value(arg, idx)
		if err != nil {
			return nil, err
		}
		args[i] = e
	}
	return args, nil
}

// nameAnonymousVars gives every wildcard argument of an atom a unique
// synthetic name so that index structures keyed by variable identity
// can still be shared across otherwise-identical clause versions
// (spec §4.6: "name all anonymous variables to enable index reuse").
// It mutates args in place; wildcards are otherwise translated to
// UndefValue and never actually read back, so the synthetic name
// itself is never observed, only its presence as a distinct Var.
func nameAnonymousVars(args []dlog.Term, atomIndex int) {
	for i, a := range args {
		if _, ok := a.(dlog.Wildcard); ok {
			args[i] = dlog.Var{Name: fmt.Sprintf("_$wild_%d_%d", atomIndex, i)}
		}
	}
}

// headProject builds the final Project operator that writes a
// clause's head tuple into rel, given the operator nest built from
// its body.
func (tr *translator) headProject(head *dlog.Atom, rel string, input ramast.Operator, idx *valueIndex) (*ramast.Project, error) {
	args, err := tr.atomArgs(head, idx)
	if err != nil {
		return nil, err
	}
	return &ramast.Project{Input: input, Into: rel, Args: args}, nil
}

// describeClause renders a clause in a simple printable surface form
// for DebugInfo annotations (spec §4.5: "carrying the clause's source
// location and printable form" — lowering has no source location
// here, since the parser is out of scope, so only the printable form
// is carried).
func describeClause(headRel string, c *dlog.Clause) string {
	if c.IsFact() {
		return headRel + "()."
	}
	parts := make([]string, len(c.Body))
	for i, lit := range c.Body {
		parts[i] = describeLiteral(lit)
	}
	return headRel + "() :- " + strings.Join(parts, ", ") + "."
}

func describeLiteral(lit dlog.Literal) string {
	switch l := lit.(type) {
	case *dlog.Atom:
		return l.Relation
	case *dlog.Negation:
		return "!" + l.Atom.Relation
	case *dlog.Constraint:
		return "constraint"
	default:
		return "?"
	}
}
