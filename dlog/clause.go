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

// Atom is a predicate application: a relation name applied to a
// tuple of argument terms, e.g. `path(x, y)`.
type Atom struct {
	Relation string
	Args     []Term
}

// Literal is a clause-body element: a positive atom, a negated atom,
// or a binary constraint between two terms. It is a closed sum type
// (only the three concrete types below implement it).
type Literal interface {
	literal()
}

func (*Atom) literal()       {}
func (*Negation) literal()   {}
func (*Constraint) literal() {}

// Negation is `!atom` in a clause body.
type Negation struct {
	Atom *Atom
}

// Constraint is a body literal comparing two terms directly, outside
// of a relation, e.g. `x < y`.
type Constraint struct {
	Op    CompareOp
	Left  Term
	Right Term
}

// CompareOp enumerates the binary comparisons a Constraint literal or
// a ramast.Operator Constraint can carry.
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// ExecutionPlan pins the join order lowering must use for one or
// more clause versions, keyed by version number. Absent a plan,
// lowering is free to choose an order (typically body order); see
// ast::ExecutionOrder.h in the original implementation.
type ExecutionPlan struct {
	Orders map[int][]int // version -> permutation of body literal indices
}

// Clause is a single Horn rule: Head :- Body. A fact is a Clause with
// an empty Body.
type Clause struct {
	Head *Atom
	Body []Literal
	Plan *ExecutionPlan
}

// IsFact reports whether c has no body literals.
func (c *Clause) IsFact() bool { return len(c.Body) == 0 }
