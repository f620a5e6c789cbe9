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

package ramast

import (
	"bytes"
	"fmt"
)

// Operator is the closed sum type of relational-algebra tree nodes
// nested under a Query statement: scans, filters, negations, joins,
// and projections.
type Operator interface {
	describe(buf *bytes.Buffer, depth int)
	equalOperator(Operator) bool
}

func describeOperator(buf *bytes.Buffer, op Operator, depth int) {
	if op == nil {
		indent(buf, depth)
		buf.WriteString("<nil>\n")
		return
	}
	op.describe(buf, depth)
}

// EqualOperator reports whether a and b are structurally identical
// operator trees.
func EqualOperator(a, b Operator) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equalOperator(b)
}

// Scan iterates every tuple currently stored in Rel, optionally
// against the @delta or @new view (empty View means the main relation).
type Scan struct {
	Rel  string
	View string // "", "delta", or "new"
}

func (s *Scan) describe(buf *bytes.Buffer, depth int) {
	indent(buf, depth)
	if s.View != "" {
		fmt.Fprintf(buf, "Scan @%s(%s)\n", s.View, s.Rel)
	} else {
		fmt.Fprintf(buf, "Scan %s\n", s.Rel)
	}
}

func (s *Scan) equalOperator(o Operator) bool {
	s2, ok := o.(*Scan)
	return ok && s.Rel == s2.Rel && s.View == s2.View
}

// Filter keeps only the rows of Input for which Cond holds.
type Filter struct {
	Input Operator
	Cond  Condition
}

func (f *Filter) describe(buf *bytes.Buffer, depth int) {
	indent(buf, depth)
	fmt.Fprintf(buf, "Filter %s\n", describeCondition(f.Cond))
	describeOperator(buf, f.Input, depth+1)
}

func (f *Filter) equalOperator(o Operator) bool {
	f2, ok := o.(*Filter)
	return ok && EqualCondition(f.Cond, f2.Cond) && EqualOperator(f.Input, f2.Input)
}

// Project writes one output tuple per row of Input, built from Args,
// into Into (and, for a recursive clause version, also checks it is
// absent from the head relation's main view first — modeled by a
// Negation as the Project's Input, not a field here).
type Project struct {
	Input Operator
	Into  string
	Args  []Expression
}

func (p *Project) describe(buf *bytes.Buffer, depth int) {
	indent(buf, depth)
	fmt.Fprintf(buf, "Project -> %s (%d args)\n", p.Into, len(p.Args))
	describeOperator(buf, p.Input, depth+1)
}

func (p *Project) equalOperator(o Operator) bool {
	p2, ok := o.(*Project)
	if !ok || p.Into != p2.Into || len(p.Args) != len(p2.Args) {
		return false
	}
	for i := range p.Args {
		if !EqualExpression(p.Args[i], p2.Args[i]) {
			return false
		}
	}
	return EqualOperator(p.Input, p2.Input)
}

// Negation keeps only the rows of Input for which a matching tuple
// of Args is absent from Rel (the recursive-clause head-negation
// discipline of spec §4.6's "don't rederive a fact already in the
// main relation").
type Negation struct {
	Input Operator
	Rel   string
	Args  []Expression
}

func (n *Negation) describe(buf *bytes.Buffer, depth int) {
	indent(buf, depth)
	fmt.Fprintf(buf, "Negation !%s (%d args)\n", n.Rel, len(n.Args))
	describeOperator(buf, n.Input, depth+1)
}

func (n *Negation) equalOperator(o Operator) bool {
	n2, ok := o.(*Negation)
	if !ok || n.Rel != n2.Rel || len(n.Args) != len(n2.Args) {
		return false
	}
	for i := range n.Args {
		if !EqualExpression(n.Args[i], n2.Args[i]) {
			return false
		}
	}
	return EqualOperator(n.Input, n2.Input)
}

// Conjunction ties two operator subtrees together as a single join
// step (e.g. the scans of two body atoms of one clause).
type Conjunction struct{ Left, Right Operator }

func (c *Conjunction) describe(buf *bytes.Buffer, depth int) {
	indent(buf, depth)
	buf.WriteString("Conjunction\n")
	describeOperator(buf, c.Left, depth+1)
	describeOperator(buf, c.Right, depth+1)
}

func (c *Conjunction) equalOperator(o Operator) bool {
	c2, ok := o.(*Conjunction)
	return ok && EqualOperator(c.Left, c2.Left) && EqualOperator(c.Right, c2.Right)
}

// Condition is the closed sum type of boolean tests used by Filter,
// Exit, and Constraint body literals.
type Condition interface {
	describeCond() string
	equalCondition(Condition) bool
}

func describeCondition(c Condition) string {
	if c == nil {
		return "<nil>"
	}
	return c.describeCond()
}

// EqualCondition reports whether a and b are structurally identical.
func EqualCondition(a, b Condition) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equalCondition(b)
}

// EmptinessCheck holds when Rel (optionally its @new or @delta view)
// currently has no rows: the exit test for a recursive stratum
// (spec §8 prop 9, S4, S5).
type EmptinessCheck struct {
	Rel  string
	View string
}

func (e *EmptinessCheck) describeCond() string {
	if e.View != "" {
		return fmt.Sprintf("empty(@%s(%s))", e.View, e.Rel)
	}
	return fmt.Sprintf("empty(%s)", e.Rel)
}

func (e *EmptinessCheck) equalCondition(o Condition) bool {
	e2, ok := o.(*EmptinessCheck)
	return ok && e.Rel == e2.Rel && e.View == e2.View
}

// RelationSize compares a relation's cardinality against Bound, the
// size-limit exit test from spec S5.
type RelationSize struct {
	Rel   string
	Op    CompareOp
	Bound Expression
}

func (r *RelationSize) describeCond() string {
	return fmt.Sprintf("|%s| %s %s", r.Rel, r.Op, describeExpr(r.Bound))
}

func (r *RelationSize) equalCondition(o Condition) bool {
	r2, ok := o.(*RelationSize)
	return ok && r.Rel == r2.Rel && r.Op == r2.Op && EqualExpression(r.Bound, r2.Bound)
}

// ConjunctionCond ANDs two conditions together (the S5 shape:
// empty(@new_a) ∧ empty(@new_b)).
type ConjunctionCond struct{ Left, Right Condition }

func (c *ConjunctionCond) describeCond() string {
	return fmt.Sprintf("(%s && %s)", describeCondition(c.Left), describeCondition(c.Right))
}

func (c *ConjunctionCond) equalCondition(o Condition) bool {
	c2, ok := o.(*ConjunctionCond)
	return ok && EqualCondition(c.Left, c2.Left) && EqualCondition(c.Right, c2.Right)
}

// DisjunctionCond ORs two conditions together.
type DisjunctionCond struct{ Left, Right Condition }

func (c *DisjunctionCond) describeCond() string {
	return fmt.Sprintf("(%s || %s)", describeCondition(c.Left), describeCondition(c.Right))
}

func (c *DisjunctionCond) equalCondition(o Condition) bool {
	c2, ok := o.(*DisjunctionCond)
	return ok && EqualCondition(c.Left, c2.Left) && EqualCondition(c.Right, c2.Right)
}

// Constraint compares two expressions directly (mirrors
// dlog.Constraint, lowered).
type Constraint struct {
	Op          CompareOp
	Left, Right Expression
}

func (c *Constraint) describeCond() string {
	return fmt.Sprintf("%s %s %s", describeExpr(c.Left), c.Op, describeExpr(c.Right))
}

func (c *Constraint) equalCondition(o Condition) bool {
	c2, ok := o.(*Constraint)
	return ok && c.Op == c2.Op && EqualExpression(c.Left, c2.Left) && EqualExpression(c.Right, c2.Right)
}

// CompareOp mirrors dlog.CompareOp for IR-level comparisons.
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}
