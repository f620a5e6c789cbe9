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

import "fmt"

// Expression is the closed sum type of scalar value nodes: the
// right-hand side of spec §4.7's value-mapping table.
type Expression interface {
	describeExpr() string
	equalExpression(Expression) bool
}

func describeExpr(e Expression) string {
	if e == nil {
		return "<nil>"
	}
	return e.describeExpr()
}

// EqualExpression reports whether a and b are structurally identical.
func EqualExpression(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equalExpression(b)
}

// Type is an IR-level value type tag, carried on
// UserDefinedOperator's signature; it mirrors dlog.Type's Kind()
// without depending on the dlog package, keeping ramast a frozen,
// self-contained produced contract (spec §6).
type Type int

const (
	TypeSigned Type = iota
	TypeUnsigned
	TypeFloat
	TypeSymbol
	TypeRecord
)

type SignedConstant struct{ Value int64 }

func (c SignedConstant) describeExpr() string { return fmt.Sprintf("%d", c.Value) }
func (c SignedConstant) equalExpression(o Expression) bool {
	c2, ok := o.(SignedConstant)
	return ok && c == c2
}

type UnsignedConstant struct{ Value uint64 }

func (c UnsignedConstant) describeExpr() string { return fmt.Sprintf("%du", c.Value) }
func (c UnsignedConstant) equalExpression(o Expression) bool {
	c2, ok := o.(UnsignedConstant)
	return ok && c == c2
}

type FloatConstant struct{ Value float64 }

func (c FloatConstant) describeExpr() string { return fmt.Sprintf("%gf", c.Value) }
func (c FloatConstant) equalExpression(o Expression) bool {
	c2, ok := o.(FloatConstant)
	return ok && c == c2
}

// TupleElement reads the column at Pos of the tuple bound Level
// levels up the enclosing nest of Scan/Conjunction operators, the
// universal "variable reference" IR shape (spec §4.7, dlog.Var's row).
type TupleElement struct{ Level, Pos int }

func (t TupleElement) describeExpr() string { return fmt.Sprintf("t%d.%d", t.Level, t.Pos) }
func (t TupleElement) equalExpression(o Expression) bool {
	t2, ok := o.(TupleElement)
	return ok && t == t2
}

// IntrinsicOperator applies a built-in, single-valued operator to
// its translated arguments.
type IntrinsicOperator struct {
	Op   string
	Args []Expression
}

func (i *IntrinsicOperator) describeExpr() string {
	return fmt.Sprintf("%s(%s)", i.Op, describeExprList(i.Args))
}

func (i *IntrinsicOperator) equalExpression(o Expression) bool {
	i2, ok := o.(*IntrinsicOperator)
	return ok && i.Op == i2.Op && equalExprLists(i.Args, i2.Args)
}

// UserDefinedOperator applies a resolved user functor.
type UserDefinedOperator struct {
	Name     string
	ArgTypes []Type
	RetType  Type
	Stateful bool
	Args     []Expression
}

func (u *UserDefinedOperator) describeExpr() string {
	return fmt.Sprintf("@%s(%s)", u.Name, describeExprList(u.Args))
}

func (u *UserDefinedOperator) equalExpression(o Expression) bool {
	u2, ok := o.(*UserDefinedOperator)
	if !ok || u.Name != u2.Name || u.RetType != u2.RetType || u.Stateful != u2.Stateful {
		return false
	}
	if len(u.ArgTypes) != len(u2.ArgTypes) {
		return false
	}
	for i := range u.ArgTypes {
		if u.ArgTypes[i] != u2.ArgTypes[i] {
			return false
		}
	}
	return equalExprLists(u.Args, u2.Args)
}

// PackRecord builds a record value from its translated field
// expressions; it is also how ADT branches with a payload of more
// than one argument are desugared (spec §4.7).
type PackRecord struct{ Args []Expression }

func (p *PackRecord) describeExpr() string {
	return fmt.Sprintf("[%s]", describeExprList(p.Args))
}

func (p *PackRecord) equalExpression(o Expression) bool {
	p2, ok := o.(*PackRecord)
	return ok && equalExprLists(p.Args, p2.Args)
}

// AutoIncrement evaluates to the value of a program-scoped counter,
// advancing it by one.
type AutoIncrement struct{}

func (AutoIncrement) describeExpr() string { return "autoinc()" }
func (AutoIncrement) equalExpression(o Expression) bool {
	_, ok := o.(AutoIncrement)
	return ok
}

// SubroutineArgument references the N'th positional argument passed
// to the subroutine currently executing.
type SubroutineArgument struct{ N int }

func (s SubroutineArgument) describeExpr() string { return fmt.Sprintf("arg(%d)", s.N) }
func (s SubroutineArgument) equalExpression(o Expression) bool {
	s2, ok := o.(SubroutineArgument)
	return ok && s == s2
}

// UndefValue stands for an unnamed variable / wildcard: any read of
// it is a programmer error upstream, since a wildcard never actually
// needs to be projected.
type UndefValue struct{}

func (UndefValue) describeExpr() string { return "undef" }
func (UndefValue) equalExpression(o Expression) bool {
	_, ok := o.(UndefValue)
	return ok
}

func describeExprList(args []Expression) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += describeExpr(a)
	}
	return s
}

func equalExprLists(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualExpression(a[i], b[i]) {
			return false
		}
	}
	return true
}
