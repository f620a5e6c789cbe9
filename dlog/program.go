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

// Package dlog holds the frozen, upstream contract that the lowering
// pass consumes: a Datalog program's relations and clauses, already
// parsed and type-checked, plus the small set of whole-program
// analyses (stratification, polymorphism resolution, sum-type
// layout) that lowering queries rather than recomputes. Nothing in
// this package parses source text or reports user-facing diagnostics;
// both are out of scope here, upstream of lowering.
package dlog

// Representation selects the backing data structure a relation is
// stored in, mirroring the storage hint a Datalog source program can
// attach to a relation declaration.
type Representation int

const (
	Default Representation = iota
	Brie
	Eqrel
)

func (r Representation) String() string {
	switch r {
	case Brie:
		return "brie"
	case Eqrel:
		return "eqrel"
	default:
		return "default"
	}
}

// Attribute is one column of a relation: its declared name and type,
// used only for diagnostics and IO directive schemas, never for
// lowering decisions (those only need arity and representation).
type Attribute struct {
	Name string
	Type Type
}

// Directive is one IO directive attached to a relation declaration,
// e.g. `.input edge(IO="file", filename="edge.facts")`. Values are
// passed through to the lowered ramast.IODirectives unescaped; the
// escape handling spec §6 documents happens at the ramast boundary.
type Directive struct {
	Values map[string]string
}

// Relation is a declared predicate: its qualified name, arity
// (len(Attributes)), storage representation, and an optional
// size-limit hint consumed by the recursive lowering pass (spec S5).
type Relation struct {
	Name            string
	Attributes      []Attribute
	Repr            Representation
	SizeLimit       int // 0 means unbounded
	LoadDirectives  []Directive
	StoreDirectives []Directive
}

func (r *Relation) Arity() int { return len(r.Attributes) }

// Program is a whole Datalog program after parsing and type
// analysis: relation declarations plus every clause that defines
// them, keyed by the defined relation's qualified name.
type Program struct {
	Relations []*Relation
	Clauses   map[string][]*Clause
}

// RelationByName returns the declaration for name, or nil if name
// was never declared.
func (p *Program) RelationByName(name string) *Relation {
	for _, r := range p.Relations {
		if r.Name == name {
			return r
		}
	}
	return nil
}
