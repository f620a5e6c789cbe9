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

// SCC is one strongly connected component of the relation dependency
// graph, already computed by an upstream analysis: the stratification
// driver (Component D) only reads these, it never recomputes them.
type SCC struct {
	Relations []*Relation
	Recursive bool
	// Expired lists relations whose last read in the whole program
	// happens in this SCC, letting the driver emit a Clear for them
	// once the SCC's stratum completes.
	Expired []*Relation
}

// SCCGraph is the program's relation dependency graph, topologically
// sorted: SCCs earlier in the slice never depend on SCCs later in it.
type SCCGraph struct {
	Order []*SCC
}

// ContainsRelation reports whether scc directly declares rel.
func (scc *SCC) ContainsRelation(name string) bool {
	for _, r := range scc.Relations {
		if r.Name == name {
			return true
		}
	}
	return false
}
