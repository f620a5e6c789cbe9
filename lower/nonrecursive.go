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
)

// lowerNonRecursiveClause implements Component E for a single clause:
// project the clause's head into rel via a nested scan over its body
// atoms, wrapped in a debug-information annotation.
func (tr *translator) lowerNonRecursiveClause(rel string, c *dlog.Clause) (ramast.Statement, error) {
	idx := newValueIndex()
	body, err := tr.buildBody(c.Body, planOrder(c, 0), idx, nil)
	if err != nil {
		return nil, err
	}
	proj, err := tr.headProject(c.Head, rel, body, idx)
	if err != nil {
		return nil, err
	}
	return &ramast.DebugInfo{
		Inner: &ramast.Query{Op: proj},
		Text:  describeClause(rel, c),
	}, nil
}

// lowerNonRecursiveClauses lowers every non-recursive clause that
// defines rel, in declaration order, as a Sequence of Query
// statements (Component E applied to a whole relation, the shape the
// recursive preamble also reuses for a recursive relation's base
// case).
func (tr *translator) lowerNonRecursiveClauses(rel string, clauses []*dlog.Clause) (ramast.Statement, error) {
	stmts := make([]ramast.Statement, 0, len(clauses))
	for _, c := range clauses {
		s, err := tr.lowerNonRecursiveClause(rel, c)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if len(stmts) == 1 {
		return stmts[0], nil
	}
	return &ramast.Sequence{Stmts: stmts}, nil
}
