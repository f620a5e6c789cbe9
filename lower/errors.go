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

// Package lower implements Components D, E, F, and G: stratified,
// semi-naive lowering from a dlog.Program into a ramast.Program.
// Everything upstream (parsing, type analysis) and downstream
// (codegen, interpretation) is out of scope; this package only
// performs the lowering step itself.
package lower

import "fmt"

// CompileError associates a fatal lowering failure with the relation
// being lowered when it happened (Relation is empty when the failing
// call site does not know it).
// Lowering never recovers from one: the driver aborts and returns it
// to the caller, per the propagation policy that upstream analyses
// have already reported user-facing errors and the core only asserts
// their postconditions.
type CompileError struct {
	Relation string
	Err      string
}

func (c *CompileError) Error() string {
	if c.Relation == "" {
		return c.Err
	}
	return fmt.Sprintf("%s: %s", c.Relation, c.Err)
}

func errorf(relation, f string, args ...interface{}) error {
	return &CompileError{Relation: relation, Err: fmt.Sprintf(f, args...)}
}

// InvariantViolation signals a precondition an upstream analysis was
// supposed to guarantee (an empty SCC, a clause with fewer emitted
// versions than its plan references). It is always a bug in a pass
// that runs before lowering, never a user-facing diagnostic.
type InvariantViolation struct {
	What string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("lower: invariant violated: %s", e.What)
}
