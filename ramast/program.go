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

// Package ramast is the relational-algebra machine IR that lowering
// produces: a tagged-variant tree of Statements, Operators, and
// Expressions. Nothing in this package executes the tree or compiles
// it further (codegen and the interpreter backend are out of scope);
// it only builds, prints, and structurally compares it.
package ramast

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// RelationDecl carries just enough of a relation's declaration
// forward into the IR for statements that reference it by name to be
// self-describing in Program.String() output.
type RelationDecl struct {
	Name      string
	Arity     int
	Recursive bool
}

// Program is the root of a lowered compilation unit: the relations it
// touches, a main statement sequence, and a set of named subroutines
// (one per stratum, named stratum_k, plus any auxiliary subroutines
// provenance/subsumption lowering would add).
type Program struct {
	Relations   []RelationDecl
	Main        Statement
	Subroutines map[string]Statement
	SessionID   uuid.UUID
}

// NewProgram returns an empty Program stamped with a fresh session
// id, the same way a compiler invocation gets a fresh request id.
func NewProgram() *Program {
	return &Program{
		Subroutines: make(map[string]Statement),
		SessionID:   uuid.New(),
	}
}

// String renders the program as an indented plaintext tree: the
// shape exercised by spec scenarios S3–S5.
func (p *Program) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "program %s\n", p.SessionID)
	for _, r := range p.Relations {
		fmt.Fprintf(&buf, "relation %s/%d", r.Name, r.Arity)
		if r.Recursive {
			buf.WriteString(" [recursive]")
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("main:\n")
	describeStatement(&buf, p.Main, 1)
	for _, name := range p.subroutineNames() {
		fmt.Fprintf(&buf, "%s:\n", name)
		describeStatement(&buf, p.Subroutines[name], 1)
	}
	return buf.String()
}

func (p *Program) subroutineNames() []string {
	names := make([]string, 0, len(p.Subroutines))
	for name := range p.Subroutines {
		names = append(names, name)
	}
	// stratum_0, stratum_1, ... sort correctly under plain string
	// order only while the count stays single-digit; Program.String
	// is a debug aid, not a stable wire format, so that's acceptable.
	slices.Sort(names)
	return names
}

func indent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}
