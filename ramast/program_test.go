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
	"strings"
	"testing"
)

// buildS3 reproduces spec scenario S3's expected shape: stratum_0 =
// Sequence(IO-load edge, Query(Scan edge -> Project path), IO-store
// path, Clear edge).
func buildS3() *Program {
	p := NewProgram()
	p.Relations = []RelationDecl{{Name: "edge", Arity: 2}, {Name: "path", Arity: 2}}
	p.Subroutines["stratum_0"] = &Sequence{Stmts: []Statement{
		&IO{Rel: "edge", Dir: IODirectives{}.Set("IO", "file")},
		&Query{Op: &Project{
			Into:  "path",
			Args:  []Expression{TupleElement{0, 0}, TupleElement{0, 1}},
			Input: &Scan{Rel: "edge"},
		}},
		&IO{Rel: "path", Dir: IODirectives{}.Set("IO", "file")},
		&Clear{Rel: "edge"},
	}}
	p.Main = &Call{Name: "stratum_0"}
	return p
}

func TestScenarioS3Shape(t *testing.T) {
	p := buildS3()
	out := p.String()
	for _, want := range []string{"Sequence", "IO edge", "Query", "Project -> path", "Scan edge", "IO path", "Clear edge"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Program.String() missing %q; got:\n%s", want, out)
		}
	}
}

func TestEqualStatementStructural(t *testing.T) {
	a := buildS3()
	b := buildS3()
	if !EqualStatement(a.Subroutines["stratum_0"], b.Subroutines["stratum_0"]) {
		t.Fatal("two independently built but structurally identical trees compared unequal")
	}

	b.Subroutines["stratum_0"].(*Sequence).Stmts[3] = &Clear{Rel: "different"}
	if EqualStatement(a.Subroutines["stratum_0"], b.Subroutines["stratum_0"]) {
		t.Fatal("trees differing in one leaf compared equal")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := buildS3()
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !EqualStatement(p.Subroutines["stratum_0"], got.Subroutines["stratum_0"]) {
		t.Fatal("round-tripped program differs from the original")
	}
	if got.SessionID != p.SessionID {
		t.Fatal("round-tripped program lost its session id")
	}
}

func TestDebugBundleRoundTrip(t *testing.T) {
	p := buildS3()
	var buf bytes.Buffer
	if err := WriteDebugBundle(&buf, p); err != nil {
		t.Fatalf("WriteDebugBundle: %v", err)
	}
	got, err := ReadDebugBundle(&buf)
	if err != nil {
		t.Fatalf("ReadDebugBundle: %v", err)
	}
	if !EqualStatement(p.Subroutines["stratum_0"], got.Subroutines["stratum_0"]) {
		t.Fatal("debug bundle round trip lost structure")
	}
}

func TestIODirectivesEscapeHandling(t *testing.T) {
	d := IODirectives{}.Set("filename", `a\tb\nc\"d\r`)
	if got, want := d["filename"], "a\tb\nc\"d\r"; got != want {
		t.Fatalf("escape handling = %q, want %q", got, want)
	}
}
