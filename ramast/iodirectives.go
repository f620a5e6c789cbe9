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
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// IODirectives is the name/value directive map carried by an IO
// statement: "IO" conventionally selects the driver (file, stdin,
// stdout, ...), "filename" and "name" are conventional keys, and any
// value may contain the four escapes spec §6 documents.
type IODirectives map[string]string

// Set installs key=value, applying escape handling for \", \t, \r,
// \n on the way in, matching the directive strings a parser would
// have already unescaped out of source syntax.
func (d IODirectives) Set(key, value string) IODirectives {
	if d == nil {
		d = make(IODirectives)
	}
	d[key] = unescapeDirective(value)
	return d
}

func unescapeDirective(v string) string {
	if !strings.ContainsRune(v, '\\') {
		return v
	}
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) {
			switch v[i+1] {
			case '"':
				b.WriteByte('"')
				i++
				continue
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case 'r':
				b.WriteByte('\r')
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			}
		}
		b.WriteByte(v[i])
	}
	return b.String()
}

// String renders the directives in deterministic key order for
// debug output.
func (d IODirectives) String() string {
	keys := maps.Keys(d)
	slices.Sort(keys)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%q", k, d[k])
	}
	b.WriteByte('}')
	return b.String()
}

// Equal reports whether two directive maps hold the same entries.
func (d IODirectives) Equal(o IODirectives) bool {
	if len(d) != len(o) {
		return false
	}
	for k, v := range d {
		if o[k] != v {
			return false
		}
	}
	return true
}
