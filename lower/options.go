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
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Options configures a Driver. Like a table's definition.yaml in the
// teacher's db package, it is authored as YAML (or, since
// sigs.k8s.io/yaml round-trips through JSON, equivalently as JSON)
// and decoded through the same json-tagged struct fields a plain
// encoding/json.Unmarshal would use.
type Options struct {
	// Profile enables emission of LogRelationTimer/LogTimer
	// statements around each stratum.
	Profile bool `json:"profile,omitempty"`

	// MaxVersionsPerClause caps how many driver-atom versions a
	// single recursive clause may lower to before the driver treats
	// it as an invariant violation; 0 means unbounded.
	MaxVersionsPerClause int `json:"max_versions_per_clause,omitempty"`

	// DebugBundlePath, if set, receives a zstd-compressed gob dump of
	// the lowered program after every Driver.Lower call, for
	// attaching to compiler diagnostics.
	DebugBundlePath string `json:"debug_bundle_path,omitempty"`
}

// DefaultOptions returns the Options a Driver uses when none are
// supplied explicitly.
func DefaultOptions() Options {
	return Options{}
}

// LoadOptions reads and decodes Options from a YAML (or JSON) file at
// path.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("lower: reading options: %w", err)
	}
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("lower: parsing options: %w", err)
	}
	return opts, nil
}
