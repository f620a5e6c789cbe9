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

	"github.com/mmcgr/souffle/dlog"
	"github.com/mmcgr/souffle/ramast"
)

// LowerAndReport runs Lower and, if opts.DebugBundlePath is set,
// additionally writes a zstd-compressed gob dump of the result
// there — a convenience for compiler diagnostics that want the
// lowered IR attached without threading bundle-writing through every
// caller of Lower.
func (d *Driver) LowerAndReport(prog *dlog.Program, graph *dlog.SCCGraph) (*ramast.Program, error) {
	out, err := d.Lower(prog, graph)
	if err != nil {
		return nil, err
	}
	if d.opts.DebugBundlePath == "" {
		return out, nil
	}

	f, err := os.Create(d.opts.DebugBundlePath)
	if err != nil {
		return out, fmt.Errorf("lower: opening debug bundle: %w", err)
	}
	defer f.Close()
	if err := ramast.WriteDebugBundle(f, out); err != nil {
		return out, fmt.Errorf("lower: writing debug bundle: %w", err)
	}
	d.logger.Printf("wrote debug bundle to %s", d.opts.DebugBundlePath)
	return out, nil
}
