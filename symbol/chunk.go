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

package symbol

import "sync/atomic"

// arenaChunkSize is the default size of an arena chunk's backing
// allocation. Payloads larger than this get their own oversized chunk.
const arenaChunkSize = 4 << 20 // 4MiB

// chunk is a bump-allocated arena of raw bytes. Once installed, its
// backing memory never moves and never shrinks, so a []byte returned
// by alloc remains valid for the lifetime of the process: this is
// what gives interned symbols their reference stability (spec §3).
type chunk struct {
	mem    []byte
	offset atomic.Uint32
}

func newChunk(size int) *chunk {
	return &chunk{mem: newArenaMem(size)}
}

// alloc bump-allocates n bytes from the chunk. It returns ok=false
// (never blocking, never allocating) if the chunk does not have n
// bytes remaining; the caller installs a fresh chunk and retries.
func (c *chunk) alloc(n int) (buf []byte, ok bool) {
	for {
		off := c.offset.Load()
		next := off + uint32(n)
		if int(next) > len(c.mem) {
			return nil, false
		}
		if c.offset.CompareAndSwap(off, next) {
			return c.mem[off:next:next], true
		}
	}
}
