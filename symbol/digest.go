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

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// FreezeDigest returns a 256-bit digest of the ids [0, Size()) in
// order, each paired with its bytes. Two tables built by interning
// the same keys in the same order produce the same digest, since the
// digest is a function of the final (id -> bytes) assignment and not
// of insertion timing; tables whose concurrent inserts assigned ids
// in a different order produce different digests.
//
// It is meant for callers that persist a table's ids across a
// compiler invocation (spec §6's "persist ids" external contract)
// and need a cheap way to assert the two tables agree before trusting
// a cached plan keyed by those ids.
func (t *Table) FreezeDigest() [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails for an oversized key, and nil
		// never qualifies.
		panic(err)
	}

	var lenBuf [4]byte
	n := t.store.Size()
	for id := uint32(0); id < n; id++ {
		b := t.store.Get(id)
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
		h.Write(lenBuf[:])
		h.Write(b)
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
