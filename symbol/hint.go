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
	"sync/atomic"

	"github.com/dchest/siphash"
)

// hintWays is the number of entries per hash bucket. A small
// associative cache tolerates the rare collision without a
// correctness hazard, since every hit is re-verified by an exact
// byte comparison before it is trusted.
const hintWays = 4

// hintSlots is the number of buckets in a hint cache; must be a
// power of two.
const hintSlots = 1024

// hintK0, hintK1 seed the per-process siphash keys used to index the
// hint cache. They need not be secret or randomized across runs: the
// cache is a best-effort accelerator, not a hash table relied on for
// correctness, so a fixed seed keeps lookups reproducible for tests.
const hintK0, hintK1 = 0x736f7566666c65, 0x68696e7463616368

// hintEntry records one cached (hash, id) observation. The key bytes
// are not kept: since two distinct symbols may share a hash, the
// caller validates a bucket hit against the Store's bytes for that id
// before trusting it.
type hintEntry struct {
	hash atomic.Uint64
	id   atomic.Uint32
}

// hintCache is a fixed-size, lossy accelerator in front of the
// nibble trie: a hit still costs a byte comparison against the
// authoritative Store entry, and a miss always falls back to the
// full trie walk. It exists purely to shortcut repeat lookups of the
// same long key, the case the trie itself handles in O(len(key))
// nibble hops.
type hintCache struct {
	buckets [hintSlots][hintWays]hintEntry
}

func hintHash(key []byte) uint64 {
	return siphash.Hash(hintK0, hintK1, key)
}

// lookup returns a candidate id for key if the cache holds one; the
// caller must still confirm it against the Store before trusting it.
func (h *hintCache) lookup(hash uint64) (uint32, bool) {
	bucket := &h.buckets[hash&(hintSlots-1)]
	for i := range bucket {
		if bucket[i].hash.Load() == hash {
			if id := bucket[i].id.Load(); id != 0 {
				return id, true
			}
		}
	}
	return 0, false
}

// insert records key's id at the bucket for hash, evicting the first
// slot whenever none already matches; races between concurrent
// inserters at worst waste a cache slot, never corrupt state, since
// every reader reconfirms against the Store.
func (h *hintCache) insert(hash uint64, id uint32) {
	bucket := &h.buckets[hash&(hintSlots-1)]
	for i := range bucket {
		if bucket[i].hash.Load() == hash {
			bucket[i].id.Store(id)
			return
		}
	}
	bucket[0].hash.Store(hash)
	bucket[0].id.Store(id)
}
