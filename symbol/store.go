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

// Package symbol implements the concurrent, append-only symbol table
// that backs interning during bottom-up Datalog evaluation: a dense
// store of (id, bytes) pairs (Store), a concurrent string->id nibble
// trie (the index in trie.go), and the bidirectional Table that
// composes them with the insertion discipline that avoids publishing
// an id before its bytes, or burning more than a handful of ids on
// concurrent duplicate inserts.
package symbol

import "sync/atomic"

// Store is Component A: an append-only, indexed vector of interned
// byte sequences. It hands out fresh dense ids via Append and
// resolves them back to bytes via Get. It never removes or
// reassigns an id once returned.
//
// The zero value is not ready for use; call NewStore.
type Store struct {
	dir      [maxBlocks]atomic.Pointer[block]
	reserved atomic.Uint32 // count of ids handed out by Append/release bookkeeping
	size     atomic.Uint32 // monotonically non-decreasing upper bound on published ids
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Append copies b and returns a fresh id strictly greater than the
// ids returned by any call that happened-before this one began (an id
// rolled back by release is handed out again), such that Get(id) == b
// is visible to any subsequent synchronizing
// observer before Append returns.
func (s *Store) Append(b []byte) uint32 {
	id := s.reserved.Add(1) - 1
	blk := s.ensureBlock(id >> blockBits)
	blk.copyIn(int(id&(blockSize-1)), b)
	s.publish(id + 1)
	return id
}

// publish advances size to be at least upto, regardless of the
// order in which concurrent Append calls complete: size is always a
// non-decreasing upper bound, never the exact "fully contiguous"
// high-water mark, which is what spec §4.1 asks for.
func (s *Store) publish(upto uint32) {
	for {
		cur := s.size.Load()
		if cur >= upto {
			return
		}
		if s.size.CompareAndSwap(cur, upto) {
			return
		}
	}
}

// Get returns the bytes previously interned at id. It is only
// well-defined for ids returned by a prior call to Append (or, via
// Table, confirmed present with Contains); out-of-range use is a
// programmer error checked at the Table layer.
func (s *Store) Get(id uint32) []byte {
	blk := s.dir[id>>blockBits].Load()
	return blk.slots[id&(blockSize-1)]
}

// Size returns a monotonically non-decreasing upper bound on the
// number of ids currently visible through Get.
func (s *Store) Size() uint32 {
	return s.size.Load()
}

// release returns a reserved id to the store after the caller lost a
// race to install it as the canonical id for some bytes (spec
// §4.3 step 4). If id was the most recently reserved id, the
// reservation is rolled back exactly so the slot can be reused by
// the next Append; otherwise the id is permanently burned, but its
// slot is cleared so it retains no memory.
func (s *Store) release(id uint32) {
	blk := s.dir[id>>blockBits].Load()
	slot := int(id & (blockSize - 1))
	// Clear the slot before rolling the reservation back: once the
	// rollback lands, the next Append may reuse this slot for its own
	// bytes, which must not then be wiped.
	blk.slots[slot] = nil
	s.reserved.CompareAndSwap(id+1, id)
}

// ensureBlock returns the block at idx, lazily installing it via
// compare-and-swap so that exactly one thread wins installation;
// losers simply drop their speculative block for the GC to reclaim.
func (s *Store) ensureBlock(idx uint32) *block {
	if idx >= maxBlocks {
		panic(&CapacityExhaustedError{Requested: uint64(idx) * blockSize})
	}
	p := &s.dir[idx]
	if b := p.Load(); b != nil {
		return b
	}
	nb := &block{}
	if p.CompareAndSwap(nil, nb) {
		return nb
	}
	return p.Load()
}

// Close advises the OS that arena memory backing this store's
// blocks may be reclaimed. It is an optional convenience for
// long-running processes (e.g. test binaries) that create many
// short-lived stores; the Store must not be used afterwards.
func (s *Store) Close() {
	for i := range s.dir {
		blk := s.dir[i].Load()
		if blk == nil {
			continue
		}
		if c := blk.cur.Load(); c != nil {
			dropArenaMem(c.mem)
		}
	}
}
