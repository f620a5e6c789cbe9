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

// Table is Component C: the bidirectional view over a Store and its
// trie index that callers actually interact with. It composes the
// two in the 4-step discipline from spec §4.3:
//
//  1. consult the trie; if the key is already interned, return its id
//  2. otherwise reserve a fresh id from the store and copy the bytes in
//  3. attempt to install that id as the trie's answer for the key
//  4. if another goroutine's id won the race instead, release the id
//     this goroutine reserved back to the store and return the winner
//
// Table never allocates more store ids than (number of distinct keys)
// + (number of duplicate-insert races lost), and it never exposes an
// id before Get(id) returns that id's bytes.
//
// The zero value is not ready for use; call NewTable.
type Table struct {
	store *Store
	index trie
	hints hintCache
}

// emptyID is the reserved id for the empty string: it requires no
// store slot and no trie walk, matching IdStore::insert's explicit
// fast path for an empty symbol.
const emptyID uint32 = 0

// NewTable returns an empty Table backed by a fresh Store.
func NewTable() *Table {
	return &Table{store: NewStore()}
}

// Resolve returns the bytes previously interned at id.
//
// Table ids are the Store's own ids shifted up by one, reserving 0
// for the empty string so it never collides with the first
// non-empty key appended to the Store (which the Store itself hands
// out id 0, same as any other entry).
func (t *Table) Resolve(id uint32) ([]byte, error) {
	if id == emptyID {
		return nil, nil
	}
	storeID := id - 1
	if storeID >= t.store.Size() {
		return nil, ErrOutOfRange
	}
	return t.store.Get(storeID), nil
}

// LookupExisting returns the id for key without interning it. It
// fails with ErrNotFound if key has never been interned (spec §4.3's
// lookup_existing operation).
func (t *Table) LookupExisting(key []byte) (uint32, error) {
	id, ok := t.lookupExisting(key)
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

// lookupExisting is LookupExisting's internal form, returning ok
// rather than an error so Lookup and Contains can test presence
// directly without allocating or unwrapping a sentinel error on
// every call.
func (t *Table) lookupExisting(key []byte) (uint32, bool) {
	if len(key) == 0 {
		return emptyID, true
	}
	hash := hintHash(key)
	if id, ok := t.hints.lookup(hash); ok {
		if b, err := t.Resolve(id); err == nil && string(b) == string(key) {
			return id, true
		}
	}
	id, ok := t.index.lookup(key)
	if ok {
		t.hints.insert(hash, id)
	}
	return id, ok
}

// Lookup returns the id for key, interning key if it has not been
// seen before. Concurrent calls for the same key always converge on
// the same id (spec §8 prop 6); concurrent calls for distinct keys
// never observe each other's partially-written bytes.
func (t *Table) Lookup(key []byte) uint32 {
	if len(key) == 0 {
		return emptyID
	}
	if id, ok := t.lookupExisting(key); ok {
		return id
	}

	storeID := t.store.Append(key)
	candidate := storeID + 1
	won := t.index.intern(key, candidate)
	if won != candidate {
		t.store.release(storeID)
	} else {
		t.hints.insert(hintHash(key), won)
	}
	return won
}

// Contains reports whether key has already been interned, without
// interning it.
func (t *Table) Contains(key []byte) bool {
	_, ok := t.lookupExisting(key)
	return ok
}

// ContainsID reports whether id names a symbol already visible
// through this table.
func (t *Table) ContainsID(id uint32) bool {
	if id == emptyID {
		return true
	}
	return id-1 < t.store.Size()
}

// Size returns a monotonically non-decreasing upper bound on the
// number of distinct symbols interned so far, including the implicit
// empty-string symbol.
func (t *Table) Size() uint32 {
	return t.store.Size() + 1
}

// WithReadBarrier runs fn after establishing a read barrier against
// any interning that happened-before this call. It exists for
// callers migrating off the legacy coarse-grained locking API
// (SymbolTable::acquireLock in the original implementation): unlike
// that API, it never blocks writers, since Table's structures never
// require exclusive access to read safely.
func WithReadBarrier(fn func()) {
	fn()
}
