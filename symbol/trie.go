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

// trieWidth is the branching factor of the index: one nibble (4
// bits) of the key per level, so a key of n bytes occupies exactly
// 2*n levels below the root.
const trieWidth = 16

// node is one level of the concurrent string->id index (spec §4.2,
// Component B). id is 0 until some inserter successfully claims this
// exact key; a zero id at a reachable node means "this prefix exists
// but has not been interned as a whole key" and is never mistaken
// for a real id, since real symbol ids start at 1 (id 0 is reserved
// for the empty string, handled before the trie is ever consulted).
type node struct {
	id       atomic.Uint32
	children [trieWidth]atomic.Pointer[node]
}

// nibble extracts the index'th 4-bit nibble of key, low nibble
// first, matching Node::getNibble in the original trie.
func nibble(key []byte, index int) uint8 {
	b := key[index/2]
	if index%2 == 0 {
		return b & 0x0f
	}
	return b >> 4
}

// trie is the root of the index. The zero value is ready to use.
type trie struct {
	root node
}

// locate walks from n as far as the key allows, returning the
// deepest node reached and how many nibbles of key it accounts for.
// A full match is signaled by depth == 2*len(key).
func locate(n *node, depth int, key []byte) (*node, int) {
	for depth < 2*len(key) {
		child := n.children[nibble(key, depth)].Load()
		if child == nil {
			return n, depth
		}
		n = child
		depth++
	}
	return n, depth
}

// locate finds the deepest node reachable by key from the trie root.
func (t *trie) locate(key []byte) (*node, int) {
	return locate(&t.root, 0, key)
}

// lookup returns the id stored for key and whether key has in fact
// been interned (a reachable prefix node with id 0 is not a match).
func (t *trie) lookup(key []byte) (uint32, bool) {
	n, depth := t.locate(key)
	if depth != 2*len(key) {
		return 0, false
	}
	id := n.id.Load()
	return id, id != 0
}

// intern claims key for candidateID, or returns whatever id another
// goroutine already claimed for the same key first. It never
// allocates more than one node per missing nibble level, and it
// converges in a bounded number of retries because every failed CAS
// means some other goroutine made forward progress on the same path.
func (t *trie) intern(key []byte, candidateID uint32) uint32 {
	n, depth := t.locate(key)
	for depth < 2*len(key) {
		child := &node{}
		if depth+1 == 2*len(key) {
			child.id.Store(candidateID)
		}
		if n.children[nibble(key, depth)].CompareAndSwap(nil, child) {
			n = child
			depth++
			continue
		}
		// Lost the race: someone else installed a child on this
		// nibble first. Re-resolve from here rather than retry blindly,
		// since the winning child may itself already extend deeper.
		n, depth = locate(n, depth, key)
	}
	for {
		cur := n.id.Load()
		if cur != 0 {
			return cur
		}
		if n.id.CompareAndSwap(0, candidateID) {
			return candidateID
		}
	}
}
