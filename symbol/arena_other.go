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

//go:build !unix

package symbol

// newArenaMem on non-unix platforms falls back to a plain heap
// allocation; there is no portable anonymous-mmap syscall to reach
// for here the way vm/malloc_windows.go reaches for VirtualAlloc.
func newArenaMem(size int) []byte {
	return make([]byte, size)
}

// dropArenaMem has no OS hint to give on this platform.
func dropArenaMem(mem []byte) {}
