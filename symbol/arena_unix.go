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

//go:build unix

package symbol

import "golang.org/x/sys/unix"

// newArenaMem reserves an anonymous, zero-filled region to back a
// chunk's byte payloads so that interned strings do not each become
// a separate small heap allocation.
func newArenaMem(size int) []byte {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		panic(&AllocationFailureError{Err: err})
	}
	return mem
}

// dropArenaMem advises the kernel that the region is no longer
// needed. It is only called from Store.Close, which is an optional
// convenience for long-running test binaries that create many
// short-lived tables; ordinary compiler use lets the process exit
// reclaim the mapping.
func dropArenaMem(mem []byte) {
	if len(mem) == 0 {
		return
	}
	_ = unix.Madvise(mem, unix.MADV_FREE)
}
