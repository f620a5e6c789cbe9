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
	"errors"
	"fmt"
)

// ErrNotFound is returned by LookupExisting when the given bytes
// have never been interned. It is recoverable by the caller.
var ErrNotFound = errors.New("symbol: not found")

// ErrOutOfRange is returned by Resolve when an id is not less
// than the table's current Size. Encountering it in a release
// build indicates an earlier-pass bug; callers in a hot path
// may instead check Contains first.
var ErrOutOfRange = errors.New("symbol: id out of range")

// CapacityExhaustedError is raised by the symbol store when its id
// space (or the block directory backing it) is exhausted. It is
// always fatal: the caller should not attempt to recover, only abort.
type CapacityExhaustedError struct {
	Requested uint64
}

func (e *CapacityExhaustedError) Error() string {
	return fmt.Sprintf("symbol: capacity exhausted requesting id %d", e.Requested)
}

// AllocationFailureError wraps an underlying OS allocation failure
// (e.g. a failed mmap) encountered while growing the symbol store.
// Always fatal.
type AllocationFailureError struct {
	Err error
}

func (e *AllocationFailureError) Error() string {
	return fmt.Sprintf("symbol: allocation failure: %s", e.Err)
}

func (e *AllocationFailureError) Unwrap() error { return e.Err }
