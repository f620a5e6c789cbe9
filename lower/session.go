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
	"log"
	"os"

	"github.com/google/uuid"
)

// newSessionLogger returns a *log.Logger prefixed with a fresh
// invocation id, so every diagnostic a single Driver.Lower call
// produces can be correlated in a log stream shared with other
// concurrent invocations, the same lightweight tagging
// handler_query.go applies to an incoming query via its queryID.
func newSessionLogger() (*log.Logger, uuid.UUID) {
	id := uuid.New()
	return log.New(os.Stderr, "lower["+id.String()+"] ", log.LstdFlags), id
}
