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

package ramast

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

func init() {
	gob.Register(&Sequence{})
	gob.Register(&Parallel{})
	gob.Register(&Loop{})
	gob.Register(&Exit{})
	gob.Register(&Call{})
	gob.Register(&Clear{})
	gob.Register(&Swap{})
	gob.Register(&Extend{})
	gob.Register(&IO{})
	gob.Register(&Query{})
	gob.Register(&DebugInfo{})
	gob.Register(&LogRelationTimer{})
	gob.Register(&LogTimer{})
	gob.Register(&LogSize{})

	gob.Register(&Scan{})
	gob.Register(&Filter{})
	gob.Register(&Project{})
	gob.Register(&Negation{})
	gob.Register(&Conjunction{})

	gob.Register(&EmptinessCheck{})
	gob.Register(&RelationSize{})
	gob.Register(&ConjunctionCond{})
	gob.Register(&DisjunctionCond{})
	gob.Register(&Constraint{})

	gob.Register(SignedConstant{})
	gob.Register(UnsignedConstant{})
	gob.Register(FloatConstant{})
	gob.Register(TupleElement{})
	gob.Register(&IntrinsicOperator{})
	gob.Register(&UserDefinedOperator{})
	gob.Register(&PackRecord{})
	gob.Register(AutoIncrement{})
	gob.Register(SubroutineArgument{})
	gob.Register(UndefValue{})
}

// Encode serializes p with gob, the same "every variant type is
// registered up front, then encoding is exactly gob.Encoder.Encode"
// approach used for the plan tree's own ion codec, minus ion's
// column-oriented framing: ramast has no execution-time consumer
// that needs ion's columnar layout, only a debug bundle a developer
// reads back.
func Encode(w io.Writer, p *Program) error {
	return gob.NewEncoder(w).Encode(p)
}

// Decode deserializes a Program previously written by Encode.
func Decode(r io.Reader) (*Program, error) {
	var p Program
	if err := gob.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("ramast: decode: %w", err)
	}
	return &p, nil
}

// WriteDebugBundle gob-encodes p and wraps the result in zstd, for
// attaching a lowered program to a compiler diagnostic bundle
// without bloating it the way an uncompressed gob stream would.
func WriteDebugBundle(w io.Writer, p *Program) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("ramast: zstd writer: %w", err)
	}
	if err := Encode(zw, p); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ReadDebugBundle reverses WriteDebugBundle.
func ReadDebugBundle(r io.Reader) (*Program, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("ramast: zstd reader: %w", err)
	}
	defer zr.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, fmt.Errorf("ramast: zstd read: %w", err)
	}
	return Decode(&buf)
}
