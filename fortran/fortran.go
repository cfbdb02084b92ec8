/*
 * fortran.go, part of sfio
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package fortran reads and writes Fortran unformatted binary blocks.
Each block has the structure

	4 bytes int32 delimiter    block size
	block                      data
	4 bytes int32 delimiter    block size

and a block whose delimiters disagree is malformed. The helpers reinterpret
a payload's bits as a fixed-width character string or a float array; no
numeric conversion is performed.
*/
package fortran

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// GetBlock reads the next block and returns its payload. The leading and
// trailing size delimiters must match.
func GetBlock(r io.Reader, order binary.ByteOrder) ([]byte, error) {
	var m1 int32
	if err := binary.Read(r, order, &m1); err != nil {
		return nil, err
	}
	if m1 < 0 {
		return nil, &Error{fmt.Sprintf("negative block size %d", m1), nil, true}
	}
	block := make([]byte, m1)
	if err := binary.Read(r, order, block); err != nil {
		return nil, err
	}
	var m2 int32
	if err := binary.Read(r, order, &m2); err != nil {
		return nil, err
	}
	if m1 != m2 {
		return nil, &Error{fmt.Sprintf("start & end of block %d != %d", m1, m2), nil, true}
	}
	return block, nil
}

// PutBlock writes a payload as a new block, delimiters included.
func PutBlock(w io.Writer, order binary.ByteOrder, payload []byte) error {
	m := int32(len(payload))
	if err := binary.Write(w, order, m); err != nil {
		return err
	}
	if err := binary.Write(w, order, payload); err != nil {
		return err
	}
	return binary.Write(w, order, m)
}

// GetInt32Block reads the next block as int32 values.
func GetInt32Block(r io.Reader, order binary.ByteOrder) ([]int32, error) {
	b, err := GetBlock(r, order)
	if err != nil {
		return nil, errDecorate(err, "GetInt32Block")
	}
	if len(b)%4 != 0 {
		return nil, &Error{fmt.Sprintf("block size %d is not a multiple of 4", len(b)), nil, true}
	}
	out := make([]int32, len(b)/4)
	for i := range out {
		out[i] = int32(order.Uint32(b[4*i:]))
	}
	return out, nil
}

// PutInt32Block writes int32 values as a new block.
func PutInt32Block(w io.Writer, order binary.ByteOrder, vals []int32) error {
	payload := make([]byte, 4*len(vals))
	for i, v := range vals {
		order.PutUint32(payload[4*i:], uint32(v))
	}
	return PutBlock(w, order, payload)
}

// BlockString views a payload as a character string of exactly len(b)
// bytes (UTF-8 as stored, no validation).
func BlockString(b []byte) string {
	return string(b)
}

// BlockFloat32 views a payload's bits as float32 values.
func BlockFloat32(b []byte, order binary.ByteOrder) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, &Error{fmt.Sprintf("block size %d is not a multiple of 4", len(b)), nil, true}
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(order.Uint32(b[4*i:]))
	}
	return out, nil
}

// BlockFloat64 views a payload's bits as float64 values.
func BlockFloat64(b []byte, order binary.ByteOrder) ([]float64, error) {
	if len(b)%8 != 0 {
		return nil, &Error{fmt.Sprintf("block size %d is not a multiple of 8", len(b)), nil, true}
	}
	out := make([]float64, len(b)/8)
	for i := range out {
		out[i] = math.Float64frombits(order.Uint64(b[8*i:]))
	}
	return out, nil
}

//Errors

// Error is the structure for malformed-block errors.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("fortran block error: %s", err.message)
}

//Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

//BadFormat marks the error as a malformed-block condition.
func (err *Error) BadFormat() {}

type errorInt interface {
	Error() string
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(errorInt)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
