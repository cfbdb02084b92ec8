/*
 * write.go, part of sfio
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

package dcd

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/hyiprc/sfio/box"
	"github.com/hyiprc/sfio/fortran"
)

// Writer appends snapshots to a dcd stream, little-endian, in the charmm
// flavor the reader understands.
type Writer struct {
	w        io.Writer
	order    binary.ByteOrder
	natoms   int32
	withCell bool
	started  bool
}

// NewWriter prepares a writer for natoms atoms per snapshot. withCell
// declares whether snapshots will carry a unit-cell block; the header
// flags it, so it must be decided up front.
func NewWriter(w io.Writer, natoms int, withCell bool) *Writer {
	return &Writer{w: w, order: binary.LittleEndian, natoms: int32(natoms), withCell: withCell}
}

func (d *Writer) writeHeader() error {
	if d.natoms == 0 {
		return fmt.Errorf("dcd: writer has zero atoms per snapshot")
	}
	head := make([]byte, 84)
	copy(head, "CORD")
	if d.withCell {
		d.order.PutUint32(head[44:], 1)
	}
	d.order.PutUint32(head[80:], 2) //charmm version
	if err := fortran.PutBlock(d.w, d.order, head); err != nil {
		return err
	}
	//one empty 80-byte title
	title := make([]byte, 4+maxTitle)
	d.order.PutUint32(title, 1)
	if err := fortran.PutBlock(d.w, d.order, title); err != nil {
		return err
	}
	if err := fortran.PutInt32Block(d.w, d.order, []int32{d.natoms}); err != nil {
		return err
	}
	d.started = true
	return nil
}

// WriteFrame appends one snapshot. The box is required when the writer
// was declared withCell and ignored otherwise; x, y and z must each hold
// one value per atom.
func (d *Writer) WriteFrame(b *box.Box, x, y, z []float32) error {
	if !d.started {
		if err := d.writeHeader(); err != nil {
			return err
		}
	}
	if len(x) != int(d.natoms) || len(y) != int(d.natoms) || len(z) != int(d.natoms) {
		return fmt.Errorf("dcd: coordinates do not match the %d atoms per snapshot", d.natoms)
	}
	if d.withCell {
		if b == nil {
			return fmt.Errorf("dcd: writer declared with unit cells, got none")
		}
		o := b.Output()
		cell := []float64{o.A, o.CosGamma, o.B, o.CosBeta, o.CosAlpha, o.C}
		payload := make([]byte, 8*len(cell))
		for i, v := range cell {
			d.order.PutUint64(payload[8*i:], math.Float64bits(v))
		}
		if err := fortran.PutBlock(d.w, d.order, payload); err != nil {
			return err
		}
	}
	for _, block := range [][]float32{x, y, z} {
		payload := make([]byte, 4*len(block))
		for i, v := range block {
			d.order.PutUint32(payload[4*i:], math.Float32bits(v))
		}
		if err := fortran.PutBlock(d.w, d.order, payload); err != nil {
			return err
		}
	}
	return nil
}
