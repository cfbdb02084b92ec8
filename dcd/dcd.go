/*
 * dcd.go, part of sfio
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

/*Package dcd handles Charmm/NAMD binary trajectory files. The file is a
sequence of Fortran unformatted blocks: a fixed header, then per snapshot
an optional unit-cell block followed by the x, y and z coordinate blocks.
The scan pass reads only the block delimiters, seeking over the payloads,
so marking the frames of a long trajectory touches a few bytes per frame.
*/
package dcd

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hyiprc/sfio"
	"github.com/hyiprc/sfio/box"
	"github.com/hyiprc/sfio/fortran"
)

func init() {
	sfio.RegisterFormat("dcd",
		func(p string) (sfio.Format, error) { return New(p), nil },
		".dcd")
}

const maxTitle = 80

// DCD is the trajectory handler.
type DCD struct {
	f          *sfio.File
	order      binary.ByteOrder
	natoms     int32
	charmm     bool
	extrablock bool
	fourdim    bool
	headerEnd  int64
}

// New prepares a handler for a dcd file without reading it.
func New(path string) *DCD {
	d := &DCD{f: sfio.NewFile(path)}
	d.f.AllowCache = false //scanning is already a few bytes per frame
	d.f.Handler = d
	return d
}

// File returns the underlying file and its section registry.
func (d *DCD) File() *sfio.File { return d.f }

// Natoms returns the number of atoms per snapshot, known after the
// header has been read.
func (d *DCD) Natoms() int { return int(d.natoms) }

// readHeader reads the fixed header, detecting endianness from the
// leading delimiter. The first thing in a dcd file is an 84; reading
// anything else little-endian means the file is big-endian.
func (d *DCD) readHeader(h io.ReadSeeker) error {
	if _, err := h.Seek(0, io.SeekStart); err != nil {
		return err
	}
	d.order = binary.LittleEndian
	var check int32
	if err := binary.Read(h, d.order, &check); err != nil {
		return err
	}
	if check != 84 {
		d.order = binary.BigEndian
	}
	if _, err := h.Seek(0, io.SeekStart); err != nil {
		return err
	}

	head, err := fortran.GetBlock(h, d.order)
	if err != nil {
		return err
	}
	if len(head) != 84 || string(head[:4]) != "CORD" {
		return fmt.Errorf("dcd: wrong magic number")
	}
	//X-plor zeroes the last header int, charmm stores its version there
	d.charmm = d.order.Uint32(head[80:]) != 0
	if !d.charmm {
		return fmt.Errorf("dcd: X-plor dcd not supported")
	}
	d.extrablock = d.order.Uint32(head[44:]) != 0
	d.fourdim = d.order.Uint32(head[48:]) == 1

	//title block, a count then that many 80-byte strings
	if _, err := fortran.GetBlock(h, d.order); err != nil {
		return err
	}

	nat, err := fortran.GetInt32Block(h, d.order)
	if err != nil {
		return err
	}
	if len(nat) != 1 {
		return fmt.Errorf("dcd: malformed atom-count block")
	}
	d.natoms = nat[0]

	pos, err := h.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	d.headerEnd = pos
	return nil
}

// skipBlock reads a block's leading delimiter and seeks past the payload
// and trailing delimiter, returning the payload size.
func skipBlock(h io.ReadSeeker, order binary.ByteOrder) (int32, error) {
	var m int32
	if err := binary.Read(h, order, &m); err != nil {
		return 0, err
	}
	if m < 0 {
		return 0, fmt.Errorf("dcd: negative block size %d", m)
	}
	if _, err := h.Seek(int64(m)+4, io.SeekCurrent); err != nil {
		return 0, err
	}
	return m, nil
}

// Scan marks the header section and one frame section per snapshot, with
// a box sub-section when the snapshot carries a unit-cell block.
func (d *DCD) Scan() error {
	h, err := d.f.Open()
	if err != nil {
		return err
	}
	defer h.Close()

	if err := d.readHeader(h); err != nil {
		return err
	}
	if d.f.Scanned == 0 {
		d.f.StartSection("header")
		d.f.Scanned = d.headerEnd
		d.f.EndSection("header")
	}

	pos := d.f.Scanned
	if pos < d.headerEnd {
		pos = d.headerEnd
	}
	if _, err := h.Seek(pos, io.SeekStart); err != nil {
		return err
	}
	for {
		frameStart := pos
		var m int32
		if err := binary.Read(h, d.order, &m); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return err
		}
		//a leading block of 4*natoms bytes is already the X coordinates;
		//anything else is the unit-cell block
		if d.extrablock && m != d.natoms*4 {
			if _, err := h.Seek(int64(m)+4, io.SeekCurrent); err != nil {
				return err
			}
			d.f.Scanned = pos
			d.f.StartSection("box")
			pos += int64(m) + 8
			d.f.Scanned = pos
			d.f.EndSection("box")
			if err := binary.Read(h, d.order, &m); err != nil {
				return err
			}
		}
		//x, then y and z
		if _, err := h.Seek(int64(m)+4, io.SeekCurrent); err != nil {
			return err
		}
		pos += int64(m) + 8
		for i := 0; i < 2; i++ {
			n, err := skipBlock(h, d.order)
			if err != nil {
				return err
			}
			pos += int64(n) + 8
		}
		if d.fourdim {
			//the last snapshot may omit the 4-D block
			n, err := skipBlock(h, d.order)
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				d.f.Scanned = frameStart
				d.f.StartSection("frame")
				d.f.Scanned = pos
				d.f.EndSection("frame")
				break
			}
			if err != nil {
				return err
			}
			pos += int64(n) + 8
		}
		d.f.Scanned = frameStart
		d.f.StartSection("frame")
		d.f.Scanned = pos
		d.f.EndSection("frame")
	}
	d.f.Scanned = pos
	return nil
}

// Parse converts a section into the requested shape. A frame yields its
// coordinates as an x/y/z table, plus the unit-cell box when present.
func (d *DCD) Parse(s *sfio.Section, shape sfio.Shape) (*sfio.Result, error) {
	if d.natoms == 0 {
		h, err := d.f.Open()
		if err != nil {
			return nil, err
		}
		err = d.readHeader(h)
		h.Close()
		if err != nil {
			return nil, err
		}
	}
	switch s.Name {
	case "header":
		return &sfio.Result{Map: map[string]any{
			"num_atoms":  int64(d.natoms),
			"charmm":     d.charmm,
			"extrablock": d.extrablock,
			"fourdim":    d.fourdim,
		}}, nil
	case "box":
		return d.parseBox(s)
	case "frame":
		return d.parseFrame(s)
	}
	return nil, fmt.Errorf("dcd: no parser for section '%s'", s.Name)
}

func (d *DCD) parseBox(s *sfio.Section) (*sfio.Result, error) {
	buf, err := s.Buffer()
	if err != nil {
		return nil, err
	}
	block, err := fortran.GetBlock(buf, d.order)
	if err != nil {
		return nil, err
	}
	cell, err := fortran.BlockFloat64(block, d.order)
	if err != nil {
		return nil, err
	}
	if len(cell) != 6 {
		return nil, fmt.Errorf("dcd: unit-cell block has %d values, want 6", len(cell))
	}
	b := box.New()
	//a, cos_gamma, b, cos_beta, cos_alpha, c
	if _, err := b.Set(cell, "dcd"); err != nil {
		return nil, err
	}
	return &sfio.Result{Box: b}, nil
}

func (d *DCD) parseFrame(s *sfio.Section) (*sfio.Result, error) {
	buf, err := s.Buffer()
	if err != nil {
		return nil, err
	}
	res := &sfio.Result{}

	block, err := fortran.GetBlock(buf, d.order)
	if err != nil {
		return nil, err
	}
	if d.extrablock && len(block) != int(d.natoms)*4 {
		cell, cerr := fortran.BlockFloat64(block, d.order)
		if cerr == nil && len(cell) == 6 {
			b := box.New()
			if _, serr := b.Set(cell, "dcd"); serr == nil {
				res.Box = b
			}
		}
		block, err = fortran.GetBlock(buf, d.order)
		if err != nil {
			return nil, err
		}
	}

	tbl := &sfio.Table{
		Cols: []string{"x", "y", "z"},
		Data: map[string][]float64{},
	}
	for _, col := range tbl.Cols {
		vals, err := fortran.BlockFloat32(block, d.order)
		if err != nil {
			return nil, err
		}
		if len(vals) != int(d.natoms) {
			return nil, fmt.Errorf("dcd: %s block has %d values, want %d", col, len(vals), d.natoms)
		}
		out := make([]float64, len(vals))
		for i, v := range vals {
			out[i] = float64(v)
		}
		tbl.Data[col] = out
		if col != "z" {
			block, err = fortran.GetBlock(buf, d.order)
			if err != nil {
				return nil, err
			}
		}
	}
	res.Table = tbl
	return res, nil
}
