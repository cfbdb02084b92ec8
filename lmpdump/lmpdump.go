/*
 * lmpdump.go, part of sfio
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

/*Package lmpdump handles LAMMPS dump files, snapshots of atoms and various
per-atom values. Each snapshot is marked as a "frame" section holding
"header", "box" and "atoms" sub-sections; the frame markers double as the
frame index of the trajectory view.
*/
package lmpdump

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hyiprc/sfio"
	"github.com/hyiprc/sfio/box"
)

func init() {
	sfio.RegisterFormat("lmpdump",
		func(p string) (sfio.Format, error) { return New(p), nil },
		".dump", ".lmpdump")
}

var (
	markTimestep = []byte("ITEM: TIMESTEP")
	markBox      = []byte("ITEM: BOX BOUNDS")
	markAtoms    = []byte("ITEM: ATOMS")
)

// fileSections lists each section with its start and end line markers.
var fileSections = []struct {
	name       string
	start, end []byte
}{
	{"frame", markTimestep, markTimestep},
	{"header", markTimestep, markBox},
	{"box", markBox, markAtoms},
	{"atoms", markAtoms, markTimestep},
}

// Lmpdump is the dump-file handler.
type Lmpdump struct {
	f *sfio.File
}

// New prepares a handler for a dump file without reading it.
func New(path string) *Lmpdump {
	d := &Lmpdump{f: sfio.NewFile(path)}
	d.f.Handler = d
	return d
}

// File returns the underlying file and its section registry.
func (d *Lmpdump) File() *sfio.File { return d.f }

// Scan resumes the scan pass from the cursor, locating every marker line
// in one chunked multi-pattern search and then replaying the matches
// through the section registry in marker order. Start/end guards make the
// replay idempotent, so rescanning an already-scanned file is a no-op.
func (d *Lmpdump) Scan() error {
	h, err := d.f.Open()
	if err != nil {
		return err
	}
	defer h.Close()

	patterns := [][]byte{markTimestep, markBox, markAtoms}
	locs, scanned, err := sfio.SearchInFile(h, patterns, d.f.Scanned, 0)
	if err != nil {
		return err
	}
	matches := map[string][]int64{}
	for i, p := range patterns {
		matches[string(p)] = locs[i]
	}

	for _, fs := range fileSections {
		starts := matches[string(fs.start)]
		ends := matches[string(fs.end)]
		n := len(starts)
		if len(ends) > n {
			n = len(ends)
		}
		for i := 0; i < n; i++ {
			if i < len(ends) {
				d.f.Scanned = ends[i]
				d.f.EndSection(fs.name)
			}
			if i < len(starts) {
				d.f.Scanned = starts[i]
				d.f.StartSection(fs.name)
			}
			if i < len(ends) {
				d.f.Scanned = ends[i]
				d.f.EndSection(fs.name)
			}
		}
	}

	d.f.Scanned = scanned
	return nil
}

// ScanLines is the line-by-line scan pass. It marks the same sections at
// the same offsets as Scan; it exists as the reference the chunked pass
// is checked against.
func (d *Lmpdump) ScanLines() error {
	h, err := d.f.Open()
	if err != nil {
		return err
	}
	defer h.Close()
	if _, err := h.Seek(d.f.Scanned, io.SeekStart); err != nil {
		return err
	}

	rd := bufio.NewReader(h)
	pos := d.f.Scanned
	for {
		line, err := rd.ReadBytes('\n')
		if len(line) > 0 {
			d.f.Scanned = pos
			switch {
			case bytes.HasPrefix(line, markTimestep):
				d.f.EndSection("frame")
				d.f.EndSection("atoms")
				d.f.StartSection("frame")
				d.f.StartSection("header")
			case bytes.HasPrefix(line, markBox):
				d.f.EndSection("header")
				d.f.StartSection("box")
			case bytes.HasPrefix(line, markAtoms):
				d.f.EndSection("box")
				d.f.StartSection("atoms")
			}
			pos += int64(len(line))
			d.f.Scanned = pos
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Parse converts a section into the requested shape. A frame parses its
// header, box and atoms sub-sections and fills all three result fields.
func (d *Lmpdump) Parse(s *sfio.Section, shape sfio.Shape) (*sfio.Result, error) {
	if shape == sfio.ShapeText {
		return &sfio.Result{Text: s.Text()}, nil
	}
	switch s.Name {
	case "frame":
		return d.parseFrame(s, shape)
	case "header":
		return d.parseHeader(s)
	case "box":
		return d.parseBox(s, shape)
	case "atoms":
		return d.parseAtoms(s)
	}
	return nil, fmt.Errorf("lmpdump: no parser for section '%s'", s.Name)
}

func (d *Lmpdump) parseFrame(s *sfio.Section, shape sfio.Shape) (*sfio.Result, error) {
	hdr, err := s.Sub("header")
	if err != nil {
		return nil, err
	}
	res, err := d.parseHeader(hdr)
	if err != nil {
		return nil, err
	}
	bx, err := s.Sub("box")
	if err != nil {
		return nil, err
	}
	bres, err := d.parseBox(bx, shape)
	if err != nil {
		return nil, err
	}
	res.Box = bres.Box
	at, err := s.Sub("atoms")
	if err != nil {
		return nil, err
	}
	ares, err := d.parseAtoms(at)
	if err != nil {
		return nil, err
	}
	res.Table = ares.Table
	return res, nil
}

func (d *Lmpdump) parseHeader(s *sfio.Section) (*sfio.Result, error) {
	out := map[string]any{}
	expect := ""
	err := s.EachLine(func(line []byte) error {
		txt := strings.TrimSpace(string(line))
		switch expect {
		case "timestep":
			fields := strings.Fields(txt)
			if len(fields) == 0 {
				return fmt.Errorf("lmpdump: bad timestep '%s'", txt)
			}
			v, err := strconv.ParseInt(fields[0], 10, 64)
			if err != nil {
				return fmt.Errorf("lmpdump: bad timestep '%s'", txt)
			}
			out["timestep"] = v
			expect = ""
			return nil
		case "num_atoms":
			v, err := strconv.ParseInt(txt, 10, 64)
			if err != nil {
				return fmt.Errorf("lmpdump: bad atom count '%s'", txt)
			}
			out["num_atoms"] = v
			expect = ""
			return nil
		}
		switch {
		case bytes.HasPrefix(line, markTimestep):
			expect = "timestep"
		case bytes.HasPrefix(line, []byte("ITEM: NUMBER OF ATOMS")):
			expect = "num_atoms"
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sfio.Result{Map: out}, nil
}

func (d *Lmpdump) parseBox(s *sfio.Section, shape sfio.Shape) (*sfio.Result, error) {
	var header string
	var bounds []string
	err := s.EachLine(func(line []byte) error {
		txt := strings.TrimSpace(string(line))
		if bytes.HasPrefix(line, markBox) {
			header = strings.TrimSpace(strings.TrimPrefix(txt, string(markBox)))
			return nil
		}
		if len(bounds) < 3 && txt != "" {
			bounds = append(bounds, txt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(bounds) != 3 {
		return nil, fmt.Errorf("lmpdump: box section has %d bound lines, want 3", len(bounds))
	}

	b := box.New()
	tilt := strings.Contains(header, "xy xz yz")
	//boundary codes trail the tilt-factor names when present
	tokens := strings.Fields(header)
	if len(tokens) >= 3 && (!tilt || len(tokens) >= 6) {
		codes := tokens[len(tokens)-3:]
		b.SetBounds(codes[0], codes[1], codes[2])
	}
	b.SetAllowTilt(tilt)
	suffix := ""
	if !tilt {
		suffix = " 0.0"
	}
	values := bounds[0] + suffix + " " + bounds[1] + suffix + " " + bounds[2] + suffix
	if _, err := b.SetString(values, "lmpdump"); err != nil {
		return nil, err
	}

	res := &sfio.Result{Box: b}
	if shape == sfio.ShapeMap {
		in := b.Input()
		res.Map = map[string]any{
			"x0": in.X0, "y0": in.Y0, "z0": in.Z0,
			"lx": in.Lx, "ly": in.Ly, "lz": in.Lz,
			"alpha": in.Alpha, "beta": in.Beta, "gamma": in.Gamma,
			"allow_tilt": in.AllowTilt,
			"bx":         in.Bx, "by": in.By, "bz": in.Bz,
		}
	}
	return res, nil
}

func (d *Lmpdump) parseAtoms(s *sfio.Section) (*sfio.Result, error) {
	var cols []string
	tbl := &sfio.Table{Data: map[string][]float64{}, Labels: map[string][]string{}}
	err := s.EachLine(func(line []byte) error {
		txt := strings.TrimSpace(string(line))
		if txt == "" {
			return nil
		}
		if cols == nil {
			if !bytes.HasPrefix(line, markAtoms) {
				return fmt.Errorf("lmpdump: atoms section does not start with '%s'", markAtoms)
			}
			cols = strings.Fields(txt)[2:]
			tbl.Cols = cols
			return nil
		}
		fields := strings.Fields(txt)
		for i, c := range cols {
			if i >= len(fields) {
				break
			}
			if v, err := strconv.ParseFloat(fields[i], 64); err == nil {
				tbl.Data[c] = append(tbl.Data[c], v)
			} else {
				tbl.Labels[c] = append(tbl.Labels[c], fields[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	tbl.SortByID("id")
	return &sfio.Result{Table: tbl}, nil
}
