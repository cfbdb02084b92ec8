/*
 * lmpdata.go, part of sfio
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

/*Package lmpdata handles LAMMPS data files. The sections appear in a
fixed order (header, box, masses, coeffs, atoms, velocities, bonds,
angles, dihedrals, impropers); a marker line that starts a section also
ends every section that may precede it, so optional sections can be
absent without confusing the registry. The atom-line layout depends on
the atom style, read from the comment on the Atoms marker line.
*/
package lmpdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hyiprc/sfio"
	"github.com/hyiprc/sfio/box"
)

func init() {
	sfio.RegisterFormat("lmpdata",
		func(p string) (sfio.Format, error) { return New(p), nil },
		".data", ".lmp")
}

// fileSections lists each section in file order with its marker line
// pattern. The header has no marker; it runs from the top of the file to
// the first marker found.
var fileSections = []struct {
	name    string
	pattern []byte
}{
	{"header", nil},
	{"box", []byte(" xlo xhi")},
	{"masses", []byte("Masses")},
	{"coeffs", []byte("Coeffs")},
	{"atoms", []byte("Atoms")},
	{"velocities", []byte("Velocities")},
	{"bonds", []byte("Bonds")},
	{"angles", []byte("Angles")},
	{"dihedrals", []byte("Dihedrals")},
	{"impropers", []byte("Impropers")},
}

var topoSections = []string{"bonds", "angles", "dihedrals", "impropers"}

// atomColumns maps an atom style to its column layout.
var atomColumns = map[string][]string{
	"atomic":    {"id", "type", "x", "y", "z"},
	"molecular": {"id", "mol", "type", "x", "y", "z"},
	"angle":     {"id", "mol", "type", "x", "y", "z"},
	"bond":      {"id", "mol", "type", "x", "y", "z"},
	"dihedral":  {"id", "mol", "type", "x", "y", "z"},
	"charge":    {"id", "type", "q", "x", "y", "z"},
	"full":      {"id", "mol", "type", "q", "x", "y", "z"},
	"dipole":    {"id", "type", "q", "x", "y", "z", "mux", "muy", "muz"},
	"sphere":    {"id", "type", "diameter", "x", "y", "z"},
	"ellipsoid": {"id", "type", "ellipsoidflag", "density", "x", "y", "z"},
}

// Lmpdata is the data-file handler.
type Lmpdata struct {
	f     *sfio.File
	style string
}

// New prepares a handler for a data file without reading it.
func New(path string) *Lmpdata {
	d := &Lmpdata{f: sfio.NewFile(path)}
	d.f.Handler = d
	return d
}

// File returns the underlying file and its section registry.
func (d *Lmpdata) File() *sfio.File { return d.f }

// Style returns the atom style, once known from a parse of the atoms
// section (or set explicitly).
func (d *Lmpdata) Style() string { return d.style }

// SetStyle fixes the atom style instead of reading it from the Atoms
// marker comment.
func (d *Lmpdata) SetStyle(style string) error {
	if _, ok := atomColumns[style]; !ok {
		return fmt.Errorf("lmpdata: unknown atom style '%s'", style)
	}
	d.style = style
	return nil
}

// Scan resumes the scan pass from the cursor. Every marker is located in
// one chunked multi-pattern search; each match then ends the sections
// that can precede it in file order before starting its own, so an
// optional section missing from the file leaves no stray open range.
func (d *Lmpdata) Scan() error {
	h, err := d.f.Open()
	if err != nil {
		return err
	}
	defer h.Close()

	if d.f.Scanned == 0 {
		d.f.StartSection("header")
	}

	var patterns [][]byte
	for _, fs := range fileSections {
		if fs.pattern != nil {
			patterns = append(patterns, fs.pattern)
		}
	}
	locs, scanned, err := sfio.SearchInFile(h, patterns, d.f.Scanned, 0)
	if err != nil {
		return err
	}
	matches := map[string][]int64{}
	for i, p := range patterns {
		matches[string(p)] = locs[i]
	}

	for i, fs := range fileSections {
		if fs.pattern == nil {
			continue
		}
		for _, b0 := range matches[string(fs.pattern)] {
			d.f.Scanned = b0
			for _, prev := range fileSections[:i+1] {
				d.f.EndSection(prev.name)
			}
			d.f.StartSection(fs.name)
		}
	}
	d.f.Scanned = scanned
	return nil
}

// Parse converts a section into the requested shape.
func (d *Lmpdata) Parse(s *sfio.Section, shape sfio.Shape) (*sfio.Result, error) {
	if shape == sfio.ShapeText {
		return &sfio.Result{Text: s.Text()}, nil
	}
	switch s.Name {
	case "header":
		return d.parseHeader(s)
	case "box":
		return d.parseBox(s, shape)
	case "masses":
		return d.parseMasses(s)
	case "atoms":
		return d.parseAtoms(s)
	case "velocities":
		return d.parseRows(s, []string{"id", "vx", "vy", "vz"})
	case "bonds":
		return d.parseRows(s, topoColumns("bonds"))
	case "angles":
		return d.parseRows(s, topoColumns("angles"))
	case "dihedrals":
		return d.parseRows(s, topoColumns("dihedrals"))
	case "impropers":
		return d.parseRows(s, topoColumns("impropers"))
	case "coeffs":
		return &sfio.Result{Text: s.Text()}, nil
	}
	return nil, fmt.Errorf("lmpdata: no parser for section '%s'", s.Name)
}

func topoColumns(name string) []string {
	idx := 0
	for i, s := range topoSections {
		if s == name {
			idx = i
		}
	}
	n := idx + 2
	if n > 4 {
		n = 4
	}
	cols := []string{"id", "type"}
	for i := 0; i < n; i++ {
		cols = append(cols, fmt.Sprintf("atom-%d", i+1))
	}
	return cols
}

// loopLines yields comment-stripped non-empty lines, with the comment
// text alongside, skipping the first skip lines.
func loopLines(s *sfio.Section, skip int, fn func(line, comment string) error) error {
	skipped := 0
	return s.EachLine(func(raw []byte) error {
		line := string(raw)
		comment := ""
		if ix := strings.IndexByte(line, '#'); ix >= 0 {
			comment = strings.TrimSpace(line[ix+1:])
			line = line[:ix]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		if skipped < skip {
			skipped++
			return nil
		}
		return fn(line, comment)
	})
}

func (d *Lmpdata) parseHeader(s *sfio.Section) (*sfio.Result, error) {
	out := map[string]any{}
	err := loopLines(s, 0, func(line, _ string) error {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil
		}
		v, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil //title line
		}
		key := "num_" + strings.Join(fields[1:], "_")
		out[key] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sfio.Result{Map: out}, nil
}

func (d *Lmpdata) parseBox(s *sfio.Section, shape sfio.Shape) (*sfio.Result, error) {
	var lines []string
	err := loopLines(s, 0, func(line, _ string) error {
		if len(lines) < 4 {
			lines = append(lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("lmpdata: box section has %d bound lines, want at least 3", len(lines))
	}

	b := box.New()
	tilt := len(lines) > 3
	b.SetAllowTilt(tilt)
	if !tilt {
		lines = append(lines, "0.0 0.0 0.0 xy xz yz")
	}
	//values precede the labels on each line
	var vals []string
	want := []int{2, 2, 2, 3}
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < want[i] {
			return nil, fmt.Errorf("lmpdata: malformed box line '%s'", line)
		}
		vals = append(vals, fields[:want[i]]...)
	}
	if _, err := b.SetString(strings.Join(vals, " "), "lmpdata"); err != nil {
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

func (d *Lmpdata) parseMasses(s *sfio.Section) (*sfio.Result, error) {
	tbl := &sfio.Table{
		Cols:   []string{"id", "mass", "label"},
		Data:   map[string][]float64{"id": nil, "mass": nil},
		Labels: map[string][]string{"label": nil},
	}
	err := loopLines(s, 1, func(line, label string) error {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return fmt.Errorf("lmpdata: malformed mass line '%s'", line)
		}
		id, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fmt.Errorf("lmpdata: bad type id '%s'", fields[0])
		}
		mass, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("lmpdata: bad mass '%s'", fields[1])
		}
		tbl.Data["id"] = append(tbl.Data["id"], id)
		tbl.Data["mass"] = append(tbl.Data["mass"], math.Round(mass*1e6)/1e6)
		tbl.Labels["label"] = append(tbl.Labels["label"], label)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sfio.Result{Table: tbl}, nil
}

func (d *Lmpdata) parseAtoms(s *sfio.Section) (*sfio.Result, error) {
	var rows [][]string
	first := true
	err := loopLines(s, 0, func(line, comment string) error {
		if first {
			//the marker line, with the atom style as its comment
			first = false
			if d.style == "" && comment != "" {
				if _, ok := atomColumns[comment]; ok {
					d.style = comment
				}
			}
			return nil
		}
		rows = append(rows, strings.Fields(line))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if d.style == "" && len(rows) > 0 {
		d.style = styleFromWidth(len(rows[0]))
	}
	cols, ok := atomColumns[d.style]
	if !ok {
		return nil, fmt.Errorf("lmpdata: unknown atom style '%s'", d.style)
	}
	return tableFromRows(cols, rows)
}

// styleFromWidth guesses the atom style from the number of columns of
// the first atom line; ambiguous widths resolve to the most common
// style of that width.
func styleFromWidth(n int) string {
	switch n {
	case 5:
		return "atomic"
	case 6:
		return "charge"
	case 7:
		return "full"
	case 9:
		return "dipole"
	}
	return ""
}

func (d *Lmpdata) parseRows(s *sfio.Section, cols []string) (*sfio.Result, error) {
	var rows [][]string
	err := loopLines(s, 1, func(line, _ string) error {
		rows = append(rows, strings.Fields(line))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tableFromRows(cols, rows)
}

func tableFromRows(cols []string, rows [][]string) (*sfio.Result, error) {
	tbl := &sfio.Table{Cols: cols, Data: map[string][]float64{}, Labels: map[string][]string{}}
	for _, row := range rows {
		if len(row) < len(cols) {
			return nil, fmt.Errorf("lmpdata: row has %d fields, want %d", len(row), len(cols))
		}
		for i, c := range cols {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, fmt.Errorf("lmpdata: bad value '%s' in column %s", row[i], c)
			}
			tbl.Data[c] = append(tbl.Data[c], v)
		}
	}
	tbl.SortByID("id")
	return &sfio.Result{Table: tbl}, nil
}
