/*
 * convert.go, part of sfio
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

package box

import (
	"math"
	"strconv"
	"strings"
)

// alias maps tool names to the representation they use.
var alias = map[string]string{
	"vmd":    "lattice",
	"poscar": "basis",
	"vasp":   "basis",
}

// ParseInput splits a string of numbers, separated by commas and/or
// whitespace, into float values.
func ParseInput(s string) ([]float64, error) {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, ",", " ")
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, newError("missing box input parameters")
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, newError("malformed box input value %q", f)
		}
		out[i] = v
	}
	return out, nil
}

// Guess identifies the representation of a flat value list. Nine values
// are lammps data bounds when each lo precedes its hi, lammps dump
// bounds when the lo/hi pairs sit at the dump positions, and a basis
// matrix otherwise. Six values are a dcd unit cell when the cosine slots
// stay within [-1, 1], and lattice parameters otherwise.
func Guess(v []float64) (string, error) {
	switch len(v) {
	case 9:
		if v[0] < v[1] && v[2] < v[3] && v[4] < v[5] {
			return "lmpdata", nil
		}
		if v[0] < v[1] && v[3] < v[4] && v[6] < v[7] {
			return "lmpdump", nil
		}
		return "basis", nil
	case 6:
		if v[1] <= 1 && v[3] <= 1 && v[4] <= 1 {
			return "dcd", nil
		}
		return "lattice", nil
	}
	return "", newError("incorrect box input parameters: %d values", len(v))
}

// Set applies a flat value list to the box, guessing the representation
// when typ is empty. Tool names ("vmd", "poscar", "vasp") resolve to the
// representation they use. Returns the representation applied.
func (B *Box) Set(v []float64, typ string) (string, error) {
	if t, ok := alias[typ]; ok {
		typ = t
	}
	if typ == "" {
		t, err := Guess(v)
		if err != nil {
			return "", err
		}
		typ = t
	}
	var err error
	switch typ {
	case "basis":
		err = B.FromBasis(v)
	case "lattice":
		err = B.FromLattice(v)
	case "dcd":
		err = B.FromDCD(v)
	case "lmpdata":
		err = B.FromLmpdata(v)
	case "lmpdump":
		err = B.FromLmpdump(v)
	default:
		err = newError("unknown box representation %q", typ)
	}
	if err != nil {
		return "", err
	}
	B.checkTilt()
	return typ, nil
}

// SetString parses and applies a textual value list, see Set.
func (B *Box) SetString(s, typ string) (string, error) {
	v, err := ParseInput(s)
	if err != nil {
		return "", err
	}
	return B.Set(v, typ)
}

// FromBasis sets lengths and angles from a row-major 3x3 basis matrix
//
//	| v_a[0], v_a[1], v_a[2] |
//	| v_b[0], v_b[1], v_b[2] |
//	| v_c[0], v_c[1], v_c[2] |
//
// The bounding-box lengths are the diagonal entries; the angles come
// from the normalized rows. The origin is left untouched.
func (B *Box) FromBasis(v []float64) error {
	if len(v) != 9 {
		return newError("basis needs 9 values, got %d", len(v))
	}
	u := normalizeRows(matFromSlice(v))
	u0, u1, u2 := rowOf(u, 0), rowOf(u, 1), rowOf(u, 2)
	B.in.Lx, B.in.Ly, B.in.Lz = v[0], v[4], v[8]
	B.in.Alpha = math.Acos(dot3(u1, u2)) * rad2deg
	B.in.Beta = math.Acos(dot3(u0, u2)) * rad2deg
	B.in.Gamma = math.Acos(dot3(u0, u1)) * rad2deg
	B.checkTilt()
	return nil
}

// FromLattice sets lengths and angles from lattice parameters
// a, b, c, alpha, beta, gamma (angles in degrees).
func (B *Box) FromLattice(v []float64) error {
	if len(v) != 6 {
		return newError("lattice needs 6 values, got %d", len(v))
	}
	a, b, c := v[0], v[1], v[2]
	ca := math.Cos(v[3] * deg2rad)
	cb := math.Cos(v[4] * deg2rad)
	cg := math.Cos(v[5] * deg2rad)
	return B.FromDCD([]float64{a, cg, b, cb, ca, c})
}

// FromDCD sets lengths and angles from a dcd unit-cell record
// a, cos_gamma, b, cos_beta, cos_alpha, c.
func (B *Box) FromDCD(v []float64) error {
	if len(v) != 6 {
		return newError("dcd unit cell needs 6 values, got %d", len(v))
	}
	a, cg, b, cb, ca, c := v[0], v[1], v[2], v[3], v[4], v[5]
	B.in.Lx = a
	B.in.Ly = b * math.Sqrt(1.0-cg*cg)
	B.in.Lz = c * math.Sqrt(1.0-cb*cb-(ca-cg*cb)*(ca-cg*cb)/(1.0-cg*cg))
	B.in.Alpha = math.Acos(ca) * rad2deg
	B.in.Beta = math.Acos(cb) * rad2deg
	B.in.Gamma = math.Acos(cg) * rad2deg
	B.checkTilt()
	return nil
}

// FromLmpdata sets origin, lengths and angles from lammps data-file
// bounds xlo, xhi, ylo, yhi, zlo, zhi, xy, xz, yz.
func (B *Box) FromLmpdata(v []float64) error {
	if len(v) != 9 {
		return newError("lmpdata bounds need 9 values, got %d", len(v))
	}
	xlo, xhi, ylo, yhi, zlo, zhi := v[0], v[1], v[2], v[3], v[4], v[5]
	xy, xz, yz := v[6], v[7], v[8]
	B.in.X0, B.in.Y0, B.in.Z0 = xlo, ylo, zlo
	return B.FromBasis([]float64{
		xhi - xlo, 0, 0,
		xy, yhi - ylo, 0,
		xz, yz, zhi - zlo,
	})
}

// FromLmpdump sets origin, lengths and angles from lammps dump-file
// bounds xlo, xhi, xy, ylo, yhi, xz, zlo, zhi, yz.
func (B *Box) FromLmpdump(v []float64) error {
	if len(v) != 9 {
		return newError("lmpdump bounds need 9 values, got %d", len(v))
	}
	return B.FromLmpdata([]float64{
		v[0], v[1], v[3], v[4], v[6], v[7], v[2], v[5], v[8],
	})
}
