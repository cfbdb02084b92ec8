/*
 * report.go, part of sfio
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
	"fmt"
	"strings"
)

// Report renders the box in the named representation, or every
// representation when typ is "all" or empty. Tool-name aliases are
// accepted.
func (B *Box) Report(typ string) string {
	o := B.Output()

	basis := fmt.Sprintf(
		" %15.9f  %15.9f  %15.9f\n %15.9f  %15.9f  %15.9f\n %15.9f  %15.9f  %15.9f",
		o.V.At(0, 0), o.V.At(0, 1), o.V.At(0, 2),
		o.V.At(1, 0), o.V.At(1, 1), o.V.At(1, 2),
		o.V.At(2, 0), o.V.At(2, 1), o.V.At(2, 2),
	)

	lattice := fmt.Sprintf(
		"%g %g %g %g %g %g  a b c alpha beta gamma",
		o.A, o.B, o.C, o.Alpha, o.Beta, o.Gamma,
	)

	lmpdata := fmt.Sprintf(
		" %.7f %.7f  xlo xhi\n %.7f %.7f  ylo yhi\n %.7f %.7f  zlo zhi\n %.7f %.7f %.7f  xy xz yz",
		o.Xlo, o.Xhi, o.Ylo, o.Yhi, o.Zlo, o.Zhi, o.Xy, o.Xz, o.Yz,
	)

	lmpdump := fmt.Sprintf(
		"ITEM: BOX BOUNDS xy xz yz %s %s %s\n%.7f %.7f %.7f  xlo xhi xy\n%.7f %.7f %.7f  ylo yhi xz\n%.7f %.7f %.7f  zlo zhi yz",
		o.Bx, o.By, o.Bz,
		o.Xlo, o.Xhi, o.Xy, o.Ylo, o.Yhi, o.Xz, o.Zlo, o.Zhi, o.Yz,
	)

	dcd := fmt.Sprintf(
		"%g %g %g %g %g %g  a cos_gamma b cos_beta cos_alpha c",
		o.A, o.CosGamma, o.B, o.CosBeta, o.CosAlpha, o.C,
	)

	if t, ok := alias[typ]; ok {
		typ = t
	}
	switch typ {
	case "basis":
		return basis
	case "lattice":
		return lattice
	case "lmpdata":
		return lmpdata
	case "lmpdump":
		return lmpdump
	case "dcd":
		return dcd
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n# ----- input parameters (origin, bb-length, angle, boundary) -----\n%+v\n", B.in)
	fmt.Fprintf(&b, "\n# ----- basis Vectors -----\n%s\n", basis)
	fmt.Fprintf(&b, "\n# ----- lattice Parameters -----\n%s\n", lattice)
	b.WriteString("# alpha is between b c, beta a c, gamma a b\n")
	fmt.Fprintf(&b, "\n# ----- lammps data file -----\n%s\n", lmpdata)
	fmt.Fprintf(&b, "\n# ----- lammps dump file -----\n%s\n", lmpdump)
	fmt.Fprintf(&b, "\n# ----- dcd file ----\n%s\n", dcd)
	return b.String()
}

func (B *Box) String() string {
	return B.Report("all")
}
