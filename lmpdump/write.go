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

package lmpdump

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hyiprc/sfio"
	"github.com/hyiprc/sfio/box"
)

// WriteFrame appends one snapshot to w in dump format: timestep, atom
// count, box bounds (tilt factors included only when the box allows
// tilt) and one row per atom in the table's column order.
func WriteFrame(w io.Writer, timestep int64, b *box.Box, atoms *sfio.Table) error {
	o := b.Output()

	if _, err := fmt.Fprintf(w, "ITEM: TIMESTEP\n%d\n", timestep); err != nil {
		return err
	}
	n := atoms.Len()
	if _, err := fmt.Fprintf(w, "ITEM: NUMBER OF ATOMS\n%d\n", n); err != nil {
		return err
	}

	if o.AllowTilt {
		_, err := fmt.Fprintf(w,
			"ITEM: BOX BOUNDS xy xz yz %s %s %s\n%g %g %g\n%g %g %g\n%g %g %g\n",
			o.Bx, o.By, o.Bz,
			o.Xlo, o.Xhi, o.Xy, o.Ylo, o.Yhi, o.Xz, o.Zlo, o.Zhi, o.Yz)
		if err != nil {
			return err
		}
	} else {
		_, err := fmt.Fprintf(w,
			"ITEM: BOX BOUNDS %s %s %s\n%g %g\n%g %g\n%g %g\n",
			o.Bx, o.By, o.Bz,
			o.Xlo, o.Xhi, o.Ylo, o.Yhi, o.Zlo, o.Zhi)
		if err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "ITEM: ATOMS %s\n", strings.Join(atoms.Cols, " ")); err != nil {
		return err
	}
	row := make([]string, len(atoms.Cols))
	for i := 0; i < n; i++ {
		for j, c := range atoms.Cols {
			if vals, ok := atoms.Data[c]; ok && i < len(vals) {
				row[j] = strconv.FormatFloat(vals[i], 'g', -1, 64)
			} else if labels, ok := atoms.Labels[c]; ok && i < len(labels) {
				row[j] = labels[i]
			} else {
				row[j] = "0"
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}
