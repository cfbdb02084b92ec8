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

package lmpdata

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hyiprc/sfio"
	"github.com/hyiprc/sfio/box"
)

// Snapshot is one system ready to be written as a data file.
type Snapshot struct {
	Style  string
	Box    *box.Box
	Masses *sfio.Table
	Atoms  *sfio.Table
	//topology tables keyed "bonds", "angles", "dihedrals", "impropers"
	Topo map[string]*sfio.Table
}

// Write renders the snapshot as a LAMMPS data file: commented title,
// counts, type counts, box bounds, then one block per populated table.
// An orthogonal box gets its tilt line commented out.
func (sn *Snapshot) Write(w io.Writer, comment string) error {
	style := sn.Style
	if style == "" {
		if _, ok := sn.Atoms.Data["q"]; ok {
			style = "full"
		} else {
			style = "atomic"
		}
	}
	cols, ok := atomColumns[style]
	if !ok {
		return fmt.Errorf("lmpdata: unknown atom style '%s'", style)
	}

	title := "LAMMPS data file.\n" + time.Now().Format("2006-01-02 15:04:05") + "\n" + comment
	for _, line := range strings.Split(strings.TrimRight(title, "\n"), "\n") {
		if _, err := fmt.Fprintf(w, "# %s\n", line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	//counts, atoms first then topology in file order
	if _, err := fmt.Fprintf(w, " %d atoms\n", sn.Atoms.Len()); err != nil {
		return err
	}
	for _, sect := range topoSections {
		t, ok := sn.Topo[sect]
		if !ok || t.Len() == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, " %d %s\n", t.Len(), sect); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, " %d atom types\n", countTypes(sn.Atoms)); err != nil {
		return err
	}
	for _, sect := range topoSections {
		t, ok := sn.Topo[sect]
		if !ok || t.Len() == 0 {
			continue
		}
		//singular form in the type-count line
		if _, err := fmt.Fprintf(w, " %d %s types\n", countTypes(t), sect[:len(sect)-1]); err != nil {
			return err
		}
	}

	o := sn.Box.Output()
	ortho := ""
	if o.Xy+o.Xz+o.Yz == 0 {
		ortho = "#"
	}
	_, err := fmt.Fprintf(w,
		" %.7f %.7f  xlo xhi\n %.7f %.7f  ylo yhi\n %.7f %.7f  zlo zhi\n%s %.7f %.7f %.7f  xy xz yz\n",
		o.Xlo, o.Xhi, o.Ylo, o.Yhi, o.Zlo, o.Zhi, ortho, o.Xy, o.Xz, o.Yz)
	if err != nil {
		return err
	}

	if sn.Masses != nil && sn.Masses.Len() > 0 {
		if _, err := fmt.Fprintf(w, "\n Masses\n\n"); err != nil {
			return err
		}
		ids := sn.Masses.Data["id"]
		masses := sn.Masses.Data["mass"]
		labels := sn.Masses.Labels["label"]
		for i := range ids {
			lbl := ""
			if i < len(labels) && labels[i] != "" {
				lbl = " # " + labels[i]
			}
			if _, err := fmt.Fprintf(w, " %d %.6g%s\n", int64(ids[i]), masses[i], lbl); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\n Atoms  # %s\n\n", style); err != nil {
		return err
	}
	if err := writeRows(w, sn.Atoms, cols); err != nil {
		return err
	}

	for _, sect := range topoSections {
		t, ok := sn.Topo[sect]
		if !ok || t.Len() == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n %s\n\n", strings.ToUpper(sect[:1])+sect[1:]); err != nil {
			return err
		}
		if err := writeRows(w, t, t.Cols); err != nil {
			return err
		}
	}

	if hasVelocities(sn.Atoms) {
		if _, err := fmt.Fprintf(w, "\n Velocities\n\n"); err != nil {
			return err
		}
		if err := writeRows(w, sn.Atoms, []string{"id", "vx", "vy", "vz"}); err != nil {
			return err
		}
	}
	return nil
}

//integer-valued columns keep integer formatting on output
var intCols = map[string]bool{
	"id": true, "mol": true, "type": true, "ellipsoidflag": true,
	"atom-1": true, "atom-2": true, "atom-3": true, "atom-4": true,
}

func writeRows(w io.Writer, t *sfio.Table, cols []string) error {
	n := t.Len()
	row := make([]string, len(cols))
	for i := 0; i < n; i++ {
		for j, c := range cols {
			vals, ok := t.Data[c]
			if !ok || i >= len(vals) {
				row[j] = "nan"
				continue
			}
			if intCols[c] {
				row[j] = strconv.FormatInt(int64(vals[i]), 10)
			} else {
				row[j] = strconv.FormatFloat(vals[i], 'f', 6, 64)
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}

func countTypes(t *sfio.Table) int {
	seen := map[float64]bool{}
	for _, v := range t.Data["type"] {
		seen[v] = true
	}
	return len(seen)
}

func hasVelocities(t *sfio.Table) bool {
	_, vx := t.Data["vx"]
	_, vy := t.Data["vy"]
	_, vz := t.Data["vz"]
	return vx && vy && vz
}
