/*
 * interfaces.go, part of sfio
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

package sfio

import (
	"sort"

	"github.com/hyiprc/sfio/box"
)

// Shape selects the output form of a parse.
type Shape int

const (
	//ShapeMap requests key/value output (headers, box input fields).
	ShapeMap Shape = iota
	//ShapeTable requests columnar output (atoms, velocities, topology).
	ShapeTable
	//ShapeBox requests a box.Box built from a geometry section.
	ShapeBox
	//ShapeText requests the section's decoded text.
	ShapeText
)

// Result is the outcome of parsing a section into a requested shape.
// Parse fills the field matching the shape; a handler may fill more than
// one when the section naturally carries several (a trajectory frame has
// a header map, a box and an atoms table).
type Result struct {
	Map   map[string]any
	Table *Table
	Box   *box.Box
	Text  string
}

// Format is the contract a file-format handler implements: a forward Scan
// pass that marks section boundaries on the underlying File, and a Parse
// step that converts a section's bytes into a requested shape.
type Format interface {
	File() *File
	Scan() error
	Parse(s *Section, shape Shape) (*Result, error)
}

// Table is a columnar numeric table, with optional string side columns
// (mass labels, boundary codes) kept apart from the numeric data.
type Table struct {
	Cols   []string
	Data   map[string][]float64
	Labels map[string][]string
}

// Len returns the number of rows.
func (T *Table) Len() int {
	if len(T.Cols) == 0 {
		return 0
	}
	return len(T.Data[T.Cols[0]])
}

// SortByID reorders all columns by the named column, ascending.
// Missing column is a no-op.
func (T *Table) SortByID(col string) {
	id, ok := T.Data[col]
	if !ok {
		return
	}
	order := make([]int, len(id))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return id[order[a]] < id[order[b]] })
	for k, v := range T.Data {
		out := make([]float64, len(v))
		for i, j := range order {
			out[i] = v[j]
		}
		T.Data[k] = out
	}
	for k, v := range T.Labels {
		out := make([]string, len(v))
		for i, j := range order {
			if j < len(v) {
				out[i] = v[j]
			}
		}
		T.Labels[k] = out
	}
}
