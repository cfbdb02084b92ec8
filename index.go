/*
 * index.go, part of sfio
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
	"fmt"
	"sort"
	"strings"
)

// StartSection marks the scan cursor as the beginning of a new instance of
// the named section. The call is a no-op while an instance is still open,
// or if the cursor has not advanced past the previous recorded end, so
// duplicate calls at the same cursor create exactly one entry.
func (f *File) StartSection(name string) {
	if name == "" {
		return
	}
	sect := f.sections[name]
	last := int64(0)
	if len(sect) > 0 {
		last = sect[len(sect)-1]
	}
	if len(sect)%2 == 0 && f.Scanned >= last {
		f.sections[name] = append(sect, f.Scanned)
	}
}

// EndSection marks the scan cursor as the end of the open instance of the
// named section. The call is a no-op unless an instance is open and the
// cursor lies strictly past its start.
func (f *File) EndSection(name string) {
	if name == "" {
		return
	}
	sect := f.sections[name]
	if len(sect)%2 == 1 && f.Scanned > sect[len(sect)-1] {
		f.sections[name] = append(sect, f.Scanned)
	}
}

// GetIndex checks index against length and resolves negative indexing.
// right=true allows index == length (one past the end, for exclusive
// upper bounds) and right-shifts negative indices by one, so that -1
// resolves to length rather than length-1. The asymmetry is intentional.
func GetIndex(index, length int64, right bool) (int64, error) {
	if length <= 0 {
		return 0, newIndexError(fmt.Sprintf(
			"index %d is out of range for length of %d", index, length))
	}
	if !right {
		ix := index
		if ix < 0 {
			ix += length
		}
		if ix < 0 || ix >= length {
			return 0, newIndexError(fmt.Sprintf(
				"index %d is out of range for length of %d", index, length))
		}
		return ix, nil
	}
	if index >= 0 {
		if index > length {
			return 0, newIndexError(fmt.Sprintf(
				"index %d is out of range for length of %d", index, length))
		}
		return index, nil
	}
	ix := index + length + 1
	if ix < 0 {
		return 0, newIndexError(fmt.Sprintf(
			"index %d is out of range for length of %d", index, length))
	}
	return ix, nil
}

// pairs returns the closed (start, end) ranges of a section, treating an
// open trailing range as closed at the scan cursor for query purposes.
// The registry itself is not mutated.
func (f *File) pairs(name string) ([][2]int64, bool) {
	sect, ok := f.sections[name]
	if !ok {
		return nil, false
	}
	n := len(sect)
	closed := make([]int64, n, n+1)
	copy(closed, sect)
	if n%2 == 1 {
		closed = append(closed, f.Scanned)
	}
	out := make([][2]int64, len(closed)/2)
	for i := range out {
		out[i] = [2]int64{closed[2*i], closed[2*i+1]}
	}
	return out, true
}

// getSection finds the stored instances of a named section overlapping the
// byte range [startByte, endByte). Negative byte indices count from the
// scan cursor, with -1 meaning the cursor itself.
func getSection(f *File, name string, startByte, endByte int64) (*Sections, error) {
	sect, ok := f.pairs(name)
	if !ok {
		all := f.SectionNames()
		sort.Strings(all)
		return nil, newNotFound(fmt.Sprintf(
			"section '%s' not found, choose from [%s]", name, strings.Join(all, " ")))
	}
	start, err := GetIndex(startByte, f.Scanned, true)
	if err != nil {
		return nil, errDecorate(err, "getSection")
	}
	end, err := GetIndex(endByte, f.Scanned, true)
	if err != nil {
		return nil, errDecorate(err, "getSection")
	}
	if start >= end {
		return nil, newIndexError(fmt.Sprintf(
			"invalid byte-range [%d, %d]", startByte, endByte))
	}
	n := len(sect)
	//first instance ending after start, last instance starting before end
	a0 := sort.Search(n, func(i int) bool { return sect[i][1] > start })
	a1 := sort.Search(n, func(i int) bool { return sect[i][0] >= end }) - 1
	if a0 >= n || a1 < 0 || a0 > a1 {
		return nil, newNotFound(fmt.Sprintf("no '%s' section in byte-range [%d, %d)", name, start, end))
	}
	items := make([]*Section, 0, a1-a0+1)
	for i := a0; i <= a1; i++ {
		s, err := NewSection(f, sect[i][0], sect[i][1]-sect[i][0], name)
		if err != nil {
			return nil, errDecorate(err, "getSection")
		}
		items = append(items, s)
	}
	return &Sections{items: items}, nil
}

// Section returns every stored instance of a named section. A single
// instance still comes back as a one-element set; use Sections.Only or
// SectionAt to get the bare Section.
func (f *File) Section(name string) (*Sections, error) {
	return getSection(f, name, 0, -1)
}

// SectionAt returns one instance of a named section by its 0-based
// discovery order. Negative instances count from the last one.
func (f *File) SectionAt(name string, instance int) (*Section, error) {
	set, err := getSection(f, name, 0, -1)
	if err != nil {
		return nil, errDecorate(err, "SectionAt")
	}
	s, err := set.At(instance)
	if err != nil {
		return nil, errDecorate(err, "SectionAt")
	}
	return s, nil
}
