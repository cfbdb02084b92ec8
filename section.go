/*
 * section.go, part of sfio
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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Section is a non-owning view of a named byte range of a File. No bytes
// are read until the section is materialized through Raw, Text, EachLine
// or Parse; every materialization opens a fresh handle.
type Section struct {
	f      *File
	Start  int64
	Nbytes int64
	Name   string
}

// NewSection builds a section view, resolving a negative start against the
// stream size and clamping the length to the available bytes.
func NewSection(f *File, startByte, numBytes int64, name string) (*Section, error) {
	size, err := f.Size()
	if err != nil {
		return nil, err
	}
	start, err := GetIndex(startByte, size, false)
	if err != nil {
		return nil, errDecorate(err, "NewSection")
	}
	n := numBytes
	if max := size - start; n > max {
		n = max
	}
	if n < 0 {
		n = 0
	}
	return &Section{f: f, Start: start, Nbytes: n, Name: name}, nil
}

// File returns the owning file.
func (s *Section) File() *File { return s.f }

// Raw reads and returns the section's bytes from a fresh handle.
func (s *Section) Raw() ([]byte, error) {
	h, err := s.f.Open()
	if err != nil {
		return nil, err
	}
	defer h.Close()
	if _, err := h.Seek(s.Start, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, s.Nbytes)
	n, err := io.ReadFull(h, buf)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		err = nil
	}
	return buf[:n], err
}

// Text decodes the section as UTF-8 and strips trailing whitespace.
// Decode failure is not an error; it yields the empty string.
func (s *Section) Text() string {
	raw, err := s.Raw()
	if err != nil || !utf8.Valid(raw) {
		return ""
	}
	return strings.TrimRight(string(raw), " \t\r\n")
}

// Buffer materializes the section into an in-memory reader.
func (s *Section) Buffer() (*bytes.Reader, error) {
	raw, err := s.Raw()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(raw), nil
}

// EachLine calls fn for every line of the section, including the trailing
// newline byte when present. Iteration stops at the first non-nil error.
func (s *Section) EachLine(fn func(line []byte) error) error {
	buf, err := s.Buffer()
	if err != nil {
		return err
	}
	rd := bufio.NewReader(buf)
	for {
		line, err := rd.ReadBytes('\n')
		if len(line) > 0 {
			if ferr := fn(line); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Sub returns the first instance of a named sub-section restricted to this
// section's byte range.
func (s *Section) Sub(name string) (*Section, error) {
	set, err := s.SubAll(name)
	if err != nil {
		return nil, errDecorate(err, "Sub")
	}
	return set.items[0], nil
}

// SubAll returns every instance of a named sub-section restricted to this
// section's byte range.
func (s *Section) SubAll(name string) (*Sections, error) {
	return getSection(s.f, name, s.Start, s.Start+s.Nbytes)
}

// Parse delegates to the owning file's handler.
func (s *Section) Parse(shape Shape) (*Result, error) {
	if s.f.Handler == nil {
		return nil, newValueError(fmt.Sprintf(
			"no handler attached to file '%s'", s.f.Name))
	}
	return s.f.Handler.Parse(s, shape)
}

// -----------------------------------------------

// Sections is an ordered set of section instances.
type Sections struct {
	items []*Section
}

// Len returns the number of instances.
func (S *Sections) Len() int { return len(S.items) }

// At returns one instance; negative indices count from the end.
func (S *Sections) At(i int) (*Section, error) {
	ix, err := GetIndex(int64(i), int64(len(S.items)), false)
	if err != nil {
		return nil, errDecorate(err, "At")
	}
	return S.items[ix], nil
}

// Only returns the single instance of a one-element set.
func (S *Sections) Only() (*Section, error) {
	if len(S.items) != 1 {
		return nil, newIndexError(fmt.Sprintf(
			"expected a single section, have %d", len(S.items)))
	}
	return S.items[0], nil
}

// Pick returns a new set holding the instances at the given indices, in
// the given order. Negative indices count from the end.
func (S *Sections) Pick(ix []int) (*Sections, error) {
	out := make([]*Section, 0, len(ix))
	for _, i := range ix {
		s, err := S.At(i)
		if err != nil {
			return nil, errDecorate(err, "Pick")
		}
		out = append(out, s)
	}
	return &Sections{items: out}, nil
}

// Each calls fn for every instance in order.
func (S *Sections) Each(fn func(s *Section) error) error {
	for _, s := range S.items {
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}
