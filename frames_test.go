/*
 * frames_test.go, part of sfio
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
	"reflect"
	"strings"
	"testing"
)

// tenFrames builds a file of ten fixed-width frames and marks them.
func tenFrames(t *testing.T) *File {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, "frame %d\n", i) //8 bytes each
	}
	f := tempFile(t, sb.String())
	for i := int64(0); i < 10; i++ {
		f.Scanned = i * 8
		f.StartSection("frame")
		f.Scanned = i*8 + 8
		f.EndSection("frame")
	}
	f.Scanned = 80
	return f
}

func TestFramesLenAndFrame(t *testing.T) {
	f := tenFrames(t)
	fr := f.Frames()
	if fr.Len() != 10 {
		t.Fatalf("len = %d, want 10", fr.Len())
	}
	s, err := fr.Frame(-1)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "frame 9" {
		t.Errorf("last frame = %q, want %q", got, "frame 9")
	}
	if _, err := fr.Frame(10); err == nil {
		t.Error("frame 10 should be out of range")
	}
}

func TestFramesFullSliceIsSameView(t *testing.T) {
	f := tenFrames(t)
	fr := f.Frames()
	got, err := fr.Slice(NoBound, NoBound, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != fr {
		t.Error("full-range slice should return the same view")
	}
	ix := make([]int, 10)
	for i := range ix {
		ix[i] = i
	}
	got, err = fr.Pick(ix)
	if err != nil {
		t.Fatal(err)
	}
	if got != fr {
		t.Error("identity pick should return the same view")
	}
}

func TestFramesSlice(t *testing.T) {
	f := tenFrames(t)
	fr := f.Frames()

	v, err := fr.Slice(1, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(v.Index(), want) {
		t.Errorf("index = %v, want %v", v.Index(), want)
	}

	v, err = fr.Slice(NoBound, NoBound, -1)
	if err != nil {
		t.Fatal(err)
	}
	if v.Len() != 10 || v.Index()[0] != 9 {
		t.Errorf("reversed view starts at %d, want 9", v.Index()[0])
	}

	v, err = fr.Slice(-3, NoBound, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{7, 8, 9}; !reflect.DeepEqual(v.Index(), want) {
		t.Errorf("index = %v, want %v", v.Index(), want)
	}

	if _, err := fr.Slice(0, 11, 1); err == nil {
		t.Error("slice past the end should fail, not clamp")
	}
	if _, err := fr.Slice(0, 5, 0); err == nil {
		t.Error("zero step should fail")
	}
}

func TestFramesViewComposition(t *testing.T) {
	f := tenFrames(t)
	fr := f.Frames()

	v, err := fr.Slice(1, NoBound, 1) //frames 1..9
	if err != nil {
		t.Fatal(err)
	}
	if v.Len() != 9 {
		t.Fatalf("len = %d, want 9", v.Len())
	}

	//slicing the view composes against the root frame numbers
	w, err := v.Slice(0, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(w.Index(), want) {
		t.Errorf("index = %v, want %v", w.Index(), want)
	}

	s, err := v.Frame(0)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "frame 1" {
		t.Errorf("view frame 0 = %q, want %q", got, "frame 1")
	}

	//a 9-frame view cannot be sliced as if it had 10
	if _, err := v.Slice(0, 10, 1); err == nil {
		t.Error("overlong slice of a view should fail")
	}

	p, err := v.Pick([]int{-1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{9, 1}; !reflect.DeepEqual(p.Index(), want) {
		t.Errorf("index = %v, want %v", p.Index(), want)
	}
}

func TestFramesEmptySelection(t *testing.T) {
	f := tenFrames(t)
	fr := f.Frames()

	//an empty slice is an empty view, not the identity
	v, err := fr.Slice(2, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if v.Len() != 0 {
		t.Errorf("empty slice has len %d, want 0", v.Len())
	}
	if ix := v.Index(); len(ix) != 0 {
		t.Errorf("empty slice index = %v, want none", ix)
	}
	if _, err := v.Frame(0); err == nil {
		t.Error("frame 0 of an empty view should be out of range")
	}

	p, err := fr.Pick([]int{})
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 0 {
		t.Errorf("empty pick has len %d, want 0", p.Len())
	}

	//same through a sub-view
	w, err := fr.Slice(1, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	v, err = w.Slice(3, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if v.Len() != 0 {
		t.Errorf("empty sub-view slice has len %d, want 0", v.Len())
	}
}

func TestFramesOpenLastRange(t *testing.T) {
	//an open trailing frame counts, closed at the cursor for reads
	f := tempFile(t, "frame 0\nframe 1\n")
	f.Scanned = 0
	f.StartSection("frame")
	f.Scanned = 8
	f.EndSection("frame")
	f.StartSection("frame")
	f.Scanned = 16

	fr := f.Frames()
	if fr.Len() != 2 {
		t.Fatalf("len = %d, want 2", fr.Len())
	}
	s, err := fr.Frame(1)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "frame 1" {
		t.Errorf("open frame = %q, want %q", got, "frame 1")
	}
}
