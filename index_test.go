/*
 * index_test.go, part of sfio
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
	"os"
	"path/filepath"
	"testing"
)

func TestGetIndexLeft(t *testing.T) {
	const L = 5
	cases := []struct {
		in   int64
		want int64
		ok   bool
	}{
		{0, 0, true},
		{4, 4, true},
		{5, 0, false},
		{-1, 4, true},
		{-5, 0, true},
		{-6, 0, false},
	}
	for _, c := range cases {
		got, err := GetIndex(c.in, L, false)
		if c.ok && err != nil {
			t.Errorf("GetIndex(%d, %d, false) failed: %v", c.in, L, err)
		}
		if !c.ok && err == nil {
			t.Errorf("GetIndex(%d, %d, false) should have failed", c.in, L)
		}
		if c.ok && got != c.want {
			t.Errorf("GetIndex(%d, %d, false) = %d, want %d", c.in, L, got, c.want)
		}
	}
}

// The right-bound form shifts negative indices by one so -1 can name the
// position one past the end.
func TestGetIndexRight(t *testing.T) {
	const L = 5
	cases := []struct {
		in   int64
		want int64
		ok   bool
	}{
		{0, 0, true},
		{5, 5, true},
		{6, 0, false},
		{-1, 5, true},
		{-5, 1, true},
		{-6, 0, true},
		{-7, 0, false},
	}
	for _, c := range cases {
		got, err := GetIndex(c.in, L, true)
		if c.ok && err != nil {
			t.Errorf("GetIndex(%d, %d, true) failed: %v", c.in, L, err)
		}
		if !c.ok && err == nil {
			t.Errorf("GetIndex(%d, %d, true) should have failed", c.in, L)
		}
		if c.ok && got != c.want {
			t.Errorf("GetIndex(%d, %d, true) = %d, want %d", c.in, L, got, c.want)
		}
	}
}

func TestGetIndexZeroLength(t *testing.T) {
	//nothing indexes into an empty range, not even the right-bound 0
	for _, right := range []bool{false, true} {
		for _, in := range []int64{0, 1, -1} {
			if _, err := GetIndex(in, 0, right); err == nil {
				t.Errorf("GetIndex(%d, 0, %v) should have failed", in, right)
			}
		}
	}
}

func TestGetIndexErrorClass(t *testing.T) {
	_, err := GetIndex(7, 5, false)
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(IndexError); !ok {
		t.Errorf("out-of-range error is %T, want IndexError", err)
	}
}

func tempFile(t *testing.T, content string) *File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewFile(path)
}

func TestSectionMarkingIdempotent(t *testing.T) {
	f := tempFile(t, "0123456789")

	f.Scanned = 0
	f.StartSection("part")
	f.StartSection("part") //no-op, instance still open
	f.Scanned = 4
	f.EndSection("part")
	f.EndSection("part") //no-op, nothing open

	//a rescan replaying the same cursor values adds nothing
	f.Scanned = 0
	f.StartSection("part")
	f.Scanned = 4
	f.EndSection("part")

	if got := f.Offsets("part"); len(got) != 2 || got[0] != 0 || got[1] != 4 {
		t.Errorf("offsets = %v, want [0 4]", got)
	}

	//a second instance past the first is recorded
	f.Scanned = 4
	f.StartSection("part")
	f.Scanned = 10
	f.EndSection("part")
	if got := f.Offsets("part"); len(got) != 4 || got[2] != 4 || got[3] != 10 {
		t.Errorf("offsets = %v, want [0 4 4 10]", got)
	}
}

func TestEndBeforeStartIsNoop(t *testing.T) {
	f := tempFile(t, "0123456789")
	f.Scanned = 3
	f.EndSection("part")
	if got := f.Offsets("part"); len(got) != 0 {
		t.Errorf("offsets = %v, want empty", got)
	}
}

func TestSectionQueries(t *testing.T) {
	f := tempFile(t, "aaaa bbbb cccc dddd ")
	for i := int64(0); i < 4; i++ {
		f.Scanned = i * 5
		f.StartSection("word")
		f.Scanned = i*5 + 5
		f.EndSection("word")
	}
	f.Scanned = 20

	set, err := f.Section("word")
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 4 {
		t.Fatalf("found %d instances, want 4", set.Len())
	}

	s, err := f.SectionAt("word", -1)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "dddd" {
		t.Errorf("last instance = %q, want %q", got, "dddd")
	}

	s, err = f.SectionAt("word", 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "bbbb" {
		t.Errorf("instance 1 = %q, want %q", got, "bbbb")
	}

	if _, err := f.SectionAt("word", 4); err == nil {
		t.Error("instance 4 should be out of range")
	}
	if _, err := f.Section("nosuch"); err == nil {
		t.Error("unknown name should fail")
	} else if _, ok := err.(NotFound); !ok {
		t.Errorf("unknown-name error is %T, want NotFound", err)
	}
}

func TestSubSectionRestriction(t *testing.T) {
	f := tempFile(t, "head one\nbody one\nhead two\nbody two\n")
	//two outer instances, each with an inner instance
	mark := func(name string, a, b int64) {
		f.Scanned = a
		f.StartSection(name)
		f.Scanned = b
		f.EndSection(name)
	}
	mark("block", 0, 18)
	mark("body", 9, 18)
	mark("block", 18, 36)
	mark("body", 27, 36)
	f.Scanned = 36

	blocks, err := f.Section("block")
	if err != nil {
		t.Fatal(err)
	}
	second, err := blocks.At(1)
	if err != nil {
		t.Fatal(err)
	}
	body, err := second.Sub("body")
	if err != nil {
		t.Fatal(err)
	}
	if got := body.Text(); got != "body two" {
		t.Errorf("sub-section = %q, want %q", got, "body two")
	}
}
