/*
 * scan_test.go, part of sfio
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
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestSearchInFileLineStarts(t *testing.T) {
	data := "alpha line\nthe beta marker here\ngamma\nanother beta\n"
	r := bytes.NewReader([]byte(data))
	matches, scanned, err := SearchInFile(r, [][]byte{[]byte("beta")}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{11, 38} //starts of the lines containing the pattern
	if !reflect.DeepEqual(matches[0], want) {
		t.Errorf("offsets = %v, want %v", matches[0], want)
	}
	if scanned != int64(len(data)) {
		t.Errorf("scanned = %d, want %d", scanned, len(data))
	}
}

// Offsets must not depend on where chunk boundaries fall.
func TestSearchInFileChunkSizeInvariance(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		if i%7 == 0 {
			fmt.Fprintf(&sb, "MARKER line number %d with some padding text\n", i)
		} else {
			fmt.Fprintf(&sb, "filler line number %d with some padding text\n", i)
		}
	}
	data := []byte(sb.String())
	patterns := [][]byte{[]byte("MARKER")}

	overlap := len("MARKER")
	var ref [][]int64
	for _, bufsize := range []int{overlap, 2 * overlap, 100 * overlap, 0} {
		matches, _, err := SearchInFile(bytes.NewReader(data), patterns, 0, bufsize)
		if err != nil {
			t.Fatalf("bufsize %d: %v", bufsize, err)
		}
		if ref == nil {
			ref = matches
			if len(matches[0]) == 0 {
				t.Fatal("no matches found")
			}
			continue
		}
		if !reflect.DeepEqual(matches, ref) {
			t.Errorf("bufsize %d: offsets differ from reference", bufsize)
		}
	}
}

func TestSearchInFileMultiPattern(t *testing.T) {
	data := "one\ntwo\nthree two\nfour\n"
	matches, _, err := SearchInFile(bytes.NewReader([]byte(data)),
		[][]byte{[]byte("two"), []byte("four")}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{4, 8}; !reflect.DeepEqual(matches[0], want) {
		t.Errorf("pattern 'two' offsets = %v, want %v", matches[0], want)
	}
	if want := []int64{18}; !reflect.DeepEqual(matches[1], want) {
		t.Errorf("pattern 'four' offsets = %v, want %v", matches[1], want)
	}
}

func TestSearchInFileResume(t *testing.T) {
	data := "x mark\ny mark\nz mark\n"
	matches, _, err := SearchInFile(bytes.NewReader([]byte(data)),
		[][]byte{[]byte("mark")}, 7, 0)
	if err != nil {
		t.Fatal(err)
	}
	//matches before the seek position are not reported
	if want := []int64{7, 14}; !reflect.DeepEqual(matches[0], want) {
		t.Errorf("offsets = %v, want %v", matches[0], want)
	}
}
