/*
 * fortran_test.go, part of sfio
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

package fortran

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"
)

func TestInt32BlockRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := []int32{1, 2, 3}
	if err := PutInt32Block(&buf, binary.LittleEndian, want); err != nil {
		t.Fatal(err)
	}
	//delimiter, 12 payload bytes, delimiter
	if buf.Len() != 4+12+4 {
		t.Errorf("block is %d bytes, want 20", buf.Len())
	}
	got, err := GetInt32Block(&buf, binary.LittleEndian)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBlockDelimiterMismatch(t *testing.T) {
	var buf bytes.Buffer
	order := binary.LittleEndian
	binary.Write(&buf, order, int32(4))
	buf.Write([]byte("data"))
	binary.Write(&buf, order, int32(8)) //trailing delimiter disagrees

	_, err := GetBlock(&buf, order)
	if err == nil {
		t.Fatal("mismatched delimiters should fail")
	}
	ferr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error is %T, want *Error", err)
	}
	if !ferr.Critical() {
		t.Error("delimiter mismatch should be critical")
	}
}

func TestBigEndianBlock(t *testing.T) {
	var buf bytes.Buffer
	if err := PutBlock(&buf, binary.BigEndian, []byte("CORD")); err != nil {
		t.Fatal(err)
	}
	b, err := GetBlock(&buf, binary.BigEndian)
	if err != nil {
		t.Fatal(err)
	}
	if BlockString(b) != "CORD" {
		t.Errorf("payload = %q, want CORD", b)
	}
}

func TestBlockFloatViews(t *testing.T) {
	order := binary.LittleEndian
	var buf bytes.Buffer
	binary.Write(&buf, order, []float32{1.5, -2.25})
	vals, err := BlockFloat32(buf.Bytes(), order)
	if err != nil {
		t.Fatal(err)
	}
	if vals[0] != 1.5 || vals[1] != -2.25 {
		t.Errorf("got %v", vals)
	}

	buf.Reset()
	binary.Write(&buf, order, []float64{3.125})
	dvals, err := BlockFloat64(buf.Bytes(), order)
	if err != nil {
		t.Fatal(err)
	}
	if dvals[0] != 3.125 {
		t.Errorf("got %v", dvals)
	}

	if _, err := BlockFloat32([]byte{0, 0, 0}, order); err == nil {
		t.Error("length not a multiple of 4 should fail")
	}
}
