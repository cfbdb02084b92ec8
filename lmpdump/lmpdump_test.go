/*
 * lmpdump_test.go, part of sfio
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
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hyiprc/sfio"
)

const orthoDump = `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
2
ITEM: BOX BOUNDS pp pp pp
0 10
0 10
0 10
ITEM: ATOMS id type x y z
2 1 1.5 2.5 3.5
1 1 0.5 1.5 2.5
ITEM: TIMESTEP
100
ITEM: NUMBER OF ATOMS
2
ITEM: BOX BOUNDS pp pp pp
0 10
0 10
0 10
ITEM: ATOMS id type x y z
1 1 0.6 1.6 2.6
2 1 1.6 2.6 3.6
`

const triclinicDump = `ITEM: TIMESTEP
0
ITEM: NUMBER OF ATOMS
1
ITEM: BOX BOUNDS xy xz yz pp pp ff
0 10 1.5
0 10 0.5
0 10 0.25
ITEM: ATOMS id type x y z
1 1 5 5 5
`

func dumpFile(t *testing.T, text string) *Lmpdump {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traj.dump")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	d := New(path)
	d.File().AllowCache = false
	return d
}

func TestScanMarksFrames(t *testing.T) {
	d := dumpFile(t, orthoDump)
	if err := d.Scan(); err != nil {
		t.Fatal(err)
	}
	f := d.File()
	if f.Scanned != int64(len(orthoDump)) {
		t.Errorf("cursor = %d, want %d", f.Scanned, len(orthoDump))
	}
	if n := f.Frames().Len(); n != 2 {
		t.Errorf("frames = %d, want 2", n)
	}
	for _, name := range []string{"header", "box", "atoms"} {
		if got := len(f.Offsets(name)); got < 3 {
			t.Errorf("section %s has %d offsets, want two instances", name, got)
		}
	}
}

func TestScanMatchesScanLines(t *testing.T) {
	for _, text := range []string{orthoDump, triclinicDump} {
		chunked := dumpFile(t, text)
		if err := chunked.Scan(); err != nil {
			t.Fatal(err)
		}
		lines := dumpFile(t, text)
		if err := lines.ScanLines(); err != nil {
			t.Fatal(err)
		}
		if chunked.File().Scanned != lines.File().Scanned {
			t.Errorf("cursors differ: %d vs %d",
				chunked.File().Scanned, lines.File().Scanned)
		}
		for _, name := range []string{"frame", "header", "box", "atoms"} {
			a := chunked.File().Offsets(name)
			b := lines.File().Offsets(name)
			if !reflect.DeepEqual(a, b) {
				t.Errorf("section %s: chunked %v, line scan %v", name, a, b)
			}
		}
	}
}

func TestRescanIsNoop(t *testing.T) {
	d := dumpFile(t, orthoDump)
	if err := d.Scan(); err != nil {
		t.Fatal(err)
	}
	before := d.File().Offsets("frame")
	if err := d.Scan(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, d.File().Offsets("frame")) {
		t.Error("rescanning a scanned file changed the registry")
	}
}

func TestParseFrame(t *testing.T) {
	d := dumpFile(t, orthoDump)
	if err := d.Scan(); err != nil {
		t.Fatal(err)
	}
	s, err := d.File().Frames().Frame(0)
	if err != nil {
		t.Fatal(err)
	}
	//sections delegate back to the handler that owns the file
	res, err := s.Parse(sfio.ShapeMap)
	if err != nil {
		t.Fatal(err)
	}
	if res.Map["timestep"] != int64(0) {
		t.Errorf("timestep = %v", res.Map["timestep"])
	}
	if res.Map["num_atoms"] != int64(2) {
		t.Errorf("num_atoms = %v", res.Map["num_atoms"])
	}
	o := res.Box.Output()
	if o.Xhi != 10 || o.Xy != 0 {
		t.Errorf("box xhi = %v, xy = %v", o.Xhi, o.Xy)
	}
	//rows come back sorted by atom id
	if want := []float64{1, 2}; !reflect.DeepEqual(res.Table.Data["id"], want) {
		t.Errorf("ids = %v, want %v", res.Table.Data["id"], want)
	}
	if want := []float64{0.5, 1.5}; !reflect.DeepEqual(res.Table.Data["x"], want) {
		t.Errorf("x = %v, want %v", res.Table.Data["x"], want)
	}

	s, err = d.File().Frames().Frame(1)
	if err != nil {
		t.Fatal(err)
	}
	res, err = d.Parse(s, sfio.ShapeMap)
	if err != nil {
		t.Fatal(err)
	}
	if res.Map["timestep"] != int64(100) {
		t.Errorf("second timestep = %v", res.Map["timestep"])
	}
}

func TestParseHeaderBlankTimestep(t *testing.T) {
	//a blank line where the timestep should be is an error, not a panic
	text := strings.Replace(orthoDump, "ITEM: TIMESTEP\n0\n", "ITEM: TIMESTEP\n\n0\n", 1)
	d := dumpFile(t, text)
	if err := d.Scan(); err != nil {
		t.Fatal(err)
	}
	s, err := d.File().SectionAt("header", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Parse(s, sfio.ShapeMap); err == nil {
		t.Error("blank timestep line should fail to parse")
	}
}

func TestParseTriclinicBox(t *testing.T) {
	d := dumpFile(t, triclinicDump)
	if err := d.Scan(); err != nil {
		t.Fatal(err)
	}
	s, err := d.File().SectionAt("box", 0)
	if err != nil {
		t.Fatal(err)
	}
	res, err := d.Parse(s, sfio.ShapeBox)
	if err != nil {
		t.Fatal(err)
	}
	o := res.Box.Output()
	if o.Xy != 1.5 || o.Xz != 0.5 || o.Yz != 0.25 {
		t.Errorf("tilts = %v %v %v", o.Xy, o.Xz, o.Yz)
	}
	if !o.AllowTilt {
		t.Error("a tilted box must allow tilt")
	}
	if o.Bx != "pp" || o.Bz != "ff" {
		t.Errorf("boundary codes = %s %s %s", o.Bx, o.By, o.Bz)
	}
}

func TestWriteFrameRoundTrip(t *testing.T) {
	d := dumpFile(t, orthoDump)
	if err := d.Scan(); err != nil {
		t.Fatal(err)
	}
	s, err := d.File().Frames().Frame(0)
	if err != nil {
		t.Fatal(err)
	}
	res, err := d.Parse(s, sfio.ShapeMap)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := WriteFrame(&sb, 0, res.Box, res.Table); err != nil {
		t.Fatal(err)
	}
	e := dumpFile(t, sb.String())
	if err := e.Scan(); err != nil {
		t.Fatal(err)
	}
	s, err = e.File().Frames().Frame(0)
	if err != nil {
		t.Fatal(err)
	}
	back, err := e.Parse(s, sfio.ShapeMap)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.Table.Data["x"], res.Table.Data["x"]) {
		t.Errorf("x after round trip = %v, want %v",
			back.Table.Data["x"], res.Table.Data["x"])
	}
}
