/*
 * frames.go, part of sfio
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
	"math"
)

// NoBound marks an omitted slice bound in Frames.Slice.
const NoBound = math.MinInt

// Frames is a frame-indexed view over the 'frame' instances of a
// multi-frame file. A view holds the root file and a list of frame
// numbers; slicing a view composes index lists against the root instead
// of nesting view objects. A nil index list is the identity view.
type Frames struct {
	f   *File
	idx []int
}

// Frames returns the identity frame view of the file.
func (f *File) Frames() *Frames {
	return &Frames{f: f}
}

// Len returns the number of frames in the view.
func (F *Frames) Len() int {
	if F.idx != nil {
		return len(F.idx)
	}
	return (len(F.f.sections["frame"]) + 1) / 2
}

// File returns the root file of the view.
func (F *Frames) File() *File { return F.f }

// Index returns the absolute frame numbers selected by the view.
func (F *Frames) Index() []int {
	if F.idx != nil {
		out := make([]int, len(F.idx))
		copy(out, F.idx)
		return out
	}
	n := F.Len()
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Frame returns one frame of the view as a Section. Negative indices
// count from the end.
func (F *Frames) Frame(i int) (*Section, error) {
	ix, err := GetIndex(int64(i), int64(F.Len()), false)
	if err != nil {
		return nil, errDecorate(err, "Frame")
	}
	abs := int(ix)
	if F.idx != nil {
		abs = F.idx[ix]
	}
	pairs, ok := F.f.pairs("frame")
	if !ok || abs >= len(pairs) {
		return nil, newNotFound(fmt.Sprintf("no frame %d in '%s'", abs, F.f.Name))
	}
	p := pairs[abs]
	s, err := NewSection(F.f, p[0], p[1]-p[0], "frame")
	if err != nil {
		return nil, errDecorate(err, "Frame")
	}
	return s, nil
}

// Slice returns the view selected by [start:stop:step] with Python slice
// semantics, except that out-of-range bounds are an error rather than
// clamped. NoBound omits a bound; a negative step reverses frame order.
// A slice covering the whole view in order returns the view itself.
func (F *Frames) Slice(start, stop, step int) (*Frames, error) {
	if step == 0 {
		return nil, newValueError("slice step cannot be zero")
	}
	n := F.Len()
	//bound check before clamping: a bound naming a missing frame fails
	if start != NoBound {
		if _, err := GetIndex(int64(start), int64(n), false); err != nil {
			return nil, errDecorate(err, "Slice")
		}
	}
	if stop != NoBound {
		chk := stop
		if chk > 0 {
			chk--
		}
		if _, err := GetIndex(int64(chk), int64(n), false); err != nil {
			return nil, errDecorate(err, "Slice")
		}
	}
	norm := func(i int) int {
		if i < 0 {
			return i + n
		}
		return i
	}
	var frames []int
	if step > 0 {
		s, e := 0, n
		if start != NoBound {
			s = norm(start)
		}
		if stop != NoBound {
			e = norm(stop)
		}
		for i := s; i < e; i += step {
			frames = append(frames, i)
		}
	} else {
		s, e := n-1, -1
		if start != NoBound {
			s = norm(start)
		}
		if stop != NoBound {
			e = norm(stop)
		}
		for i := s; i > e; i += step {
			frames = append(frames, i)
		}
	}
	return F.compose(frames)
}

// Pick returns the view selecting the given frames in the given order.
// Negative indices count from the end of the view.
func (F *Frames) Pick(ix []int) (*Frames, error) {
	frames := make([]int, 0, len(ix))
	for _, i := range ix {
		j, err := GetIndex(int64(i), int64(F.Len()), false)
		if err != nil {
			return nil, errDecorate(err, "Pick")
		}
		frames = append(frames, int(j))
	}
	return F.compose(frames)
}

// compose maps view-relative frame positions through the current index
// list, returning the receiver unchanged when the result is the identical
// selection.
func (F *Frames) compose(frames []int) (*Frames, error) {
	//an empty selection must stay distinct from the nil identity view
	abs := frames
	if abs == nil {
		abs = []int{}
	}
	if F.idx != nil {
		abs = make([]int, len(frames))
		for i, j := range frames {
			if j < 0 || j >= len(F.idx) {
				return nil, newIndexError(fmt.Sprintf(
					"index out of range, %d frames in view", len(F.idx)))
			}
			abs[i] = F.idx[j]
		}
	}
	cur := F.Index()
	if len(abs) == len(cur) {
		same := true
		for i := range abs {
			if abs[i] != cur[i] {
				same = false
				break
			}
		}
		if same {
			return F, nil
		}
	}
	return &Frames{f: F.f, idx: abs}, nil
}
