/*
 * spatial.go, part of sfio
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

package box

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//margin added when growing a box around stray points
const extendMargin = 1e-7

// Fractional projects cartesian points (rows of an Nx3 matrix) onto the
// lattice vectors, returning crystal fractional coordinates. Points on
// the origin faces map to 0, points on the far faces to 1.
func (B *Box) Fractional(pts *mat.Dense) *mat.Dense {
	o := B.Output()
	lo := o.Lo()

	//face-to-face heights of the cell, per lattice direction
	var h [3]float64
	for j := 0; j < 3; j++ {
		bnj := rowOf(o.Bn, j)
		var s float64
		for i := 0; i < 3; i++ {
			d := dot3(rowOf(o.V, i), bnj)
			s += d * d
		}
		h[j] = math.Sqrt(s)
	}

	n, _ := pts.Dims()
	out := mat.NewDense(n, 3, nil)
	for p := 0; p < n; p++ {
		d := [3]float64{pts.At(p, 0) - lo[0], pts.At(p, 1) - lo[1], pts.At(p, 2) - lo[2]}
		for j := 0; j < 3; j++ {
			out.Set(p, j, dot3(d, rowOf(o.Bn, j))/h[j])
		}
	}
	return out
}

// BoundsCheck reports, per point, whether it lies inside the bounding
// box, and its signed distance to each of the six faces (xlo ylo zlo
// xhi yhi zhi order); a negative distance means the point is beyond
// that face.
type BoundsCheck struct {
	Inside []bool
	Dist   *mat.Dense
}

// AllInside reports whether every checked point was in bounds.
func (bc *BoundsCheck) AllInside() bool {
	for _, in := range bc.Inside {
		if !in {
			return false
		}
	}
	return true
}

// Check computes the bounds check of cartesian points against the box.
func (B *Box) Check(pts *mat.Dense) *BoundsCheck {
	o := B.Output()
	lo := o.Lo()

	//diagonal of the cell, lo corner to hi corner
	var diag [3]float64
	for i := 0; i < 3; i++ {
		r := rowOf(o.V, i)
		diag[0] += r[0]
		diag[1] += r[1]
		diag[2] += r[2]
	}

	n, _ := pts.Dims()
	bc := &BoundsCheck{
		Inside: make([]bool, n),
		Dist:   mat.NewDense(n, 6, nil),
	}
	for p := 0; p < n; p++ {
		lv := [3]float64{lo[0] - pts.At(p, 0), lo[1] - pts.At(p, 1), lo[2] - pts.At(p, 2)}
		hv := [3]float64{lv[0] + diag[0], lv[1] + diag[1], lv[2] + diag[2]}
		inside := true
		for j := 0; j < 3; j++ {
			bnj := rowOf(o.Bn, j)
			dlo := -dot3(bnj, lv)
			dhi := dot3(bnj, hv)
			bc.Dist.Set(p, j, dlo)
			bc.Dist.Set(p, j+3, dhi)
			inside = inside && dlo >= 0 && dhi >= 0
		}
		bc.Inside[p] = inside
	}
	return bc
}

// Extend returns a box grown, along the non-periodic lattice directions
// given by pbc, until every point fits with a small margin. Periodic
// directions and the angles are untouched; the receiver is not
// modified. When every point is already inside, the receiver itself is
// returned.
func (B *Box) Extend(pts *mat.Dense, pbc [3]bool) *Box {
	bc := B.Check(pts)
	if bc.AllInside() {
		return B
	}
	o := B.Output()
	lo0 := o.Lo()

	//move the lo corner down to the lowest stray point
	lo1 := lo0
	n, _ := pts.Dims()
	for p := 0; p < n; p++ {
		if bc.Inside[p] {
			continue
		}
		for s := 0; s < 3; s++ {
			if pbc[s] {
				continue
			}
			if v := pts.At(p, s) - extendMargin; v < lo1[s] {
				lo1[s] = v
			}
		}
	}

	//projections of the stray points onto the lattice directions,
	//measured from the old lo corner
	var need [3]float64
	for p := 0; p < n; p++ {
		if bc.Inside[p] {
			continue
		}
		d := [3]float64{pts.At(p, 0) - lo0[0], pts.At(p, 1) - lo0[1], pts.At(p, 2) - lo0[2]}
		for i := 0; i < 3; i++ {
			if v := dot3(rowOf(o.U, i), d); v > need[i] {
				need[i] = v
			}
		}
	}

	dlo := [3]float64{lo1[0] - lo0[0], lo1[1] - lo0[1], lo1[2] - lo0[2]}
	var length [3]float64
	for i := 0; i < 3; i++ {
		length[i] = math.Sqrt(dot3(rowOf(o.V, i), rowOf(o.V, i)))
		if pbc[i] {
			continue
		}
		grown := need[i] + extendMargin
		if grown < length[i] {
			grown = length[i]
		}
		//lo moved down by shift (non-positive), so the hi end needs
		//that much more length to stay put
		length[i] = grown - dot3(rowOf(o.U, i), dlo)
	}

	in := B.in
	in.X0, in.Y0, in.Z0 = lo1[0], lo1[1], lo1[2]
	in.Lx = length[0] * o.U.At(0, 0)
	in.Ly = length[1] * o.U.At(1, 1)
	in.Lz = length[2] * o.U.At(2, 2)
	return FromInput(in)
}

// Wrap translates out-of-bounds points back into the box by whole
// lattice vectors along the periodic directions given by pbc, returning
// a new matrix. Points already inside come back unchanged.
func (B *Box) Wrap(pts *mat.Dense, pbc [3]bool) *mat.Dense {
	bc := B.Check(pts)
	out := mat.DenseCopyOf(pts)
	if bc.AllInside() {
		return out
	}
	o := B.Output()
	var length [3]float64
	for i := 0; i < 3; i++ {
		length[i] = math.Sqrt(dot3(rowOf(o.V, i), rowOf(o.V, i)))
	}

	n, _ := pts.Dims()
	for p := 0; p < n; p++ {
		var shift [3]float64
		for j := 0; j < 6; j++ {
			d := bc.Dist.At(p, j)
			i := j % 3
			if d >= 0 || !pbc[i] {
				continue
			}
			rep := math.Abs(math.Floor(d / length[i]))
			vi := rowOf(o.V, i)
			sign := 1.0
			if j >= 3 {
				sign = -1.0 //beyond a hi face, move back down
			}
			shift[0] += sign * rep * vi[0]
			shift[1] += sign * rep * vi[1]
			shift[2] += sign * rep * vi[2]
		}
		out.Set(p, 0, pts.At(p, 0)+shift[0])
		out.Set(p, 1, pts.At(p, 1)+shift[1])
		out.Set(p, 2, pts.At(p, 2)+shift[2])
	}
	return out
}

// Ghosts iterates over the periodic images of a point set, one
// translated copy per step. Wrap the points first; each point is shifted
// toward whichever side brings its image closer to the origin, so a
// neighbor search over the original points plus all seven images sees
// every periodic contact exactly once.
type Ghosts struct {
	ref    *mat.Dense
	side   []float64
	shifts [7][3]float64
	k      int
}

// Ghost returns an iterator over the seven periodic images of pts: the
// body-diagonal image first, then the three single-direction images,
// then the three face-diagonal ones. Non-periodic directions contribute
// no shift.
func (B *Box) Ghost(pts *mat.Dense, pbc [3]bool) *Ghosts {
	o := B.Output()
	L := [3]float64{o.A, o.B, o.C}
	for i := 0; i < 3; i++ {
		if !pbc[i] {
			L[i] = 0
		}
	}
	u := [3][3]float64{rowOf(o.U, 0), rowOf(o.U, 1), rowOf(o.U, 2)}

	var full [3]float64
	for i := 0; i < 3; i++ {
		full[0] += L[i] * u[i][0]
		full[1] += L[i] * u[i][1]
		full[2] += L[i] * u[i][2]
	}

	n, _ := pts.Dims()
	G := &Ghosts{ref: pts, side: make([]float64, n)}
	for p := 0; p < n; p++ {
		pt := [3]float64{pts.At(p, 0), pts.At(p, 1), pts.At(p, 2)}
		minus := [3]float64{pt[0] - full[0], pt[1] - full[1], pt[2] - full[2]}
		plus := [3]float64{pt[0] + full[0], pt[1] + full[1], pt[2] + full[2]}
		if dot3(minus, minus) <= dot3(plus, plus) {
			G.side[p] = -1
		} else {
			G.side[p] = 1
		}
	}

	G.shifts[0] = full
	for i := 0; i < 3; i++ {
		G.shifts[1+i] = [3]float64{L[i] * u[i][0], L[i] * u[i][1], L[i] * u[i][2]}
	}
	pairs := [3][2]int{{0, 1}, {1, 2}, {2, 0}}
	for k, ij := range pairs {
		i, j := ij[0], ij[1]
		G.shifts[4+k] = [3]float64{
			L[i]*u[i][0] + L[j]*u[j][0],
			L[i]*u[i][1] + L[j]*u[j][1],
			L[i]*u[i][2] + L[j]*u[j][2],
		}
	}
	return G
}

// Len returns the number of images the iterator yields.
func (G *Ghosts) Len() int { return 7 }

// Reset rewinds the iterator to the first image.
func (G *Ghosts) Reset() { G.k = 0 }

// Next returns the next image of the point set, or false when the seven
// images are exhausted.
func (G *Ghosts) Next() (*mat.Dense, bool) {
	if G.k >= len(G.shifts) {
		return nil, false
	}
	s := G.shifts[G.k]
	G.k++
	n, _ := G.ref.Dims()
	img := mat.NewDense(n, 3, nil)
	for p := 0; p < n; p++ {
		img.Set(p, 0, G.ref.At(p, 0)+G.side[p]*s[0])
		img.Set(p, 1, G.ref.At(p, 1)+G.side[p]*s[1])
		img.Set(p, 2, G.ref.At(p, 2)+G.side[p]*s[2])
	}
	return img, true
}
