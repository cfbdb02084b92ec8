/*
 * box.go, part of sfio
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

/*Package box models a simulation cell. The canonical state is thirteen
input fields (origin, box lengths, angles in degrees, a tilt permission and
three boundary-condition codes); everything else, from the basis matrix to
the face normals, is recomputed from that state on every access, so derived
output can never diverge from canonical input. Six cell parameterizations
used by different simulation tools convert to and from the canonical state.
*/
package box

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

//quantities smaller than 1E-9 in magnitude are rounded to exactly 0
const roundDecimals = 1e9

// Input is the canonical description of a simulation cell: origin, box
// lengths, angles in degrees (alpha between b c, beta a c, gamma a b),
// whether tilt is allowed, and the boundary-condition code per axis
// ("pp" periodic, "ff" fixed, ...).
type Input struct {
	X0, Y0, Z0          float64
	Lx, Ly, Lz          float64
	Alpha, Beta, Gamma  float64
	AllowTilt           bool
	Bx, By, Bz          string
}

// Box owns a canonical Input. Mutation goes through the setters, which
// re-check the tilt invariant: any angle away from 90 forces AllowTilt
// true, and it cannot be unset while that holds.
type Box struct {
	in Input
}

// New returns a unit orthogonal periodic box at the origin.
func New() *Box {
	return &Box{in: Input{
		Lx: 1.0, Ly: 1.0, Lz: 1.0,
		Alpha: 90.0, Beta: 90.0, Gamma: 90.0,
		Bx: "pp", By: "pp", Bz: "pp",
	}}
}

// FromInput returns a box holding the given canonical state, with the
// tilt invariant applied.
func FromInput(in Input) *Box {
	B := &Box{in: in}
	B.checkTilt()
	return B
}

// Input returns a copy of the canonical state.
func (B *Box) Input() Input { return B.in }

func (B *Box) orthogonal() bool {
	return B.in.Alpha == 90 && B.in.Beta == 90 && B.in.Gamma == 90
}

func (B *Box) checkTilt() {
	if !B.orthogonal() {
		B.in.AllowTilt = true
	}
}

// SetOrigin moves the box origin.
func (B *Box) SetOrigin(x0, y0, z0 float64) {
	B.in.X0, B.in.Y0, B.in.Z0 = x0, y0, z0
}

// SetLengths sets the bounding-box edge lengths.
func (B *Box) SetLengths(lx, ly, lz float64) {
	B.in.Lx, B.in.Ly, B.in.Lz = lx, ly, lz
}

// SetAngles sets the cell angles in degrees. A non-orthogonal choice
// forces AllowTilt.
func (B *Box) SetAngles(alpha, beta, gamma float64) {
	B.in.Alpha, B.in.Beta, B.in.Gamma = alpha, beta, gamma
	B.checkTilt()
}

// SetAllowTilt sets the tilt permission. Disallowing tilt on a
// non-orthogonal box is refused and leaves the permission on.
func (B *Box) SetAllowTilt(t bool) {
	if !t && !B.orthogonal() {
		log.Printf("box: non-orthogonal box, keeping allow_tilt = true")
		return
	}
	B.in.AllowTilt = t
}

// SetBounds sets the boundary-condition codes per axis.
func (B *Box) SetBounds(bx, by, bz string) {
	B.in.Bx, B.in.By, B.in.Bz = bx, by, bz
}

// Periodic reports, per axis, whether the boundary code starts with 'p'.
func (B *Box) Periodic() [3]bool {
	p := func(s string) bool { return len(s) > 0 && s[0] == 'p' }
	return [3]bool{p(B.in.Bx), p(B.in.By), p(B.in.Bz)}
}

// -----------------------------------------------

// Output holds the derived quantities of a Box: bounds, angle cosines,
// triclinic lengths, tilt factors, the basis matrix V (rows are lattice
// vectors), its row-normalized orientation U with inverse, and the three
// face normals Bn used for fractional-coordinate projection.
type Output struct {
	Input
	Xlo, Xhi, Ylo, Yhi, Zlo, Zhi float64
	CosAlpha, CosBeta, CosGamma  float64
	A, B, C                      float64
	Xy, Xz, Yz                   float64
	V    *mat.Dense
	U    *mat.Dense
	Uinv *mat.Dense //nil when the orientation matrix is singular
	Bn   *mat.Dense
}

func round9(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return math.Round(x*roundDecimals) / roundDecimals
}

func round9Dense(m *mat.Dense) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, round9(m.At(i, j)))
		}
	}
}

// Output recomputes every derived quantity from the canonical state.
func (B *Box) Output() *Output {
	in := B.in
	if B.in.Alpha != 90 || B.in.Beta != 90 || B.in.Gamma != 90 {
		in.AllowTilt = true
	}
	o := &Output{Input: in}

	o.Xlo, o.Xhi = in.X0, in.X0+in.Lx
	o.Ylo, o.Yhi = in.Y0, in.Y0+in.Ly
	o.Zlo, o.Zhi = in.Z0, in.Z0+in.Lz

	ca := math.Cos(in.Alpha * deg2rad)
	cb := math.Cos(in.Beta * deg2rad)
	cg := math.Cos(in.Gamma * deg2rad)
	o.CosAlpha, o.CosBeta, o.CosGamma = ca, cb, cg

	o.A = in.Lx
	o.B = in.Ly / math.Sqrt(1.0-cg*cg)
	o.C = in.Lz / math.Sqrt(1.0-cb*cb-(ca-cg*cb)*(ca-cg*cb)/(1.0-cg*cg))

	o.Xy = o.B * cg
	o.Xz = o.C * cb
	o.Yz = (o.B*o.C*ca - o.Xy*o.Xz) / in.Ly

	o.V = mat.NewDense(3, 3, []float64{
		in.Lx, 0.0, 0.0, //v_a
		o.Xy, in.Ly, 0.0, //v_b
		o.Xz, o.Yz, in.Lz, //v_c
	})

	//useful for coordinate transform, and to undo it
	o.U = normalizeRows(o.V)
	var uinv mat.Dense
	if err := uinv.Inverse(o.U); err == nil {
		o.Uinv = &uinv
	}

	//face normals, for cartesian to crystal fractional
	u0 := rowOf(o.U, 0)
	u1 := rowOf(o.U, 1)
	u2 := rowOf(o.U, 2)
	n0 := unitCross(u1, u2)
	n1 := unitCross(u2, u0)
	n2 := unitCross(u0, u1)
	o.Bn = mat.NewDense(3, 3, []float64{
		n0[0], n0[1], n0[2],
		n1[0], n1[1], n1[2],
		n2[0], n2[1], n2[2],
	})

	//get rid of small zero
	o.Xlo, o.Xhi = round9(o.Xlo), round9(o.Xhi)
	o.Ylo, o.Yhi = round9(o.Ylo), round9(o.Yhi)
	o.Zlo, o.Zhi = round9(o.Zlo), round9(o.Zhi)
	o.CosAlpha, o.CosBeta, o.CosGamma = round9(ca), round9(cb), round9(cg)
	o.A, o.B, o.C = round9(o.A), round9(o.B), round9(o.C)
	o.Xy, o.Xz, o.Yz = round9(o.Xy), round9(o.Xz), round9(o.Yz)
	round9Dense(o.V)
	round9Dense(o.U)
	if o.Uinv != nil {
		round9Dense(o.Uinv)
	}
	round9Dense(o.Bn)

	return o
}

// Lo returns the lower bounds of the bounding box.
func (o *Output) Lo() [3]float64 { return [3]float64{o.Xlo, o.Ylo, o.Zlo} }

// Hi returns the upper bounds of the bounding box.
func (o *Output) Hi() [3]float64 { return [3]float64{o.Xhi, o.Yhi, o.Zhi} }

// -----------------------------------------------

func matFromSlice(v []float64) *mat.Dense {
	return mat.NewDense(3, 3, append([]float64(nil), v...))
}

func dot3(v, u [3]float64) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

func rowOf(m *mat.Dense, i int) [3]float64 {
	return [3]float64{m.At(i, 0), m.At(i, 1), m.At(i, 2)}
}

// normalizeRows returns a copy of m with each row scaled to unit length.
// Zero rows are left as is.
func normalizeRows(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.DenseCopyOf(m)
	for i := 0; i < r; i++ {
		var n float64
		for j := 0; j < c; j++ {
			n += m.At(i, j) * m.At(i, j)
		}
		n = math.Sqrt(n)
		if n == 0 {
			n = 1.0
		}
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(i, j)/n)
		}
	}
	return out
}

// unitCross returns the normalized cross product of two 3-vectors.
func unitCross(v, u [3]float64) [3]float64 {
	w := [3]float64{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
	n := math.Sqrt(w[0]*w[0] + w[1]*w[1] + w[2]*w[2])
	if n == 0 {
		n = 1.0
	}
	return [3]float64{w[0] / n, w[1] / n, w[2] / n}
}

//Errors

// Error is the structure for malformed or ambiguous box-input errors.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string {
	return fmt.Sprintf("box error: %s", err.message)
}

//Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//BadValue marks the error as a malformed-input condition.
func (err *Error) BadValue() {}

func newError(format string, args ...any) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}
