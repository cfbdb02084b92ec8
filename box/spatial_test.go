/*
 * spatial_test.go, part of sfio
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func cube10() *Box {
	b := New()
	b.SetLengths(10, 10, 10)
	return b
}

func TestFractional(t *testing.T) {
	b := cube10()
	pts := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		5, 5, 5,
		10, 10, 10,
	})
	fr := b.Fractional(pts)
	want := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		0.5, 0.5, 0.5,
		1, 1, 1,
	})
	assert.True(t, mat.EqualApprox(fr, want, 1e-9), "fractional = %v", mat.Formatted(fr))
}

func TestCheck(t *testing.T) {
	b := cube10()
	pts := mat.NewDense(2, 3, []float64{
		5, 5, 5,
		12, -3, 5,
	})
	bc := b.Check(pts)
	assert.True(t, bc.Inside[0])
	assert.False(t, bc.Inside[1])
	assert.False(t, bc.AllInside())

	//xlo ylo zlo xhi yhi zhi, negative means beyond the face
	for j := 0; j < 6; j++ {
		assert.InDelta(t, 5.0, bc.Dist.At(0, j), 1e-9)
	}
	assert.InDelta(t, 12.0, bc.Dist.At(1, 0), 1e-9)
	assert.InDelta(t, -3.0, bc.Dist.At(1, 1), 1e-9)
	assert.InDelta(t, -2.0, bc.Dist.At(1, 3), 1e-9)
	assert.InDelta(t, 13.0, bc.Dist.At(1, 4), 1e-9)
}

func TestWrap(t *testing.T) {
	b := cube10()
	pts := mat.NewDense(3, 3, []float64{
		12, -3, 5,
		5, 5, 5,
		25, 5, 5,
	})
	out := b.Wrap(pts, [3]bool{true, true, true})
	want := mat.NewDense(3, 3, []float64{
		2, 7, 5,
		5, 5, 5,
		5, 5, 5,
	})
	assert.True(t, mat.EqualApprox(out, want, 1e-9), "wrapped = %v", mat.Formatted(out))
	assert.True(t, b.Check(out).AllInside())

	//non-periodic directions stay put
	out = b.Wrap(pts, [3]bool{false, true, true})
	assert.InDelta(t, 12.0, out.At(0, 0), 1e-9)
	assert.InDelta(t, 7.0, out.At(0, 1), 1e-9)
}

func TestExtend(t *testing.T) {
	b := cube10()

	inside := mat.NewDense(1, 3, []float64{5, 5, 5})
	assert.Same(t, b, b.Extend(inside, [3]bool{}), "all-inside extend returns the box itself")

	pts := mat.NewDense(2, 3, []float64{
		12, 5, 5,
		5, -2, 5,
	})
	g := b.Extend(pts, [3]bool{})
	require.NotSame(t, b, g)
	o := g.Output()
	assert.InDelta(t, 0.0, o.Xlo, 1e-6)
	assert.GreaterOrEqual(t, o.Xhi, 12.0)
	assert.InDelta(t, -2.0, o.Ylo, 1e-4)
	assert.InDelta(t, 10.0, o.Yhi, 1e-6)
	assert.InDelta(t, 10.0, o.Lz, 1e-9, "untouched direction keeps its length")
	assert.True(t, g.Check(pts).AllInside())

	//periodic directions never grow
	g = b.Extend(pts, [3]bool{true, true, true})
	o = g.Output()
	assert.InDelta(t, 10.0, o.Lx, 1e-9)
	assert.InDelta(t, 10.0, o.Ly, 1e-9)
}

func TestGhost(t *testing.T) {
	b := cube10()
	pts := mat.NewDense(1, 3, []float64{1, 1, 1})
	g := b.Ghost(pts, [3]bool{true, true, true})
	assert.Equal(t, 7, g.Len())

	var images [][3]float64
	for {
		img, ok := g.Next()
		if !ok {
			break
		}
		images = append(images, [3]float64{img.At(0, 0), img.At(0, 1), img.At(0, 2)})
	}
	require.Len(t, images, 7)

	//a point near the lo corner shifts toward the negative side, the
	//body-diagonal image coming first
	assert.Equal(t, [3]float64{-9, -9, -9}, images[0])
	assert.Contains(t, images, [3]float64{-9, 1, 1})
	assert.Contains(t, images, [3]float64{1, -9, 1})
	assert.Contains(t, images, [3]float64{1, 1, -9})
	assert.Contains(t, images, [3]float64{-9, -9, 1})

	g.Reset()
	img, ok := g.Next()
	require.True(t, ok)
	assert.Equal(t, -9.0, img.At(0, 0))

	//a non-periodic direction contributes no shift
	g = b.Ghost(pts, [3]bool{true, true, false})
	first, ok := g.Next()
	require.True(t, ok)
	assert.Equal(t, [3]float64{-9, -9, 1},
		[3]float64{first.At(0, 0), first.At(0, 1), first.At(0, 2)})
}
