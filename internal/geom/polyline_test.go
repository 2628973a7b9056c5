package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func square(side float64) []r2.Vec {
	return []r2.Vec{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}}
}

func TestDensifyClosedSquare(t *testing.T) {
	got := DensifyClosed(square(100), 25)
	require.Len(t, got, 16)

	want := []r2.Vec{
		{X: 0, Y: 0}, {X: 25, Y: 0}, {X: 50, Y: 0}, {X: 75, Y: 0},
		{X: 100, Y: 0}, {X: 100, Y: 25}, {X: 100, Y: 50}, {X: 100, Y: 75},
		{X: 100, Y: 100}, {X: 75, Y: 100}, {X: 50, Y: 100}, {X: 25, Y: 100},
		{X: 0, Y: 100}, {X: 0, Y: 75}, {X: 0, Y: 50}, {X: 0, Y: 25},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("DensifyClosed() mismatch (-want +got):\n%s", diff)
	}
}

func TestDensifyClosedSegmentBound(t *testing.T) {
	tests := []struct {
		name   string
		pts    []r2.Vec
		maxLen float64
	}{
		{"square 30", square(100), 30},
		{"square 7", square(100), 7},
		{"triangle", []r2.Vec{{X: 0, Y: 0}, {X: 310, Y: 40}, {X: 90, Y: 260}}, 30},
		{"two points", []r2.Vec{{X: 0, Y: 0}, {X: 95, Y: 0}}, 10},
		{"short edges kept", []r2.Vec{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DensifyClosed(tt.pts, tt.maxLen)
			require.GreaterOrEqual(t, len(got), len(tt.pts))
			for i := range got {
				d := Dist(got[i], got[(i+1)%len(got)])
				assert.LessOrEqual(t, d, tt.maxLen+1e-9, "edge %d", i)
			}

			// input vertices remain an ordered subsequence
			j := 0
			for _, p := range got {
				if j < len(tt.pts) && p == tt.pts[j] {
					j++
				}
			}
			assert.Equal(t, len(tt.pts), j)
		})
	}
}

func TestDensifyClosedDegenerate(t *testing.T) {
	assert.Empty(t, DensifyClosed(nil, 10))
	assert.Empty(t, DensifyClosed([]r2.Vec{{X: 1, Y: 1}}, 10))
	assert.Empty(t, DensifyClosed(square(10), 0))
}

func TestOffsetClosedRegularPolygon(t *testing.T) {
	const (
		n      = 12
		radius = 200.0
	)
	pts := make([]r2.Vec, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / n
		pts[i] = r2.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}

	for _, off := range []float64{8, -8, 16} {
		got := OffsetClosed(pts, off)
		require.Len(t, got, n)
		for i := range got {
			assert.InDelta(t, math.Abs(off), Dist(got[i], pts[i]), 1e-9)
		}
	}
	// counter-clockwise in math terms: the left normal points inward
	inner := OffsetClosed(pts, 10)
	assert.InDelta(t, radius-10, Length(inner[0]), 1e-9)
}

func TestOffsetClosedSmallOffsetReturnsCopy(t *testing.T) {
	pts := square(50)
	got := OffsetClosed(pts, 1e-9)
	assert.Equal(t, pts, got)

	got[0] = r2.Vec{X: 99, Y: 99}
	assert.Equal(t, r2.Vec{}, pts[0], "input must not alias output")
}

func TestOffsetClosedDuplicatePoints(t *testing.T) {
	pts := []r2.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}
	got := OffsetClosed(pts, 5)
	require.Len(t, got, len(pts))
	for _, p := range got {
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
	}
	// each copy of the duplicate keeps the one tangent that is not degenerate
	assert.InDelta(t, 100.0, got[1].X, 1e-9)
	assert.InDelta(t, 5.0, got[1].Y, 1e-9)
	assert.InDelta(t, 95.0, got[2].X, 1e-9)
	assert.InDelta(t, 0.0, got[2].Y, 1e-9)
}

func TestOffsetClosedHairpin(t *testing.T) {
	// a reversal makes the bisector vanish; the incoming tangent is used instead
	pts := []r2.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 0.0000001}}
	got := OffsetClosed(pts, 4)
	require.Len(t, got, len(pts))
	for _, p := range got {
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
	}

	// the tip moves exactly offset along Perp of the incoming (1, 0) tangent
	incoming := Normalize(r2.Sub(pts[1], pts[0]))
	want := r2.Add(pts[1], r2.Scale(4, Perp(incoming)))
	assert.InDelta(t, want.X, got[1].X, 1e-9)
	assert.InDelta(t, want.Y, got[1].Y, 1e-9)
	assert.InDelta(t, 100.0, got[1].X, 1e-9)
	assert.InDelta(t, 4.0, got[1].Y, 1e-9)
	assert.InDelta(t, 4.0, Dist(got[1], pts[1]), 1e-9)
}
