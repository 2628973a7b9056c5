package track

import (
	"github.com/samber/lo"

	"kartrace/internal/geom"
)

// DefaultLaneOffsets are the lateral offsets, in world pixels, of the lanes
// built around a centerline.
var DefaultLaneOffsets = []float64{0, 12, -12, 24}

// BuildLanes densifies center so no edge exceeds spacing and returns one
// offset copy per entry in offsets. A centerline that cannot be driven
// yields no lanes.
func BuildLanes(center Path, spacing float64, offsets []float64) []Path {
	if !center.Drivable() {
		return nil
	}
	dense := geom.DensifyClosed(center, spacing)
	if len(dense) < 2 {
		return nil
	}
	return lo.Map(offsets, func(off float64, _ int) Path {
		return geom.OffsetClosed(dense, off)
	})
}

// LaneFor returns the lane for racer i; racers past the last lane share it.
func LaneFor(lanes []Path, i int) Path {
	if len(lanes) == 0 {
		return nil
	}
	return lanes[min(i, len(lanes)-1)]
}
