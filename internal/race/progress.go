package race

import (
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/geom"
	"kartrace/internal/track"
)

const progressEpsilon = 1e-3

// Progress estimates how far around the loop pos is, in [0, 1]. cur is the
// next unreached waypoint; the estimate interpolates along the segment
// leading into it.
func Progress(pos r2.Vec, path track.Path, cur int) float64 {
	n := len(path)
	if n < 2 {
		return 0
	}
	cur = geom.Wrap(cur, n)
	prev := geom.Wrap(cur-1, n)

	segLen := max(progressEpsilon, geom.Dist(path[prev], path[cur]))
	t := 1 - geom.Clamp01(geom.Dist(pos, path[cur])/segLen)
	return geom.Clamp01((float64(prev) + t) / float64(n))
}
