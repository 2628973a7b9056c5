package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kartrace/internal/geom"
)

func TestBuildLanesDefaultCircuit(t *testing.T) {
	lanes := BuildLanes(DefaultCenterline(), 30, DefaultLaneOffsets)
	require.Len(t, lanes, 4)

	center := lanes[0]
	for i := range center {
		assert.LessOrEqual(t, geom.Dist(center[i], center.At(i+1)), 30.0+1e-9)
	}
	for _, lane := range lanes[1:] {
		assert.Len(t, lane, len(center))
	}

	// every lane passes through the default finish region
	finish := DefaultFinish()
	for li, lane := range lanes {
		hit := false
		for _, p := range lane {
			if finish.Contains(p) {
				hit = true
				break
			}
		}
		assert.True(t, hit, "lane %d misses the finish", li)
		assert.False(t, finish.Contains(lane[0]), "lane %d starts inside the finish", li)
	}
}

func TestBuildLanesDegenerate(t *testing.T) {
	assert.Nil(t, BuildLanes(Path{{X: 1}}, 30, DefaultLaneOffsets))
	assert.Nil(t, BuildLanes(DefaultCenterline(), 0, DefaultLaneOffsets))
}

func TestLaneFor(t *testing.T) {
	lanes := []Path{{{X: 0}}, {{X: 1}}}
	assert.Equal(t, lanes[0], LaneFor(lanes, 0))
	assert.Equal(t, lanes[1], LaneFor(lanes, 1))
	assert.Equal(t, lanes[1], LaneFor(lanes, 5))
	assert.Nil(t, LaneFor(nil, 0))
}
