package trackplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/vg"

	"kartrace/internal/track"
)

func defaultScene() Scene {
	center := track.DefaultCenterline()
	return Scene{
		Center: center,
		Lanes:  track.BuildLanes(center, 30, track.DefaultLaneOffsets),
		Finish: track.DefaultFinish(),
		Trails: []Trail{{Name: "Mario", Points: []r2.Vec{{X: 300, Y: 200}, {X: 330, Y: 200}}}},
	}
}

func TestSaveWritesImage(t *testing.T) {
	for _, ext := range []string{"png", "svg"} {
		t.Run(ext, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "out", "track."+ext)
			require.NoError(t, defaultScene().Save(file, 8*vg.Inch, 5*vg.Inch))

			info, err := os.Stat(file)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestBuildDefaultTitle(t *testing.T) {
	p, err := defaultScene().Build()
	require.NoError(t, err)
	assert.Contains(t, p.Title.Text, "8 points")

	s := defaultScene()
	s.Title = "custom"
	p, err = s.Build()
	require.NoError(t, err)
	assert.Equal(t, "custom", p.Title.Text)
}

func TestBuildRejectsEmptyCenterline(t *testing.T) {
	_, err := Scene{Center: track.Path{{X: 1, Y: 1}}}.Build()
	require.ErrorIs(t, err, ErrNothingToPlot)
}

func TestGenerateColors(t *testing.T) {
	assert.Nil(t, generateColors(0))
	cs := generateColors(4)
	require.Len(t, cs, 4)
	assert.NotEqual(t, cs[0], cs[1])
}

func TestHSLToRGB(t *testing.T) {
	r, g, b := hslToRGB(0, 1, 0.5)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	r, g, b = hslToRGB(0.5, 1, 0.5)
	assert.Equal(t, [3]uint8{0, 255, 255}, [3]uint8{r, g, b})
}
