// Package trackplot renders a circuit, its lanes and recorded racer
// trails to an image file.
package trackplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"kartrace/internal/geom"
	"kartrace/internal/track"
)

var ErrNothingToPlot = errors.New("no drivable centerline")

// Trail is the sampled path one racer drove.
type Trail struct {
	Name   string
	Points []r2.Vec
}

type Scene struct {
	Title  string
	Center track.Path
	Lanes  []track.Path
	Finish geom.Rect
	Trails []Trail
}

// Build assembles the plot. Y grows downwards to match screen space.
func (s Scene) Build() (*plot.Plot, error) {
	if !s.Center.Drivable() {
		return nil, ErrNothingToPlot
	}

	p := plot.New()
	p.Title.Text = s.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("Track (%d points, %.0f px)", len(s.Center), s.Center.Length())
	}
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	center, err := plotter.NewLine(loop(s.Center))
	if err != nil {
		return nil, err
	}
	center.Color = color.Gray{Y: 90}
	center.Width = vg.Points(2)
	center.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(center)
	p.Legend.Add("centerline", center)

	laneColors := generateColors(len(s.Lanes))
	for i, lane := range s.Lanes {
		if len(lane) < 2 {
			continue
		}
		l, err := plotter.NewLine(loop(lane))
		if err != nil {
			return nil, err
		}
		l.Color = laneColors[i]
		l.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("lane %d", i), l)
	}

	if s.Finish.W() > 0 && s.Finish.H() > 0 {
		lo, hi := s.Finish.Min, s.Finish.Max
		box, err := plotter.NewLine(plotter.XYs{
			{X: lo.X, Y: lo.Y}, {X: hi.X, Y: lo.Y},
			{X: hi.X, Y: hi.Y}, {X: lo.X, Y: hi.Y},
			{X: lo.X, Y: lo.Y},
		})
		if err != nil {
			return nil, err
		}
		box.Color = color.RGBA{R: 220, G: 40, B: 40, A: 255}
		box.Width = vg.Points(2)
		p.Add(box)
		p.Legend.Add("finish", box)
	}

	trailColors := generateColors(len(s.Trails))
	for i, tr := range s.Trails {
		if len(tr.Points) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(xys(tr.Points))
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = trailColors[i]
		sc.GlyphStyle.Radius = vg.Points(1)
		p.Add(sc)
		p.Legend.Add(tr.Name, sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// Save writes the scene to file; the extension picks the format.
func (s Scene) Save(file string, w, h vg.Length) error {
	p, err := s.Build()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create plot dir: %w", err)
		}
	}
	if err := p.Save(w, h, file); err != nil {
		return fmt.Errorf("save track plot: %w", err)
	}
	return nil
}

func xys(pts []r2.Vec) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, v := range pts {
		out[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	return out
}

// loop closes the polyline back onto its first point.
func loop(pts []r2.Vec) plotter.XYs {
	out := xys(pts)
	if len(out) > 0 {
		out = append(out, out[0])
	}
	return out
}

func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := range colors {
		r, g, b := hslToRGB(float64(i)/float64(n), 0.7, 0.45)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h * 6
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var rf, gf, bf float64
	switch int(hp) % 6 {
	case 0:
		rf, gf = c, x
	case 1:
		rf, gf = x, c
	case 2:
		gf, bf = c, x
	case 3:
		gf, bf = x, c
	case 4:
		rf, bf = x, c
	default:
		rf, bf = c, x
	}
	m := l - c/2
	to := func(v float64) uint8 { return uint8(math.Round((v + m) * 255)) }
	return to(rf), to(gf), to(bf)
}
