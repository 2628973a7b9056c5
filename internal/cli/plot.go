package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"kartrace/internal/config"
	"kartrace/internal/log"
	"kartrace/internal/track"
	"kartrace/internal/trackplot"
)

type plotOptions struct {
	out           string
	width, height float64 // inches
}

func NewPlotCmd() *cobra.Command {
	opts := plotOptions{out: "track.png", width: 10, height: 6}
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "renders the track, its lanes and the finish region to an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(config.Current, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "output file, the extension picks the format")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "image width in inches")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "image height in inches")
	return cmd
}

func runPlot(s config.Settings, opts plotOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("plot size must be positive, got %gx%g", opts.width, opts.height)
	}
	center, fromFile, err := track.LoadOrDefault(s.TrackFile)
	if err != nil {
		return fmt.Errorf("load track: %w", err)
	}
	title := ""
	if fromFile {
		title = s.TrackFile
	}
	scene := trackplot.Scene{
		Title:  title,
		Center: center,
		Lanes:  track.BuildLanes(center, s.WaypointSpacing, s.LaneOffsets),
		Finish: s.FinishRegion(),
	}
	if err := scene.Save(opts.out, vg.Length(opts.width)*vg.Inch, vg.Length(opts.height)*vg.Inch); err != nil {
		return err
	}
	log.Info("Wrote track plot", log.String("file", opts.out), log.Int("lanes", len(scene.Lanes)))
	return nil
}
