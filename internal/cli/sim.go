package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/vg"

	"kartrace/internal/config"
	"kartrace/internal/log"
	"kartrace/internal/race"
	"kartrace/internal/results"
	"kartrace/internal/track"
	"kartrace/internal/trackplot"
)

type simOptions struct {
	dt          float64
	maxTime     float64
	plotFile    string
	sampleEvery int
}

func NewSimCmd() *cobra.Command {
	opts := simOptions{dt: config.SimDt, maxTime: 600, sampleEvery: 10}
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "runs a race headless and prints the classification",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runSim(ctx, cmd.OutOrStdout(), config.Current, opts)
		},
	}
	cmd.Flags().Float64Var(&opts.dt, "dt", opts.dt, "fixed step in seconds")
	cmd.Flags().Float64Var(&opts.maxTime, "max-time", opts.maxTime, "give up after this much race time in seconds")
	cmd.Flags().StringVar(&opts.plotFile, "plot", "", "write the driven lines to this image file")
	cmd.Flags().IntVar(&opts.sampleEvery, "sample-every", opts.sampleEvery, "ticks between trail samples for --plot")
	return cmd
}

func runSim(ctx context.Context, out io.Writer, s config.Settings, opts simOptions) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if opts.dt <= 0 || opts.dt > config.MaxFrameDt {
		return fmt.Errorf("dt must be within (0,%g], got %g", config.MaxFrameDt, opts.dt)
	}

	center, fromFile, err := track.LoadOrDefault(s.TrackFile)
	if err != nil {
		return fmt.Errorf("load track: %w", err)
	}
	trackName := "default"
	if fromFile {
		trackName = s.TrackFile
	}
	lanes := track.BuildLanes(center, s.WaypointSpacing, s.LaneOffsets)
	if len(lanes) == 0 {
		return fmt.Errorf("track %s: %w", trackName, track.ErrTooFewPoints)
	}

	c := race.NewRace(s.Racers, s.SteeringParams(), s.Laps, s.FinishRegion(), lanes)
	c.SetSpeedMultiplier(s.SpeedMultiplier)
	logEvents(c.Events)

	var trails []trackplot.Trail
	var onTick func(int)
	if opts.plotFile != "" {
		trails, onTick = trailRecorder(c, max(1, opts.sampleEvery))
	}

	log.Info("Starting simulation",
		log.String("track", trackName),
		log.Int("racers", len(c.Racers())),
		log.Int("laps", s.Laps),
		log.Float64("dt", opts.dt))
	started := time.Now()
	ticks, err := simulate(ctx, c, opts.dt, opts.maxTime, onTick)
	if err != nil {
		return err
	}
	log.Info("Simulation done",
		log.Int("ticks", ticks),
		log.Float64("raceTime", c.Timer()),
		log.Bool("complete", c.Done()),
		log.Duration("wall", time.Since(started)))

	if err := printResults(out, c.Results()); err != nil {
		return err
	}

	if opts.plotFile != "" {
		scene := trackplot.Scene{Center: center, Lanes: lanes, Finish: c.Finish(), Trails: trails}
		if err := scene.Save(opts.plotFile, 10*vg.Inch, 6*vg.Inch); err != nil {
			return err
		}
		log.Info("Wrote trail plot", log.String("file", opts.plotFile))
	}

	if s.DB != "" {
		if err := recordRace(ctx, s.DB, trackName, s.Laps, c); err != nil {
			log.Error("Could not record race", log.ErrorField(err))
		}
	}
	return nil
}

// simulate ticks c at a fixed step until every racer has a place or the
// race clock passes maxTime. It returns the number of ticks run.
func simulate(ctx context.Context, c *race.Coordinator, dt, maxTime float64, onTick func(int)) (int, error) {
	ticks := 0
	for !c.Done() && c.Timer() < maxTime {
		if ticks%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return ticks, err
			}
		}
		c.Tick(dt)
		ticks++
		if onTick != nil {
			onTick(ticks)
		}
	}
	return ticks, nil
}

// trailRecorder samples each racer's position every n ticks.
func trailRecorder(c *race.Coordinator, n int) ([]trackplot.Trail, func(int)) {
	racers := c.Racers()
	trails := make([]trackplot.Trail, len(racers))
	for i, r := range racers {
		trails[i] = trackplot.Trail{Name: r.Name, Points: []r2.Vec{r.Position()}}
	}
	return trails, func(tick int) {
		if tick%n != 0 {
			return
		}
		for i, r := range racers {
			if !r.IsFinished() {
				trails[i].Points = append(trails[i].Points, r.Position())
			}
		}
	}
}

func logEvents(bus *race.EventBus) {
	bus.Subscribe(race.EventLapCompleted, func(e race.Event) {
		log.Debug("Lap completed",
			log.String("racer", e.Racer), log.Int("lap", e.Lap), log.Float64("time", e.Time))
	})
	bus.Subscribe(race.EventRacerFinished, func(e race.Event) {
		log.Info("Racer finished",
			log.String("racer", e.Racer), log.Int("place", e.Place), log.Float64("time", e.Time))
	})
	bus.Subscribe(race.EventRaceCompleted, func(e race.Event) {
		log.Info("Race completed", log.Float64("time", e.Time))
	})
}

func printResults(out io.Writer, res []race.Result) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tRACER\tLAPS\tTIME\tPROGRESS")
	for i, r := range res {
		pos, finish := fmt.Sprintf("(%d)", i+1), "-"
		if r.Place > 0 {
			pos = fmt.Sprintf("%d", r.Place)
			finish = fmt.Sprintf("%.2fs", r.FinishTime)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%.3f\n", pos, r.Name, r.Laps, finish, r.Progress)
	}
	return tw.Flush()
}

func recordRace(ctx context.Context, dbPath, trackName string, laps int, c *race.Coordinator) error {
	store, err := results.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open results: %w", err)
	}
	defer store.Close()

	id, err := store.RecordRace(ctx, results.Race{
		Track:    trackName,
		Laps:     laps,
		Duration: c.Timer(),
		Entries:  c.Results(),
	})
	if err != nil {
		return err
	}
	log.Info("Recorded race", log.String("id", id.String()), log.String("db", dbPath))
	return nil
}
