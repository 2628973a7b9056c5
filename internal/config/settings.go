package config

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/spf13/pflag"

	"kartrace/internal/geom"
	"kartrace/internal/race"
	"kartrace/internal/track"
)

// Settings is the resolved configuration. Flags write straight into the
// fields; viper fills in values from the environment and config file.
type Settings struct {
	Laps            int
	Racers          []string
	LaneOffsets     []float64
	MaxSpeed        float64
	Lookahead       float64
	ArriveRadius    float64
	WaypointSpacing float64
	BrakeFactor     float64
	MaxAdvance      int
	SpeedMultiplier float64

	// Finish region; a zero size selects the built-in circuit's finish.
	FinishX, FinishY, FinishW, FinishH float64

	TrackFile string
	DB        string // results database, empty disables recording
	Audio     bool
	WindowW   int
	WindowH   int

	LogLevel  string
	LogFormat string
}

// Current holds the values the commands run with.
var Current = Default()

func Default() Settings {
	return Settings{
		Laps:            DefaultLaps,
		Racers:          slices.Clone(DefaultRacers),
		LaneOffsets:     slices.Clone(DefaultLaneOffsets),
		MaxSpeed:        DefaultMaxSpeed,
		Lookahead:       DefaultLookahead,
		ArriveRadius:    DefaultArriveRadius,
		WaypointSpacing: DefaultWaypointSpacing,
		BrakeFactor:     DefaultBrakeFactor,
		MaxAdvance:      DefaultMaxAdvance,
		SpeedMultiplier: DefaultSpeedMultiplier,
		TrackFile:       DefaultTrackFile,
		Audio:           true,
		WindowW:         DefaultWindowW,
		WindowH:         DefaultWindowH,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// AddRaceFlags registers the race tuning flags on fs, bound to s.
func AddRaceFlags(fs *pflag.FlagSet, s *Settings) {
	fs.IntVar(&s.Laps, "laps", s.Laps, "laps to finish a race")
	fs.StringSliceVar(&s.Racers, "racers", s.Racers, "racer names, one per lane")
	fs.Float64SliceVar(&s.LaneOffsets, "lane-offsets", s.LaneOffsets, "lateral lane offsets in px")
	fs.Float64Var(&s.MaxSpeed, "max-speed", s.MaxSpeed, "racer top speed in px/s")
	fs.Float64Var(&s.Lookahead, "lookahead", s.Lookahead, "pursuit lookahead in px")
	fs.Float64Var(&s.ArriveRadius, "arrive-radius", s.ArriveRadius, "waypoint arrive radius in px")
	fs.Float64Var(&s.WaypointSpacing, "segment-length", s.WaypointSpacing, "max lane segment length in px")
	fs.Float64Var(&s.BrakeFactor, "brake-factor", s.BrakeFactor, "brake radius as a fraction of lookahead")
	fs.IntVar(&s.MaxAdvance, "max-advance", s.MaxAdvance, "max waypoints skipped per advance pass")
	fs.Float64Var(&s.SpeedMultiplier, "speed", s.SpeedMultiplier, "initial simulation speed multiplier")
	fs.Float64Var(&s.FinishX, "finish-x", s.FinishX, "finish region left edge")
	fs.Float64Var(&s.FinishY, "finish-y", s.FinishY, "finish region top edge")
	fs.Float64Var(&s.FinishW, "finish-w", s.FinishW, "finish region width (0 = built-in)")
	fs.Float64Var(&s.FinishH, "finish-h", s.FinishH, "finish region height (0 = built-in)")
	fs.StringVar(&s.TrackFile, "track", s.TrackFile, "track file to load and save")
}

// Validate reports every setting the race cannot run with.
func (s Settings) Validate() error {
	var errs []error
	if s.Laps <= 0 {
		errs = append(errs, fmt.Errorf("laps must be positive, got %d", s.Laps))
	}
	if len(s.Racers) == 0 {
		errs = append(errs, errors.New("at least one racer is required"))
	}
	if len(s.LaneOffsets) == 0 {
		errs = append(errs, errors.New("at least one lane offset is required"))
	}
	if s.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("max-speed must be positive, got %g", s.MaxSpeed))
	}
	if s.WaypointSpacing <= 0 {
		errs = append(errs, fmt.Errorf("segment-length must be positive, got %g", s.WaypointSpacing))
	} else if s.Lookahead < s.WaypointSpacing {
		errs = append(errs, fmt.Errorf("lookahead %g is shorter than one segment (%g)", s.Lookahead, s.WaypointSpacing))
	}
	if s.ArriveRadius < 0 {
		errs = append(errs, fmt.Errorf("arrive-radius must not be negative, got %g", s.ArriveRadius))
	}
	if s.BrakeFactor < 0 || s.BrakeFactor > 1 {
		errs = append(errs, fmt.Errorf("brake-factor must be within [0,1], got %g", s.BrakeFactor))
	}
	if s.WaypointSpacing > 0 && s.MaxAdvance < s.minAdvance() {
		errs = append(errs, fmt.Errorf("max-advance %d cannot keep up with %g px per frame, need %d",
			s.MaxAdvance, s.MaxSpeed*MaxFrameDt*race.MaxSpeedMultiplier, s.minAdvance()))
	}
	if s.SpeedMultiplier < race.MinSpeedMultiplier || s.SpeedMultiplier > race.MaxSpeedMultiplier {
		errs = append(errs, fmt.Errorf("speed must be within [%g,%g], got %g",
			race.MinSpeedMultiplier, race.MaxSpeedMultiplier, s.SpeedMultiplier))
	}
	if (s.FinishW == 0) != (s.FinishH == 0) {
		errs = append(errs, errors.New("finish-w and finish-h must be set together"))
	}
	return errors.Join(errs...)
}

// minAdvance is the waypoint count one frame can cover at full speed and
// the fastest multiplier, plus the one being arrived at.
func (s Settings) minAdvance() int {
	return int(math.Ceil(s.MaxSpeed*MaxFrameDt*race.MaxSpeedMultiplier/s.WaypointSpacing)) + 1
}

func (s Settings) SteeringParams() race.SteeringParams {
	return race.SteeringParams{
		MaxSpeed:        s.MaxSpeed,
		Lookahead:       s.Lookahead,
		ArriveRadius:    s.ArriveRadius,
		WaypointSpacing: s.WaypointSpacing,
		BrakeFactor:     s.BrakeFactor,
		MaxAdvance:      s.MaxAdvance,
	}
}

func (s Settings) FinishRegion() geom.Rect {
	if s.FinishW == 0 || s.FinishH == 0 {
		return track.DefaultFinish()
	}
	return geom.NewRect(s.FinishX, s.FinishY, s.FinishW, s.FinishH)
}
