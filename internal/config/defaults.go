// Package config holds the race defaults and the settings resolved from
// flags, environment and the optional config file.
package config

// Race defaults.
const (
	DefaultLaps            = 3
	DefaultMaxSpeed        = 200.0 // px/s
	DefaultLookahead       = 50.0  // px
	DefaultArriveRadius    = 10.0  // px
	DefaultWaypointSpacing = 30.0  // px between densified lane points
	DefaultBrakeFactor     = 0.5
	DefaultMaxAdvance      = 8
	DefaultSpeedMultiplier = 1.0
)

// Host frame clock. Longer frames are clamped so a stall never teleports
// racers through the finish region.
const (
	MaxFrameDt = 0.1
	SimDt      = 1.0 / 60
)

// Files and window.
const (
	DefaultTrackFile = "bin/Paths/track.path"
	DefaultWindowW   = 1280
	DefaultWindowH   = 720
)

var (
	DefaultRacers      = []string{"Mario", "Luigi", "Peach", "Yoshi"}
	DefaultLaneOffsets = []float64{0, 12, -12, 24}
)
