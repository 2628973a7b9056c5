package game

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"kartrace/internal/log"
	"kartrace/internal/race"
	"kartrace/internal/session"
	"kartrace/internal/sfx"
)

const bitDepth = 0 // 32-bit float (oto.FormatFloat32LE)

// AudioSystem plays the pre-rendered sound effects.
type AudioSystem struct {
	ctx    *oto.Context
	ready  chan struct{}
	sounds map[sfx.Kind][]byte
	voices int32
}

var globalAudio *AudioSystem

// InitAudio opens the output device and renders every sound effect once.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(sfx.SampleRate, sfx.ChannelCount, bitDepth)
	if err != nil {
		return err
	}
	a := &AudioSystem{ctx: ctx, ready: ready, sounds: make(map[sfx.Kind][]byte)}
	for _, k := range sfx.Kinds() {
		a.sounds[k] = sfx.Generate(k)
	}
	globalAudio = a
	return nil
}

// PlaySound plays kind if audio is up. It never blocks the frame.
func PlaySound(kind sfx.Kind) {
	a := globalAudio
	if a == nil {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	samples := a.sounds[kind]
	if len(samples) == 0 {
		return
	}
	if atomic.AddInt32(&a.voices, 1) > maxVoices {
		atomic.AddInt32(&a.voices, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&a.voices, -1)
		player := a.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			log.Debug("Closing audio player", log.ErrorField(err))
		}
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// BindAudio plays race events.
func BindAudio(bus *race.EventBus) {
	bus.Subscribe(race.EventLapCompleted, func(race.Event) { PlaySound(sfx.Lap) })
	bus.Subscribe(race.EventRacerFinished, func(race.Event) { PlaySound(sfx.Finish) })
	bus.Subscribe(race.EventRaceCompleted, func(race.Event) { PlaySound(sfx.RaceOver) })
	bus.Subscribe(race.EventRaceReset, func(race.Event) { PlaySound(sfx.Reset) })
}

// actionSound is the feedback for a host action: ok reports whether the
// action changed anything.
func actionSound(a session.Action, ok bool) sfx.Kind {
	switch {
	case !ok:
		return sfx.Error
	case a == session.ActionAddPoint:
		return sfx.Place
	default:
		return sfx.Click
	}
}
