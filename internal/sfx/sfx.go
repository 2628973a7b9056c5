// Package sfx synthesises the race sound effects as interleaved stereo
// float32 little-endian PCM, ready for an oto player.
package sfx

import (
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	FrameBytes   = 8 // two float32 channels
)

// Kind identifies a sound effect.
type Kind int

const (
	Lap Kind = iota
	Finish
	RaceOver
	Click
	Place
	Reset
	Error
)

var kindNames = [...]string{"lap", "finish", "race-over", "click", "place", "reset", "error"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds lists every sound effect, for preloading.
func Kinds() []Kind {
	return []Kind{Lap, Finish, RaceOver, Click, Place, Reset, Error}
}

// Generate renders kind. Unknown kinds give nil.
func Generate(kind Kind) []byte {
	switch kind {
	case Lap:
		return genLap()
	case Finish:
		return genFinish()
	case RaceOver:
		return genRaceOver()
	case Click:
		return genClick()
	case Place:
		return genPlace()
	case Reset:
		return genReset()
	case Error:
		return genError()
	}
	return nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < ChannelCount; c++ {
		o := i*FrameBytes + c*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat is a gentle saturation curve that stays inside [-1,1].
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns one FM sample: carrier frequency, modulator/carrier ratio and
// modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*FrameBytes) }

func render(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// bells mixes overlapping FM bell notes, each starting step samples after
// the previous and ringing to the end of the buffer.
func bells(freqs []float64, step, tail int, ratio, depth, gain float64) []byte {
	total := len(freqs)*step + tail
	mix := make([]float64, total)
	for fi, freq := range freqs {
		start := fi * step
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.6, 0.05, 0.3)
			s := fm(t, freq, ratio, depth*env) * env * gain
			s += math.Sin(2*math.Pi*freq*2*t) * env * gain / 4
			mix[start+j] += s
		}
	}
	return render(mix)
}

// genLap: short rising arpeggio, C5 E5 G5 C6.
func genLap() []byte {
	return bells([]float64{523.25, 659.25, 783.99, 1046.5}, SampleRate*75/1000, int(0.18*SampleRate), 2.756, 5.0, 0.38)
}

// genFinish: longer bell staircase for a racer taking the flag.
func genFinish() []byte {
	return bells([]float64{440, 554.37, 659.25, 880, 1108.73}, int(0.09*SampleRate), int(0.25*SampleRate), 3.5, 5.5, 0.28)
}

// genRaceOver: staggered major chord with a sub octave, held.
func genRaceOver() []byte {
	n := int(0.9 * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{261.63, 0.00}, // C4
		{329.63, 0.10}, // E4
		{392.00, 0.20}, // G4
		{523.25, 0.30}, // C5
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.35, 0.4)
			s := fm(t, note.freq, 2.0, 2.0*env) * env * 0.24
			s += math.Sin(2*math.Pi*note.freq*0.5*t) * env * 0.08
			mix[i] += s
		}
	}
	return render(mix)
}

// genClick: crisp click with a brief falling tone.
func genClick() []byte {
	n := SampleRate * 65 / 1000
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		mix[i] = fm(t, 1400-700*p, 1.0, 0.6) * env * 0.38
	}
	return render(mix)
}

// genPlace: snappy upward pop for an editor point.
func genPlace() []byte {
	n := int(0.09 * SampleRate)
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.1)
		freq := 480 + 720*p
		mix[i] = fm(t, freq, 2.0, 3.5*env)*env*0.5 + math.Sin(2*math.Pi*freq*3*t)*env*0.06
	}
	return render(mix)
}

// genReset: filtered noise sweep under a falling tone.
func genReset() []byte {
	n := int(0.3 * SampleRate)
	mix := make([]float64, n)
	seed := uint64(40503)
	lp := 0.0
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		k := 0.08 + 0.5*(1-p)
		lp = lp*(1-k) + lcg(&seed)*k
		env := adsr(p, 0.05, 0.4, 0.3, 0.3)
		mix[i] = (lp*0.45 + fm(t, 600-380*p, 0.5, 1.5)*0.3) * env
	}
	return render(mix)
}

// genError: low descending buzz.
func genError() []byte {
	n := int(0.16 * SampleRate)
	mix := make([]float64, n)
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.015, 0.55, 0.1, 0.25)
		freq := 320 - 220*p
		mix[i] = fm(t, freq, 1.5, 2.8*(1-p))*env*0.52 + math.Sin(2*math.Pi*freq*2*t)*env*0.1
	}
	return render(mix)
}
