package feedback

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate the impact sound is rendered at.
const SampleRate beep.SampleRate = 44100

// Punch describes the synthesized impact sound: a falling sine thump with a
// burst of noise on the attack.
type Punch struct {
	Duration  time.Duration
	Attack    time.Duration
	StartFreq float64
	EndFreq   float64
	// NoiseMix is the noise share of the mix, 0..1.
	NoiseMix float64
	// Volume is linear gain, 0 is silent.
	Volume float64
	Seed   uint64
}

// DefaultPunch is the sound played on every scoring hit.
func DefaultPunch() Punch {
	return Punch{
		Duration:  180 * time.Millisecond,
		Attack:    4 * time.Millisecond,
		StartFreq: 180,
		EndFreq:   45,
		NoiseMix:  0.35,
		Volume:    0.8,
		Seed:      1,
	}
}

// Streamer builds the punch as a finite beep stream.
func (p Punch) Streamer(rate beep.SampleRate) beep.Streamer {
	total := rate.N(p.Duration)
	attack := rate.N(p.Attack)
	mix := math.Max(0, math.Min(1, p.NoiseMix))

	thump := beep.Take(total, decay(sweep(rate, p.StartFreq, p.EndFreq, total), attack, total))
	burst := beep.Take(total, decay(noise(p.Seed), attack, total/4))

	return volume(beep.Mix(
		volume(thump, 1-mix),
		volume(burst, mix),
	), p.Volume)
}

// sweep is a sine whose frequency falls exponentially from f0 to f1 over n
// samples and then holds.
func sweep(rate beep.SampleRate, f0, f1 float64, n int) beep.Streamer {
	phase, pos := 0.0, 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			t := math.Min(1, float64(pos)/float64(max(n, 1)))
			freq := f0 * math.Pow(f1/f0, t)
			v := math.Sin(2 * math.Pi * phase)
			samples[i][0], samples[i][1] = v, v

			phase += freq / float64(rate)
			phase -= math.Floor(phase)
			pos++
		}
		return len(samples), true
	})
}

func noise(seed uint64) beep.Streamer {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i][0], samples[i][1] = v, v
		}
		return len(samples), true
	})
}

// decay ramps up over attack samples then falls linearly to silence at
// length.
func decay(s beep.Streamer, attack, length int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := range samples[:n] {
			gain := 0.0
			switch {
			case pos < attack:
				gain = float64(pos) / float64(attack)
			case pos < length:
				gain = float64(length-pos) / float64(max(length-attack, 1))
			}
			samples[i][0] *= gain
			samples[i][1] *= gain
			pos++
		}
		return n, ok
	})
}

func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// PCM renders a finite stream as 16-bit little-endian interleaved stereo,
// the format ebiten's audio players consume.
func PCM(s beep.Streamer) []byte {
	var (
		out = make([]byte, 0, 4*int(SampleRate)/4)
		buf = make([][2]float64, 512)
	)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
