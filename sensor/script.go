package sensor

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/plus3/ballz/sim"
)

var (
	_ sim.SensorFeed = (*Script)(nil)
	_ sim.SensorFeed = (*Keys)(nil)
)

// Script replays a fixed sequence of samples, one per Step. It is
// deterministic and drives headless runs and tests.
type Script struct {
	Broadcaster

	mu      sync.Mutex
	samples []sim.TiltSample
	pos     int
	loop    bool
}

// NewScript returns a script over samples. With loop set it wraps around,
// otherwise it keeps publishing the final sample.
func NewScript(samples []sim.TiltSample, loop bool) *Script {
	return &Script{samples: samples, loop: loop}
}

// Step publishes the next sample and reports whether one was available.
func (s *Script) Step() bool {
	s.mu.Lock()
	if len(s.samples) == 0 {
		s.mu.Unlock()
		return false
	}
	if s.pos >= len(s.samples) {
		if !s.loop {
			s.mu.Unlock()
			return false
		}
		s.pos = 0
	}
	sample := s.samples[s.pos]
	s.pos++
	s.mu.Unlock()

	s.Publish(sample)
	return true
}

// Play steps at the given interval until ctx is done or a non-looping script
// runs out.
func (s *Script) Play(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.Step() {
				return
			}
		}
	}
}

// Wave samples a sine tilt on the Y axis: amplitude rad/s, one cycle per
// period, n samples spaced by step.
func Wave(amplitude float64, period, step time.Duration, n int) []sim.TiltSample {
	samples := make([]sim.TiltSample, n)
	for i := range samples {
		t := time.Duration(i) * step
		samples[i] = sim.TiltSample{Y: WaveAt(amplitude, period, t)}
	}
	return samples
}

// WaveAt is the Wave value at time t.
func WaveAt(amplitude float64, period, t time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	return amplitude * math.Sin(2*math.Pi*float64(t)/float64(period))
}

// Keys turns held directions into tilt samples for frontends without a
// gyroscope. Up is a negative Y rate, which moves the ball up the screen.
type Keys struct {
	Broadcaster

	// Rate is the tilt rate published while a direction is held.
	Rate float64

	mu   sync.Mutex
	last sim.TiltSample
	sent bool
}

// NewKeys returns a keyboard feed publishing ±rate.
func NewKeys(rate float64) *Keys {
	return &Keys{Rate: rate}
}

// Sample maps held directions and an analog axis in -1..1 to a sample.
// Digital input wins over the axis.
func (k *Keys) Sample(up, down bool, axis float64) sim.TiltSample {
	switch {
	case up && !down:
		return sim.TiltSample{Y: -k.Rate}
	case down && !up:
		return sim.TiltSample{Y: k.Rate}
	}
	if math.IsNaN(axis) {
		return sim.TiltSample{}
	}
	axis = math.Max(-1, math.Min(1, axis))
	return sim.TiltSample{Y: axis * k.Rate}
}

// Update publishes the sample for the current input, but only when it
// changed since the last call.
func (k *Keys) Update(up, down bool, axis float64) {
	s := k.Sample(up, down, axis)

	k.mu.Lock()
	changed := !k.sent || s != k.last
	k.last, k.sent = s, true
	k.mu.Unlock()

	if changed {
		k.Publish(s)
	}
}
