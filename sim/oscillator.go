package sim

import (
	"fmt"
	"time"
)

// Direction is the leg of the ping-pong cycle an Oscillator is on.
type Direction int8

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Oscillator produces the platform's sweep: phase rises 0->1 over the forward
// duration, falls 1->0 over the back duration, and repeats. It keeps time as
// an integer offset into the cycle so Position is exactly periodic.
type Oscillator struct {
	forward time.Duration
	back    time.Duration
	min     float64
	max     float64
	t       time.Duration
}

// NewOscillator creates an oscillator at phase 0 moving forward.
func NewOscillator(forward, back time.Duration, min, max float64) (Oscillator, error) {
	if forward <= 0 || back <= 0 {
		return Oscillator{}, fmt.Errorf("%w: oscillator legs %v/%v", ErrInvalidConfig, forward, back)
	}
	if !finite(min) || !finite(max) {
		return Oscillator{}, fmt.Errorf("%w: oscillator range [%v, %v]", ErrInvalidConfig, min, max)
	}
	return Oscillator{forward: forward, back: back, min: min, max: max}, nil
}

// Advance moves the oscillator dt along its cycle. Time past a boundary
// carries into the next leg, so a long frame lands where continuous motion
// would have. Non-positive dt is ignored.
func (o *Oscillator) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	period := o.Period()
	o.t = (o.t + dt%period) % period
}

// Reset returns to phase 0 moving forward.
func (o *Oscillator) Reset() {
	o.t = 0
}

// Period is the forward plus back duration.
func (o *Oscillator) Period() time.Duration {
	return o.forward + o.back
}

// Phase is the current position in [0,1].
func (o *Oscillator) Phase() float64 {
	return o.phaseAt(o.t)
}

// Direction is the leg currently being travelled. At the far boundary the
// oscillator is already heading backward.
func (o *Oscillator) Direction() Direction {
	if o.t < o.forward {
		return Forward
	}
	return Backward
}

// Position maps the phase onto the travel range.
func (o *Oscillator) Position() float64 {
	return o.min + o.Phase()*(o.max-o.min)
}

// At returns the phase after t has elapsed from a reset, without changing
// the oscillator.
func (o *Oscillator) At(t time.Duration) float64 {
	if t < 0 {
		t = 0
	}
	return o.phaseAt(t % o.Period())
}

// PositionAt is At mapped onto the travel range.
func (o *Oscillator) PositionAt(t time.Duration) float64 {
	return o.min + o.At(t)*(o.max-o.min)
}

// Range returns the travel extremes.
func (o *Oscillator) Range() (min, max float64) {
	return o.min, o.max
}

func (o *Oscillator) phaseAt(t time.Duration) float64 {
	if t < o.forward {
		return float64(t) / float64(o.forward)
	}
	return 1 - float64(t-o.forward)/float64(o.back)
}
