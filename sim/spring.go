package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// SpringParams describes the damped spring used for flick animations.
type SpringParams struct {
	// AngularFrequency in radians per second.
	AngularFrequency float64
	// DampingRatio below 1 overshoots, 1 is critical.
	DampingRatio float64
	// The animation is at rest once both displacement from the target and
	// speed fall to these thresholds.
	RestDisplacement float64
	RestSpeed        float64
}

// DefaultSpring matches a tension 40, friction 7, unit-mass spring.
func DefaultSpring() SpringParams {
	const tension, friction = 40.0, 7.0
	omega := math.Sqrt(tension)
	return SpringParams{
		AngularFrequency: omega,
		DampingRatio:     friction / (2 * omega),
		RestDisplacement: 0.1,
		RestSpeed:        0.1,
	}
}

// Validate rejects springs that would never come to rest.
func (p SpringParams) Validate() error {
	if !(p.AngularFrequency > 0) || !(p.DampingRatio > 0) {
		return fmt.Errorf("%w: spring needs positive frequency and damping", ErrInvalidConfig)
	}
	if !(p.RestDisplacement > 0) || !(p.RestSpeed > 0) {
		return fmt.Errorf("%w: spring rest thresholds must be positive", ErrInvalidConfig)
	}
	return nil
}

// spring2 animates a 2-D value toward a target, one harmonica spring per axis.
type spring2 struct {
	params SpringParams
	pos    Vector2
	vel    Vector2
	target Vector2
}

// step advances the animation by dt and reports whether it came to rest.
// At rest the position snaps exactly onto the target.
func (s *spring2) step(dt time.Duration) bool {
	if dt > 0 {
		sp := harmonica.NewSpring(dt.Seconds(), s.params.AngularFrequency, s.params.DampingRatio)
		s.pos.X, s.vel.X = sp.Update(s.pos.X, s.vel.X, s.target.X)
		s.pos.Y, s.vel.Y = sp.Update(s.pos.Y, s.vel.Y, s.target.Y)
	}
	if !s.atRest() {
		return false
	}
	s.pos = s.target
	s.vel = Vector2{}
	return true
}

func (s *spring2) atRest() bool {
	d := s.pos.Sub(s.target)
	return math.Abs(d.X) <= s.params.RestDisplacement &&
		math.Abs(d.Y) <= s.params.RestDisplacement &&
		math.Abs(s.vel.X) <= s.params.RestSpeed &&
		math.Abs(s.vel.Y) <= s.params.RestSpeed
}
