package sim

import "time"

// SensorIntegrator turns tilt rates into ball motion inside the home band.
//
// Only the Y rate is applied. Horizontal tilt is sampled but deliberately
// discarded: the ball slides vertically within its band and leaves it only
// through a flick, never through tilt.
type SensorIntegrator struct {
	Gain           float64
	ReferenceFrame time.Duration
	Bounds         Bounds
	Strict         bool

	violations int
}

// NewSensorIntegrator builds an integrator from a session config.
func NewSensorIntegrator(cfg Config) SensorIntegrator {
	return SensorIntegrator{
		Gain:           cfg.Gain,
		ReferenceFrame: cfg.ReferenceFrame,
		Bounds:         cfg.HomeBand(),
		Strict:         cfg.Strict,
	}
}

// Step returns the next ball position. The displacement is
// tilt.Y*Gain per reference frame, scaled by the real dt so dropped frames
// integrate correctly. The result always lies inside Bounds.
func (s *SensorIntegrator) Step(previous Vector2, tilt TiltSample, dt time.Duration) Vector2 {
	if !tilt.Finite() {
		s.violate("non-finite tilt sample %+v", tilt)
		tilt = TiltSample{}
	}
	if !finite(previous.X) {
		s.violate("non-finite ball x %v", previous.X)
		previous.X = s.Bounds.MinX
	}
	if !finite(previous.Y) {
		s.violate("non-finite ball y %v", previous.Y)
		previous.Y = s.Bounds.MinY
	}
	if dt < 0 {
		dt = 0
	}

	frames := 1.0
	if s.ReferenceFrame > 0 {
		frames = float64(dt) / float64(s.ReferenceFrame)
	}

	next := Vector2{
		X: previous.X,
		Y: previous.Y + tilt.Y*s.Gain*frames,
	}
	return s.Bounds.Clamp(next)
}

// Violations counts repaired invariant violations since creation.
func (s *SensorIntegrator) Violations() int {
	return s.violations
}

func (s *SensorIntegrator) violate(format string, args ...any) {
	_ = enforce(s.Strict, format, args...)
	s.violations++
}
