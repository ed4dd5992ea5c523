package sim

import "math"

// Overlap is an inclusive axis-aligned bounding box test: touching edges
// count as a hit.
func Overlap(a, b Box) bool {
	return a.Position.X+a.Extent.Width >= b.Position.X &&
		a.Position.X <= b.Position.X+b.Extent.Width &&
		a.Position.Y+a.Extent.Height >= b.Position.Y &&
		a.Position.Y <= b.Position.Y+b.Extent.Height
}

// CollisionDetector decides whether the ball strikes the platform.
type CollisionDetector struct {
	// TiltGate additionally requires |tilt.Y| > Threshold, so passive
	// contact does not count; the ball has to be moving into the platform.
	TiltGate  bool
	Threshold float64
}

// NewCollisionDetector builds a detector from a session config.
func NewCollisionDetector(cfg Config) CollisionDetector {
	return CollisionDetector{TiltGate: cfg.TiltGate, Threshold: cfg.TiltThreshold}
}

// Test returns true when ball and platform overlap and, if gated, the tilt
// rate exceeds the threshold. It has no side effects.
func (d CollisionDetector) Test(ball, platform Box, tilt TiltSample) bool {
	if d.TiltGate && !(math.Abs(tilt.Y) > d.Threshold) {
		return false
	}
	return Overlap(ball, platform)
}
