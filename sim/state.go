package sim

// BallState is the ball's home position and size. The gesture offset is
// applied on top of Position and is not part of it.
type BallState struct {
	Position Vector2
	Extent   Extent
}

// Box is the ball's bounding box at its home position.
func (b BallState) Box() Box {
	return Box{Position: b.Position, Extent: b.Extent}
}

// PlatformState is the moving platform.
type PlatformState struct {
	Oscillator Oscillator
	Extent     Extent
	Y          float64
}

// Position is the platform's top-left corner.
func (p *PlatformState) Position() Vector2 {
	return Vector2{X: p.Oscillator.Position(), Y: p.Y}
}

// Box is the platform's bounding box.
func (p *PlatformState) Box() Box {
	return Box{Position: p.Position(), Extent: p.Extent}
}

// SensorInput holds the tilt sample consumed by the current frame.
type SensorInput struct {
	Buffer  *TiltBuffer
	Current TiltSample
}

// Scoreboard tracks the session's score and what produced it.
type Scoreboard struct {
	Score   int
	Impacts int
	Settles int
}
