package sim

import (
	"log/slog"

	"github.com/plus3/ballz/engine"
)

// OscillatorSystem sweeps the platform.
type OscillatorSystem struct {
	Platform engine.Resource[PlatformState]
}

func (s *OscillatorSystem) Execute(frame *engine.UpdateFrame) {
	s.Platform.Get().Oscillator.Advance(frame.DeltaTime)
}

// SensorSystem samples the tilt buffer once and integrates the ball.
type SensorSystem struct {
	Ball       engine.Resource[BallState]
	Input      engine.Resource[SensorInput]
	Integrator engine.Resource[SensorIntegrator]

	Log *slog.Logger
}

func (s *SensorSystem) Execute(frame *engine.UpdateFrame) {
	ball, input, integrator := s.Ball.Get(), s.Input.Get(), s.Integrator.Get()

	input.Current = TiltSample{}
	if input.Buffer != nil {
		input.Current = input.Buffer.Latest()
	}

	before := integrator.Violations()
	ball.Position = integrator.Step(ball.Position, input.Current, frame.DeltaTime)
	if n := integrator.Violations() - before; n > 0 && s.Log != nil {
		s.Log.Warn("repaired ball state", "error", ErrInvariant, "violations", n, "frame", frame.Index)
	}
}

// GestureSystem advances the flick animation.
type GestureSystem struct {
	Gesture engine.Resource[GestureController]

	// OnSettle runs once per completed flick.
	OnSettle func(frame *engine.UpdateFrame)
}

func (s *GestureSystem) Execute(frame *engine.UpdateFrame) {
	if s.Gesture.Get().Advance(frame.DeltaTime) && s.OnSettle != nil {
		s.OnSettle(frame)
	}
}

// CollisionSystem tests the ball, displaced by the gesture offset, against
// the platform. Nothing is tested while the player is holding the ball.
type CollisionSystem struct {
	Ball     engine.Resource[BallState]
	Platform engine.Resource[PlatformState]
	Gesture  engine.Resource[GestureController]
	Input    engine.Resource[SensorInput]

	Detector CollisionDetector
	// OnHit runs once per qualifying frame.
	OnHit func(frame *engine.UpdateFrame)
}

func (s *CollisionSystem) Execute(frame *engine.UpdateFrame) {
	gesture := s.Gesture.Get()
	if gesture.Phase() == GestureDragging {
		return
	}

	ball := s.Ball.Get().Box().Translate(gesture.Offset())
	if s.Detector.Test(ball, s.Platform.Get().Box(), s.Input.Get().Current) && s.OnHit != nil {
		s.OnHit(frame)
	}
}
