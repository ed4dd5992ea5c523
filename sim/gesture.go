package sim

import "time"

// GesturePhase is the state of the flick state machine.
type GesturePhase int

const (
	GestureIdle GesturePhase = iota
	GestureDragging
	GestureSettlingOvershoot
	GestureSettlingRest
)

func (p GesturePhase) String() string {
	switch p {
	case GestureIdle:
		return "idle"
	case GestureDragging:
		return "dragging"
	case GestureSettlingOvershoot:
		return "settling-overshoot"
	case GestureSettlingRest:
		return "settling-rest"
	}
	return "unknown"
}

// Settling reports whether a release animation is in flight.
func (p GesturePhase) Settling() bool {
	return p == GestureSettlingOvershoot || p == GestureSettlingRest
}

// GestureState is the observable part of the controller.
type GestureState struct {
	Offset Vector2
	Phase  GesturePhase
	// ReleasedTargetReached becomes true once the return-to-rest leg of the
	// last flick has completed, and false again on the next press.
	ReleasedTargetReached bool
}

// GestureController models a one-shot flick: drag the ball, release it, watch
// it spring to an overshoot target and back to rest.
type GestureController struct {
	launch   float64
	anim     spring2
	phase    GesturePhase
	baseline Vector2
	reached  bool
	gen      uint64
	settles  uint64
}

// NewGestureController creates an idle controller. launchHeight is the
// distance a downward flick overshoots upward.
func NewGestureController(launchHeight float64, params SpringParams) *GestureController {
	return &GestureController{
		launch: launchHeight,
		anim:   spring2{params: params},
	}
}

// OvershootTarget is where a release with the given drag delta springs to
// first: straight up by launchHeight for a downward flick, rest otherwise.
func OvershootTarget(delta Vector2, launchHeight float64) Vector2 {
	if delta.Y > 0 {
		return Vector2{X: 0, Y: -launchHeight}
	}
	return Vector2{}
}

// Press starts a drag. Any settle in flight is abandoned and the current
// offset becomes the baseline the drag is measured from.
func (g *GestureController) Press() {
	g.gen++
	g.baseline = g.anim.pos
	g.anim.vel = Vector2{}
	g.anim.target = g.anim.pos
	g.phase = GestureDragging
	g.reached = false
}

// Move tracks the pointer 1:1. delta is measured from the press point.
// Ignored unless dragging.
func (g *GestureController) Move(delta Vector2) {
	if g.phase != GestureDragging || !delta.Finite() {
		return
	}
	g.anim.pos = g.baseline.Add(delta)
}

// Release ends the drag and starts the overshoot leg. It returns the
// overshoot target and false if no drag was in progress.
func (g *GestureController) Release(delta Vector2) (Vector2, bool) {
	if g.phase != GestureDragging {
		return Vector2{}, false
	}
	if !delta.Finite() {
		delta = g.anim.pos.Sub(g.baseline)
	}
	g.anim.pos = g.baseline.Add(delta)
	g.anim.vel = Vector2{}
	g.anim.target = OvershootTarget(delta, g.launch)
	g.phase = GestureSettlingOvershoot
	return g.anim.target, true
}

// Advance steps the release animation. It returns true exactly once per
// flick, on the frame the offset comes back to rest at (0,0).
func (g *GestureController) Advance(dt time.Duration) bool {
	switch g.phase {
	case GestureSettlingOvershoot:
		if !g.anim.step(dt) {
			return false
		}
		g.phase = GestureSettlingRest
		g.anim.target = Vector2{}
		if !g.anim.step(0) {
			return false
		}
	case GestureSettlingRest:
		if !g.anim.step(dt) {
			return false
		}
	default:
		return false
	}

	g.phase = GestureIdle
	g.anim.pos = Vector2{}
	g.anim.vel = Vector2{}
	g.baseline = Vector2{}
	g.reached = true
	g.settles++
	return true
}

// Cancel drops any drag or settle and puts the offset back at rest without
// emitting a settle.
func (g *GestureController) Cancel() {
	g.gen++
	g.phase = GestureIdle
	g.anim.pos = Vector2{}
	g.anim.vel = Vector2{}
	g.anim.target = Vector2{}
	g.baseline = Vector2{}
	g.reached = false
}

// State returns a copy of the observable state.
func (g *GestureController) State() GestureState {
	return GestureState{
		Offset:                g.anim.pos,
		Phase:                 g.phase,
		ReleasedTargetReached: g.reached,
	}
}

// Offset is the displacement currently applied on top of the ball.
func (g *GestureController) Offset() Vector2 {
	return g.anim.pos
}

// Phase returns the current state machine phase.
func (g *GestureController) Phase() GesturePhase {
	return g.phase
}

// Target is the point the current settle leg is heading to.
func (g *GestureController) Target() Vector2 {
	return g.anim.target
}

// Generation increases on every press and cancel. Deferred work captured
// under an older generation belongs to an abandoned gesture.
func (g *GestureController) Generation() uint64 {
	return g.gen
}

// Settles counts completed flicks.
func (g *GestureController) Settles() uint64 {
	return g.settles
}
