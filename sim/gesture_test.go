package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLaunch = 800 - 220
	frameDt    = 16 * time.Millisecond
)

// settle advances the controller until it reports a settle or maxFrames
// pass, and returns the number of settles and the phases seen.
func settle(g *GestureController, maxFrames int) (int, []GesturePhase) {
	settles := 0
	var phases []GesturePhase
	for range maxFrames {
		if g.Advance(frameDt) {
			settles++
		}
		if len(phases) == 0 || phases[len(phases)-1] != g.Phase() {
			phases = append(phases, g.Phase())
		}
		if g.Phase() == GestureIdle {
			break
		}
	}
	return settles, phases
}

func TestOvershootTarget(t *testing.T) {
	assert.Equal(t, Vector2{}, OvershootTarget(Vector2{Y: -40}, testLaunch), "upward flick does not launch")
	assert.Equal(t, Vector2{Y: -testLaunch}, OvershootTarget(Vector2{Y: 40}, testLaunch), "downward flick launches")
	assert.Equal(t, Vector2{}, OvershootTarget(Vector2{X: 90}, testLaunch), "sideways flick does not launch")
}

func TestGestureDownwardFlick(t *testing.T) {
	g := NewGestureController(testLaunch, DefaultSpring())
	assert.Equal(t, GestureIdle, g.Phase())

	g.Press()
	g.Move(Vector2{X: 5, Y: 20})
	assert.Equal(t, Vector2{X: 5, Y: 20}, g.Offset(), "drag tracks the pointer 1:1")

	target, ok := g.Release(Vector2{X: 8, Y: 40})
	require.True(t, ok)
	assert.Equal(t, Vector2{Y: -testLaunch}, target)
	assert.Equal(t, GestureSettlingOvershoot, g.Phase())

	settles, phases := settle(g, 2000)
	assert.Equal(t, 1, settles)
	assert.Equal(t, []GesturePhase{GestureSettlingOvershoot, GestureSettlingRest, GestureIdle}, phases)

	state := g.State()
	assert.Equal(t, Vector2{}, state.Offset)
	assert.True(t, state.ReleasedTargetReached)
	assert.False(t, g.Advance(frameDt), "settle fires once")
	assert.Equal(t, uint64(1), g.Settles())
}

func TestGestureUpwardFlickReturnsToRest(t *testing.T) {
	g := NewGestureController(testLaunch, DefaultSpring())
	g.Press()
	target, ok := g.Release(Vector2{Y: -40})
	require.True(t, ok)
	assert.Equal(t, Vector2{}, target)
	assert.Equal(t, Vector2{Y: -40}, g.Offset())

	settles, _ := settle(g, 2000)
	assert.Equal(t, 1, settles)
	assert.Equal(t, Vector2{}, g.Offset())
}

func TestGestureZeroDeltaFlick(t *testing.T) {
	g := NewGestureController(testLaunch, DefaultSpring())
	g.Press()
	_, ok := g.Release(Vector2{})
	require.True(t, ok)

	assert.True(t, g.Advance(frameDt))
	assert.Equal(t, GestureIdle, g.Phase())
	assert.Equal(t, Vector2{}, g.Offset())
}

func TestGesturePressMidSettleRestartsFromCurrentOffset(t *testing.T) {
	g := NewGestureController(testLaunch, DefaultSpring())
	g.Press()
	g.Release(Vector2{Y: 40})
	for range 10 {
		require.False(t, g.Advance(frameDt))
	}
	inFlight := g.Offset()
	require.NotEqual(t, Vector2{}, inFlight)
	firstGen := g.Generation()

	g.Press()
	assert.Equal(t, GestureDragging, g.Phase())
	assert.Equal(t, inFlight, g.Offset(), "press keeps the current offset as baseline")
	assert.Greater(t, g.Generation(), firstGen)
	assert.False(t, g.State().ReleasedTargetReached)

	for range 10 {
		assert.False(t, g.Advance(frameDt), "no animation while dragging")
	}
	assert.Equal(t, inFlight, g.Offset())

	g.Move(Vector2{X: 10, Y: 10})
	assert.Equal(t, inFlight.Add(Vector2{X: 10, Y: 10}), g.Offset())

	target, _ := g.Release(Vector2{X: 10, Y: -5})
	assert.Equal(t, Vector2{}, target)

	settles, _ := settle(g, 2000)
	assert.Equal(t, 1, settles)
	assert.Equal(t, uint64(1), g.Settles(), "the abandoned settle never completes")
	assert.Equal(t, Vector2{}, g.Offset())
}

func TestGestureIgnoresInputOutsideDrag(t *testing.T) {
	g := NewGestureController(testLaunch, DefaultSpring())

	g.Move(Vector2{X: 30, Y: 30})
	assert.Equal(t, Vector2{}, g.Offset())

	_, ok := g.Release(Vector2{Y: 40})
	assert.False(t, ok)
	assert.Equal(t, GestureIdle, g.Phase())
}

func TestGestureCancel(t *testing.T) {
	g := NewGestureController(testLaunch, DefaultSpring())
	g.Press()
	g.Release(Vector2{Y: 40})
	g.Advance(frameDt)

	g.Cancel()
	assert.Equal(t, GestureIdle, g.Phase())
	assert.Equal(t, Vector2{}, g.Offset())
	assert.False(t, g.Advance(frameDt))
	assert.Equal(t, uint64(0), g.Settles())
	assert.False(t, g.State().ReleasedTargetReached)
}

func TestGestureCancelClearsReached(t *testing.T) {
	g := NewGestureController(testLaunch, DefaultSpring())
	g.Press()
	g.Release(Vector2{Y: 40})
	settles, _ := settle(g, 1000)
	require.Equal(t, 1, settles)
	require.True(t, g.State().ReleasedTargetReached)

	g.Cancel()
	assert.False(t, g.State().ReleasedTargetReached)
	assert.Equal(t, uint64(1), g.Settles())
}
