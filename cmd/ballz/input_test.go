package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/ballz/sim"
	"github.com/plus3/ballz/store"
)

func TestDragDeltas(t *testing.T) {
	var d drag

	assert.Equal(t, pointerNone, d.move(10, 10).kind, "no drag in progress")
	assert.Equal(t, pointerNone, d.up(10, 10).kind)

	assert.Equal(t, pointerDown, d.down(100, 200).kind)
	assert.Equal(t, pointerNone, d.move(100, 200).kind, "unchanged position")

	ev := d.move(104, 230)
	assert.Equal(t, pointerMove, ev.kind)
	assert.Equal(t, sim.Vector2{X: 4, Y: 30}, ev.delta)

	ev = d.up(100, 240)
	assert.Equal(t, pointerUp, ev.kind)
	assert.Equal(t, sim.Vector2{Y: 40}, ev.delta)
	assert.False(t, d.active)
}

func TestDragStartsOnBallOnly(t *testing.T) {
	session, err := sim.NewSession(sim.DefaultConfig(400, 800), sim.Deps{})
	assert.NoError(t, err)
	assert.NoError(t, session.Start(t.Context()))
	ball := boxRect(session.Snapshot().BallOnScreen())

	var d drag
	assert.Equal(t, pointerNone, d.grab(10, 10, ball).kind)
	assert.False(t, d.active)
	assert.Equal(t, pointerNone, d.move(20, 40).kind)

	cx, cy := int(ball.X+ball.W/2), int(ball.Y+ball.H/2)
	assert.Equal(t, pointerDown, d.grab(cx, cy, ball).kind)
	assert.True(t, d.active)
}

func TestDragDrivesSession(t *testing.T) {
	session, err := sim.NewSession(sim.DefaultConfig(400, 800), sim.Deps{})
	assert.NoError(t, err)
	assert.NoError(t, session.Start(t.Context()))

	var d drag
	d.down(200, 650)
	session.Press()
	session.Move(d.move(200, 670).delta)
	session.Release(d.up(200, 690).delta)

	state := session.Snapshot().Gesture
	assert.Equal(t, sim.GestureSettlingOvershoot, state.Phase)
	assert.Equal(t, sim.Vector2{Y: 40}, state.Offset)
}

func TestLayout(t *testing.T) {
	l := NewLayout(sim.DefaultConfig(400, 800))

	assert.True(t, l.Start.Contains(200, 420))
	assert.False(t, l.Start.Contains(200, 380))
	assert.True(t, l.Exit.Contains(int(l.Exit.X)+1, 60))
	assert.False(t, l.Exit.Contains(10, 60))
	assert.Less(t, l.Scores.Y+l.Scores.H, l.Start.Y)
}

func TestScoreLines(t *testing.T) {
	assert.Equal(t, []string{"High Scores"}, ScoreLines(nil))
	assert.Equal(t,
		[]string{"High Scores", "1. 9", "2. 4"},
		ScoreLines([]store.Record{{Score: 9}, {Score: 4}}))
}
