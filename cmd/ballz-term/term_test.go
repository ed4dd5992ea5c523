package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ballz/sensor"
	"github.com/plus3/ballz/sim"
)

type memStore struct {
	scores []int
}

func (m *memStore) LoadHighScores() ([]int, error) { return m.scores, nil }

func (m *memStore) AppendScore(score int) error {
	m.scores = append(m.scores, score)
	return nil
}

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func newTestGame(t *testing.T) (*termGame, tcell.SimulationScreen, *memStore, *testClock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 40)
	t.Cleanup(screen.Fini)

	keys := sensor.NewKeys(2)
	scores := &memStore{}
	game, err := newTermGame(context.Background(), screen, sim.DefaultConfig(400, 800), keys, sim.Deps{
		Sensor: keys,
		Store:  scores,
	})
	require.NoError(t, err)

	clock := &testClock{t: time.Unix(1000, 0)}
	game.now = clock.now
	return game, screen, scores, clock
}

func row(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := range w {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestTermDraw(t *testing.T) {
	game, screen, _, _ := newTestGame(t)
	game.tick(16 * time.Millisecond)
	game.draw()

	assert.Contains(t, row(screen, 0), "Score: 0")
	assert.Contains(t, row(screen, 0), "[idle]")

	r, _, _, _ := screen.GetContent(18, 31)
	assert.Equal(t, 'O', r, "ball occupies columns 17-21, rows 30-32")
	assert.Contains(t, row(screen, 30), "=", "platform row")
}

func TestTermArrowKeysTilt(t *testing.T) {
	game, _, _, clock := newTestGame(t)

	assert.True(t, game.handleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)))
	game.tick(16 * time.Millisecond)
	assert.Equal(t, -2.0, game.session.Snapshot().Tilt.Y)

	clock.t = clock.t.Add(keyHold)
	game.tick(16 * time.Millisecond)
	assert.Equal(t, 0.0, game.session.Snapshot().Tilt.Y, "released after the hold window")

	game.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	game.tick(16 * time.Millisecond)
	assert.Equal(t, 2.0, game.session.Snapshot().Tilt.Y)
}

func TestTermMouseFlick(t *testing.T) {
	game, _, _, _ := newTestGame(t)

	game.handleEvent(tcell.NewEventMouse(20, 32, tcell.Button1, tcell.ModNone))
	assert.Equal(t, sim.GestureDragging, game.session.Snapshot().Gesture.Phase)

	game.handleEvent(tcell.NewEventMouse(20, 33, tcell.Button1, tcell.ModNone))
	assert.Equal(t, sim.Vector2{Y: 20}, game.session.Snapshot().Offset)

	game.handleEvent(tcell.NewEventMouse(20, 34, tcell.ButtonNone, tcell.ModNone))
	state := game.session.Snapshot().Gesture
	assert.Equal(t, sim.GestureSettlingOvershoot, state.Phase)
	assert.Equal(t, sim.Vector2{Y: 40}, state.Offset)
}

func TestTermQuitAndRestart(t *testing.T) {
	game, _, scores, _ := newTestGame(t)
	first := game.session.ID()

	assert.True(t, game.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.NotEqual(t, first, game.session.ID())
	assert.Equal(t, sim.Running, game.session.State())
	assert.Equal(t, []int{0}, scores.scores, "restart saves the finished session")

	assert.False(t, game.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, game.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))

	game.close()
	game.close()
	assert.Equal(t, []int{0, 0}, scores.scores)
}
