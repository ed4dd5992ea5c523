package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/ballz/internal/log"
	"github.com/plus3/ballz/sensor"
	"github.com/plus3/ballz/sim"
)

// Terminals report key presses but not releases, so a direction counts as
// held for this long after its last press or auto-repeat.
const keyHold = 150 * time.Millisecond

var (
	stylePlatform = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBall     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

type termGame struct {
	screen  tcell.Screen
	cfg     sim.Config
	keys    *sensor.Keys
	session *sim.Session
	log     *slog.Logger

	now          func() time.Time
	upAt, downAt time.Time
	dragging     bool
	dragX, dragY int
}

func newTermGame(ctx context.Context, screen tcell.Screen, cfg sim.Config, keys *sensor.Keys, deps sim.Deps) (*termGame, error) {
	session, err := sim.NewSession(cfg, deps)
	if err != nil {
		return nil, err
	}
	if err := session.Start(ctx); err != nil {
		return nil, err
	}
	return &termGame{
		screen:  screen,
		cfg:     cfg,
		keys:    keys,
		session: session,
		log:     log.Component("term"),
		now:     time.Now,
	}, nil
}

// scale maps a terminal cell to playfield coordinates.
func (g *termGame) scale() (sx, sy float64) {
	w, h := g.screen.Size()
	return g.cfg.ScreenWidth / float64(max(w, 1)), g.cfg.ScreenHeight / float64(max(h, 1))
}

func (g *termGame) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := g.now()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-eventChan:
			if !g.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			now := g.now()
			g.tick(now.Sub(last))
			last = now
			g.draw()
		}
	}
}

// handleEvent applies one input event and returns false to quit.
func (g *termGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			g.restart()
		case ev.Key() == tcell.KeyUp:
			g.upAt = g.now()
		case ev.Key() == tcell.KeyDown:
			g.downAt = g.now()
		}

	case *tcell.EventMouse:
		g.handleMouse(ev)

	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *termGame) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !g.dragging:
		g.dragging = true
		g.dragX, g.dragY = x, y
		g.session.Press()
	case pressed:
		g.session.Move(g.delta(x, y))
	case g.dragging:
		g.dragging = false
		g.session.Release(g.delta(x, y))
	}
}

func (g *termGame) delta(x, y int) sim.Vector2 {
	sx, sy := g.scale()
	return sim.Vector2{X: float64(x-g.dragX) * sx, Y: float64(y-g.dragY) * sy}
}

func (g *termGame) tick(dt time.Duration) {
	now := g.now()
	g.keys.Update(now.Sub(g.upAt) < keyHold, now.Sub(g.downAt) < keyHold, 0)
	g.session.Tick(dt)
}

func (g *termGame) restart() {
	next, err := g.session.Restart()
	if err != nil {
		g.log.Error("restart", "error", err)
		return
	}
	if err := next.Start(context.Background()); err != nil {
		g.log.Error("restart", "error", err)
		return
	}
	g.session = next
	g.dragging = false
}

func (g *termGame) close() {
	if err := g.session.Exit(); err != nil {
		g.log.Warn("saving score", "error", err)
	}
}

func (g *termGame) draw() {
	g.screen.Clear()
	snap := g.session.Snapshot()

	g.fillBox(snap.Platform, '=', stylePlatform)
	g.fillBox(snap.BallOnScreen(), 'O', styleBall)

	status := fmt.Sprintf(" Score: %d  [%s]  arrows tilt, drag to flick, r restart, q quit ", snap.Score.Score, snap.Gesture.Phase)
	g.drawText(0, 0, status, styleStatus)
	g.screen.Show()
}

// fillBox draws the cells the box covers, never fewer than one per axis.
func (g *termGame) fillBox(b sim.Box, r rune, style tcell.Style) {
	sx, sy := g.scale()
	w, h := g.screen.Size()

	x0, x1 := int(b.Position.X/sx), int((b.Position.X+b.Extent.Width)/sx)
	y0, y1 := int(b.Position.Y/sy), int((b.Position.Y+b.Extent.Height)/sy)
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	for y := max(y0, 0); y < min(y1, h); y++ {
		for x := max(x0, 0); x < min(x1, w); x++ {
			g.screen.SetContent(x, y, r, nil, style)
		}
	}
}

func (g *termGame) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}
