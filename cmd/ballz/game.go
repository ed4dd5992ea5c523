package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/ballz/debugui"
	debugui_ebiten "github.com/plus3/ballz/debugui/ebiten"
	"github.com/plus3/ballz/engine"
	"github.com/plus3/ballz/internal/log"
	"github.com/plus3/ballz/sensor"
	"github.com/plus3/ballz/sim"
	"github.com/plus3/ballz/store"
)

const topScoreCount = 5

// GameDeps are the collaborators shared by every session the game starts.
type GameDeps struct {
	sim.Deps
	Scores  *store.JSONStore
	Keys    *sensor.Keys
	DebugUI bool
}

// Game is the ebiten frontend: a start screen listing the best scores and
// the play screen driving one session at a time.
type Game struct {
	ctx  context.Context
	cfg  sim.Config
	deps GameDeps
	log  *slog.Logger

	layout  Layout
	session *sim.Session
	top     []store.Record
	pointer pointer
	last    time.Time

	imgui *debugui_ebiten.ImguiBackend
	perf  *debugui.PerformanceStats
}

// NewGame builds the game on its start screen.
func NewGame(ctx context.Context, cfg sim.Config, deps GameDeps) *Game {
	g := &Game{
		ctx:    ctx,
		cfg:    cfg,
		deps:   deps,
		log:    log.Component("game"),
		layout: NewLayout(cfg),
		last:   time.Now(),
	}
	if deps.DebugUI {
		g.imgui = debugui_ebiten.New("Ballz", int(cfg.ScreenWidth), int(cfg.ScreenHeight))
		g.perf = debugui.NewPerformanceStats(120, func() *engine.SchedulerStats {
			if g.session == nil {
				return &engine.SchedulerStats{}
			}
			return g.session.Stats()
		})
	}
	g.loadTopScores()
	return g
}

func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last)
	g.last = now

	if g.imgui != nil {
		g.imgui.BeginFrame()
		defer g.imgui.EndFrame()
		g.perf.Record(dt)
	}

	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	if g.session == nil {
		return g.updateStart()
	}
	g.updatePlay(dt)
	return nil
}

func (g *Game) updateStart() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	start := inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	if x, y, ok := justPressed(); ok && g.layout.Start.Contains(x, y) {
		start = true
	}
	if start {
		g.start()
	}
	return nil
}

func (g *Game) updatePlay(dt time.Duration) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.exit()
		return
	}

	g.deps.Keys.Update(
		ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		gamepadAxis(),
	)

	if x, y, ok := justPressed(); ok && g.layout.Exit.Contains(x, y) {
		g.exit()
		return
	}
	g.handlePointer()
	g.session.Tick(dt)
}

func (g *Game) handlePointer() {
	if g.imgui != nil && imgui.CurrentIO().WantCaptureMouse() {
		return
	}

	switch ev := g.pointer.poll(boxRect(g.session.Snapshot().BallOnScreen())); ev.kind {
	case pointerDown:
		g.session.Press()
	case pointerMove:
		g.session.Move(ev.delta)
	case pointerUp:
		g.session.Release(ev.delta)
	}
}

func (g *Game) start() {
	session, err := sim.NewSession(g.cfg, g.deps.Deps)
	if err != nil {
		g.log.Error("creating session", "error", err)
		return
	}
	if g.imgui != nil {
		g.attachDebug(session)
	}
	if err := session.Start(g.ctx); err != nil {
		g.log.Error("starting session", "error", err)
		return
	}
	g.session = session
	g.pointer = pointer{}
}

func (g *Game) attachDebug(session *sim.Session) {
	panels := engine.Insert(session.Resources(), debugui.Panels{})
	engine.Insert(session.Resources(), debugui.InputState{})
	panels.Add("performance", g.perf.Render)
	panels.Add("session", debugui.NewSessionPanel(func() *sim.Session { return g.session }).Render)
	panels.Add("resources", debugui.NewResourceInspector(session.Resources()).Render)
	session.AddSystem(&debugui.OverlaySystem{})
}

func (g *Game) exit() {
	if g.session == nil {
		return
	}
	if err := g.session.Exit(); err != nil {
		g.log.Warn("session exit", "error", err)
	}
	g.log.Info("game over", "score", g.session.Score())
	g.session = nil
	g.loadTopScores()
}

func (g *Game) loadTopScores() {
	if g.deps.Scores == nil {
		return
	}
	top, err := g.deps.Scores.TopScores(topScoreCount)
	if err != nil {
		g.log.Warn("loading high scores", "error", err)
		return
	}
	g.top = top
}

// Close flushes a running session.
func (g *Game) Close() {
	g.exit()
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.session == nil {
		drawStart(screen, g.layout, g.top)
	} else {
		drawPlay(screen, g.layout, g.session.Snapshot())
	}
	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return int(g.cfg.ScreenWidth), int(g.cfg.ScreenHeight)
}

const stickDeadzone = 0.15

func gamepadAxis() float64 {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if v > -stickDeadzone && v < stickDeadzone {
			return 0
		}
		return v
	}
	return 0
}
