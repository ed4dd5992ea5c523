package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/ballz/sim"
	"github.com/plus3/ballz/store"
)

var (
	colorBackground = color.RGBA{0xF5, 0xFC, 0xFF, 0xFF}
	colorStart      = color.RGBA{0x4C, 0xAF, 0x50, 0xFF}
	colorExit       = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
	colorPlatform   = color.RGBA{0x00, 0x80, 0x00, 0xFF}
	colorBall       = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
	colorBorder     = color.RGBA{0x20, 0x20, 0x20, 0xFF}
)

// rect is a screen-space button area.
type rect struct {
	X, Y, W, H float64
}

func boxRect(b sim.Box) rect {
	return rect{X: b.Position.X, Y: b.Position.Y, W: b.Extent.Width, H: b.Extent.Height}
}

func (r rect) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.X && fx <= r.X+r.W && fy >= r.Y && fy <= r.Y+r.H
}

// Layout places the screen chrome for a playfield.
type Layout struct {
	Width, Height float64
	Start         rect
	Exit          rect
	Scores        rect
}

// NewLayout centers the start button, pins the exit button top right and
// puts the high score box above the title.
func NewLayout(cfg sim.Config) Layout {
	w, h := cfg.ScreenWidth, cfg.ScreenHeight
	return Layout{
		Width:  w,
		Height: h,
		Start:  rect{X: w/2 - 70, Y: h / 2, W: 140, H: 44},
		Exit:   rect{X: w - 80 - 70, Y: 50, W: 70, H: 40},
		Scores: rect{X: w/2 - 75, Y: h/2 - 80 - h/4, W: 150, H: h / 4},
	}
}

func fillRect(dst *ebiten.Image, r rect, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func label(dst *ebiten.Image, s string, r rect) {
	const glyphW, glyphH = 6, 16
	x := r.X + (r.W-float64(len(s)*glyphW))/2
	y := r.Y + (r.H-glyphH)/2
	ebitenutil.DebugPrintAt(dst, s, int(x), int(y))
}

// ScoreLines formats the start screen's high score list.
func ScoreLines(top []store.Record) []string {
	lines := make([]string, 0, len(top)+1)
	lines = append(lines, "High Scores")
	for i, r := range top {
		lines = append(lines, fmt.Sprintf("%d. %d", i+1, r.Score))
	}
	return lines
}

func drawStart(screen *ebiten.Image, l Layout, top []store.Record) {
	screen.Fill(colorBackground)

	if len(top) > 0 {
		box := l.Scores
		vector.StrokeRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), 2, colorBorder, false)
		for i, line := range ScoreLines(top) {
			label(screen, line, rect{X: box.X, Y: box.Y + 10 + float64(i)*22, W: box.W, H: 20})
		}
	}

	label(screen, "BALLZ", rect{X: 0, Y: l.Start.Y - 60, W: l.Width, H: 40})
	fillRect(screen, l.Start, colorStart)
	label(screen, "Start Game", l.Start)
}

func drawPlay(screen *ebiten.Image, l Layout, snap sim.Snapshot) {
	screen.Fill(colorBackground)

	p := snap.Platform
	vector.DrawFilledRect(screen,
		float32(p.Position.X), float32(p.Position.Y),
		float32(p.Extent.Width), float32(p.Extent.Height),
		colorPlatform, true)

	b := snap.BallOnScreen()
	radius := b.Extent.Width / 2
	vector.DrawFilledCircle(screen,
		float32(b.Position.X+radius), float32(b.Position.Y+b.Extent.Height/2),
		float32(radius), colorBall, true)

	label(screen, fmt.Sprintf("Score: %d", snap.Score.Score), rect{X: 0, Y: 60, W: l.Width, H: 30})
	fillRect(screen, l.Exit, colorExit)
	label(screen, "Exit", l.Exit)
}
