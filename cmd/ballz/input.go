package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/ballz/sim"
)

type pointerKind int

const (
	pointerNone pointerKind = iota
	pointerDown
	pointerMove
	pointerUp
)

type pointerEvent struct {
	kind  pointerKind
	delta sim.Vector2
}

// drag turns absolute pointer positions into deltas since the press.
type drag struct {
	active bool
	start  sim.Vector2
	last   sim.Vector2
}

func (d *drag) down(x, y int) pointerEvent {
	d.active = true
	d.start = sim.Vector2{X: float64(x), Y: float64(y)}
	d.last = d.start
	return pointerEvent{kind: pointerDown}
}

// grab starts a drag only when the press lands inside target.
func (d *drag) grab(x, y int, target rect) pointerEvent {
	if !target.Contains(x, y) {
		return pointerEvent{}
	}
	return d.down(x, y)
}

// move reports a move only when the position changed.
func (d *drag) move(x, y int) pointerEvent {
	if !d.active {
		return pointerEvent{}
	}
	pos := sim.Vector2{X: float64(x), Y: float64(y)}
	if pos == d.last {
		return pointerEvent{}
	}
	d.last = pos
	return pointerEvent{kind: pointerMove, delta: pos.Sub(d.start)}
}

func (d *drag) up(x, y int) pointerEvent {
	if !d.active {
		return pointerEvent{}
	}
	d.active = false
	return pointerEvent{kind: pointerUp, delta: sim.Vector2{X: float64(x), Y: float64(y)}.Sub(d.start)}
}

// pointer follows the mouse, or the first touch while one is down. Drags
// start only on the target, the ball as drawn.
type pointer struct {
	drag
	touch    ebiten.TouchID
	touching bool
	touchIDs []ebiten.TouchID
}

func (p *pointer) poll(target rect) pointerEvent {
	if p.touching {
		if inpututil.IsTouchJustReleased(p.touch) {
			p.touching = false
			x, y := inpututil.TouchPositionInPreviousTick(p.touch)
			return p.up(x, y)
		}
		return p.move(ebiten.TouchPosition(p.touch))
	}

	if !p.active {
		p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
		for _, id := range p.touchIDs {
			x, y := ebiten.TouchPosition(id)
			if ev := p.grab(x, y, target); ev.kind == pointerDown {
				p.touch, p.touching = id, true
				return ev
			}
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			return p.grab(x, y, target)
		}
		return pointerEvent{}
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		return p.up(ebiten.CursorPosition())
	}
	return p.move(ebiten.CursorPosition())
}

// justPressed returns where a click or tap started this tick.
func justPressed() (int, int, bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return x, y, true
	}
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return x, y, true
	}
	return 0, 0, false
}
