// Package debugui draws Dear ImGui debug windows over a running session.
// Panels are plain render functions collected in a Panels resource; the
// OverlaySystem queues them each frame so they run after the simulation
// systems have finished.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ballz/engine"
)

// Panel is one ImGui window.
type Panel struct {
	Name   string
	Hidden bool
	Render func()
}

// Panels is the resource holding every registered panel.
type Panels struct {
	items []*Panel
}

// Add registers a panel and returns it so callers can toggle it.
func (p *Panels) Add(name string, render func()) *Panel {
	panel := &Panel{Name: name, Render: render}
	p.items = append(p.items, panel)
	return panel
}

// Visible returns the panels that are not hidden, in registration order.
func (p *Panels) Visible() []*Panel {
	visible := make([]*Panel, 0, len(p.items))
	for _, panel := range p.items {
		if !panel.Hidden && panel.Render != nil {
			visible = append(visible, panel)
		}
	}
	return visible
}

// InputState tracks whether ImGui is consuming mouse or keyboard input.
// Frontends check it before turning clicks into gestures.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// OverlaySystem updates InputState and defers every visible panel.
type OverlaySystem struct {
	Panels engine.Resource[Panels]
	Input  engine.Resource[InputState]

	// Capture reads ImGui's capture flags. Nil uses the current ImGui IO.
	Capture func() InputState
}

func (o *OverlaySystem) Execute(frame *engine.UpdateFrame) {
	if state := o.Input.Get(); state != nil {
		capture := o.Capture
		if capture == nil {
			capture = currentCapture
		}
		*state = capture()
	}

	panels := o.Panels.Get()
	if panels == nil {
		return
	}
	for _, panel := range panels.Visible() {
		frame.Commands.Defer(panel.Render)
	}
}

func currentCapture() InputState {
	io := imgui.CurrentIO()
	return InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}
