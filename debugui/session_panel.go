package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ballz/sim"
)

// SessionPanel shows the live snapshot and lets the tilt be overridden
// from the keyboard when no sensor is attached.
type SessionPanel struct {
	session  func() *sim.Session
	override float32
	active   bool
}

// NewSessionPanel follows whatever session the getter returns, so it keeps
// working across restarts.
func NewSessionPanel(session func() *sim.Session) *SessionPanel {
	return &SessionPanel{session: session}
}

func (sp *SessionPanel) Render() {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := sp.session()
	if s == nil {
		imgui.Text("No session")
		imgui.End()
		return
	}

	for _, line := range SnapshotLines(s.Snapshot()) {
		imgui.Text(line)
	}
	if err := s.SensorErr(); err != nil {
		imgui.Text(fmt.Sprintf("Sensor: %v", err))
	}

	imgui.Separator()
	imgui.Checkbox("Override tilt", &sp.active)
	imgui.SetNextItemWidth(150)
	imgui.InputFloat("tilt.y", &sp.override)
	if sp.active {
		s.TiltBuffer().Push(sim.TiltSample{Y: float64(sp.override)})
	}

	imgui.End()
}

// SnapshotLines formats a snapshot for display.
func SnapshotLines(snap sim.Snapshot) []string {
	return []string{
		fmt.Sprintf("Session: %s (%s)", snap.Session, snap.State),
		fmt.Sprintf("Frame: %d  t=%s", snap.Frame, snap.Elapsed),
		fmt.Sprintf("Score: %d  impacts=%d settles=%d", snap.Score.Score, snap.Score.Impacts, snap.Score.Settles),
		fmt.Sprintf("Ball: %s  offset=%s", snap.Ball.Position, snap.Offset),
		fmt.Sprintf("Platform: x=%.1f phase=%.3f %s", snap.Platform.Position.X, snap.Phase, snap.Heading),
		fmt.Sprintf("Gesture: %s  reached=%t", snap.Gesture.Phase, snap.Gesture.ReleasedTargetReached),
		fmt.Sprintf("Tilt: x=%.2f y=%.2f z=%.2f", snap.Tilt.X, snap.Tilt.Y, snap.Tilt.Z),
	}
}
