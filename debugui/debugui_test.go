package debugui

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ballz/engine"
	"github.com/plus3/ballz/sim"
)

func TestOverlaySystemDefersVisiblePanels(t *testing.T) {
	resources := engine.NewResources()
	panels := engine.Insert(resources, Panels{})
	input := engine.Insert(resources, InputState{})

	var rendered []string
	panels.Add("perf", func() { rendered = append(rendered, "perf") })
	hidden := panels.Add("session", func() { rendered = append(rendered, "session") })
	hidden.Hidden = true
	panels.Add("empty", nil)

	scheduler := engine.NewScheduler(resources)
	scheduler.Register(&OverlaySystem{
		Capture: func() InputState { return InputState{WantCaptureMouse: true} },
	})

	scheduler.Once(16 * time.Millisecond)
	assert.Equal(t, []string{"perf"}, rendered)
	assert.True(t, input.WantCaptureMouse)
	assert.False(t, input.WantCaptureKeyboard)

	hidden.Hidden = false
	rendered = nil
	scheduler.Once(16 * time.Millisecond)
	assert.Equal(t, []string{"perf", "session"}, rendered)
}

func TestFrameHistory(t *testing.T) {
	h := NewFrameHistory(3)
	assert.Equal(t, float32(0), h.Average())

	h.Record(10 * time.Millisecond)
	h.Record(20 * time.Millisecond)
	assert.InDelta(t, 15, h.Average(), 1e-4)

	h.Record(30 * time.Millisecond)
	h.Record(40 * time.Millisecond)
	assert.InDelta(t, 30, h.Average(), 1e-4, "oldest frame dropped")
}

type tunable struct {
	Gain    float64
	Count   int8
	Updates uint
	Name    string
	hidden  int
}

func TestSetNumber(t *testing.T) {
	v := reflect.ValueOf(&tunable{}).Elem()

	assert.True(t, setNumber(v.Field(0), 2.5))
	assert.True(t, setNumber(v.Field(1), 7.9))
	assert.False(t, setNumber(v.Field(1), 300), "int8 overflow")
	assert.True(t, setNumber(v.Field(2), 4))
	assert.False(t, setNumber(v.Field(2), -1))
	assert.False(t, setNumber(v.Field(3), 1))
	assert.False(t, setNumber(v.Field(4), 1), "unexported")

	got := v.Interface().(tunable)
	assert.Equal(t, 2.5, got.Gain)
	assert.Equal(t, int8(7), got.Count)
	assert.Equal(t, uint(4), got.Updates)
}

func TestFieldCacheSkipsUnexported(t *testing.T) {
	fields := fieldCache.get(reflect.TypeFor[tunable]())
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	assert.Equal(t, []string{"Gain", "Count", "Updates", "Name"}, names)
	assert.Empty(t, fieldCache.get(reflect.TypeFor[int]()))
}

func TestSnapshotLines(t *testing.T) {
	session, err := sim.NewSession(sim.DefaultConfig(400, 800), sim.Deps{})
	require.NoError(t, err)
	require.NoError(t, session.Start(t.Context()))
	session.Tick(16 * time.Millisecond)

	text := strings.Join(SnapshotLines(session.Snapshot()), "\n")
	assert.Contains(t, text, session.ID().String())
	assert.Contains(t, text, "running")
	assert.Contains(t, text, "Frame: 1")
	assert.Contains(t, text, "Gesture: idle")
}
