package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ballz/engine"
)

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	frames []float32
	index  int
	filled bool
}

// NewFrameHistory keeps the last n frame times.
func NewFrameHistory(n int) *FrameHistory {
	return &FrameHistory{frames: make([]float32, max(n, 1))}
}

// Record adds a frame time.
func (h *FrameHistory) Record(dt time.Duration) {
	h.frames[h.index] = float32(dt.Seconds() * 1000)
	h.index = (h.index + 1) % len(h.frames)
	if h.index == 0 {
		h.filled = true
	}
}

// Average returns the mean of the recorded frame times in milliseconds.
func (h *FrameHistory) Average() float32 {
	n := h.index
	if h.filled {
		n = len(h.frames)
	}
	if n == 0 {
		return 0
	}
	var sum float32
	for _, ft := range h.frames[:n] {
		sum += ft
	}
	return sum / float32(n)
}

// PerformanceStats shows frame times and per-system execution statistics.
type PerformanceStats struct {
	history *FrameHistory
	stats   func() *engine.SchedulerStats
}

// NewPerformanceStats reads stats from the given source every frame.
func NewPerformanceStats(historyFrames int, stats func() *engine.SchedulerStats) *PerformanceStats {
	return &PerformanceStats{history: NewFrameHistory(historyFrames), stats: stats}
}

// Record adds the latest frame time to the graph.
func (ps *PerformanceStats) Record(dt time.Duration) {
	ps.history.Record(dt)
}

func (ps *PerformanceStats) Render() {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.stats()
	avg := ps.history.Average()

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Sim time: %s", stats.Elapsed.Truncate(time.Millisecond)))
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.frames[0], int32(len(ps.history.frames)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
