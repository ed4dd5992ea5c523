package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/ballz/engine"
	"github.com/plus3/ballz/sim"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Step       time.Duration
	Mode       sim.ScoreMode
	Period     time.Duration
	FlickEvery time.Duration
	Session    string

	// Results
	Flicks         int
	TotalTime      time.Duration
	UpdateTime     Stats
	Snapshot       sim.Snapshot
	Scheduler      *engine.SchedulerStats
	HighScores     []int
	PersistError   string
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min, s.Max = s.Samples[0], s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Ballz Simulation Report

## Run Configuration
- **Session:** {{.Session}}
- **Simulated Time:** {{.Duration}} at {{.Step}} per frame
- **Score Mode:** {{.Mode}}
- **Platform Period:** {{.Period}}
- **Flick Interval:** {{if .FlickEvery}}{{.FlickEvery}}{{else}}disabled{{end}}

## Outcome
- **Score:** {{.Snapshot.Score.Score}}
- **Impacts:** {{.Snapshot.Score.Impacts}}
- **Settled Flicks:** {{.Snapshot.Score.Settles}} of {{.Flicks}}
- **Final Gesture Phase:** {{.Snapshot.Gesture.Phase}}
{{- if .PersistError}}
- **Save Failed:** {{.PersistError}}
{{- end}}
{{- if .HighScores}}
- **Score History:** {{.HighScores}}
{{- end}}

## Frame Timing
- **Frames:** {{.Scheduler.Frames}}
- **Wall Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Scheduler.Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MiB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MiB (end)
- Total Alloc:    delta {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes
- Num GC:         delta {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
