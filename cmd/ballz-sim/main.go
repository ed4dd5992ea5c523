package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/ballz/internal/config"
	"github.com/plus3/ballz/internal/log"
	"github.com/plus3/ballz/sensor"
	"github.com/plus3/ballz/sim"
	"github.com/plus3/ballz/store"
)

// Options controls a headless run.
type Options struct {
	Duration      time.Duration
	Step          time.Duration
	FlickEvery    time.Duration
	TiltAmplitude float64
	TiltPeriod    time.Duration
	Realtime      bool
}

func main() {
	configPath := flag.String("config", "", "YAML config file.")
	preset := flag.String("preset", "", "Config preset (base, relaxed); ignored with -config.")
	duration := flag.Duration("duration", time.Minute, "Simulated time to run for.")
	step := flag.Duration("dt", 16*time.Millisecond, "Frame delta.")
	flickEvery := flag.Duration("flick-every", 8*time.Second, "Interval between scripted downward flicks; 0 disables them.")
	amplitude := flag.Float64("tilt-amplitude", 2, "Peak scripted tilt rate (rad/s).")
	period := flag.Duration("tilt-period", 900*time.Millisecond, "Scripted tilt wave period.")
	mode := flag.String("score-mode", "", "Override the score mode (impact, settle).")
	realtime := flag.Bool("realtime", false, "Drive frames from a wall-clock ticker instead of as fast as possible.")
	scores := flag.String("store", "", "Append the final score to this JSON file.")
	level := flag.String("log-level", "info", "Log level.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Init(*level)

	cfg, err := loadConfig(*configPath, *preset)
	if err != nil {
		log.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Score.Mode = *mode
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	opts := Options{
		Duration:      *duration,
		Step:          *step,
		FlickEvery:    *flickEvery,
		TiltAmplitude: *amplitude,
		TiltPeriod:    *period,
		Realtime:      *realtime,
	}

	var scoreStore sim.ScoreStore
	if *scores != "" {
		scoreStore = store.NewJSONStore(*scores, log.Component("store"))
	}

	log.Info("starting headless run", "preset", cfg.Preset, "mode", cfg.Score.Mode, "duration", opts.Duration)
	report, err := Simulate(context.Background(), cfg.Sim(), opts, scoreStore)
	if err != nil {
		log.Error("simulation failed", "error", err)
		os.Exit(1)
	}
	report.GCPauseMetrics = *gcPauseMetrics

	fmt.Println("\n--- Ballz Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Error("generating report", "error", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}

func loadConfig(path, preset string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Preset(preset)
}

// Simulate plays one session for opts.Duration of simulated time with a
// sine tilt and periodic flicks, then exits it and reports.
func Simulate(ctx context.Context, cfg sim.Config, opts Options, scores sim.ScoreStore) (*Report, error) {
	if opts.Step <= 0 {
		return nil, fmt.Errorf("%w: frame delta must be positive", sim.ErrInvalidConfig)
	}

	frames := int(opts.Duration / opts.Step)
	script := sensor.NewScript(sensor.Wave(opts.TiltAmplitude, opts.TiltPeriod, opts.Step, max(frames, 1)), true)

	session, err := sim.NewSession(cfg, sim.Deps{
		Sensor: script,
		Store:  scores,
		Logger: log.Component("sim"),
	})
	if err != nil {
		return nil, err
	}
	if err := session.Start(ctx); err != nil {
		return nil, err
	}

	report := &Report{
		Duration:   opts.Duration,
		Step:       opts.Step,
		Mode:       cfg.ScoreMode,
		Period:     cfg.Period(),
		FlickEvery: opts.FlickEvery,
		Session:    session.ID().String(),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	var ticker *time.Ticker
	if opts.Realtime {
		ticker = time.NewTicker(opts.Step)
		defer ticker.Stop()
	}

	startTime := time.Now()
	var sinceFlick time.Duration

Loop:
	for i := 0; i < frames; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				break Loop
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			break
		}

		script.Step()

		sinceFlick += opts.Step
		if opts.FlickEvery > 0 && sinceFlick >= opts.FlickEvery {
			sinceFlick = 0
			flick(session)
			report.Flicks++
		}

		updateStart := time.Now()
		session.Tick(opts.Step)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Snapshot = session.Snapshot()
	report.Scheduler = session.Stats()

	if err := session.Exit(); err != nil {
		report.PersistError = err.Error()
	}
	report.HighScores = session.HighScores()
	runtime.ReadMemStats(&report.MemStatsEnd)

	return report, nil
}

// flick drags the ball down and lets go, launching it up the screen.
func flick(s *sim.Session) {
	s.Press()
	s.Move(sim.Vector2{Y: 20})
	s.Release(sim.Vector2{Y: 40})
}
