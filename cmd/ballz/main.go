package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/ballz/feedback"
	"github.com/plus3/ballz/internal/config"
	"github.com/plus3/ballz/internal/log"
	"github.com/plus3/ballz/sensor"
	"github.com/plus3/ballz/sim"
	"github.com/plus3/ballz/store"
)

func main() {
	configPath := flag.String("config", "", "YAML config file.")
	preset := flag.String("preset", "", "Config preset (base, relaxed); ignored with -config.")
	scores := flag.String("store", "", "High score file (overrides the config).")
	hub := flag.Bool("hub", false, "Accept phone tilt streams over websocket.")
	hubAddr := flag.String("hub-addr", "", "Tilt hub listen address (overrides the config).")
	debugUI := flag.Bool("debug-ui", false, "Show the ImGui debug overlay.")
	mute := flag.Bool("mute", false, "Disable the impact sound.")
	level := flag.String("log-level", "", "Log level (overrides the config).")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *preset)
	if err != nil {
		log.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *scores != "" {
		cfg.Store.Path = *scores
	}
	if *hub {
		cfg.Hub.Enabled = true
	}
	if *hubAddr != "" {
		cfg.Hub.Addr = *hubAddr
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	log.Init(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	keys := sensor.NewKeys(2 * cfg.Tilt.Threshold)
	feeds := []sim.SensorFeed{keys}
	if cfg.Hub.Enabled {
		h := sensor.NewHub(log.Component("sensor.hub"))
		feeds = append(feeds, h)
		go func() {
			if err := h.ListenAndServe(ctx, cfg.Hub.Addr); err != nil {
				log.Warn("tilt hub stopped", "error", err)
			}
		}()
	}

	opts := feedback.DefaultDeviceOptions()
	opts.Muted = *mute
	device := feedback.NewDevice(opts, log.Component("feedback"))
	defer device.Close()

	scoreStore := store.NewJSONStore(cfg.Store.Path, log.Component("store"))
	game := NewGame(ctx, cfg.Sim(), GameDeps{
		Deps: sim.Deps{
			Sensor:   sensor.Merge(feeds...),
			Feedback: device,
			Store:    scoreStore,
			Logger:   log.Component("sim"),
		},
		Scores:  scoreStore,
		Keys:    keys,
		DebugUI: *debugUI,
	})

	if !*debugUI {
		ebiten.SetWindowSize(int(cfg.Screen.Width), int(cfg.Screen.Height))
		ebiten.SetWindowTitle("Ballz")
	}

	log.Info("ballz starting", "preset", cfg.Preset, "mode", cfg.Score.Mode, "store", cfg.Store.Path, "hub", cfg.Hub.Enabled)
	if err := ebiten.RunGame(game); err != nil {
		log.Error("game loop", "error", err)
	}
	game.Close()
}

func loadConfig(path, preset string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Preset(preset)
}
