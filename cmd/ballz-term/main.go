package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

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
	logFile := flag.String("log-file", "ballz-term.log", "Where to write logs; the terminal is busy drawing.")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *scores != "" {
		cfg.Store.Path = *scores
	}

	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	log.InitTo(f, cfg.LogLevel)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	keys := sensor.NewKeys(2 * cfg.Tilt.Threshold)
	game, err := newTermGame(ctx, screen, cfg.Sim(), keys, sim.Deps{
		Sensor: keys,
		Store:  store.NewJSONStore(cfg.Store.Path, log.Component("store")),
		Logger: log.Component("sim"),
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "starting: %v\n", err)
		os.Exit(1)
	}

	game.run(ctx, 16*time.Millisecond)
	game.close()
	screen.Fini()

	fmt.Printf("Final score: %d\n", game.session.Score())
}

func loadConfig(path, preset string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Preset(preset)
}
