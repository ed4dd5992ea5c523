// Command tiltpush streams a synthetic gyroscope waveform to a ballz tilt
// hub, standing in for a phone while developing.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/plus3/ballz/internal/log"
)

func main() {
	url := flag.String("url", "ws://localhost:8090/ws/tilt", "Hub websocket URL.")
	amplitude := flag.Float64("amplitude", 2, "Peak tilt rate (rad/s).")
	period := flag.Duration("period", 900*time.Millisecond, "Waveform period.")
	rate := flag.Duration("interval", 20*time.Millisecond, "Time between samples.")
	duration := flag.Duration("duration", 0, "Stop after this long; 0 runs until interrupted.")
	level := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	log.Init(*level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	pusher := &Pusher{
		URL:       *url,
		Amplitude: *amplitude,
		Period:    *period,
		Interval:  *rate,
		Log:       log.Component("tiltpush"),
	}
	sent, err := pusher.Run(ctx)
	if err != nil {
		log.Error("streaming tilt", "error", err, "sent", sent)
		os.Exit(1)
	}
	log.Info("done", "sent", sent)
}
