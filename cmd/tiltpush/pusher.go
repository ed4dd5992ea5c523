package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/plus3/ballz/sensor"
	"github.com/plus3/ballz/sim"
)

// Pusher dials a hub and writes one JSON sample per interval.
type Pusher struct {
	URL       string
	Amplitude float64
	Period    time.Duration
	Interval  time.Duration
	Log       *slog.Logger
}

// Run streams until ctx is done and returns the number of samples sent.
// A cancelled context is a clean stop, not an error.
func (p *Pusher) Run(ctx context.Context) (int, error) {
	logger := p.Log
	if logger == nil {
		logger = slog.Default()
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, p.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("dialing %s: %w", p.URL, err)
	}
	defer conn.Close()
	logger.Info("connected", "url", p.URL)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	start := time.Now()
	sent := 0
	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done")
			if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
				logger.Debug("close handshake", "error", err)
			}
			return sent, nil
		case now := <-ticker.C:
			sample := sim.TiltSample{Y: sensor.WaveAt(p.Amplitude, p.Period, now.Sub(start))}
			if err := conn.WriteJSON(sample); err != nil {
				return sent, fmt.Errorf("writing sample: %w", err)
			}
			sent++
		}
	}
}
