package sensor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/plus3/ballz/sim"
)

var _ sim.SensorFeed = (*Hub)(nil)

// Client is a connected tilt source.
type Client struct {
	ID        string    `json:"id"`
	Connected time.Time `json:"connected"`
	LastSeen  time.Time `json:"last_seen"`
	Samples   uint64    `json:"samples"`
}

// Stats contains hub statistics.
type Stats struct {
	Clients          int             `json:"clients"`
	Subscribers      int             `json:"subscribers"`
	MessagesReceived uint64          `json:"messages_received"`
	MessagesRejected uint64          `json:"messages_rejected"`
	Last             *sim.TiltSample `json:"last,omitempty"`
}

// Hub accepts gyroscope streams over websocket at /ws/tilt and republishes
// every valid sample to its subscribers. Any number of clients may stream at
// once; the latest sample wins on the session side.
type Hub struct {
	Broadcaster

	log *slog.Logger

	mu      sync.RWMutex
	clients map[string]*Client

	received atomic.Uint64
	rejected atomic.Uint64
	last     atomic.Pointer[sim.TiltSample]
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default().With("component", "sensor.hub")
	}
	return &Hub{
		log:     logger,
		clients: make(map[string]*Client),
	}
}

// RegisterRoutes registers the websocket route on a Fiber app.
func (h *Hub) RegisterRoutes(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/tilt", websocket.New(h.handleClient))
	app.Get("/ws/tilt/:id", websocket.New(h.handleClient))
}

// RegisterAPIRoutes registers the stats and client listing routes.
func (h *Hub) RegisterAPIRoutes(api fiber.Router) {
	api.Get("/stats", func(c *fiber.Ctx) error {
		return c.JSON(h.GetStats())
	})
	api.Get("/clients", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"clients": h.Clients(),
			"count":   h.ClientCount(),
		})
	})
}

// App builds a Fiber app serving the hub.
func (h *Hub) App() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "ballz tilt hub",
	})
	h.RegisterRoutes(app)
	h.RegisterAPIRoutes(app.Group("/api"))
	return app
}

// Serve runs the hub on ln until ctx is done.
func (h *Hub) Serve(ctx context.Context, ln net.Listener) error {
	app := h.App()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listener(ln)
	}()
	h.log.Info("tilt hub listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return fmt.Errorf("tilt hub: %w", err)
	case <-ctx.Done():
	}

	if err := app.ShutdownWithTimeout(2 * time.Second); err != nil {
		return fmt.Errorf("tilt hub shutdown: %w", err)
	}
	return nil
}

// ListenAndServe listens on addr and serves until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %w", sim.ErrSensorUnavailable, err)
	}
	return h.Serve(ctx, ln)
}

func (h *Hub) handleClient(c *websocket.Conn) {
	id := c.Params("id")
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now()
	client := &Client{ID: id, Connected: now, LastSeen: now}

	h.mu.Lock()
	h.clients[id] = client
	count := len(h.clients)
	h.mu.Unlock()
	h.log.Info("tilt client connected", "client", id, "clients", count)

	defer func() {
		h.mu.Lock()
		if h.clients[id] == client {
			delete(h.clients, id)
		}
		count := len(h.clients)
		h.mu.Unlock()
		h.log.Info("tilt client disconnected", "client", id, "clients", count)
	}()

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("tilt client read", "client", id, "error", err)
			}
			return
		}

		h.received.Add(1)
		sample, err := DecodeSample(data)
		if err != nil {
			h.rejected.Add(1)
			h.log.Debug("rejected tilt sample", "client", id, "error", err)
			continue
		}

		h.mu.Lock()
		client.LastSeen = time.Now()
		client.Samples++
		h.mu.Unlock()

		h.last.Store(&sample)
		h.Publish(sample)
	}
}

// ErrBadSample is returned for undecodable or non-finite samples.
var ErrBadSample = errors.New("bad tilt sample")

// DecodeSample parses a JSON {"x":..,"y":..,"z":..} message.
func DecodeSample(data []byte) (sim.TiltSample, error) {
	var s sim.TiltSample
	if err := json.Unmarshal(data, &s); err != nil {
		return sim.TiltSample{}, fmt.Errorf("%w: %w", ErrBadSample, err)
	}
	if !s.Finite() {
		return sim.TiltSample{}, fmt.Errorf("%w: non-finite rate", ErrBadSample)
	}
	return s, nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Clients returns a copy of every connected client.
func (h *Hub) Clients() []Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, *c)
	}
	return clients
}

// GetStats returns hub statistics.
func (h *Hub) GetStats() Stats {
	return Stats{
		Clients:          h.ClientCount(),
		Subscribers:      h.Subscribers(),
		MessagesReceived: h.received.Load(),
		MessagesRejected: h.rejected.Load(),
		Last:             h.last.Load(),
	}
}
