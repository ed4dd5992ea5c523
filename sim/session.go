package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/ballz/engine"
)

// SessionState is the lifecycle of a Session.
type SessionState int

const (
	NotStarted SessionState = iota
	Running
	Exited
)

func (s SessionState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Exited:
		return "exited"
	}
	return "unknown"
}

// Snapshot is a copy of everything a renderer needs for one frame.
type Snapshot struct {
	Session  uuid.UUID
	State    SessionState
	Frame    uint64
	Elapsed  time.Duration
	Ball     Box
	Offset   Vector2
	Platform Box
	Phase    float64
	Heading  Direction
	Gesture  GestureState
	Tilt     TiltSample
	Score    Scoreboard
}

// BallOnScreen is the ball box including the gesture offset.
func (s Snapshot) BallOnScreen() Box {
	return s.Ball.Translate(s.Offset)
}

// Session owns one game: ball, platform, gesture, score and the frame
// scheduler that advances them. Every method must be called from the frame
// goroutine; only the sensor feed may call in from elsewhere.
type Session struct {
	id    uuid.UUID
	cfg   Config
	deps  Deps
	log   *slog.Logger
	state SessionState

	scheduler *engine.Scheduler
	resources *engine.Resources

	ball     *BallState
	platform *PlatformState
	gesture  *GestureController
	input    *SensorInput
	score    *Scoreboard
	tilt     *TiltBuffer

	feedback   safeFeedback
	sub        Subscription
	sensorErr  error
	highScores []int
	scoreTimer engine.TimerID
}

// NewSession builds a session in the NotStarted state.
func NewSession(cfg Config, deps Deps) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lo, hi := cfg.Travel()
	osc, err := NewOscillator(cfg.ForwardDuration, cfg.BackDuration, lo, hi)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default().With("component", "sim.session")
	}
	logger = logger.With("session", id.String())

	s := &Session{
		id:        id,
		cfg:       cfg,
		deps:      deps,
		log:       logger,
		resources: engine.NewResources(),
		tilt:      &TiltBuffer{},
	}
	s.feedback = safeFeedback{next: deps.Feedback, log: logger}

	s.ball = engine.Insert(s.resources, BallState{Position: cfg.CanonicalStart(), Extent: cfg.Ball})
	s.platform = engine.Insert(s.resources, PlatformState{Oscillator: osc, Extent: cfg.Platform, Y: cfg.PlatformY()})
	s.gesture = engine.Insert(s.resources, *NewGestureController(cfg.LaunchHeight(), cfg.Spring))
	s.input = engine.Insert(s.resources, SensorInput{Buffer: s.tilt})
	s.score = engine.Insert(s.resources, Scoreboard{})
	engine.Insert(s.resources, NewSensorIntegrator(cfg))
	engine.Insert(s.resources, cfg)

	s.scheduler = engine.NewScheduler(s.resources)
	s.scheduler.Register(&OscillatorSystem{})
	s.scheduler.Register(&SensorSystem{Log: logger})
	s.scheduler.Register(&GestureSystem{OnSettle: s.onSettle})
	s.scheduler.Register(&CollisionSystem{Detector: NewCollisionDetector(cfg), OnHit: s.onHit})

	return s, nil
}

// AddSystem appends a system that runs after the built-in ones every frame.
// Its Resource fields can bind BallState, PlatformState, GestureController,
// SensorInput, Scoreboard, SensorIntegrator and Config.
func (s *Session) AddSystem(system engine.System) {
	s.scheduler.Register(system)
}

// Start loads the high-score history and subscribes to the tilt sensor.
// Neither failure is fatal: the session runs with an empty history or a
// zero-rate tilt stream and the problem is logged.
func (s *Session) Start(ctx context.Context) error {
	if s.state != NotStarted {
		return fmt.Errorf("%w: start from %s", ErrInvalidState, s.state)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.highScores = s.loadHighScores()
	s.subscribe()
	s.state = Running
	s.log.Info("session started",
		"mode", s.cfg.ScoreMode,
		"period", s.cfg.Period(),
		"high_scores", len(s.highScores),
		"sensor", s.sensorErr == nil)
	return nil
}

func (s *Session) loadHighScores() []int {
	if s.deps.Store == nil {
		return nil
	}
	scores, err := s.deps.Store.LoadHighScores()
	if err != nil {
		s.log.Warn("loading high scores", "error", fmt.Errorf("%w: %w", ErrPersistence, err))
		return nil
	}
	return scores
}

func (s *Session) subscribe() {
	if s.deps.Sensor == nil {
		s.sensorErr = ErrSensorUnavailable
	} else if sub, err := s.deps.Sensor.Subscribe(s.tilt.Push); err != nil {
		s.sensorErr = fmt.Errorf("%w: %w", ErrSensorUnavailable, err)
	} else {
		s.sub = sub
		return
	}
	s.tilt.Reset()
	s.log.Warn("tilt disabled, using zero-rate stream", "error", s.sensorErr)
}

// SensorErr reports why the session runs without tilt, or nil.
func (s *Session) SensorErr() error {
	return s.sensorErr
}

// Tick advances the simulation by the real time elapsed since the last
// frame. It does nothing unless the session is running.
func (s *Session) Tick(dt time.Duration) {
	if s.state != Running {
		return
	}
	s.scheduler.Once(dt)
}

// Run starts the session if needed and ticks it at the given interval until
// ctx is done. The sensor subscription is released and the score flushed on
// every exit path.
func (s *Session) Run(ctx context.Context, interval time.Duration) (err error) {
	if s.state == NotStarted {
		if err := s.Start(ctx); err != nil {
			return err
		}
	}
	if s.state != Running {
		return fmt.Errorf("%w: run from %s", ErrInvalidState, s.state)
	}

	defer func() {
		if exitErr := s.Exit(); exitErr != nil && err == nil {
			err = exitErr
		}
	}()

	s.scheduler.Run(ctx, interval)
	return nil
}

// Press begins a drag of the ball. Any pending post-flick score is dropped.
func (s *Session) Press() {
	if s.state != Running {
		return
	}
	s.cancelScoreTimer()
	s.gesture.Press()
}

// Move updates the drag with the pointer delta since the press.
func (s *Session) Move(delta Vector2) {
	if s.state != Running {
		return
	}
	s.gesture.Move(delta)
}

// Release lets go of the ball with the final delta since the press.
func (s *Session) Release(delta Vector2) {
	if s.state != Running {
		return
	}
	if target, ok := s.gesture.Release(delta); ok {
		s.log.Debug("flick released", "delta", delta, "target", target)
	}
}

func (s *Session) onHit(frame *engine.UpdateFrame) {
	s.score.Impacts++
	if s.cfg.ScoreMode == ScoreOnImpact {
		s.score.Score++
	}
	s.resetField()
	s.log.Debug("impact", "frame", frame.Index, "score", s.score.Score)

	frame.Commands.Defer(func() {
		s.feedback.PlayImpactSound()
		s.feedback.TriggerHapticPulse()
	})
}

func (s *Session) onSettle(frame *engine.UpdateFrame) {
	s.score.Settles++
	if s.cfg.ScoreMode != ScoreOnSettle {
		return
	}

	s.cancelScoreTimer()
	gen := s.gesture.Generation()
	s.scoreTimer = frame.Timers.After(s.cfg.ScoreDelay, func() {
		s.scoreTimer = 0
		if s.state != Running || s.gesture.Generation() != gen {
			return
		}
		s.score.Score++
		s.log.Debug("flick scored", "score", s.score.Score)
	})
}

// resetField puts the ball back at the canonical start and the platform
// back at phase 0. Because it happens in the hit frame, the next frame no
// longer overlaps and a hit cannot fire twice.
func (s *Session) resetField() {
	s.ball.Position = s.cfg.CanonicalStart()
	s.platform.Oscillator.Reset()
}

func (s *Session) cancelScoreTimer() {
	if s.scoreTimer != 0 {
		s.scheduler.Timers().Cancel(s.scoreTimer)
		s.scoreTimer = 0
	}
}

// Exit stops the session: pending timers are cancelled, the sensor is
// released and the score is appended to the store. Calling Exit again is a
// no-op. A persistence error is returned for reporting only; the session has
// exited regardless.
func (s *Session) Exit() error {
	if s.state == Exited {
		return nil
	}
	wasRunning := s.state == Running
	s.state = Exited

	dropped := s.scheduler.Timers().CancelAll()
	s.scoreTimer = 0
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
	s.tilt.Reset()

	if !wasRunning {
		return nil
	}

	err := s.persist()
	s.log.Info("session exited",
		"score", s.score.Score,
		"impacts", s.score.Impacts,
		"settles", s.score.Settles,
		"frames", s.scheduler.Frames(),
		"dropped_timers", dropped)
	return err
}

func (s *Session) persist() error {
	if s.deps.Store == nil {
		return nil
	}

	var err error
	if store, ok := s.deps.Store.(SessionScoreStore); ok {
		err = store.AppendSessionScore(s.id, s.score.Score)
	} else {
		err = s.deps.Store.AppendScore(s.score.Score)
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrPersistence, err)
		s.log.Warn("saving score", "score", s.score.Score, "error", err)
		return err
	}
	s.highScores = append(s.highScores, s.score.Score)
	return nil
}

// Restart exits this session if needed and returns a fresh, not yet started
// session with the same config and collaborators.
func (s *Session) Restart() (*Session, error) {
	if err := s.Exit(); err != nil {
		s.log.Warn("restarting after failed save", "error", err)
	}
	return NewSession(s.cfg, s.deps)
}

// ID identifies the session in logs and score records.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score.Score
}

// Config returns the session config.
func (s *Session) Config() Config {
	return s.cfg
}

// HighScores returns the history loaded at start, plus this session's score
// once it has been saved.
func (s *Session) HighScores() []int {
	return append([]int(nil), s.highScores...)
}

// TiltBuffer exposes the buffer the sensor feed writes into, for frontends
// that poll their own input devices.
func (s *Session) TiltBuffer() *TiltBuffer {
	return s.tilt
}

// Stats returns the frame scheduler statistics.
func (s *Session) Stats() *engine.SchedulerStats {
	return s.scheduler.GetStats()
}

// Resources exposes the session resources for debug tooling.
func (s *Session) Resources() *engine.Resources {
	return s.resources
}

// Snapshot copies the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Session:  s.id,
		State:    s.state,
		Frame:    s.scheduler.Frames(),
		Elapsed:  s.scheduler.Timers().Now(),
		Ball:     s.ball.Box(),
		Offset:   s.gesture.Offset(),
		Platform: s.platform.Box(),
		Phase:    s.platform.Oscillator.Phase(),
		Heading:  s.platform.Oscillator.Direction(),
		Gesture:  s.gesture.State(),
		Tilt:     s.input.Current,
		Score:    *s.score,
	}
}
