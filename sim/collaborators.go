package sim

import (
	"log/slog"

	"github.com/google/uuid"
)

// Feedback receives fire-and-forget effect requests on every impact.
// Implementations must not block and must swallow their own failures.
type Feedback interface {
	PlayImpactSound()
	TriggerHapticPulse()
}

// ScoreStore is the persistent high-score history, newest last.
// The session reads it at start and appends once at exit, never mid-frame.
type ScoreStore interface {
	LoadHighScores() ([]int, error)
	AppendScore(score int) error
}

// SessionScoreStore is implemented by stores that can attribute a score to
// the session that produced it. Sessions prefer it over AppendScore.
type SessionScoreStore interface {
	AppendSessionScore(session uuid.UUID, score int) error
}

// Deps are the external collaborators of a session. Any of them may be nil.
type Deps struct {
	Sensor   SensorFeed
	Feedback Feedback
	Store    ScoreStore
	Logger   *slog.Logger
}

// safeFeedback shields the frame loop from misbehaving feedback adapters.
type safeFeedback struct {
	next Feedback
	log  *slog.Logger
}

func (f safeFeedback) PlayImpactSound() {
	f.do("sound", func(fb Feedback) { fb.PlayImpactSound() })
}

func (f safeFeedback) TriggerHapticPulse() {
	f.do("haptic", func(fb Feedback) { fb.TriggerHapticPulse() })
}

func (f safeFeedback) do(kind string, fn func(Feedback)) {
	if f.next == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			f.log.Warn("feedback request failed", "kind", kind, "error", ErrFeedbackDevice, "panic", r)
		}
	}()
	fn(f.next)
}
