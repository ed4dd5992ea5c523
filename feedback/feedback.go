// Package feedback implements the impact sound and haptic pulse requested
// by a session on every scoring hit.
package feedback

import (
	"sync"

	"github.com/plus3/ballz/sim"
)

var (
	_ sim.Feedback = Nop{}
	_ sim.Feedback = (*Recorder)(nil)
	_ sim.Feedback = (*Device)(nil)
)

// Nop ignores every request.
type Nop struct{}

func (Nop) PlayImpactSound()    {}
func (Nop) TriggerHapticPulse() {}

// Kind names a feedback request.
type Kind string

const (
	Sound  Kind = "sound"
	Haptic Kind = "haptic"
)

// Recorder remembers requests in order. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Kind
}

func (r *Recorder) PlayImpactSound() {
	r.record(Sound)
}

func (r *Recorder) TriggerHapticPulse() {
	r.record(Haptic)
}

func (r *Recorder) record(k Kind) {
	r.mu.Lock()
	r.events = append(r.events, k)
	r.mu.Unlock()
}

// Events returns a copy of every recorded request.
func (r *Recorder) Events() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Kind(nil), r.events...)
}

// Count returns how many requests of kind k were recorded.
func (r *Recorder) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == k {
			n++
		}
	}
	return n
}

// Reset forgets every recorded request.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
