package engine

import "time"

// UpdateFrame carries everything a system needs for a single tick.
type UpdateFrame struct {
	// Index counts frames since the scheduler was created, starting at 1.
	Index     uint64
	DeltaTime time.Duration
	// Elapsed is the frame clock after this frame's delta was applied.
	Elapsed   time.Duration
	Commands  *Commands
	Resources *Resources
	Timers    *Timers
}

// Seconds returns the frame delta in seconds.
func (f *UpdateFrame) Seconds() float64 {
	return f.DeltaTime.Seconds()
}
