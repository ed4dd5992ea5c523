package sim

import "sync/atomic"

// TiltSample is a raw gyroscope reading in radians per second.
type TiltSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Finite reports whether every axis is a real number.
func (s TiltSample) Finite() bool {
	return finite(s.X) && finite(s.Y) && finite(s.Z)
}

// TiltBuffer keeps the most recent sample. Writers on any goroutine simply
// replace it; there is no queue and stale samples are dropped.
type TiltBuffer struct {
	latest  atomic.Pointer[TiltSample]
	updates atomic.Uint64
}

// Push replaces the buffered sample.
func (b *TiltBuffer) Push(s TiltSample) {
	b.latest.Store(&s)
	b.updates.Add(1)
}

// Latest returns the newest sample, or a zero-rate sample if none arrived.
func (b *TiltBuffer) Latest() TiltSample {
	if s := b.latest.Load(); s != nil {
		return *s
	}
	return TiltSample{}
}

// Updates counts pushes since creation or the last Reset.
func (b *TiltBuffer) Updates() uint64 {
	return b.updates.Load()
}

// Reset drops the buffered sample, returning to a zero-rate stream.
func (b *TiltBuffer) Reset() {
	b.latest.Store(nil)
	b.updates.Store(0)
}

// Subscription is an active sensor registration.
type Subscription interface {
	Unsubscribe()
}

// SubscriptionFunc adapts a function to Subscription.
type SubscriptionFunc func()

func (f SubscriptionFunc) Unsubscribe() {
	f()
}

// SensorFeed is a push-based source of tilt samples at device-native rate.
// The callback may be invoked from any goroutine until Unsubscribe returns.
type SensorFeed interface {
	Subscribe(fn func(TiltSample)) (Subscription, error)
}
