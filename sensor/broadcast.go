// Package sensor provides tilt feeds for a session: a websocket hub that
// phones stream gyroscope rates into, a scripted feed for headless runs and
// a keyboard mapping for desktop frontends.
package sensor

import (
	"sync"

	"github.com/plus3/ballz/sim"
)

// Broadcaster fans samples out to subscribers. The zero value is ready to
// use and safe for concurrent use.
type Broadcaster struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]func(sim.TiltSample)
}

// Subscribe implements sim.SensorFeed.
func (b *Broadcaster) Subscribe(fn func(sim.TiltSample)) (sim.Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[uint64]func(sim.TiltSample))
	}
	b.nextID++
	id := b.nextID
	b.subs[id] = fn

	var once sync.Once
	return sim.SubscriptionFunc(func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}), nil
}

// Publish delivers s to every subscriber on the caller's goroutine.
func (b *Broadcaster) Publish(s sim.TiltSample) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, fn := range b.subs {
		fn(s)
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

type merged []sim.SensorFeed

// Merge combines feeds into one. Subscribing subscribes to every feed;
// if any fails the ones already acquired are released.
func Merge(feeds ...sim.SensorFeed) sim.SensorFeed {
	return merged(feeds)
}

func (m merged) Subscribe(fn func(sim.TiltSample)) (sim.Subscription, error) {
	subs := make([]sim.Subscription, 0, len(m))
	release := func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}

	for _, feed := range m {
		if feed == nil {
			continue
		}
		sub, err := feed.Subscribe(fn)
		if err != nil {
			release()
			return nil, err
		}
		subs = append(subs, sub)
	}

	var once sync.Once
	return sim.SubscriptionFunc(func() { once.Do(release) }), nil
}
