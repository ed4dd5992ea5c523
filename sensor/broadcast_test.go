package sensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ballz/sim"
)

type brokenFeed struct{}

func (brokenFeed) Subscribe(func(sim.TiltSample)) (sim.Subscription, error) {
	return nil, errors.New("no gyroscope")
}

func TestBroadcaster(t *testing.T) {
	var b Broadcaster
	b.Publish(sim.TiltSample{Y: 1})

	first, second := &collector{}, &collector{}
	sub1, err := b.Subscribe(first.push)
	require.NoError(t, err)
	_, err = b.Subscribe(second.push)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Subscribers())

	b.Publish(sim.TiltSample{Y: 2})
	sub1.Unsubscribe()
	b.Publish(sim.TiltSample{Y: 3})

	assert.Equal(t, []sim.TiltSample{{Y: 2}}, first.get())
	assert.Equal(t, []sim.TiltSample{{Y: 2}, {Y: 3}}, second.get())
}

func TestMerge(t *testing.T) {
	keys := NewKeys(2)
	script := NewScript([]sim.TiltSample{{Y: 5}}, false)

	got := &collector{}
	sub, err := Merge(keys, nil, script).Subscribe(got.push)
	require.NoError(t, err)

	keys.Update(true, false, 0)
	script.Step()
	assert.Equal(t, []sim.TiltSample{{Y: -2}, {Y: 5}}, got.get())

	sub.Unsubscribe()
	assert.Equal(t, 0, keys.Subscribers())
	assert.Equal(t, 0, script.Subscribers())
}

func TestMergeReleasesOnFailure(t *testing.T) {
	keys := NewKeys(2)
	_, err := Merge(keys, brokenFeed{}).Subscribe(func(sim.TiltSample) {})
	assert.Error(t, err)
	assert.Equal(t, 0, keys.Subscribers())
}
