package engine_test

import (
	"testing"

	"github.com/plus3/ballz/engine"
	"github.com/stretchr/testify/assert"
)

type Temperature float64

func TestResources(t *testing.T) {
	resources := engine.NewResources()
	assert.Nil(t, engine.Get[Temperature](resources))

	first := engine.Insert(resources, Temperature(21))
	assert.Equal(t, Temperature(21), *first)

	var accessor engine.Resource[Temperature]
	accessor.Init(resources)
	assert.True(t, accessor.Exists())

	second := engine.Insert(resources, Temperature(30))
	assert.Same(t, first, second)
	assert.Equal(t, Temperature(30), *accessor.Get())

	engine.Insert(resources, Cursor{X: 1})
	assert.Equal(t, 2, resources.Len())
	assert.Equal(t, []string{"engine_test.Cursor", "engine_test.Temperature"}, resources.Types())
}

func TestResourceLateInsert(t *testing.T) {
	resources := engine.NewResources()

	var accessor engine.Resource[Cursor]
	accessor.Init(resources)
	assert.False(t, accessor.Exists())

	engine.Insert(resources, Cursor{X: 3, Y: 4})
	assert.Equal(t, &Cursor{X: 3, Y: 4}, accessor.Get())
}

func TestResourceLookup(t *testing.T) {
	resources := engine.NewResources()
	cursor := engine.Insert(resources, Cursor{X: 5})

	got, ok := resources.Lookup("engine_test.Cursor").(*Cursor)
	assert.True(t, ok)
	assert.Same(t, cursor, got)
	assert.Nil(t, resources.Lookup("engine_test.Missing"))
}
