package sim

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	ballExtent     = Extent{Width: 50, Height: 50}
	platformExtent = Extent{Width: 80, Height: 20}
)

func TestOverlapScenarios(t *testing.T) {
	tests := []struct {
		name     string
		ball     Vector2
		platform Vector2
		want     bool
	}{
		{"ball over platform", Vector2{X: 100, Y: 500}, Vector2{X: 80, Y: 500}, true},
		{"far apart", Vector2{X: 0, Y: 0}, Vector2{X: 500, Y: 500}, false},
		{"touching right edge", Vector2{X: 30, Y: 500}, Vector2{X: 80, Y: 500}, true},
		{"one pixel left", Vector2{X: 29, Y: 500}, Vector2{X: 80, Y: 500}, false},
		{"touching bottom edge", Vector2{X: 100, Y: 520}, Vector2{X: 80, Y: 500}, true},
		{"below platform", Vector2{X: 100, Y: 521}, Vector2{X: 80, Y: 500}, false},
		{"above platform", Vector2{X: 100, Y: 449}, Vector2{X: 80, Y: 500}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlap(
				Box{Position: tt.ball, Extent: ballExtent},
				Box{Position: tt.platform, Extent: platformExtent},
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlapTranslationInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	coord := func() float64 { return float64(rng.IntN(2000) - 1000) }

	for i := range 5000 {
		a := Box{Position: Vector2{X: coord(), Y: coord()}, Extent: Extent{Width: float64(rng.IntN(200)), Height: float64(rng.IntN(200))}}
		b := Box{Position: Vector2{X: coord(), Y: coord()}, Extent: Extent{Width: float64(rng.IntN(200)), Height: float64(rng.IntN(200))}}
		d := Vector2{X: coord(), Y: coord()}

		if Overlap(a, b) != Overlap(a.Translate(d), b.Translate(d)) {
			t.Fatalf("case %d: overlap changed under translation by %v: %+v %+v", i, d, a, b)
		}
	}
}

func TestCollisionDetectorTiltGate(t *testing.T) {
	ball := Box{Position: Vector2{X: 100, Y: 500}, Extent: ballExtent}
	platform := Box{Position: Vector2{X: 80, Y: 500}, Extent: platformExtent}
	apart := Box{Position: Vector2{X: 500, Y: 500}, Extent: platformExtent}

	gated := CollisionDetector{TiltGate: true, Threshold: 1}
	assert.False(t, gated.Test(ball, platform, TiltSample{}))
	assert.False(t, gated.Test(ball, platform, TiltSample{Y: 1}), "threshold is exclusive")
	assert.True(t, gated.Test(ball, platform, TiltSample{Y: 1.5}))
	assert.True(t, gated.Test(ball, platform, TiltSample{Y: -2}))
	assert.False(t, gated.Test(ball, platform, TiltSample{X: 9, Z: 9}), "only the Y rate counts")
	assert.False(t, gated.Test(ball, apart, TiltSample{Y: 5}))

	ungated := CollisionDetector{}
	assert.True(t, ungated.Test(ball, platform, TiltSample{}))
	assert.False(t, ungated.Test(ball, apart, TiltSample{}))
}
