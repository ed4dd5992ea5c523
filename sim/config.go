package sim

import (
	"fmt"
	"math"
	"time"
)

// ScoreMode selects what earns a point.
type ScoreMode string

const (
	// ScoreOnImpact scores when the ball overlaps the platform while the
	// tilt gate holds. This is the default.
	ScoreOnImpact ScoreMode = "impact"
	// ScoreOnSettle scores a fixed delay after every completed flick,
	// whether or not anything was hit. Impacts still reset and give feedback.
	ScoreOnSettle ScoreMode = "settle"
)

// Config holds every tunable of a session. Distances are screen pixels.
type Config struct {
	ScreenWidth  float64
	ScreenHeight float64

	Ball     Extent
	Platform Extent

	// PlatformBand is the distance from the bottom of the screen to the
	// platform row, which is also the top of the ball's home band.
	PlatformBand float64
	// BandThickness is how far below the platform row tilt can push the ball.
	BandThickness float64
	// StartDrop places the canonical start this far above the bottom edge.
	StartDrop float64
	// TravelInset shortens the platform sweep: it travels [0, width-inset].
	TravelInset float64
	// LaunchInset sets the flick overshoot height to screenHeight-inset.
	LaunchInset float64

	Gain           float64
	ReferenceFrame time.Duration

	ForwardDuration time.Duration
	BackDuration    time.Duration

	Spring SpringParams

	TiltGate      bool
	TiltThreshold float64

	ScoreMode  ScoreMode
	ScoreDelay time.Duration

	// Strict makes invariant violations panic instead of being clamped.
	Strict bool
}

// DefaultConfig returns the base design for a screen of the given size.
func DefaultConfig(width, height float64) Config {
	return Config{
		ScreenWidth:     width,
		ScreenHeight:    height,
		Ball:            Extent{Width: 50, Height: 50},
		Platform:        Extent{Width: 80, Height: 20},
		PlatformBand:    200,
		BandThickness:   10,
		StartDrop:       150,
		TravelInset:     160,
		LaunchInset:     220,
		Gain:            5,
		ReferenceFrame:  time.Second / 60,
		ForwardDuration: 600 * time.Millisecond,
		BackDuration:    600 * time.Millisecond,
		Spring:          DefaultSpring(),
		TiltGate:        true,
		TiltThreshold:   1.0,
		ScoreMode:       ScoreOnImpact,
		ScoreDelay:      100 * time.Millisecond,
	}
}

// Validate checks that the config describes a playable field.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"screen width":   c.ScreenWidth,
		"screen height":  c.ScreenHeight,
		"gain":           c.Gain,
		"tilt threshold": c.TiltThreshold,
		"platform band":  c.PlatformBand,
		"band thickness": c.BandThickness,
		"start drop":     c.StartDrop,
		"travel inset":   c.TravelInset,
		"launch inset":   c.LaunchInset,
	} {
		if !finite(v) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, name)
		}
	}
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen %vx%v", ErrInvalidConfig, c.ScreenWidth, c.ScreenHeight)
	case !c.Ball.Valid() || !c.Platform.Valid():
		return fmt.Errorf("%w: negative or non-finite extent", ErrInvalidConfig)
	case c.Ball.Width > c.ScreenWidth:
		return fmt.Errorf("%w: ball wider than screen", ErrInvalidConfig)
	case c.PlatformBand < 0 || c.PlatformBand > c.ScreenHeight:
		return fmt.Errorf("%w: platform band %v outside screen", ErrInvalidConfig, c.PlatformBand)
	case c.BandThickness < 0:
		return fmt.Errorf("%w: negative band thickness", ErrInvalidConfig)
	case c.TravelInset > c.ScreenWidth:
		return fmt.Errorf("%w: travel inset %v exceeds screen width", ErrInvalidConfig, c.TravelInset)
	case c.ReferenceFrame <= 0:
		return fmt.Errorf("%w: reference frame must be positive", ErrInvalidConfig)
	case c.ForwardDuration <= 0 || c.BackDuration <= 0:
		return fmt.Errorf("%w: oscillator durations must be positive", ErrInvalidConfig)
	case c.ScoreDelay < 0:
		return fmt.Errorf("%w: negative score delay", ErrInvalidConfig)
	case c.ScoreMode != ScoreOnImpact && c.ScoreMode != ScoreOnSettle:
		return fmt.Errorf("%w: unknown score mode %q", ErrInvalidConfig, c.ScoreMode)
	}
	return c.Spring.Validate()
}

// CanonicalStart is where the ball is placed at session start and after
// every scoring reset.
func (c Config) CanonicalStart() Vector2 {
	return Vector2{
		X: c.ScreenWidth/2 - c.Ball.Width/2,
		Y: c.ScreenHeight - c.StartDrop,
	}
}

// PlatformY is the fixed row the platform travels along.
func (c Config) PlatformY() float64 {
	return c.ScreenHeight - c.PlatformBand
}

// HomeBand is the region tilt can move the ball within.
func (c Config) HomeBand() Bounds {
	top := c.PlatformY()
	return Bounds{
		MinX: 0,
		MaxX: c.ScreenWidth - c.Ball.Width,
		MinY: top,
		MaxY: top + c.BandThickness,
	}
}

// Travel returns the platform's sweep range.
func (c Config) Travel() (lo, hi float64) {
	return 0, math.Max(0, c.ScreenWidth-c.TravelInset)
}

// LaunchHeight is the overshoot distance of a downward flick.
func (c Config) LaunchHeight() float64 {
	return c.ScreenHeight - c.LaunchInset
}

// Period is one full platform sweep, out and back.
func (c Config) Period() time.Duration {
	return c.ForwardDuration + c.BackDuration
}
