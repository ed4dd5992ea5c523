package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when a Config cannot drive a simulation.
	ErrInvalidConfig = errors.New("invalid simulation config")
	// ErrInvalidState is returned when a session operation does not apply to
	// the current lifecycle state.
	ErrInvalidState = errors.New("invalid session state")
	// ErrSensorUnavailable means no tilt stream could be acquired. The
	// session keeps running with a zero-rate stream.
	ErrSensorUnavailable = errors.New("tilt sensor unavailable")
	// ErrPersistence wraps high-score store failures. Never fatal.
	ErrPersistence = errors.New("high score persistence failed")
	// ErrFeedbackDevice wraps audio and haptic failures. Never fatal.
	ErrFeedbackDevice = errors.New("feedback device failed")
	// ErrInvariant marks a broken simulation invariant such as a NaN
	// position. Strict sessions panic with it; others clamp and continue.
	ErrInvariant = errors.New("simulation invariant violated")
)

// enforce reports a broken invariant. In strict mode it panics; otherwise it
// returns the error so the caller can repair the value and count it.
func enforce(strict bool, format string, args ...any) error {
	err := fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...)
	if strict {
		panic(err)
	}
	return err
}
