package feedback

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/plus3/ballz/sim"
)

// DeviceOptions configures a Device.
type DeviceOptions struct {
	Punch Punch
	// Haptic is the vibration length; zero disables vibration.
	Haptic time.Duration
	// Magnitude is the vibration strength, 0..1.
	Magnitude float64
	Muted     bool
}

// DefaultDeviceOptions plays the default punch and a 200ms pulse.
func DefaultDeviceOptions() DeviceOptions {
	return DeviceOptions{
		Punch:     DefaultPunch(),
		Haptic:    200 * time.Millisecond,
		Magnitude: 1,
	}
}

// Device plays the punch through ebiten's audio context and vibrates through
// ebiten. It must be used from an ebiten game; failures are logged, never
// returned.
type Device struct {
	opts    DeviceOptions
	log     *slog.Logger
	player  *audio.Player
	vibrate func(*ebiten.VibrateOptions)
}

// NewDevice renders the punch and prepares a player on the process audio
// context, creating the context if there is none yet.
func NewDevice(opts DeviceOptions, logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.Default().With("component", "feedback")
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(int(SampleRate))
	}

	d := &Device{opts: opts, log: logger, vibrate: ebiten.Vibrate}
	if ctx.SampleRate() != int(SampleRate) {
		d.log.Warn("audio disabled",
			"error", fmt.Errorf("%w: context runs at %d Hz, punch needs %d", sim.ErrFeedbackDevice, ctx.SampleRate(), SampleRate))
		return d
	}

	d.player = ctx.NewPlayerFromBytes(PCM(opts.Punch.Streamer(SampleRate)))
	return d
}

// SetMuted turns the impact sound off or on. Haptics are unaffected.
func (d *Device) SetMuted(muted bool) {
	d.opts.Muted = muted
}

func (d *Device) PlayImpactSound() {
	if d.player == nil || d.opts.Muted {
		return
	}
	if err := d.player.SetPosition(0); err != nil {
		d.log.Warn("rewinding impact sound", "error", fmt.Errorf("%w: %w", sim.ErrFeedbackDevice, err))
		return
	}
	d.player.Play()
}

func (d *Device) TriggerHapticPulse() {
	if d.opts.Haptic <= 0 {
		return
	}
	d.vibrate(&ebiten.VibrateOptions{
		Duration:  d.opts.Haptic,
		Magnitude: d.opts.Magnitude,
	})
}

// Close releases the audio player.
func (d *Device) Close() error {
	if d.player == nil {
		return nil
	}
	err := d.player.Close()
	d.player = nil
	return err
}
