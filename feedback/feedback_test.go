package feedback

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ballz/sim"
)

func samples(pcm []byte) []int16 {
	out := make([]int16, len(pcm)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(pcm[2*i:]))
	}
	return out
}

func peak(s []int16) int {
	p := 0
	for _, v := range s {
		p = max(p, int(math.Abs(float64(v))))
	}
	return p
}

func TestPunchLength(t *testing.T) {
	p := DefaultPunch()
	pcm := PCM(p.Streamer(SampleRate))

	frames := SampleRate.N(p.Duration)
	assert.Equal(t, frames*4, len(pcm), "16-bit stereo")
}

func TestPunchShape(t *testing.T) {
	s := samples(PCM(DefaultPunch().Streamer(SampleRate)))
	require.NotEmpty(t, s)

	quarter := len(s) / 4
	head, tail := peak(s[:quarter]), peak(s[3*quarter:])
	assert.Greater(t, head, 10000, "loud attack")
	assert.Less(t, tail, head/2, "decays")
	assert.LessOrEqual(t, peak(s), math.MaxInt16)

	for i := 0; i+1 < len(s); i += 2 {
		assert.Equal(t, s[i], s[i+1], "mono content in both channels")
	}
}

func TestPunchDeterministic(t *testing.T) {
	a := PCM(DefaultPunch().Streamer(SampleRate))
	b := PCM(DefaultPunch().Streamer(SampleRate))
	assert.Equal(t, a, b)
}

func TestPunchSilent(t *testing.T) {
	p := DefaultPunch()
	p.Volume = 0
	assert.Equal(t, 0, peak(samples(PCM(p.Streamer(SampleRate)))))
}

func TestPCMClamps(t *testing.T) {
	loud := beep.Take(4, beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		for i := range buf {
			buf[i] = [2]float64{3, -3}
		}
		return len(buf), true
	}))
	s := samples(PCM(loud))
	require.Len(t, s, 8)
	assert.Equal(t, int16(math.MaxInt16), s[0])
	assert.Equal(t, int16(-math.MaxInt16), s[1])
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.PlayImpactSound()
	r.TriggerHapticPulse()
	r.PlayImpactSound()

	assert.Equal(t, []Kind{Sound, Haptic, Sound}, r.Events())
	assert.Equal(t, 2, r.Count(Sound))
	assert.Equal(t, 1, r.Count(Haptic))

	r.Reset()
	assert.Empty(t, r.Events())
}

func TestRecorderThroughSession(t *testing.T) {
	r := &Recorder{}
	cfg := sim.DefaultConfig(400, 800)
	cfg.TiltGate = false

	session, err := sim.NewSession(cfg, sim.Deps{Feedback: r})
	require.NoError(t, err)
	require.NoError(t, session.Start(t.Context()))

	for range 100 {
		session.Tick(16 * time.Millisecond)
		if session.Score() > 0 {
			break
		}
	}
	require.Equal(t, 1, session.Score())
	assert.Equal(t, []Kind{Sound, Haptic}, r.Events())
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop{}.PlayImpactSound()
		Nop{}.TriggerHapticPulse()
	})
}
