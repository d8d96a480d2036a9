package tone

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 100 * time.Millisecond

	samples := drain(NewTone(880, d, rate))
	assert.Len(t, samples, rate.N(d))
}

func TestToneBounded(t *testing.T) {
	rate := beep.SampleRate(44100)
	samples := drain(NewTone(440, 50*time.Millisecond, rate))
	require.NotEmpty(t, samples)

	for i, s := range samples {
		assert.LessOrEqual(t, s[0], 1.0, "sample %d", i)
		assert.GreaterOrEqual(t, s[0], -1.0, "sample %d", i)
		assert.Equal(t, s[0], s[1], "cue is mono on both channels")
	}
}

func TestToneEnvelope(t *testing.T) {
	rate := beep.SampleRate(44100)
	samples := drain(NewTone(880, 100*time.Millisecond, rate))
	require.NotEmpty(t, samples)

	assert.InDelta(t, 0, samples[0][0], 1e-9, "attack starts from silence")
	assert.InDelta(t, 0, samples[len(samples)-1][0], 1e-2, "release ends near silence")
}

func TestToneErr(t *testing.T) {
	s := NewTone(220, time.Millisecond, beep.SampleRate(8000))
	assert.NoError(t, s.Err())
}
