// Package tone implements the audible-feedback collaborator on top of
// the beep speaker. Cues are short sine tones with a small attack and
// release so they do not click on cheap hardware.
package tone

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/hnimtadd/braillio/logger"
)

const (
	sampleRate = beep.SampleRate(44100)

	// Envelope edges. Kept well below the shortest cue duration.
	attack  = 5 * time.Millisecond
	release = 10 * time.Millisecond
)

// Speaker plays cues through the system audio device.
type Speaker struct {
	mu          sync.Mutex
	initialized bool
	logger      logger.Logger
}

func NewSpeaker(log logger.Logger) *Speaker {
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Speaker{logger: log}
}

// Beep plays one tone. The first call initializes the audio device;
// initialization failure downgrades the speaker to silence rather than
// failing the caller, a missing sound card must not take the display
// down with it.
func (s *Speaker) Beep(freq int, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
			s.logger.Warn("audio init failed, cues disabled", "err", err)
			return
		}
		s.initialized = true
	}

	speaker.Play(NewTone(float64(freq), d, sampleRate))
}

// Nop discards every cue. Used when feedback is disabled.
type Nop struct{}

func (Nop) Beep(int, time.Duration) {}

// tone is a sine oscillator with an attack/release envelope, bounded to
// a fixed number of samples.
type tone struct {
	freq     float64
	phase    float64
	rate     beep.SampleRate
	position int
	total    int
	attack   int
	release  int
}

// NewTone returns a finite streamer playing freq Hz for d.
func NewTone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:    freq,
		rate:    rate,
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, false
		}

		val := math.Sin(2 * math.Pi * t.phase)

		// Envelope
		vol := 1.0
		if t.attack > 0 && t.position < t.attack {
			vol = float64(t.position) / float64(t.attack)
		} else if rs := t.total - t.release; t.release > 0 && t.position >= rs {
			vol = float64(t.total-t.position) / float64(t.release)
		}
		val *= vol

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase) // keep in [0, 1)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
