// Package audio plays the session's sound effects.
//
// Sounds are synthesized at start-up, so no audio assets ship with the
// binary. Front ends without a sound device use Nop.
package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the output rate of every synthesized sound.
const SampleRate = beep.SampleRate(44100)

const (
	crunchDuration = 90 * time.Millisecond
	thumpFreq      = 140.0
)

// Player consumes sound requests raised by the session.
type Player interface {
	PlayGrowth()
	Close()
}

// Nop discards every request.
type Nop struct{}

func (Nop) PlayGrowth() {}
func (Nop) Close()      {}

// BeepPlayer plays sounds through the default output device.
type BeepPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	rng         *rand.Rand
}

// NewBeepPlayer creates a player. Volume ranges from 0 (silent) to 1.
func NewBeepPlayer(volume float64) *BeepPlayer {
	return &BeepPlayer{
		mixer:  &beep.Mixer{},
		volume: volume,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (p *BeepPlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlayGrowth plays the crunch heard when the snake eats.
func (p *BeepPlayer) PlayGrowth() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := Crunch(SampleRate, p.volume, p.rng.Int63())
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences anything still playing.
func (p *BeepPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Crunch builds a short bite sound: a decaying noise burst over a low sine
// thump. The seed fixes the noise so the result is reproducible.
func Crunch(rate beep.SampleRate, volume float64, seed int64) beep.Streamer {
	total := rate.N(crunchDuration)

	noise := decay(noiseStreamer(rand.New(rand.NewSource(seed))), total, 6)
	parts := []beep.Streamer{withVolume(noise, 0.6)}

	if tone, err := generators.SineTone(rate, thumpFreq); err == nil {
		parts = append(parts, withVolume(decay(tone, total, 9), 0.4))
	}

	return withVolume(beep.Take(total, beep.Mix(parts...)), volume)
}

func noiseStreamer(rng *rand.Rand) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
}

// decay applies an exponential fade over total samples and ends the stream.
func decay(s beep.Streamer, total int, rate float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		if rest := total - pos; len(samples) > rest {
			samples = samples[:rest]
		}
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			g := math.Exp(-rate * float64(pos) / float64(total))
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}

// withVolume scales a stream linearly. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
