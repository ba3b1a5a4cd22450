package audio

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Synth names accepted in sound definitions.
const (
	SynthExplosion = "explosion"
	SynthTone      = "tone"
)

// noiseBurst is white noise under an exponential decay, low-passed so it
// rumbles instead of hissing.
type noiseBurst struct {
	rng      *rand.Rand
	position int
	total    int
	decay    float64
	last     float64
}

func newNoiseBurst(rate beep.SampleRate, d time.Duration, seed int64) beep.Streamer {
	total := rate.N(d)
	return &noiseBurst{
		rng:   rand.New(rand.NewSource(seed)),
		total: total,
		// -60 dB over the full duration.
		decay: math.Log(1000) / float64(max(total, 1)),
	}
}

func (b *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.position >= b.total {
			return i, i > 0
		}
		raw := b.rng.Float64()*2 - 1
		b.last += 0.15 * (raw - b.last)
		v := b.last * 2.5 * math.Exp(-b.decay*float64(b.position))
		samples[i][0] = v
		samples[i][1] = v
		b.position++
	}
	return len(samples), true
}

func (b *noiseBurst) Err() error { return nil }

// newSine returns a fixed-length sine tone with a short linear release.
func newSine(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("sine %gHz: %w", freq, err)
	}
	total := rate.N(d)
	release := min(rate.N(20*time.Millisecond), total)
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		left := total - position
		if left <= 0 {
			return 0, false
		}
		n, ok := tone.Stream(samples[:min(len(samples), left)])
		for i := 0; i < n; i++ {
			if r := total - position - i; r < release {
				vol := float64(r) / float64(release)
				samples[i][0] *= vol
				samples[i][1] *= vol
			}
		}
		position += n
		return n, ok
	}), nil
}
