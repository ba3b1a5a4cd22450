package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"boulder-smash/internal/config"
	"boulder-smash/internal/task"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrEffectNotFound is returned when playing a name nobody registered.
	ErrEffectNotFound = errors.New("sound effect not found")
	// ErrUnknownSynth is returned for a synth name this package cannot build.
	ErrUnknownSynth = errors.New("unknown synth")
)

// EffectPlayer is the fire-and-forget playback surface gameplay code uses.
type EffectPlayer interface {
	PlayEffect(name string)
}

// SoundManager decodes effects into memory and mixes them onto the speaker.
// Playback requests are handed to a background executor so the frame loop
// never waits on the speaker lock.
type SoundManager struct {
	mu          sync.Mutex
	log         *zap.Logger
	rate        beep.SampleRate
	bufferSize  time.Duration
	volume      float64
	mixer       *beep.Mixer
	buffers     map[string]*beep.Buffer
	exec        *task.Executor
	initialized bool
	played      int
}

// NewSoundManager creates a manager. Nothing is audible until Init.
func NewSoundManager(cfg config.AudioConfig, log *zap.Logger) *SoundManager {
	if log == nil {
		log = zap.NewNop()
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	buf := cfg.BufferSize
	if buf <= 0 {
		buf = 100 * time.Millisecond
	}
	return &SoundManager{
		log:        log.Named("audio"),
		rate:       rate,
		bufferSize: buf,
		volume:     cfg.Volume,
		mixer:      &beep.Mixer{},
		buffers:    make(map[string]*beep.Buffer),
		exec:       task.New(log.Named("audio").Named("exec")),
	}
}

// Init opens the output device and starts mixing.
func (sm *SoundManager) Init() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(sm.bufferSize)); err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Register builds one effect from its definition and stores it by name.
// A readable wav file wins; a synth is the fallback.
func (sm *SoundManager) Register(def config.SoundDef) error {
	buf, err := sm.build(def)
	if err != nil {
		return err
	}
	sm.mu.Lock()
	sm.buffers[def.Name] = buf
	sm.mu.Unlock()
	return nil
}

// Preload registers every definition, at most limit at a time. Effects that
// fail to build are logged and skipped; only cancellation is an error.
func (sm *SoundManager) Preload(ctx context.Context, defs []config.SoundDef, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, def := range defs {
		def := def
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := sm.Register(def); err != nil {
				sm.log.Warn("sound effect skipped", zap.String("effect", def.Name), zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}

func (sm *SoundManager) build(def config.SoundDef) (*beep.Buffer, error) {
	var src beep.Streamer
	if def.Path != "" {
		s, err := sm.decode(def.Path)
		switch {
		case err == nil:
			src = s
		case def.Synth == "":
			return nil, err
		default:
			sm.log.Warn("sound file unusable, synthesizing instead",
				zap.String("effect", def.Name), zap.String("path", def.Path), zap.Error(err))
		}
	}
	if src == nil {
		s, err := sm.synth(def)
		if err != nil {
			return nil, err
		}
		src = s
	}
	if def.Volume != 0 {
		src = &effects.Volume{Streamer: src, Base: 2, Volume: def.Volume}
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sm.rate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	return buf, nil
}

func (sm *SoundManager) decode(path string) (beep.Streamer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	// Drain into memory now so the file can be closed.
	tmp := beep.NewBuffer(format)
	tmp.Append(streamer)
	streamer.Close()

	var s beep.Streamer = tmp.Streamer(0, tmp.Len())
	if format.SampleRate != sm.rate {
		s = beep.Resample(4, format.SampleRate, sm.rate, s)
	}
	return s, nil
}

func (sm *SoundManager) synth(def config.SoundDef) (beep.Streamer, error) {
	d := def.Duration
	switch def.Synth {
	case SynthExplosion:
		if d <= 0 {
			d = 900 * time.Millisecond
		}
		return newNoiseBurst(sm.rate, d, int64(len(def.Name))), nil
	case SynthTone:
		if d <= 0 {
			d = 150 * time.Millisecond
		}
		freq := def.Frequency
		if freq <= 0 {
			freq = 440
		}
		return newSine(sm.rate, freq, d)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSynth, def.Synth)
	}
}

// Has reports whether name is registered.
func (sm *SoundManager) Has(name string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	_, ok := sm.buffers[name]
	return ok
}

// Duration returns the length of a registered effect.
func (sm *SoundManager) Duration(name string) (time.Duration, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	buf, ok := sm.buffers[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrEffectNotFound, name)
	}
	return sm.rate.D(buf.Len()), nil
}

// Play queues name for playback and returns without waiting for it.
func (sm *SoundManager) Play(name string) error {
	sm.mu.Lock()
	buf, ok := sm.buffers[name]
	sm.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrEffectNotFound, name)
	}
	return sm.exec.Submit(func() { sm.mix(buf) })
}

// PlayEffect is Play with failures logged.
func (sm *SoundManager) PlayEffect(name string) {
	if err := sm.Play(name); err != nil {
		sm.log.Warn("play effect", zap.String("effect", name), zap.Error(err))
	}
}

func (sm *SoundManager) mix(buf *beep.Buffer) {
	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if sm.volume != 0 {
		s = &effects.Volume{Streamer: s, Base: 2, Volume: sm.volume}
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	// Without a device the request is accounted for and dropped.
	if sm.initialized {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	}
	sm.played++
}

// Played returns how many playback requests the worker has handled.
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// Close waits for queued playback requests, then silences the mixer.
func (sm *SoundManager) Close() {
	sm.exec.Close()

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}
