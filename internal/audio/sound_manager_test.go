package audio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"boulder-smash/internal/config"
	"boulder-smash/internal/task"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// The speaker is never initialised here; playback requests are accounted
// for without a device, which is how the game runs with audio disabled.

func newManager(t *testing.T, log *zap.Logger) *SoundManager {
	t.Helper()
	sm := NewSoundManager(config.AudioConfig{SampleRate: 8000}, log)
	t.Cleanup(sm.Close)
	return sm
}

func TestRegisterSynthesizedEffects(t *testing.T) {
	sm := newManager(t, nil)
	require.NoError(t, sm.Register(config.SoundDef{Name: "explosion", Synth: SynthExplosion, Duration: 500 * time.Millisecond}))
	require.NoError(t, sm.Register(config.SoundDef{Name: "ping", Synth: SynthTone, Frequency: 880}))

	d, err := sm.Duration("explosion")
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)

	d, err = sm.Duration("ping")
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, d)
}

func TestRegisterToneAboveNyquist(t *testing.T) {
	sm := newManager(t, nil)
	err := sm.Register(config.SoundDef{Name: "squeal", Synth: SynthTone, Frequency: 6000})
	assert.Error(t, err)
	assert.False(t, sm.Has("squeal"))
}

func TestRegisterUnknownSynth(t *testing.T) {
	sm := newManager(t, nil)
	err := sm.Register(config.SoundDef{Name: "laser", Synth: "laser"})
	assert.ErrorIs(t, err, ErrUnknownSynth)
	assert.False(t, sm.Has("laser"))
}

func writeWav(t *testing.T, rate beep.SampleRate, d time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	tone, err := newSine(rate, 440, d)
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, tone, format))
	return path
}

func TestRegisterWavFile(t *testing.T) {
	sm := newManager(t, nil)
	path := writeWav(t, 8000, 250*time.Millisecond)
	require.NoError(t, sm.Register(config.SoundDef{Name: "tone", Path: path}))

	d, err := sm.Duration("tone")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
}

func TestRegisterWavResamples(t *testing.T) {
	sm := newManager(t, nil)
	path := writeWav(t, 16000, 200*time.Millisecond)
	require.NoError(t, sm.Register(config.SoundDef{Name: "tone", Path: path}))

	d, err := sm.Duration("tone")
	require.NoError(t, err)
	assert.InDelta(t, float64(200*time.Millisecond), float64(d), float64(5*time.Millisecond))
}

func TestRegisterMalformedFile(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sm := newManager(t, zap.New(core))
	path := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav"), 0o644))

	assert.Error(t, sm.Register(config.SoundDef{Name: "junk", Path: path}))
	assert.False(t, sm.Has("junk"))

	require.NoError(t, sm.Register(config.SoundDef{Name: "boom", Path: path, Synth: SynthExplosion}))
	assert.True(t, sm.Has("boom"))
	assert.Equal(t, 1, logs.FilterMessage("sound file unusable, synthesizing instead").Len())
}

func TestPreloadSkipsBadDefinitions(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sm := newManager(t, zap.New(core))
	defs := []config.SoundDef{
		{Name: "explosion", Synth: SynthExplosion},
		{Name: "ping", Synth: SynthTone},
		{Name: "missing", Path: filepath.Join(t.TempDir(), "nope.wav")},
		{Name: "laser", Synth: "laser"},
	}
	require.NoError(t, sm.Preload(context.Background(), defs, 2))

	assert.True(t, sm.Has("explosion"))
	assert.True(t, sm.Has("ping"))
	assert.False(t, sm.Has("missing"))
	assert.False(t, sm.Has("laser"))
	assert.Equal(t, 2, logs.FilterMessage("sound effect skipped").Len())
}

func TestPreloadCancelled(t *testing.T) {
	sm := newManager(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sm.Preload(ctx, []config.SoundDef{{Name: "explosion", Synth: SynthExplosion}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayUnknownEffect(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sm := newManager(t, zap.New(core))

	assert.ErrorIs(t, sm.Play("nothing"), ErrEffectNotFound)
	sm.PlayEffect("nothing")
	assert.Equal(t, 1, logs.FilterMessage("play effect").Len())
}

func TestPlayEffectIsHandledByWorker(t *testing.T) {
	sm := NewSoundManager(config.AudioConfig{SampleRate: 8000}, nil)
	require.NoError(t, sm.Register(config.SoundDef{Name: "explosion", Synth: SynthExplosion}))

	sm.PlayEffect("explosion")
	sm.PlayEffect("explosion")
	sm.Close()

	assert.Equal(t, 2, sm.Played())
	assert.ErrorIs(t, sm.Play("explosion"), task.ErrClosed)
}

func TestSoundManagerNamesItsLoggerOnce(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sm := newManager(t, zap.New(core))
	sm.PlayEffect("missing")

	entries := logs.FilterMessage("play effect").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "audio", entries[0].LoggerName)
}
