package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivier-w/vizwall/internal/envelope"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("style: vu\nbass_offset: 2\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "vu", s.Style)
	assert.Equal(t, 2, s.BassOffset)
	assert.Equal(t, envelope.DefaultBassLength, s.BassRange)
	assert.True(t, s.ParticleEnabled)
	assert.Equal(t, DefaultFPS, s.FPS)
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("style: [unterminated\n"), 0o644))

	s, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), s)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.Style = "holo"
	want.MediaPosition = BottomRight
	want.ParticleEnabled = false

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSanitize(t *testing.T) {
	s := &Settings{
		Sensitivity:       math.NaN(),
		MediaPosition:     "middle",
		BassOffset:        -4,
		BassRange:         500,
		BassSens:          -1,
		ParticleThreshold: 140,
		ParticleIntensity: -3,
		FPS:               10000,
	}
	s.Sanitize()

	assert.Equal(t, DefaultStyle, s.Style)
	assert.Equal(t, 1.0, s.Sensitivity)
	assert.Equal(t, TopLeft, s.MediaPosition)
	assert.Equal(t, 0, s.BassOffset)
	assert.Equal(t, envelope.NumBands, s.BassRange)
	assert.Equal(t, envelope.DefaultBassSensitivity, s.BassSens)
	assert.Equal(t, 100, s.ParticleThreshold)
	assert.Equal(t, 0, s.ParticleIntensity)
	assert.Equal(t, MaxFPS, s.FPS)
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition("bottom-left")
	require.NoError(t, err)
	assert.Equal(t, BottomLeft, p)
	assert.False(t, p.Top())
	assert.True(t, p.Left())

	_, err = ParsePosition("centre")
	assert.True(t, errors.Is(err, ErrInvalidPosition))
}

func TestPositionNextCycles(t *testing.T) {
	p := TopLeft
	seen := map[Position]bool{}
	for range 4 {
		seen[p] = true
		p = p.Next()
	}
	assert.Equal(t, TopLeft, p)
	assert.Len(t, seen, 4)
	assert.Equal(t, TopLeft, Position("bogus").Next())
}

func TestApplyAndCapture(t *testing.T) {
	s := Default()
	s.Sensitivity = 2
	s.BassOffset = 0
	s.ParticleIntensity = 90

	st := envelope.NewDisplayState(envelope.NumBands)
	s.ApplyTo(st)
	assert.Equal(t, 2.0, st.Config.Sensitivity)
	assert.Equal(t, 0, st.Config.BassStart)
	assert.Equal(t, 90, st.Particles.Intensity)

	st.Config.BassLength = 9
	back := Default()
	back.CaptureFrom(st)
	assert.Equal(t, 9, back.BassRange)
	assert.Equal(t, 2.0, back.Sensitivity)
}
