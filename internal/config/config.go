// Package config loads and saves the user's display settings.
package config

import (
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/olivier-w/vizwall/internal/envelope"
)

const (
	DefaultStyle = "neon"
	DefaultFPS   = 60
	MaxFPS       = 240
)

// ErrInvalidPosition is returned for an overlay corner name that is not one
// of the four known positions.
var ErrInvalidPosition = errors.New("invalid media position")

// Position is the screen corner the media overlay is anchored to.
type Position string

const (
	TopLeft     Position = "top-left"
	TopRight    Position = "top-right"
	BottomLeft  Position = "bottom-left"
	BottomRight Position = "bottom-right"
)

var positions = []Position{TopLeft, TopRight, BottomRight, BottomLeft}

// ParsePosition validates a corner name.
func ParsePosition(s string) (Position, error) {
	for _, p := range positions {
		if string(p) == s {
			return p, nil
		}
	}
	return TopLeft, errors.Wrapf(ErrInvalidPosition, "%q", s)
}

// Next returns the following corner, clockwise.
func (p Position) Next() Position {
	for i, q := range positions {
		if q == p {
			return positions[(i+1)%len(positions)]
		}
	}
	return TopLeft
}

func (p Position) Top() bool  { return p == TopLeft || p == TopRight }
func (p Position) Left() bool { return p == TopLeft || p == BottomLeft }

type Settings struct {
	Style             string   `yaml:"style"`
	Sensitivity       float64  `yaml:"sensitivity"`
	MediaPosition     Position `yaml:"media_position"`
	BassOffset        int      `yaml:"bass_offset"`
	BassRange         int      `yaml:"bass_range"`
	BassSens          float64  `yaml:"bass_sens"`
	ParticleEnabled   bool     `yaml:"particle_enabled"`
	ParticleThreshold int      `yaml:"particle_threshold"`
	ParticleIntensity int      `yaml:"particle_intensity"`
	FPS               int      `yaml:"fps"`
}

func Default() *Settings {
	return &Settings{
		Style:             DefaultStyle,
		Sensitivity:       envelope.DefaultSensitivity,
		MediaPosition:     TopLeft,
		BassOffset:        envelope.DefaultBassStart,
		BassRange:         envelope.DefaultBassLength,
		BassSens:          envelope.DefaultBassSensitivity,
		ParticleEnabled:   true,
		ParticleThreshold: envelope.DefaultParticleThreshold,
		ParticleIntensity: envelope.DefaultParticleIntensity,
		FPS:               DefaultFPS,
	}
}

// DefaultPath returns the settings file under the user's config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "vizwall", "config.yaml")
}

// Load reads settings from path. A missing file yields the defaults and no
// error. A file that cannot be parsed yields the defaults and an error the
// caller may log. Loaded values are sanitized.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), errors.Wrap(err, "read settings")
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return Default(), errors.Wrapf(err, "parse settings %s", path)
	}
	s.Sanitize()

	logrus.WithFields(logrus.Fields{
		"function": "Load",
		"path":     path,
		"style":    s.Style,
	}).Debug("Settings loaded")
	return s, nil
}

// Save writes settings to path, creating the parent directory.
func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create settings dir")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write settings")
	}
	logrus.WithFields(logrus.Fields{
		"function": "Save",
		"path":     path,
	}).Info("Settings saved")
	return nil
}

// Sanitize replaces out-of-range values with usable ones.
func (s *Settings) Sanitize() {
	def := Default()
	if s.Style == "" {
		s.Style = def.Style
	}
	if !positive(s.Sensitivity) {
		s.Sensitivity = def.Sensitivity
	}
	if !positive(s.BassSens) {
		s.BassSens = def.BassSens
	}
	if _, err := ParsePosition(string(s.MediaPosition)); err != nil {
		s.MediaPosition = def.MediaPosition
	}
	s.BassOffset = min(max(s.BassOffset, 0), envelope.NumBands)
	s.BassRange = min(max(s.BassRange, 0), envelope.NumBands)
	s.ParticleThreshold = min(max(s.ParticleThreshold, 0), 100)
	s.ParticleIntensity = min(max(s.ParticleIntensity, 0), 100)
	if s.FPS <= 0 {
		s.FPS = def.FPS
	}
	s.FPS = min(s.FPS, MaxFPS)
}

// ApplyTo copies the tuning scalars into a display state.
func (s *Settings) ApplyTo(st *envelope.DisplayState) {
	st.Config = envelope.BandConfig{
		Sensitivity:     s.Sensitivity,
		BassStart:       s.BassOffset,
		BassLength:      s.BassRange,
		BassSensitivity: s.BassSens,
	}
	st.Particles = envelope.ParticleConfig{
		Enabled:   s.ParticleEnabled,
		Threshold: s.ParticleThreshold,
		Intensity: s.ParticleIntensity,
	}
}

// CaptureFrom copies the tuning scalars back out of a display state, so
// changes made at runtime can be saved.
func (s *Settings) CaptureFrom(st *envelope.DisplayState) {
	s.Sensitivity = st.Config.Sensitivity
	s.BassOffset = st.Config.BassStart
	s.BassRange = st.Config.BassLength
	s.BassSens = st.Config.BassSensitivity
	s.ParticleEnabled = st.Particles.Enabled
	s.ParticleThreshold = st.Particles.Threshold
	s.ParticleIntensity = st.Particles.Intensity
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
