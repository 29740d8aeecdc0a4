// Package envelope turns raw per-band magnitudes into the smoothed display
// state consumed by renderers.
package envelope

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// NumBands is the number of frequency bands in a snapshot.
	NumBands = 64
	// MaxLevel is the upper bound of every smoothed band and channel volume.
	MaxLevel = 100.0
	// MaxMagnitude is the largest raw magnitude the source emits per band.
	MaxMagnitude = 255.0
)

const (
	DefaultSensitivity     = 1.0
	DefaultBassStart       = 5
	DefaultBassLength      = 5
	DefaultBassSensitivity = 1.2

	DefaultParticleThreshold = 50
	DefaultParticleIntensity = 50
)

// BandConfig holds the user-adjustable scalars read once per tick.
// Writers replace fields directly; the last write wins.
type BandConfig struct {
	Sensitivity     float64
	BassStart       int
	BassLength      int
	BassSensitivity float64
}

// DefaultBandConfig returns the configuration used at process start.
func DefaultBandConfig() BandConfig {
	return BandConfig{
		Sensitivity:     DefaultSensitivity,
		BassStart:       DefaultBassStart,
		BassLength:      DefaultBassLength,
		BassSensitivity: DefaultBassSensitivity,
	}
}

func (c BandConfig) sensitivity() float64 {
	if !finite(c.Sensitivity) || c.Sensitivity <= 0 {
		return DefaultSensitivity
	}
	return c.Sensitivity
}

func (c BandConfig) bassSensitivity() float64 {
	if !finite(c.BassSensitivity) || c.BassSensitivity <= 0 {
		return DefaultBassSensitivity
	}
	return c.BassSensitivity
}

// ParticleConfig controls particle bursts in renderers that support them.
// Threshold and Intensity are slider values in [0,100].
type ParticleConfig struct {
	Enabled   bool
	Threshold int
	Intensity int
}

// DisplayState is the long-lived smoothed signal. The follower mutates it in
// place; renderers only read it.
type DisplayState struct {
	Bands       []float64
	VolumeLeft  float64
	VolumeRight float64
	Config      BandConfig
	Particles   ParticleConfig
}

// NewDisplayState creates a zeroed state with n bands. n <= 0 selects NumBands.
func NewDisplayState(n int) *DisplayState {
	if n <= 0 {
		n = NumBands
	}
	return &DisplayState{
		Bands:  make([]float64, n),
		Config: DefaultBandConfig(),
		Particles: ParticleConfig{
			Enabled:   true,
			Threshold: DefaultParticleThreshold,
			Intensity: DefaultParticleIntensity,
		},
	}
}

// Band returns the level of band i, or 0 when i is out of range.
func (s *DisplayState) Band(i int) float64 {
	if i < 0 || i >= len(s.Bands) {
		return 0
	}
	return s.Bands[i]
}

// Mean returns the mean level of bands [lo, hi), clamped to the band slice.
// An empty range reads as 0.
func (s *DisplayState) Mean(lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(s.Bands) {
		hi = len(s.Bands)
	}
	if hi <= lo {
		return 0
	}
	return stat.Mean(s.Bands[lo:hi], nil)
}

// BassRange resolves the configured bass sub-range to [start, end) indices.
// ok is false when the configuration does not name any band.
func (s *DisplayState) BassRange() (start, end int, ok bool) {
	start = s.Config.BassStart
	if start < 0 || start >= len(s.Bands) || s.Config.BassLength <= 0 {
		return 0, 0, false
	}
	end = start + s.Config.BassLength
	if end > len(s.Bands) {
		end = len(s.Bands)
	}
	return start, end, true
}

// BassLevel is the mean of the configured bass range scaled by the bass
// sensitivity. It is 0 whenever the range is empty or out of bounds.
func (s *DisplayState) BassLevel() float64 {
	start, end, ok := s.BassRange()
	if !ok {
		return 0
	}
	return s.Mean(start, end) * s.Config.bassSensitivity()
}

// HzForBand maps a band index to its lower edge frequency on the 30 Hz to
// 15 kHz logarithmic scale the analyser bins on, rounded to the nearest Hz.
func HzForBand(index int) int {
	if index < 0 {
		index = 0
	}
	if index > NumBands {
		index = NumBands
	}
	hz := 30 * math.Pow(15000.0/30.0, float64(index)/NumBands)
	return int(math.Round(hz))
}

// BassHz returns the frequency span covered by the configured bass range.
func (c BandConfig) BassHz() (lo, hi int) {
	return HzForBand(c.BassStart), HzForBand(c.BassStart + c.BassLength)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
