package envelope

import "math"

// Tier is the attack/decay pair applied to every band below an index bound.
//
// Attack is the fraction of the gap closed per tick while the signal rises.
// Decay is the absolute amount subtracted per tick while it falls. Both are
// per tick, not per second, so perceived speed follows the redraw rate.
type Tier struct {
	Below  int
	Attack float64
	Decay  float64
}

// DefaultTiers gives bass a fast needle, mids a moderate one and highs a
// soft shimmer.
var DefaultTiers = []Tier{
	{Below: 8, Attack: 0.95, Decay: 15.0},
	{Below: 20, Attack: 0.5, Decay: 5.0},
	{Below: math.MaxInt, Attack: 0.3, Decay: 2.0},
}

// VolumeSmoothing is the one-pole coefficient used for both channel volumes.
const VolumeSmoothing = 0.4

// Follower applies per-band envelope following to a DisplayState.
type Follower struct {
	tiers  []Tier
	volume float64
}

// NewFollower creates a follower with the default tiers.
func NewFollower() *Follower {
	return NewFollowerWithTiers(DefaultTiers)
}

// NewFollowerWithTiers creates a follower with custom tiers, ordered by Below.
// Bands past the last tier use the last tier.
func NewFollowerWithTiers(tiers []Tier) *Follower {
	t := make([]Tier, len(tiers))
	copy(t, tiers)
	if len(t) == 0 {
		t = append(t, DefaultTiers...)
	}
	return &Follower{tiers: t, volume: VolumeSmoothing}
}

// TierFor returns the tier governing band i.
func (f *Follower) TierFor(i int) Tier {
	for _, t := range f.tiers {
		if i < t.Below {
			return t
		}
	}
	return f.tiers[len(f.tiers)-1]
}

// Apply advances the state by one tick toward snap. It writes into the
// existing Bands slice and never reallocates it. Bands missing from the
// snapshot are treated as silent.
func (f *Follower) Apply(snap Snapshot, st *DisplayState) {
	sens := st.Config.sensitivity()

	for i := range st.Bands {
		var raw float64
		if i < len(snap.Bars) {
			raw = snap.Bars[i]
		}
		if !finite(raw) {
			raw = 0
		}
		target := clamp(raw*sens, 0, MaxLevel)

		cur := st.Bands[i]
		if !finite(cur) {
			cur = 0
		}

		t := f.TierFor(i)
		if target > cur {
			cur += (target - cur) * t.Attack
		} else {
			cur -= t.Decay
		}
		st.Bands[i] = clamp(cur, 0, MaxLevel)
	}

	st.VolumeLeft = f.smoothVolume(st.VolumeLeft, snap.VolL*sens)
	st.VolumeRight = f.smoothVolume(st.VolumeRight, snap.VolR*sens)
}

func (f *Follower) smoothVolume(cur, target float64) float64 {
	if !finite(cur) {
		cur = 0
	}
	if !finite(target) {
		target = 0
	}
	cur += (target - cur) * f.volume
	// meters share the band scale, so a high sensitivity saturates at MaxLevel
	return clamp(cur, 0, MaxLevel)
}

// ApplyPayload decodes a serialized snapshot and applies it. A payload that
// fails to decode leaves the state untouched and returns the decode error.
func (f *Follower) ApplyPayload(data []byte, st *DisplayState) error {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	f.Apply(snap, st)
	return nil
}
