package envelope

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrMalformedSnapshot is returned for payloads that cannot be decoded into a
// band snapshot.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Snapshot is one tick of source data: raw band magnitudes in [0,255] and the
// instantaneous left/right channel volumes.
type Snapshot struct {
	Bars []float64
	VolL float64
	VolR float64
}

// Silence returns a snapshot with no signal, used to let meters fall to rest
// once the source has gone away.
func Silence() Snapshot {
	return Snapshot{}
}

type wirePayload struct {
	Bars *[]float64 `json:"bars"`
	VolL *float64   `json:"volL"`
	VolR *float64   `json:"volR"`
}

// DecodeSnapshot parses a serialized snapshot. The bars field is required;
// volL and volR default to 0.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var p wirePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Snapshot{}, errors.Wrap(ErrMalformedSnapshot, err.Error())
	}
	if p.Bars == nil {
		return Snapshot{}, errors.Wrap(ErrMalformedSnapshot, "missing bars")
	}

	snap := Snapshot{Bars: *p.Bars}
	if p.VolL != nil {
		snap.VolL = *p.VolL
	}
	if p.VolR != nil {
		snap.VolR = *p.VolR
	}
	return snap, nil
}

// EncodeSnapshot serializes a snapshot in the wire shape DecodeSnapshot reads.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	bars := s.Bars
	if bars == nil {
		bars = []float64{}
	}
	return json.Marshal(wirePayload{Bars: &bars, VolL: &s.VolL, VolR: &s.VolR})
}
