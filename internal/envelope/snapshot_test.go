package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshotDefaultsVolumes(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(`{"bars":[1,2,3]}`))
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, snap.Bars)
	assert.Zero(t, snap.VolL)
	assert.Zero(t, snap.VolR)
}

func TestDecodeSnapshotReadsVolumes(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(`{"bars":[],"volL":12.5,"volR":99}`))
	require.NoError(t, err)

	assert.Empty(t, snap.Bars)
	assert.Equal(t, 12.5, snap.VolL)
	assert.Equal(t, 99.0, snap.VolR)
}

func TestEncodeSnapshotIsReadableByDecode(t *testing.T) {
	data, err := EncodeSnapshot(Snapshot{Bars: []float64{255, 0, 17}, VolL: 3})
	require.NoError(t, err)

	assert.JSONEq(t, `{"bars":[255,0,17],"volL":3,"volR":0}`, string(data))
}
