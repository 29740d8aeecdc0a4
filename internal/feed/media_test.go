package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMediaInfo(t *testing.T) {
	m, err := ParseMediaInfo([]byte(`{"title":" Song ","artist":"Band","cover":"data:image/png;base64,AAAA"}`))
	require.NoError(t, err)
	assert.Equal(t, "Song", m.Title)
	assert.Equal(t, "Band", m.Artist)
	assert.True(t, m.Visible())
	assert.Equal(t, "image/png 3 B", m.CoverLabel())

	hidden, err := ParseMediaInfo([]byte(`{"title":"","artist":"Band"}`))
	require.NoError(t, err)
	assert.False(t, hidden.Visible())

	_, err = ParseMediaInfo([]byte(`{"title":`))
	assert.Error(t, err)
}

func TestCoverLabel(t *testing.T) {
	assert.Equal(t, "", MediaInfo{}.CoverLabel())
	assert.Equal(t, "cover", MediaInfo{Cover: "https://example.com/a.jpg"}.CoverLabel())
	assert.Equal(t, "cover", MediaInfo{Cover: "data:;base64,AA"}.CoverLabel())
}

func TestReadTrackInfoFallsBackToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Night Drive.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))

	m, err := ReadTrackInfo(path)
	require.NoError(t, err)
	assert.Equal(t, "Night Drive", m.Title)
	assert.Equal(t, "", m.Artist)
}

func TestReadTrackInfoMissingFile(t *testing.T) {
	_, err := ReadTrackInfo(filepath.Join(t.TempDir(), "gone.flac"))
	assert.Error(t, err)
}
