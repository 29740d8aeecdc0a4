package feed

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/pkg/errors"
)

// tagExts are the audio formats whose tags ReadTrackInfo parses.
var tagExts = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".m4b":  true,
	".aac":  true,
	".wav":  true,
}

// MediaInfo describes the playing track for the overlay.
type MediaInfo struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
	// Cover is a data URL or a plain URL; terminals only show a descriptor.
	Cover string `json:"cover"`
}

// ParseMediaInfo decodes a media message.
func ParseMediaInfo(data []byte) (MediaInfo, error) {
	var m MediaInfo
	if err := json.Unmarshal(data, &m); err != nil {
		return MediaInfo{}, errors.Wrap(err, "parse media info")
	}
	m.Title = strings.TrimSpace(m.Title)
	m.Artist = strings.TrimSpace(m.Artist)
	m.Album = strings.TrimSpace(m.Album)
	return m, nil
}

// Visible reports whether the overlay should be shown; a track without a
// title hides it.
func (m MediaInfo) Visible() bool {
	return m.Title != ""
}

// CoverLabel returns a short description of the artwork, or "" when there
// is none.
func (m MediaInfo) CoverLabel() string {
	if m.Cover == "" {
		return ""
	}
	rest, ok := strings.CutPrefix(m.Cover, "data:")
	if !ok {
		return "cover"
	}
	mime, data, ok := strings.Cut(rest, ";base64,")
	if !ok || mime == "" {
		return "cover"
	}
	size := base64.StdEncoding.DecodedLen(len(data))
	return fmt.Sprintf("%s %s", mime, humanBytes(size))
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func dataURL(mime string, data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ReadTrackInfo reads tags from an audio file: ID3v2 for MP3, anything
// dhowden/tag understands otherwise. Without a usable title it falls back
// to the file name. A missing file is an error; unreadable tags are not.
func ReadTrackInfo(path string) (MediaInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return MediaInfo{}, errors.Wrap(err, "track")
	}

	var m MediaInfo
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".mp3" {
		m = readID3(path)
	}
	if m.Title == "" && tagExts[ext] {
		m = readTag(path)
	}
	if m.Title == "" {
		base := filepath.Base(path)
		m.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return m, nil
}

func readID3(path string) MediaInfo {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return MediaInfo{}
	}
	defer t.Close()

	m := MediaInfo{
		Title:  strings.TrimSpace(t.Title()),
		Artist: strings.TrimSpace(t.Artist()),
		Album:  strings.TrimSpace(t.Album()),
	}
	for _, f := range t.GetFrames(t.CommonID("Attached picture")) {
		if pic, ok := f.(id3v2.PictureFrame); ok {
			m.Cover = dataURL(pic.MimeType, pic.Picture)
			break
		}
	}
	return m
}

func readTag(path string) MediaInfo {
	f, err := os.Open(path)
	if err != nil {
		return MediaInfo{}
	}
	defer f.Close()

	md, err := tag.ReadFrom(f)
	if err != nil || md == nil {
		return MediaInfo{}
	}
	m := MediaInfo{
		Title:  strings.TrimSpace(md.Title()),
		Artist: strings.TrimSpace(md.Artist()),
		Album:  strings.TrimSpace(md.Album()),
	}
	if pic := md.Picture(); pic != nil {
		m.Cover = dataURL(pic.MIMEType, pic.Data)
	}
	return m
}
