// Package feed delivers band snapshots and media metadata from an external
// analyser (a pipe, a file or FIFO) or from a built-in demo generator.
package feed

import "encoding/json"

// Kind tells the consumer how to decode a message payload.
type Kind int

const (
	// KindBands payloads go to the envelope follower. Unparseable lines are
	// also classified as bands so the decoder can reject them.
	KindBands Kind = iota
	// KindMedia payloads describe the playing track.
	KindMedia
)

func (k Kind) String() string {
	switch k {
	case KindBands:
		return "bands"
	case KindMedia:
		return "media"
	default:
		return "unknown"
	}
}

// Message is one line received from a feed.
type Message struct {
	Kind    Kind
	Payload []byte
}

// Classify inspects the top-level keys of a JSON object. Objects with a
// "bars" key are band snapshots; objects carrying title, artist or cover
// without bars are media messages.
func Classify(payload []byte) Kind {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(payload, &keys); err != nil {
		return KindBands
	}
	if _, ok := keys["bars"]; ok {
		return KindBands
	}
	for _, k := range []string{"title", "artist", "cover"} {
		if _, ok := keys[k]; ok {
			return KindMedia
		}
	}
	return KindBands
}
