package visualizer

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrUnknownStyle is returned when a style key has no registered renderer.
var ErrUnknownStyle = errors.New("unknown style")

// Factory builds a renderer instance. A nil Factory registers Blank.
type Factory func() Renderer

type entry struct {
	factory  Factory
	instance Renderer
}

// Registry owns one renderer instance per style key and tracks the active one.
//
// Instances are built on first use and kept for the life of the registry, so
// switching away and back resumes a renderer's animation where it stopped.
// A Registry is not safe for concurrent use; it belongs to the frame loop.
type Registry struct {
	entries map[string]*entry
	active  string
}

// NewRegistry creates an empty registry with no active style.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds or replaces the factory for key. Replacing a key drops any
// instance already built for it.
func (r *Registry) Register(key string, f Factory) {
	if f == nil {
		f = func() Renderer { return Blank{} }
	}
	r.entries[key] = &entry{factory: f}
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.entries[key]
	return ok
}

// Keys returns the registered style keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Active returns the active style key, or "" when nothing is selected.
func (r *Registry) Active() string {
	return r.active
}

// Select makes key the active style. On an unknown key the active style is
// left unchanged and an error wrapping ErrUnknownStyle is returned.
func (r *Registry) Select(key string) error {
	e, ok := r.entries[key]
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": "Select",
			"style":    key,
			"active":   r.active,
		}).Error("Renderer not found")
		return errors.Wrapf(ErrUnknownStyle, "select %q", key)
	}
	r.instance(e)
	if key != r.active {
		logrus.WithFields(logrus.Fields{
			"function": "Select",
			"style":    key,
			"previous": r.active,
		}).Info("Switched renderer")
	}
	r.active = key
	return nil
}

// Current returns the active renderer, or nil when nothing is selected.
func (r *Registry) Current() Renderer {
	e, ok := r.entries[r.active]
	if !ok {
		return nil
	}
	return r.instance(e)
}

// Instance returns the renderer for key, building it if needed, without
// changing the active style.
func (r *Registry) Instance(key string) (Renderer, error) {
	e, ok := r.entries[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownStyle, "instance %q", key)
	}
	return r.instance(e), nil
}

func (r *Registry) instance(e *entry) Renderer {
	if e.instance == nil {
		e.instance = e.factory()
		if e.instance == nil {
			e.instance = Blank{}
		}
	}
	return e.instance
}

// Next selects the style after the active one in key order, wrapping around.
func (r *Registry) Next() string {
	return r.step(1)
}

// Prev selects the style before the active one in key order, wrapping around.
func (r *Registry) Prev() string {
	return r.step(-1)
}

func (r *Registry) step(dir int) string {
	keys := r.Keys()
	if len(keys) == 0 {
		return ""
	}
	idx := -1
	for i, k := range keys {
		if k == r.active {
			idx = i
			break
		}
	}
	var next int
	switch {
	case idx < 0 && dir < 0:
		next = len(keys) - 1
	case idx < 0:
		next = 0
	default:
		next = (idx + dir + len(keys)) % len(keys)
	}
	// keys come from the registry, so Select cannot fail here
	_ = r.Select(keys[next])
	return r.active
}
