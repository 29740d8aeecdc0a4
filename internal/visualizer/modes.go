package visualizer

// DefaultStyle is the style selected when nothing else is configured.
const DefaultStyle = "neon"

// Modes returns the built-in renderer factories keyed by style.
func Modes() map[string]Factory {
	return map[string]Factory{
		"neon":      func() Renderer { return NewNeon() },
		"kitt":      func() Renderer { return NewKitt() },
		"led":       func() Renderer { return NewLED() },
		"vu":        func() Renderer { return NewVU() },
		"synthwave": func() Renderer { return NewSynthwave() },
		"holo":      func() Renderer { return NewHolo() },
		"nyancat":   func() Renderer { return NewNyanCat() },
		"matrix":    func() Renderer { return NewMatrix() },
		"waterfall": func() Renderer { return NewWaterfall() },
		"braille":   func() Renderer { return NewBraille() },
		"hatching":  func() Renderer { return NewHatching() },
		"lissajous": func() Renderer { return NewLissajous() },
		"graph":     func() Renderer { return NewGraph() },
	}
}

// NewDefaultRegistry registers every built-in style. No style is active yet.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for key, f := range Modes() {
		r.Register(key, f)
	}
	return r
}
