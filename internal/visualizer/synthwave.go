package visualizer

import (
	"math"
	"math/rand"

	"github.com/olivier-w/vizwall/internal/envelope"
)

const (
	synthStars     = 100
	synthParticles = 60
	synthGridLines = 15
)

type synthStar struct {
	x, y  float64
	size  float64
	blink float64
}

type warpParticle struct {
	x, y, z float64
}

// Synthwave paints a retro sunset: twinkling stars, warp particles, a banded
// sun that swells with the bass, band-driven mountains and a scrolling grid.
type Synthwave struct {
	rng       *rand.Rand
	offset    float64
	stars     []synthStar
	particles []warpParticle

	skyTop   RGB
	skyLow   RGB
	sunTop   RGB
	sunMid   RGB
	sunLow   RGB
	ridge    RGB
	rock     RGB
	grid     RGB
	particle RGB
}

func NewSynthwave() *Synthwave {
	sw := &Synthwave{
		rng:      rand.New(rand.NewSource(7)),
		skyTop:   hex("#050010"),
		skyLow:   hex("#240046"),
		sunTop:   hex("#ffd60a"),
		sunMid:   hex("#ff9e00"),
		sunLow:   hex("#ff0054"),
		ridge:    hex("#00ffff"),
		rock:     hex("#12002a"),
		grid:     hex("#ff00ff"),
		particle: RGB{R: 200, G: 255, B: 255},
	}
	for range synthStars {
		sw.stars = append(sw.stars, synthStar{
			x:     sw.rng.Float64(),
			y:     sw.rng.Float64() * 0.65,
			size:  sw.rng.Float64() * 2,
			blink: sw.rng.Float64()*0.1 + 0.01,
		})
	}
	for range synthParticles {
		sw.particles = append(sw.particles, sw.newParticle(sw.rng.Float64()))
	}
	return sw
}

func (sw *Synthwave) newParticle(z float64) warpParticle {
	return warpParticle{
		x: (sw.rng.Float64() - 0.5) * 2,
		y: (sw.rng.Float64() - 0.5) * 2,
		z: z,
	}
}

func (sw *Synthwave) Name() string { return "synthwave" }

func (sw *Synthwave) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	w, h := s.Width(), s.Height()
	if w == 0 || h == 0 {
		return
	}

	horizon := int(float64(h) * 0.65)
	cx := float64(w) / 2
	bass := level(st.Mean(0, 4))

	sw.drawStars(s, w, h, horizon, f)
	sw.drawParticles(s, w, h, horizon, cx, bass)
	sw.drawSun(s, w, h, horizon, cx, bass)
	sw.drawMountains(s, st, w, h, horizon, cx)
	sw.drawGrid(s, w, h, horizon, cx, bass)
}

func (sw *Synthwave) drawStars(s *Surface, w, h, horizon int, f Frame) {
	for _, star := range sw.stars {
		// blink is in cycles per frame at 60 fps
		opacity := 0.3 + math.Sin(f.Seconds()*60*star.blink)*0.7
		if opacity <= 0.05 {
			continue
		}
		x := int(star.x * float64(w))
		y := int(star.y * float64(h))
		if y >= horizon {
			continue
		}
		ch := '·'
		if star.size > 1.4 {
			ch = '✦'
		}
		sky := lerpColor(sw.skyTop, sw.skyLow, float64(y)/float64(max(horizon, 1)))
		s.Set(x, y, ch, lerpColor(sky, RGB{R: 255, G: 255, B: 255}, opacity))
	}
}

func (sw *Synthwave) drawParticles(s *Surface, w, h, horizon int, cx, bass float64) {
	for i := range sw.particles {
		p := &sw.particles[i]
		p.z -= 0.005 + bass*0.02
		if p.z <= 0 {
			*p = sw.newParticle(1)
		}
		px := cx + (p.x/p.z)*float64(w)*0.5
		py := float64(h)*0.3 + (p.y/p.z)*float64(h)*0.5
		if py < 0 || int(py) >= horizon || px < 0 || px >= float64(w) {
			continue
		}
		ch := '.'
		if p.z < 0.35 {
			ch = '•'
		}
		s.Set(int(px), int(py), ch, sw.particle.scale(1-p.z))
	}
}

func (sw *Synthwave) drawSun(s *Surface, w, h, horizon int, cx, bass float64) {
	ry := float64(h)*0.20 + bass*float64(h)*0.05
	if ry < 1 {
		return
	}
	rx := ry * 2 // terminal cells are about twice as tall as wide
	cy := float64(horizon) - ry*0.4
	cutStart := cy + ry*0.15

	for y := int(cy - ry); y <= int(cy+ry); y++ {
		if y < 0 || y >= horizon {
			continue
		}
		dy := (float64(y) + 0.5 - cy) / ry
		if math.Abs(dy) > 1 {
			continue
		}
		// blinds widen toward the bottom of the sun
		if float64(y) > cutStart {
			progress := (float64(y) - cutStart) / (ry * 0.85)
			if int(progress*progress*6+float64(y))%3 == 0 {
				continue
			}
		}
		t := (dy + 1) / 2
		col := lerpColor(sw.sunTop, sw.sunMid, t*2)
		if t > 0.5 {
			col = lerpColor(sw.sunMid, sw.sunLow, (t-0.5)*2)
		}
		span := rx * math.Sqrt(1-dy*dy)
		for x := int(cx - span); x <= int(cx+span); x++ {
			if x >= 0 && x < w {
				s.Set(x, y, '█', col)
			}
		}
	}
}

func (sw *Synthwave) drawMountains(s *Surface, st *envelope.DisplayState, w, h, horizon int, cx float64) {
	const count = 40
	step := (float64(w) / 2) / count
	if step <= 0 {
		return
	}
	for x := range w {
		i := int(math.Abs(float64(x)-cx) / step)
		if i >= count {
			continue
		}
		rows := int(level(st.Band(i)) * float64(h) * 0.3)
		for r := 1; r < rows; r++ {
			s.Set(x, horizon-r, '█', sw.rock)
		}
		if rows > 0 {
			s.Set(x, horizon-rows, '▄', sw.ridge)
		}
	}
}

func (sw *Synthwave) drawGrid(s *Surface, w, h, horizon int, cx, bass float64) {
	floor := h - horizon
	if floor <= 0 {
		return
	}
	for x := -w; x < w*2; x += max(int(float64(w)*0.15), 1) {
		dist := float64(x) - cx
		s.Line(int(cx), horizon, int(cx+dist*4), h-1, '·', sw.grid.scale(0.6))
	}

	sw.offset = math.Mod(sw.offset+0.005+bass*0.01, 1)
	for i := range synthGridLines {
		depth := math.Mod(float64(i)/synthGridLines+sw.offset*0.066, 1)
		if depth < 0.01 {
			continue
		}
		y := horizon + int(float64(floor)*math.Pow(depth, 2.5))
		col := sw.grid.scale(0.3 + depth*0.7)
		for x := range w {
			s.Set(x, y, '─', col)
		}
	}
}
