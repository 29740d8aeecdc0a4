package visualizer

import (
	"math"
	"math/rand"

	"github.com/olivier-w/vizwall/internal/envelope"
)

const (
	holoSpokes        = 64
	holoMaxShockwaves = 3
)

type holoParticle struct {
	x, y   float64
	vx, vy float64
	life   float64
	hue    float64
}

type shockwave struct {
	r       float64
	opacity float64
}

// Holo draws a rotating ring of spectrum spokes around a pulsing core.
// Bass hits above the particle threshold emit particle bursts and shockwave
// rings, tuned by the particle settings on the display state.
type Holo struct {
	rng        *rand.Rand
	angle      float64
	hue        float64
	particles  []holoParticle
	shockwaves []shockwave
}

func NewHolo() *Holo {
	return &Holo{rng: rand.New(rand.NewSource(11)), hue: 200.0 / 360}
}

func (o *Holo) Name() string { return "holo" }

// particleThreshold maps the 0-100 slider onto a bass level in [0.3,0.95].
func particleThreshold(slider int) float64 {
	return 0.3 + clamp01(float64(slider)/100)*0.65
}

// particleCount maps the 0-100 intensity slider onto particles per burst.
func particleCount(slider int) int {
	return max(min(slider, 100), 0) / 6
}

func (o *Holo) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	w, h := s.Width(), s.Height()
	if w == 0 || h == 0 {
		return
	}
	cx, cy := float64(w)/2, float64(h)/2
	bass := level(st.Mean(0, 8))
	treble := level(st.Mean(20, 40))

	o.hue = math.Mod(o.hue+0.2/360, 1)
	o.spawn(st.Particles, bass, cx, cy)
	o.drawParticles(s)
	o.drawShockwaves(s, cx, cy, bass)

	o.angle += 0.005 + treble*0.01
	o.drawSpokes(s, st, cx, cy, float64(h), bass)
	o.drawCore(s, cx, cy, float64(h), bass)
}

func (o *Holo) spawn(cfg envelope.ParticleConfig, bass, cx, cy float64) {
	if !cfg.Enabled {
		return
	}
	threshold := particleThreshold(cfg.Threshold)
	if bass > threshold {
		for range particleCount(cfg.Intensity) {
			a := o.rng.Float64() * 2 * math.Pi
			speed := 0.3 + o.rng.Float64()*0.7
			o.particles = append(o.particles, holoParticle{
				x: cx, y: cy,
				vx:   math.Cos(a) * speed * 2,
				vy:   math.Sin(a) * speed,
				life: 1,
				hue:  o.hue + (o.rng.Float64()*40-20)/360,
			})
		}
	}
	if bass > threshold+0.1 && len(o.shockwaves) < holoMaxShockwaves {
		o.shockwaves = append(o.shockwaves, shockwave{r: 3, opacity: 1})
	}
}

// drawParticles keeps fading particles alive even when bursts are disabled.
func (o *Holo) drawParticles(s *Surface) {
	live := o.particles[:0]
	for _, p := range o.particles {
		p.x += p.vx
		p.y += p.vy
		p.life -= 0.02
		if p.life <= 0 {
			continue
		}
		ch := '·'
		if p.life > 0.6 {
			ch = '•'
		}
		s.Set(int(p.x), int(p.y), ch, rgbFromHSV(p.hue, 0.8, p.life))
		live = append(live, p)
	}
	o.particles = live
}

func (o *Holo) drawShockwaves(s *Surface, cx, cy, bass float64) {
	live := o.shockwaves[:0]
	for _, sw := range o.shockwaves {
		sw.r += 0.7 + bass*0.35
		sw.opacity -= 0.04
		if sw.opacity <= 0 {
			continue
		}
		col := RGB{R: 255, G: 255, B: 255}.scale(sw.opacity)
		steps := int(sw.r*8) + 8
		for i := range steps {
			a := 2 * math.Pi * float64(i) / float64(steps)
			s.Set(int(cx+math.Cos(a)*sw.r*2), int(cy+math.Sin(a)*sw.r), '·', col)
		}
		live = append(live, sw)
	}
	o.shockwaves = live
}

func (o *Holo) drawSpokes(s *Surface, st *envelope.DisplayState, cx, cy, h, bass float64) {
	radius := h*0.15 + bass*2
	for i := range holoSpokes {
		idx := i
		if i >= holoSpokes/2 {
			idx = holoSpokes - i
		}
		v := level(st.Band(idx))
		length := math.Max(v*h*0.25, 0.6)
		a := 2*math.Pi*float64(i)/holoSpokes + o.angle
		cos, sin := math.Cos(a), math.Sin(a)

		col := rgbFromHSV(o.hue+v*0.35, 0.9, 0.95)
		x0, y0 := int(cx+cos*radius*2), int(cy+sin*radius)
		x1, y1 := int(cx+cos*(radius+length)*2), int(cy+sin*(radius+length))
		s.Line(x0, y0, x1, y1, '•', col)
		s.Set(int(cx+cos*(radius+length+1)*2), int(cy+sin*(radius+length+1)), '·', RGB{R: 255, G: 255, B: 255})
	}
}

func (o *Holo) drawCore(s *Surface, cx, cy, h, bass float64) {
	r := h*0.08 + bass*1.5
	if r < 0.5 {
		r = 0.5
	}
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - 2*r); x <= int(cx+2*r); x++ {
			dx := (float64(x) + 0.5 - cx) / (2 * r)
			dy := (float64(y) + 0.5 - cy) / r
			d := math.Sqrt(dx*dx + dy*dy)
			if d > 1 {
				continue
			}
			col := lerpColor(RGB{R: 255, G: 255, B: 255}, rgbFromHSV(o.hue, 1, 0.85), d/0.4)
			if d > 0.4 {
				col = rgbFromHSV(o.hue, 1, 0.85).scale(1 - (d-0.4)/0.6)
			}
			s.Set(x, y, '█', col)
		}
	}

	// counter-rotating triangle
	tri := r * 0.6
	var px, py [3]int
	for j := range 3 {
		a := 2*math.Pi*float64(j)/3 - o.angle*2
		px[j] = int(cx + math.Cos(a)*tri*2)
		py[j] = int(cy + math.Sin(a)*tri)
	}
	edge := RGB{R: 255, G: 255, B: 255}.scale(0.5)
	for j := range 3 {
		k := (j + 1) % 3
		s.Line(px[j], py[j], px[k], py[k], '+', edge)
	}
}
