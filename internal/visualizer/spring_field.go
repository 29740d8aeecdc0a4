package visualizer

import "github.com/charmbracelet/harmonica"

// springFPS matches the scheduler's default frame rate.
const springFPS = 60

type springField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newSpringField(frequency, damping float64) springField {
	return springField{spring: harmonica.NewSpring(harmonica.FPS(springFPS), frequency, damping)}
}

// resize keeps the overlapping positions so a resize does not snap every
// column back to rest.
func (s *springField) resize(n int) {
	if len(s.pos) == n {
		return
	}
	pos := make([]float64, n)
	vel := make([]float64, n)
	copy(pos, s.pos)
	copy(vel, s.vel)
	s.pos, s.vel = pos, vel
}

func (s *springField) step(i int, target float64) float64 {
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	s.pos[i] = p
	s.vel[i] = v
	return p
}
