package visualizer

import (
	"math"
	"math/rand"

	"github.com/olivier-w/vizwall/internal/envelope"
)

const (
	nyanStars    = 40
	nyanSegments = 40
)

type nyanStar struct {
	x, y float64
	size float64
}

// cat sprite; '.' is transparent, every other key is a palette entry
var nyanSprite = []string{
	".TTTTTTTTT.GG...GG",
	".TPPSPPPPTGGGG.GGGG",
	".TPPPPPSPTGWKGGGWKG",
	".TPSPPPPPTGGGGKGGGG",
	".TPPPPSPPTGRRGGGRRG",
	".TTTTTTTTT.GGGGGGG.",
}

var nyanTail = [2]string{"GGG", "GG."}

// NyanCat flies a pixel cat over a band-driven rainbow through scrolling stars.
type NyanCat struct {
	rng     *rand.Rand
	frame   float64
	stars   []nyanStar
	rainbow []RGB
	palette map[byte]RGB
}

func NewNyanCat() *NyanCat {
	n := &NyanCat{
		rng: rand.New(rand.NewSource(5)),
		rainbow: []RGB{
			hex("#ff0000"), hex("#ff9900"), hex("#ffff00"),
			hex("#33ff00"), hex("#0099ff"), hex("#6633ff"),
		},
		palette: map[byte]RGB{
			'T': hex("#fccb94"),
			'P': hex("#ff3399"),
			'S': hex("#ff0000"),
			'G': hex("#999999"),
			'W': hex("#ffffff"),
			'K': hex("#000000"),
			'R': hex("#ff9999"),
		},
	}
	for range nyanStars {
		n.stars = append(n.stars, nyanStar{
			x:    n.rng.Float64(),
			y:    n.rng.Float64(),
			size: n.rng.Float64()*3 + 1,
		})
	}
	return n
}

func (n *NyanCat) Name() string { return "nyancat" }

func (n *NyanCat) Draw(s *Surface, st *envelope.DisplayState, f Frame) {
	w, h := s.Width(), s.Height()
	if w == 0 || h == 0 {
		return
	}

	bass := level(st.Mean(0, 5))
	n.frame += 0.2 + bass*0.3
	anim := int(n.frame) % 6

	n.drawStars(s, w, h, bass)

	catX := int(float64(w) * 0.4)
	catY := h / 2
	n.drawTrail(s, st, catX, catY, h)

	bounce := int(math.Round(math.Sin(n.frame) - bass*2))
	n.drawCat(s, catX, catY-len(nyanSprite)/2+bounce, anim)

	const title = "NYAN MODE"
	s.Print(w-len(title)-2, max(h/10, 0), title, RGB{R: 255, G: 255, B: 255})
}

func (n *NyanCat) drawStars(s *Surface, w, h int, bass float64) {
	speed := 0.005 + bass*0.02
	for i := range n.stars {
		star := &n.stars[i]
		star.x -= speed
		if star.x < 0 {
			star.x = 1
			star.y = n.rng.Float64()
		}
		ch := '·'
		if star.size*(1+bass) > 3 {
			ch = '✦'
		}
		s.Set(int(star.x*float64(w)), int(star.y*float64(h)), ch, RGB{R: 255, G: 255, B: 255})
	}
}

func (n *NyanCat) drawTrail(s *Surface, st *envelope.DisplayState, catX, catY, h int) {
	if catX <= 0 {
		return
	}
	segW := float64(catX) / nyanSegments
	stripes := len(n.rainbow)
	for i := range nyanSegments {
		band := i * len(st.Bands) / nyanSegments
		v := level(st.Band(band))
		wave := math.Sin(float64(i)*0.3+n.frame*0.5) * float64(h) * 0.02
		sign := 1.0
		if i%2 != 0 {
			sign = -1
		}
		audio := math.Sin(float64(i)) * v * float64(h) * 0.15 * sign
		segY := float64(catY) + wave + audio - float64(stripes)/2

		x0 := int(float64(i) * segW)
		x1 := int(float64(i+1)*segW) + 1
		for c, col := range n.rainbow {
			y := int(math.Round(segY)) + c
			for x := x0; x < x1 && x < catX; x++ {
				s.Set(x, y, '█', col)
			}
		}
	}
}

func (n *NyanCat) drawCat(s *Surface, x, y, anim int) {
	tail := nyanTail[anim%2]
	tailY := y + 2
	if anim%2 == 0 {
		tailY--
	}
	n.blit(s, x-len(tail), tailY, tail)

	for r, row := range nyanSprite {
		n.blit(s, x, y+r, row)
	}

	// legs alternate every few animation frames
	legs := "..G.G....G.G"
	if anim > 2 {
		legs = ".G.G....G.G."
	}
	n.blit(s, x, y+len(nyanSprite), legs)
}

func (n *NyanCat) blit(s *Surface, x, y int, row string) {
	for i := range len(row) {
		key := row[i]
		if key == '.' {
			continue
		}
		s.Set(x+i, y, '█', n.palette[key])
	}
}
