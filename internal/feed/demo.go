package feed

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/olivier-w/vizwall/internal/envelope"
)

// DemoConfig controls the synthetic feed.
type DemoConfig struct {
	// Interval between snapshots; zero uses DefaultDemoInterval.
	Interval time.Duration
	Seed     int64
	// Count stops the feed after this many snapshots; zero runs until ctx ends.
	Count int
}

// DefaultDemoInterval is close to the analyser's usual 60 Hz cadence.
const DefaultDemoInterval = 16 * time.Millisecond

// demoBPM sets the kick drum rate of the synthetic track.
const demoBPM = 124

// DemoGenerator synthesizes a plausible spectrum: a kick drum on the beat in
// the low bands, a wandering mid-range melody and hiss in the highs.
// Output is fully determined by the seed.
type DemoGenerator struct {
	rng  *rand.Rand
	tick int
	step float64
	bars []float64
}

func NewDemoGenerator(seed int64, interval time.Duration) *DemoGenerator {
	if interval <= 0 {
		interval = DefaultDemoInterval
	}
	return &DemoGenerator{
		rng:  rand.New(rand.NewSource(seed)),
		step: interval.Seconds(),
		bars: make([]float64, envelope.NumBands),
	}
}

// Next returns the next snapshot. Bars are in [0,255], volumes in [0,100].
func (g *DemoGenerator) Next() envelope.Snapshot {
	t := float64(g.tick) * g.step
	g.tick++

	beat := math.Mod(t*demoBPM/60, 1)
	kick := math.Exp(-beat * 7)
	melody := 18 + 14*math.Sin(t*0.9) + 6*math.Sin(t*2.3)

	var sumL, sumR float64
	for i := range g.bars {
		x := float64(i)
		v := 0.0
		if i < 12 {
			v += 250 * kick * math.Exp(-x/5)
		}
		v += 150 * math.Exp(-math.Pow(x-melody, 2)/18)
		v += 60 * (1 - x/envelope.NumBands) * (0.5 + 0.5*math.Sin(t*3+x*0.4))
		v += g.rng.Float64() * 25
		v = math.Min(math.Max(v, 0), envelope.MaxMagnitude)
		g.bars[i] = math.Round(v)

		if i%2 == 0 {
			sumL += v
		} else {
			sumR += v
		}
	}

	half := float64(envelope.NumBands / 2)
	snap := envelope.Snapshot{
		Bars: append([]float64(nil), g.bars...),
		VolL: math.Round(math.Min(sumL/half/envelope.MaxMagnitude*160, 100)),
		VolR: math.Round(math.Min(sumR/half/envelope.MaxMagnitude*160, 100)),
	}
	return snap
}

// Demo emits encoded snapshots from a DemoGenerator every cfg.Interval until
// ctx is done or cfg.Count snapshots were sent.
func Demo(ctx context.Context, cfg DemoConfig) <-chan Message {
	out := make(chan Message)
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultDemoInterval
	}
	gen := NewDemoGenerator(cfg.Seed, interval)

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for sent := 0; cfg.Count == 0 || sent < cfg.Count; sent++ {
			payload, err := envelope.EncodeSnapshot(gen.Next())
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"function": "Demo",
					"error":    err,
				}).Error("Encode demo snapshot")
				return
			}
			select {
			case out <- Message{Kind: KindBands, Payload: payload}:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
