package game

import (
	"math"
	mathrand "math/rand"
)

// PriceProcess advances the $COOKIE price one tick at a time: a mean-reverting
// random walk in log space whose target is itself a slowly drifting anchor,
// with a repulsive push near the edges of the tradable range. Bounds are soft:
// an excursion past them is reflected and dampened, never hard-clamped.
type PriceProcess struct {
	price     float64
	logAnchor float64
	history   []float64
	rand      *mathrand.Rand
}

// NewPriceProcess starts the walk at the given price, which must be finite
// and positive. The rand source is owned by the process; pass a seeded one
// for reproducible paths.
func NewPriceProcess(start float64, rng *mathrand.Rand) *PriceProcess {
	if rng == nil {
		rng = mathrand.New(mathrand.NewSource(1))
	}
	p := &PriceProcess{
		price:     start,
		logAnchor: math.Log(start),
		rand:      rng,
	}
	p.history = append(p.history, start)
	return p
}

// Step advances the process one tick and returns the new price.
func (p *PriceProcess) Step() float64 {
	logMin := math.Log(PriceMin)
	logMax := math.Log(PriceMax)
	logRange := logMax - logMin

	logP := math.Log(p.price)
	pos := (logP - logMin) / logRange

	// The anchor trails the price and wanders on its own, hard-clamped a
	// margin inside the range so reversion never drags the price onto a wall.
	p.logAnchor = (1-Alpha)*p.logAnchor + Alpha*logP + p.gaussian()*SigmaAnchor
	margin := 0.06 * logRange
	if p.logAnchor < logMin+margin {
		p.logAnchor = logMin + margin
	}
	if p.logAnchor > logMax-margin {
		p.logAnchor = logMax - margin
	}

	wallPush := 0.0
	if pos < 0.15 {
		wallPush = 0.04 * (0.15 - pos)
	} else if pos > 0.85 {
		wallPush = -0.04 * (pos - 0.85)
	}

	logP += Kappa*(p.logAnchor-logP) + wallPush + p.gaussian()*Sigma
	if logP < logMin {
		logP = logMin + (logMin-logP)*0.33
	}
	if logP > logMax {
		logP = logMax - (logP-logMax)*0.33
	}

	p.price = math.Exp(logP)
	p.history = append(p.history, p.price)
	if len(p.history) > HistoryCap {
		p.history = p.history[len(p.history)-HistoryCap:]
	}
	return p.price
}

// Price returns the current price.
func (p *PriceProcess) Price() float64 {
	return p.price
}

// History returns the recent price samples, oldest first. The returned slice
// is a copy; the last element is always the current price.
func (p *PriceProcess) History() []float64 {
	out := make([]float64, len(p.history))
	copy(out, p.history)
	return out
}

// gaussian draws a standard-normal sample via the Box-Muller transform.
func (p *PriceProcess) gaussian() float64 {
	u1 := p.rand.Float64()
	if u1 < 1e-9 {
		u1 = 1e-9
	}
	u2 := p.rand.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
