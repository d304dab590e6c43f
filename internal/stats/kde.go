package stats

import (
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// kdeCut is how many bandwidths the evaluation grid extends past the data.
const kdeCut = 3

// Density is a kernel density estimate sampled on an even grid.
type Density struct {
	X         []float64
	Y         []float64
	Bandwidth float64
}

// KDE estimates the probability density of values with a Gaussian kernel and
// Scott's rule bandwidth, sampled at points grid positions.
func KDE(values []float64, points int) (Density, error) {
	if len(values) < 2 {
		return Density{}, eris.Errorf("stats: kde needs at least 2 values, got %d", len(values))
	}
	if points < 2 {
		return Density{}, eris.Errorf("stats: kde needs at least 2 grid points, got %d", points)
	}

	std := stat.StdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		return Density{}, eris.New("stats: kde of constant values")
	}
	bw := std * math.Pow(float64(len(values)), -0.2)

	lo := floats.Min(values) - kdeCut*bw
	hi := floats.Max(values) + kdeCut*bw
	d := Density{
		X:         floats.Span(make([]float64, points), lo, hi),
		Y:         make([]float64, points),
		Bandwidth: bw,
	}

	n := float64(len(values))
	for i, x := range d.X {
		var sum float64
		for _, v := range values {
			sum += distuv.UnitNormal.Prob((x - v) / bw)
		}
		d.Y[i] = sum / (n * bw)
	}
	return d, nil
}
