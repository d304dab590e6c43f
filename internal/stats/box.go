package stats

import (
	"slices"

	"github.com/rotisserie/eris"
)

// whiskerIQR is the whisker reach in multiples of the interquartile range.
const whiskerIQR = 1.5

// Box is the five-number summary drawn by a box plot. Whiskers end at the
// most extreme values within 1.5 IQR of the box; anything beyond is an
// outlier.
type Box struct {
	LowerWhisker float64   `json:"lower_whisker" yaml:"lower_whisker"`
	Q1           float64   `json:"q1" yaml:"q1"`
	Median       float64   `json:"median" yaml:"median"`
	Q3           float64   `json:"q3" yaml:"q3"`
	UpperWhisker float64   `json:"upper_whisker" yaml:"upper_whisker"`
	Outliers     []float64 `json:"outliers,omitempty" yaml:"outliers,omitempty"`
}

// BoxStats computes the box plot summary of values.
func BoxStats(values []float64) (Box, error) {
	if len(values) == 0 {
		return Box{}, eris.New("stats: box plot of empty column")
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	b := Box{
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
	}
	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-whiskerIQR*iqr, b.Q3+whiskerIQR*iqr

	b.LowerWhisker, b.UpperWhisker = b.Q1, b.Q3
	for _, v := range sorted {
		if v >= lo {
			b.LowerWhisker = min(b.LowerWhisker, v)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hi {
			b.UpperWhisker = max(b.UpperWhisker, sorted[i])
			break
		}
	}
	for _, v := range sorted {
		if v < lo || v > hi {
			b.Outliers = append(b.Outliers, v)
		}
	}
	return b, nil
}

// Values returns the five box values in drawing order.
func (b Box) Values() []float64 {
	return []float64{b.LowerWhisker, b.Q1, b.Median, b.Q3, b.UpperWhisker}
}
