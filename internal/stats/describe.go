package stats

import (
	"math"
	"slices"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sells-group/bikeshare-cli/internal/model"
)

// Row labels of a described column, in table order.
var SummaryLabels = []string{
	"Max Value",
	"Min Value",
	"Median",
	"Mean",
	"25% Percentile",
	"75% Percentile",
	"Standard Deviation",
}

// Column names of the trip statistics table.
const (
	ColTripDuration = "trip_duration/s"
	ColTripDistance = "trip_distance/m"
)

// Summary holds the descriptive statistics of one numeric column.
type Summary struct {
	Max    float64 `json:"max" yaml:"max"`
	Min    float64 `json:"min" yaml:"min"`
	Median float64 `json:"median" yaml:"median"`
	Mean   float64 `json:"mean" yaml:"mean"`
	P25    float64 `json:"p25" yaml:"p25"`
	P75    float64 `json:"p75" yaml:"p75"`
	Std    float64 `json:"std" yaml:"std"`
}

// Values returns the summary in SummaryLabels order.
func (s Summary) Values() []float64 {
	return []float64{s.Max, s.Min, s.Median, s.Mean, s.P25, s.P75, s.Std}
}

// Describe summarizes values. Std is the sample standard deviation and is NaN
// for a single value.
func Describe(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, eris.New("stats: describe empty column")
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return Summary{
		Max:    floats.Max(sorted),
		Min:    floats.Min(sorted),
		Median: quantile(sorted, 0.5),
		Mean:   stat.Mean(sorted, nil),
		P25:    quantile(sorted, 0.25),
		P75:    quantile(sorted, 0.75),
		Std:    stat.StdDev(sorted, nil),
	}, nil
}

// quantile interpolates linearly between the two closest ranks. sorted must
// be ascending and non-empty.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Table is a labelled grid of values. Rows[i][j] belongs to Index[i] and
// Columns[j].
type Table struct {
	Columns []string    `json:"columns" yaml:"columns"`
	Index   []string    `json:"index" yaml:"index"`
	Rows    [][]float64 `json:"rows" yaml:"rows"`
}

// Value returns the cell at (index, column).
func (t Table) Value(index, column string) (float64, bool) {
	i := slices.Index(t.Index, index)
	j := slices.Index(t.Columns, column)
	if i < 0 || j < 0 {
		return 0, false
	}
	return t.Rows[i][j], true
}

// SummaryTable lays out one summary per column, rounded to two decimals.
func SummaryTable(columns []string, summaries []Summary) Table {
	t := Table{
		Columns: columns,
		Index:   SummaryLabels,
		Rows:    make([][]float64, len(SummaryLabels)),
	}
	for i := range t.Rows {
		t.Rows[i] = make([]float64, len(summaries))
	}
	for j, s := range summaries {
		for i, v := range s.Values() {
			t.Rows[i][j] = round2(v)
		}
	}
	return t
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// Durations returns the duration of every trip in seconds.
func Durations[T model.TripRecord](trips []T) []float64 {
	out := make([]float64, len(trips))
	for i, r := range trips {
		out[i] = float64(r.Base().TripDuration)
	}
	return out
}

// Distances returns the planar distance of every trip.
func Distances(trips []model.ProjectedTrip) []float64 {
	out := make([]float64, len(trips))
	for i, t := range trips {
		out[i] = t.Distance
	}
	return out
}

// TripStatistics describes trip duration and trip distance side by side.
func TripStatistics(trips []model.ProjectedTrip) (Table, error) {
	duration, err := Describe(Durations(trips))
	if err != nil {
		return Table{}, eris.Wrap(err, "stats: trip duration")
	}
	distance, err := Describe(Distances(trips))
	if err != nil {
		return Table{}, eris.Wrap(err, "stats: trip distance")
	}
	return SummaryTable([]string{ColTripDuration, ColTripDistance}, []Summary{duration, distance}), nil
}
