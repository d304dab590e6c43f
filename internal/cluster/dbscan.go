// Package cluster groups projected stations by density with DBSCAN.
package cluster

import (
	"math"
	"slices"

	"github.com/mpraski/clusters"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/model"
)

// Default DBSCAN parameters: a 600 m radius and three neighbours.
const (
	DefaultEps        = 600.0
	DefaultMinSamples = 3
)

// Params configures DBSCAN. Eps is in the units of the station points.
// MinSamples counts the point itself.
type Params struct {
	Eps        float64
	MinSamples int
}

// DefaultParams returns the parameters used by the station analysis.
func DefaultParams() Params {
	return Params{Eps: DefaultEps, MinSamples: DefaultMinSamples}
}

// WithDefaults fills unset fields from DefaultParams.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p.Eps == 0 {
		p.Eps = d.Eps
	}
	if p.MinSamples == 0 {
		p.MinSamples = d.MinSamples
	}
	return p
}

// ClusterStations labels every station with its density cluster. A station is
// a core point when at least MinSamples stations, itself included, lie within
// Eps of it (inclusive). Border stations join the lowest-numbered cluster of a
// core point within Eps. Labels are model.NoiseCluster for noise, otherwise
// 0..k-1 in the order clusters are discovered.
func ClusterStations(stations []model.ProjectedStation, p Params) ([]model.ClusteredStation, error) {
	if p.Eps <= 0 {
		return nil, eris.Errorf("cluster: eps must be positive, got %f", p.Eps)
	}
	if p.MinSamples < 1 {
		return nil, eris.Errorf("cluster: min samples must be at least 1, got %d", p.MinSamples)
	}
	if len(stations) == 0 {
		return []model.ClusteredStation{}, nil
	}

	data := make([][]float64, len(stations))
	for i, s := range stations {
		if s.Point == nil {
			return nil, eris.Errorf("cluster: station %d has no projected point", s.ID)
		}
		data[i] = []float64{s.Point.X(), s.Point.Y()}
	}

	raw, err := dbscan(data, p)
	if err != nil {
		return nil, err
	}
	labels := normalizeLabels(raw)

	out := make([]model.ClusteredStation, len(stations))
	noise := 0
	for i, s := range stations {
		out[i] = model.ClusteredStation{ProjectedStation: s, Cluster: labels[i]}
		if labels[i] == model.NoiseCluster {
			noise++
		}
	}

	zap.L().Info("clustered stations",
		zap.Int("stations", len(out)),
		zap.Int("clusters", countClusters(labels)),
		zap.Int("noise", noise),
		zap.Float64("eps", p.Eps),
		zap.Int("min_samples", p.MinSamples),
	)
	return out, nil
}

// dbscan runs the mpraski clusterer on a single worker and corrects its
// output. The library never scans the last point of its input, compares
// distances with a strict < eps, and leaves a point marked noise even when a
// later core point reaches it. A far-away sentinel row is appended so every
// station is scanned, eps is nudged up by one ulp so the comparison becomes
// <= eps, and borderPass promotes stranded border points.
func dbscan(data [][]float64, p Params) ([]int, error) {
	c, err := clusters.DBSCAN(p.MinSamples, math.Nextafter(p.Eps, math.Inf(1)), 1, clusters.EuclideanDistance)
	if err != nil {
		return nil, eris.Wrap(err, "cluster: create dbscan")
	}
	if err := c.Learn(append(slices.Clone(data), sentinel(data, p.Eps))); err != nil {
		return nil, eris.Wrap(err, "cluster: learn")
	}

	guesses := c.Guesses()
	if len(guesses) != len(data)+1 {
		return nil, eris.Errorf("cluster: got %d labels for %d stations", len(guesses)-1, len(data))
	}
	labels := slices.Clone(guesses[:len(data)])
	borderPass(data, labels, p)
	return labels, nil
}

// sentinel returns a point more than eps away from every row of data.
func sentinel(data [][]float64, eps float64) []float64 {
	maxX, maxY := data[0][0], data[0][1]
	for _, d := range data[1:] {
		maxX = max(maxX, d[0])
		maxY = max(maxY, d[1])
	}
	return []float64{maxX + 2*eps, maxY + 2*eps}
}

// borderPass assigns each noise point within eps of a core point to the
// smallest cluster label among those cores.
func borderPass(data [][]float64, labels []int, p Params) {
	core := make([]bool, len(data))
	for i := range data {
		n := 0
		for j := range data {
			if clusters.EuclideanDistance(data[i], data[j]) <= p.Eps {
				n++
			}
		}
		core[i] = n >= p.MinSamples
	}

	for i := range data {
		if labels[i] >= 0 {
			continue
		}
		best := -1
		for j := range data {
			if !core[j] || labels[j] < 0 || clusters.EuclideanDistance(data[i], data[j]) > p.Eps {
				continue
			}
			if best < 0 || labels[j] < best {
				best = labels[j]
			}
		}
		if best >= 0 {
			labels[i] = best
		}
	}
}

// normalizeLabels maps negative labels to noise and renumbers the rest from
// zero, keeping their relative order.
func normalizeLabels(raw []int) []int {
	var ids []int
	for _, l := range raw {
		if l >= 0 && !slices.Contains(ids, l) {
			ids = append(ids, l)
		}
	}
	slices.Sort(ids)

	out := make([]int, len(raw))
	for i, l := range raw {
		if l < 0 {
			out[i] = model.NoiseCluster
			continue
		}
		out[i], _ = slices.BinarySearch(ids, l)
	}
	return out
}

func countClusters(labels []int) int {
	seen := make(map[int]struct{})
	for _, l := range labels {
		if l != model.NoiseCluster {
			seen[l] = struct{}{}
		}
	}
	return len(seen)
}
