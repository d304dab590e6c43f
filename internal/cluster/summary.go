package cluster

import (
	"cmp"
	"slices"

	"github.com/sells-group/bikeshare-cli/internal/model"
)

// Size is the number of stations in one cluster.
type Size struct {
	Cluster      int `json:"cluster" yaml:"cluster"`
	StationCount int `json:"station_count" yaml:"station_count"`
}

// Member assigns a station to a cluster.
type Member struct {
	StationID int64 `json:"station_id" yaml:"station_id"`
	Cluster   int   `json:"cluster" yaml:"cluster"`
}

// Summary describes a clustering result with noise excluded.
type Summary struct {
	Sizes   []Size   `json:"sizes" yaml:"sizes"`
	Members []Member `json:"members" yaml:"members"`
	Noise   int      `json:"noise" yaml:"noise"`
}

// Summarize counts stations per cluster and lists memberships ordered by
// cluster, then station id.
func Summarize(stations []model.ClusteredStation) Summary {
	var s Summary
	counts := make(map[int]int)
	for _, st := range stations {
		if st.IsNoise() {
			s.Noise++
			continue
		}
		counts[st.Cluster]++
		s.Members = append(s.Members, Member{StationID: st.ID, Cluster: st.Cluster})
	}

	for c, n := range counts {
		s.Sizes = append(s.Sizes, Size{Cluster: c, StationCount: n})
	}
	slices.SortFunc(s.Sizes, func(a, b Size) int { return cmp.Compare(a.Cluster, b.Cluster) })
	slices.SortFunc(s.Members, func(a, b Member) int {
		return cmp.Or(cmp.Compare(a.Cluster, b.Cluster), cmp.Compare(a.StationID, b.StationID))
	})
	return s
}

// Groups splits stations by label. Noise stations are returned separately.
func Groups(stations []model.ClusteredStation) (clusters map[int][]model.ClusteredStation, noise []model.ClusteredStation) {
	clusters = make(map[int][]model.ClusteredStation)
	for _, st := range stations {
		if st.IsNoise() {
			noise = append(noise, st)
			continue
		}
		clusters[st.Cluster] = append(clusters[st.Cluster], st)
	}
	return clusters, noise
}
