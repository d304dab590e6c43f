package charts

import (
	"fmt"
	"slices"
	"strconv"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sells-group/bikeshare-cli/internal/cluster"
	"github.com/sells-group/bikeshare-cli/internal/geo"
	"github.com/sells-group/bikeshare-cli/internal/model"
)

// clusterPadLat widens the cluster map past the boundary, in degrees.
const clusterPadLat = 0.1

// Clusters draws stations coloured by cluster over the boundary, using the
// stations' lon/lat. Each cluster gets its own hue; noise stations are grey.
func Clusters(stations []model.ClusteredStation, boundary *geo.Boundary) *echarts.Scatter {
	const title = "Station clusters"

	scatter := echarts.NewScatter()
	scatter.SetGlobalOptions(append(mapAxes("lon", "lat", boundary, clusterPadLat),
		initOpts(title),
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Left: "right"}),
	)...)
	scatter.Overlap(boundarySeries(boundary))

	groups, noise := cluster.Groups(stations)
	labels := make([]int, 0, len(groups))
	for l := range groups {
		labels = append(labels, l)
	}
	slices.Sort(labels)

	for _, l := range labels {
		scatter.AddSeries(fmt.Sprintf("Cluster %d", l), stationPoints(groups[l]),
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: clusterColor(l)}),
		)
	}
	if len(noise) > 0 {
		scatter.AddSeries("Noisy Points", stationPoints(noise),
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: noiseColor, Opacity: opts.Float(0.6)}),
		)
	}
	return scatter
}

func stationPoints(stations []model.ClusteredStation) []opts.ScatterData {
	out := make([]opts.ScatterData, len(stations))
	for i, s := range stations {
		out[i] = opts.ScatterData{
			Name:       strconv.FormatInt(s.ID, 10),
			Value:      []interface{}{s.Lon, s.Lat},
			SymbolSize: 6,
		}
	}
	return out
}
