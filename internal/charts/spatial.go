package charts

import (
	"strconv"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sells-group/bikeshare-cli/internal/geo"
	"github.com/sells-group/bikeshare-cli/internal/model"
	"github.com/sells-group/bikeshare-cli/internal/stats"
)

// ylOrRd is a sequential yellow-orange-red ramp.
var ylOrRd = []string{"#ffffb2", "#fecc5c", "#fd8d3c", "#f03b20", "#bd0026"}

// StationValue is a station location with the count it is coloured by.
type StationValue struct {
	StationID int64
	X, Y      float64
	Count     int
}

// JoinStations attaches projected locations to per-station counts. Counts for
// stations without a location are dropped.
func JoinStations(counts []stats.StationCount, stations []model.ProjectedStation) []StationValue {
	byID := make(map[int64]model.ProjectedStation, len(stations))
	for _, s := range stations {
		byID[s.ID] = s
	}

	out := make([]StationValue, 0, len(counts))
	for _, c := range counts {
		s, ok := byID[c.StationID]
		if !ok || s.Point == nil {
			continue
		}
		out = append(out, StationValue{StationID: c.StationID, X: s.Point.X(), Y: s.Point.Y(), Count: c.Count})
	}
	return out
}

// Spatial draws per-station counts as a coloured scatter over the boundary,
// framed by the boundary's extent. Both must be in the same projected CRS.
func Spatial(title, field string, values []StationValue, boundary *geo.Boundary) *echarts.Scatter {
	data := make([]opts.ScatterData, len(values))
	maxCount := 0
	for i, v := range values {
		data[i] = opts.ScatterData{
			Name:       strconv.FormatInt(v.StationID, 10),
			Value:      []interface{}{v.X, v.Y, v.Count},
			SymbolSize: 7,
		}
		maxCount = max(maxCount, v.Count)
	}

	scatter := echarts.NewScatter()
	scatter.SetGlobalOptions(append(mapAxes("x", "y", boundary, 0),
		initOpts(title),
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		echarts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCount),
			Dimension:  "2",
			Text:       []string{field},
			InRange:    &opts.VisualMapInRange{Color: ylOrRd},
		}),
	)...)

	scatter.Overlap(boundarySeries(boundary))
	scatter.AddSeries(field, data)
	return scatter
}
