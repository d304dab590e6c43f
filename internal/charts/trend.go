package charts

import (
	"fmt"
	"strconv"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Band is an hour range highlighted on the trend chart.
type Band struct {
	Start int
	End   int
}

// DefaultRushHours are the morning and evening commute peaks.
var DefaultRushHours = []Band{{Start: 7, End: 9}, {Start: 16, End: 18}}

// Trend draws departures per hour of day with the rush-hour bands shaded.
func Trend(counts [24]int, rush []Band) *echarts.Line {
	hours := make([]string, len(counts))
	data := make([]opts.LineData, len(counts))
	for h, n := range counts {
		hours[h] = strconv.Itoa(h)
		data[h] = opts.LineData{Value: n}
	}

	areas := make([]opts.MarkAreaNameCoordItem, len(rush))
	for i, b := range rush {
		areas[i] = opts.MarkAreaNameCoordItem{
			Name:        fmt.Sprintf("Rush Hour (%d:00-%d:00)", b.Start, b.End),
			Coordinate0: []interface{}{strconv.Itoa(b.Start), "min"},
			Coordinate1: []interface{}{strconv.Itoa(b.End), "max"},
			ItemStyle: &opts.ItemStyle{
				Color:   palette[i%len(palette)],
				Opacity: opts.Float(0.2),
			},
		}
	}

	line := echarts.NewLine()
	line.SetGlobalOptions(
		initOpts("departure trend"),
		echarts.WithTitleOpts(opts.Title{Title: "Departures by hour"}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		echarts.WithXAxisOpts(opts.XAxis{Name: "departure_hour", Type: "category"}),
		echarts.WithYAxisOpts(opts.YAxis{Name: "departure_station_counts"}),
	)
	line.SetXAxis(hours).AddSeries("departure_station_counts", data,
		echarts.WithLineChartOpts(opts.LineChart{Symbol: "circle", SymbolSize: 8}),
		echarts.WithItemStyleOpts(opts.ItemStyle{Color: "#1f4e9c", BorderColor: "#1f4e9c"}),
		echarts.WithMarkAreaNameCoordItemOpts(areas...),
	)
	return line
}
