package charts

import (
	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sells-group/bikeshare-cli/internal/stats"
)

// BoxPlot draws one box with its outliers. An empty color uses the echarts
// default.
func BoxPlot(title, xlabel, ylabel string, box stats.Box, color string) *echarts.BoxPlot {
	bp := echarts.NewBoxPlot()
	bp.SetGlobalOptions(
		initOpts(title),
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		echarts.WithXAxisOpts(opts.XAxis{Name: xlabel, Type: "category"}),
		echarts.WithYAxisOpts(opts.YAxis{Name: ylabel}),
	)

	bp.SetXAxis([]string{ylabel}).AddSeries(xlabel,
		[]opts.BoxPlotData{{Name: ylabel, Value: box.Values()}},
		echarts.WithItemStyleOpts(opts.ItemStyle{Color: color, BorderColor: "#333"}),
	)

	if len(box.Outliers) > 0 {
		points := make([]opts.ScatterData, len(box.Outliers))
		for i, v := range box.Outliers {
			points[i] = opts.ScatterData{Value: []interface{}{ylabel, v}}
		}
		outliers := echarts.NewScatter()
		outliers.AddSeries("outliers", points)
		bp.Overlap(outliers)
	}
	return bp
}
