package charts

import (
	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rotisserie/eris"

	"github.com/sells-group/bikeshare-cli/internal/model"
	"github.com/sells-group/bikeshare-cli/internal/stats"
)

// KDE topics.
const (
	TopicDistance = "distance"
	TopicDuration = "duration"
)

// KDE draws the probability density of trip distance or trip duration.
func KDE(trips []model.ProjectedTrip, topic string, points int) (*echarts.Line, error) {
	var (
		values []float64
		xlabel string
	)
	switch topic {
	case TopicDistance:
		values, xlabel = stats.Distances(trips), "trip_distance"
	case TopicDuration:
		values, xlabel = stats.Durations(trips), "trip_duration"
	default:
		return nil, eris.Errorf("charts: topic %q not found", topic)
	}

	d, err := stats.KDE(values, points)
	if err != nil {
		return nil, eris.Wrapf(err, "charts: %s density", topic)
	}

	data := make([]opts.LineData, len(d.X))
	for i := range d.X {
		data[i] = opts.LineData{Value: []interface{}{d.X[i], d.Y[i]}}
	}

	title := xlabel + " probability density"
	line := echarts.NewLine()
	line.SetGlobalOptions(
		initOpts(title),
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		echarts.WithXAxisOpts(opts.XAxis{Name: xlabel, Type: "value", Min: 0}),
		echarts.WithYAxisOpts(opts.YAxis{Name: "probability density", Type: "value"}),
	)
	line.AddSeries(xlabel, data,
		echarts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
		echarts.WithLineStyleOpts(opts.LineStyle{Color: "blue"}),
		echarts.WithAreaStyleOpts(opts.AreaStyle{Color: "blue", Opacity: opts.Float(0.25)}),
	)
	return line, nil
}
