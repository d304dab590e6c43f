package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/charts"
	"github.com/sells-group/bikeshare-cli/internal/geo"
	"github.com/sells-group/bikeshare-cli/internal/stats"
)

// Visualize renders the hourly trend, the departure and arrival maps and box
// plots, and the distance and duration densities. It returns the written
// file paths in render order.
func (p *Pipeline) Visualize(ctx context.Context) ([]string, error) {
	proj, err := p.projector()
	if err != nil {
		return nil, err
	}
	defer proj.Close()

	trips, err := p.projectedTrips(proj)
	if err != nil {
		return nil, err
	}
	stations, err := p.stations()
	if err != nil {
		return nil, err
	}
	projected, err := geo.ProjectStations(stations, proj)
	if err != nil {
		return nil, err
	}
	boundary, err := p.boundary()
	if err != nil {
		return nil, err
	}
	if boundary != nil {
		if boundary, err = boundary.Reproject(proj); err != nil {
			return nil, err
		}
	}
	if err := checkCtx(ctx, "visualize"); err != nil {
		return nil, err
	}

	var rendered []named
	rendered = append(rendered, named{"trend", charts.Trend(stats.HourlyCounts(trips), p.rushHours())})

	for _, side := range []struct {
		name, field, xlabel, ylabel, title, color string
		counts                                    []stats.StationCount
	}{
		{
			name: "departure", field: "departure_stations_count",
			xlabel: "station_departure_count", ylabel: "departure_station",
			title:  "Spatial distribution of the number of departure stations",
			counts: stats.DeparturesByStation(trips),
		},
		{
			name: "arrival", field: "arrival_stations_count",
			xlabel: "station_arrival_count", ylabel: "arrival_station",
			title:  "Spatial distribution of the number of arrival stations",
			counts: stats.ArrivalsByStation(trips), color: "coral",
		},
	} {
		joined := charts.JoinStations(side.counts, projected)
		rendered = append(rendered, named{side.name + "_spatial", charts.Spatial(side.title, side.field, joined, boundary)})

		box, err := stats.BoxStats(joinedCounts(joined))
		if err != nil {
			return nil, err
		}
		title := "distribution of station's " + side.name + " counts"
		rendered = append(rendered, named{side.name + "_boxplot", charts.BoxPlot(title, side.xlabel, side.ylabel, box, side.color)})
	}

	for _, topic := range []string{charts.TopicDistance, charts.TopicDuration} {
		line, err := charts.KDE(trips, topic, p.cfg.Charts.KDEPoints)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, named{"kde_" + topic, line})
	}

	paths, err := p.saveCharts(rendered)
	if err != nil {
		return nil, err
	}
	zap.L().Info("visualization complete", zap.String("task", "task3"), zap.Int("charts", len(paths)))
	return paths, nil
}

type named struct {
	name  string
	chart charts.Renderer
}

func (p *Pipeline) saveCharts(rendered []named) ([]string, error) {
	paths := make([]string, 0, len(rendered))
	for _, r := range rendered {
		path, err := charts.Save(r.chart, p.cfg.Charts.OutputDir, r.name)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// rushHours converts the configured bands, falling back to the default
// commute peaks when none are set.
func (p *Pipeline) rushHours() []charts.Band {
	if len(p.cfg.Charts.RushHours) == 0 {
		return charts.DefaultRushHours
	}
	bands := make([]charts.Band, len(p.cfg.Charts.RushHours))
	for i, r := range p.cfg.Charts.RushHours {
		bands[i] = charts.Band{Start: r.Start, End: r.End}
	}
	return bands
}

func joinedCounts(values []charts.StationValue) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v.Count)
	}
	return out
}

