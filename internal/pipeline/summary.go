package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/report"
	"github.com/sells-group/bikeshare-cli/internal/stats"
)

// SummaryResult holds the day's headline counts.
type SummaryResult struct {
	ValidTrips   int
	UsedStations int
	UniqueBikes  int
}

// Summary cleans the raw trip log and counts valid trips, used stations and
// unique bikes. A non-empty date also checks every trip falls on that day.
func (p *Pipeline) Summary(ctx context.Context, date string) (*SummaryResult, error) {
	trips, _, err := p.cleanTrips()
	if err != nil {
		return nil, err
	}
	if err := checkCtx(ctx, "summary"); err != nil {
		return nil, err
	}

	valid, err := stats.CountValidTrips(trips, date)
	if err != nil {
		return nil, err
	}
	res := &SummaryResult{
		ValidTrips:   valid,
		UsedStations: stats.CountUsedStations(trips),
		UniqueBikes:  stats.CountUniqueBikes(trips),
	}

	day := p.dayLabel()
	report.PrintCounts(p.out, []report.Count{
		{Label: fmt.Sprintf("the number of valid bicycle trips on %s", day), Value: res.ValidTrips},
		{Label: fmt.Sprintf("the number of bike stations used on %s", day), Value: res.UsedStations},
		{Label: fmt.Sprintf("the number of unique bikes used on %s", day), Value: res.UniqueBikes},
	})

	zap.L().Info("summary complete",
		zap.String("task", "task1"),
		zap.Int("valid_trips", res.ValidTrips),
		zap.Int("used_stations", res.UsedStations),
		zap.Int("unique_bikes", res.UniqueBikes),
	)
	return res, nil
}

// dayLabel renders the window start as e.g. "25 July 2019".
func (p *Pipeline) dayLabel() string {
	w, err := p.window()
	if err != nil {
		return p.cfg.Window.Start
	}
	return w.Start.Format("2 January 2006")
}
