package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/tripdata"
)

// CleanResult summarizes a cleaning run.
type CleanResult struct {
	Trips        tripdata.CleanStats
	Stations     int
	Merged       int
	TripsPath    string
	StationsPath string
}

// Clean reads the raw trip log and station list, cleans and merges them, and
// writes the cleaned CSV cache used by the later tasks.
func (p *Pipeline) Clean(ctx context.Context) (*CleanResult, error) {
	log := zap.L().With(zap.String("task", "clean"))

	trips, tripStats, err := p.cleanTrips()
	if err != nil {
		return nil, err
	}
	if err := checkCtx(ctx, "clean"); err != nil {
		return nil, err
	}

	stations, err := p.rawStations()
	if err != nil {
		return nil, err
	}

	merged, err := tripdata.MergeTripsStations(trips, stations)
	if err != nil {
		return nil, err
	}

	if err := tripdata.WriteMergedTrips(p.cfg.Data.CleanedBikePath, merged); err != nil {
		return nil, err
	}
	if err := tripdata.WriteStations(p.cfg.Data.CleanedStationPath, stations); err != nil {
		return nil, err
	}

	res := &CleanResult{
		Trips:        tripStats,
		Stations:     len(stations),
		Merged:       len(merged),
		TripsPath:    p.cfg.Data.CleanedBikePath,
		StationsPath: p.cfg.Data.CleanedStationPath,
	}
	log.Info("clean complete",
		zap.Int("trips_kept", tripStats.Kept),
		zap.Int("stations", res.Stations),
		zap.Int("merged", res.Merged),
	)
	return res, nil
}
