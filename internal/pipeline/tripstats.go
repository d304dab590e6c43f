package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/geo"
	"github.com/sells-group/bikeshare-cli/internal/model"
	"github.com/sells-group/bikeshare-cli/internal/report"
	"github.com/sells-group/bikeshare-cli/internal/stats"
	"github.com/sells-group/bikeshare-cli/internal/tripdata"
)

// TripStatsOptions selects how the statistics table is emitted.
type TripStatsOptions struct {
	// Format is table, yaml or xlsx. Table only prints.
	Format string
	// OutPath overrides the report file location.
	OutPath string
}

// projectedTrips reads the cleaned trip cache and projects it.
func (p *Pipeline) projectedTrips(proj *geo.Projector) ([]model.ProjectedTrip, error) {
	merged, err := tripdata.ReadMergedTrips(p.cfg.Data.CleanedBikePath)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: read cleaned trips (run clean first)")
	}
	return geo.ProjectTrips(merged, proj)
}

// TripStats projects the cleaned trips, describes trip duration and distance,
// prints the table and, for file formats, writes a report.
func (p *Pipeline) TripStats(ctx context.Context, o TripStatsOptions) (*report.Report, error) {
	proj, err := p.projector()
	if err != nil {
		return nil, err
	}
	defer proj.Close()

	trips, err := p.projectedTrips(proj)
	if err != nil {
		return nil, err
	}
	if err := checkCtx(ctx, "trip stats"); err != nil {
		return nil, err
	}

	table, err := stats.TripStatistics(trips)
	if err != nil {
		return nil, err
	}
	r := report.New("task2", table)
	if err := report.PrintTable(p.out, table); err != nil {
		return nil, err
	}

	format := o.Format
	if format == "" {
		format = p.cfg.Report.Format
	}
	if format != report.FormatTable {
		path := o.OutPath
		if path == "" {
			path = report.DefaultPath(p.cfg.Report.OutputDir, r.Task, format)
		}
		if err := report.Save(path, format, r); err != nil {
			return nil, err
		}
	}

	meanDuration, _ := table.Value("Mean", stats.ColTripDuration)
	meanDistance, _ := table.Value("Mean", stats.ColTripDistance)
	zap.L().Info("trip statistics complete",
		zap.String("task", "task2"),
		zap.String("run_id", r.RunID.String()),
		zap.Int("trips", len(trips)),
		zap.Float64("mean_duration_s", meanDuration),
		zap.Float64("mean_distance_m", meanDistance),
	)
	return &r, nil
}
