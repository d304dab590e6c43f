// Package pipeline runs the bike-share analysis tasks end to end: it reads
// the configured inputs, calls the cleaning, geometry, statistics and
// clustering packages, and writes charts and reports.
package pipeline

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/config"
	"github.com/sells-group/bikeshare-cli/internal/geo"
	"github.com/sells-group/bikeshare-cli/internal/model"
	"github.com/sells-group/bikeshare-cli/internal/tripdata"
)

// Pipeline holds the configuration shared by every task.
type Pipeline struct {
	cfg *config.Config
	out io.Writer
}

// New creates a Pipeline that prints results to out.
func New(cfg *config.Config, out io.Writer) *Pipeline {
	if out == nil {
		out = os.Stdout
	}
	return &Pipeline{cfg: cfg, out: out}
}

func (p *Pipeline) window() (tripdata.Window, error) {
	return tripdata.NewWindow(p.cfg.Window.Start, p.cfg.Window.End, p.cfg.Window.Layout)
}

func (p *Pipeline) projector() (*geo.Projector, error) {
	return geo.NewProjector(p.cfg.Geo.SourceEPSG, p.cfg.Geo.ProjectEPSG, p.cfg.Geo.CacheSize)
}

// cleanTrips reads and cleans the raw trip log.
func (p *Pipeline) cleanTrips() ([]model.Trip, tripdata.CleanStats, error) {
	w, err := p.window()
	if err != nil {
		return nil, tripdata.CleanStats{}, err
	}
	df, err := tripdata.ReadRawTrips(p.cfg.Data.BikePath, p.cfg.Data.Encoding)
	if err != nil {
		return nil, tripdata.CleanStats{}, err
	}
	return tripdata.CleanRawTrips(df, w)
}

// rawStations reads and cleans the raw station list.
func (p *Pipeline) rawStations() ([]model.Station, error) {
	df, err := tripdata.ReadRawStations(p.cfg.Data.StationPath, p.cfg.Data.Encoding)
	if err != nil {
		return nil, err
	}
	return tripdata.CleanStations(df)
}

// stations prefers the cleaned station cache and falls back to the raw list.
func (p *Pipeline) stations() ([]model.Station, error) {
	path := p.cfg.Data.CleanedStationPath
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return tripdata.ReadStations(path)
		}
	}
	zap.L().Debug("pipeline: station cache not found, reading raw stations", zap.String("cache", path))
	return p.rawStations()
}

// boundary loads the city boundary. An empty path yields no boundary.
func (p *Pipeline) boundary() (*geo.Boundary, error) {
	if p.cfg.Data.BoundaryPath == "" {
		return nil, nil
	}
	return geo.LoadBoundary(p.cfg.Data.BoundaryPath)
}

func checkCtx(ctx context.Context, phase string) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrapf(err, "pipeline: %s", phase)
	}
	return nil
}
