package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/charts"
	"github.com/sells-group/bikeshare-cli/internal/cluster"
	"github.com/sells-group/bikeshare-cli/internal/geo"
	"github.com/sells-group/bikeshare-cli/internal/report"
)

// ClusterResult is the outcome of station clustering.
type ClusterResult struct {
	Summary   cluster.Summary
	ChartPath string
}

// ClusterStations projects the stations, groups them with DBSCAN, draws the
// clusters over the boundary and prints per-cluster counts and membership.
func (p *Pipeline) ClusterStations(ctx context.Context) (*ClusterResult, error) {
	proj, err := p.projector()
	if err != nil {
		return nil, err
	}
	defer proj.Close()

	stations, err := p.stations()
	if err != nil {
		return nil, err
	}
	projected, err := geo.ProjectStations(stations, proj)
	if err != nil {
		return nil, err
	}
	if err := checkCtx(ctx, "cluster stations"); err != nil {
		return nil, err
	}

	params := cluster.Params{Eps: p.cfg.Cluster.Eps, MinSamples: p.cfg.Cluster.MinSamples}.WithDefaults()
	clustered, err := cluster.ClusterStations(projected, params)
	if err != nil {
		return nil, err
	}
	summary := cluster.Summarize(clustered)

	boundary, err := p.boundary()
	if err != nil {
		return nil, err
	}
	path, err := charts.Save(charts.Clusters(clustered, boundary), p.cfg.Charts.OutputDir, "clusters")
	if err != nil {
		return nil, err
	}

	if err := report.PrintClusters(p.out, summary); err != nil {
		return nil, err
	}

	zap.L().Info("station clustering complete",
		zap.String("task", "task4"),
		zap.Int("clusters", len(summary.Sizes)),
		zap.Int("noise", summary.Noise),
	)
	return &ClusterResult{Summary: summary, ChartPath: path}, nil
}
