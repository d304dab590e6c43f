package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bikeshare-cli/internal/charts"
	"github.com/sells-group/bikeshare-cli/internal/config"
	"github.com/sells-group/bikeshare-cli/internal/report"
	"github.com/sells-group/bikeshare-cli/internal/stats"
	"github.com/sells-group/bikeshare-cli/internal/tripdata"
)

const rawTrips = `trip_id,start_time,end_time,bikeid,tripduration,from_station_id,from_station_name,to_station_id,to_station_name,usertype,gender,birthyear
1,2019-07-25 07:05:00,2019-07-25 07:15:00,501,600.0,77,Clinton St & Madison St,199,Wabash Ave & Grand Ave,Subscriber,Male,1989
2,2019-07-25 07:40:00,2019-07-25 08:05:00,502,"1,500.0",199,Wabash Ave & Grand Ave,35,Streeter Dr & Grand Ave,Customer,,
3,2019-07-25 08:10:00,2019-07-25 08:18:00,503,480.0,35,Streeter Dr & Grand Ave,77,Clinton St & Madison St,Subscriber,Female,1990
4,2019-07-25 17:00:00,2019-07-25 17:30:00,501,1800.0,77,Clinton St & Madison St,35,Streeter Dr & Grand Ave,Subscriber,Male,1989
5,2019-07-25 17:20:00,2019-07-25 17:32:00,504,720.0,90,Millennium Park,77,Clinton St & Madison St,Subscriber,Male,1975
6,2019-07-24 23:50:00,2019-07-25 00:10:00,505,1200.0,77,Clinton St & Madison St,199,Wabash Ave & Grand Ave,Subscriber,Male,1980
7,2019-07-25 12:00:00,2019-07-25 12:20:00,506,1200.0,91,Michigan Ave & Pearson St,90,Millennium Park,Customer,,
`

const rawStations = `data__stations__station_id,data__stations__name,data__stations__lon,data__stations__lat
77,Clinton St & Madison St,-87.640552,41.882242
199,Wabash Ave & Grand Ave,-87.626804,41.891466
35,Streeter Dr & Grand Ave,-87.612043,41.892278
90,Millennium Park,-87.624084,41.881032
91,Michigan Ave & Pearson St,-87.623981,41.897448
`

const boundaryJSON = `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},
"geometry":{"type":"Polygon","coordinates":[[[-87.70,41.85],[-87.58,41.85],[-87.58,41.92],[-87.70,41.92],[-87.70,41.85]]]}}]}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	return &config.Config{
		Data: config.DataConfig{
			BikePath:           write("chicago_data.csv", rawTrips),
			StationPath:        write("station.csv", rawStations),
			CleanedBikePath:    filepath.Join(dir, "cleaned", "trips.csv"),
			CleanedStationPath: filepath.Join(dir, "cleaned", "stations.csv"),
			BoundaryPath:       write("chicago.geojson", boundaryJSON),
			Encoding:           "utf-8",
		},
		Window: config.WindowConfig{
			Layout: "2006-01-02 15:04:05",
			Start:  "2019-07-25 00:00:00",
			End:    "2019-07-26 00:00:00",
		},
		Geo:     config.GeoConfig{SourceEPSG: 4326, ProjectEPSG: 26916},
		Cluster: config.ClusterConfig{Eps: 600, MinSamples: 3},
		Charts: config.ChartsConfig{
			OutputDir: filepath.Join(dir, "charts"),
			RushHours: []config.HourRange{{Start: 7, End: 9}, {Start: 16, End: 18}},
			KDEPoints: 50,
		},
		Report: config.ReportConfig{OutputDir: filepath.Join(dir, "reports"), Format: report.FormatTable},
	}
}

func TestClean(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &bytes.Buffer{})

	res, err := p.Clean(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, res.Trips.Input)
	assert.Equal(t, 1, res.Trips.OutsideWindow)
	assert.Equal(t, 6, res.Trips.Kept)
	assert.Equal(t, 5, res.Stations)
	assert.Equal(t, 6, res.Merged)

	merged, err := tripdata.ReadMergedTrips(cfg.Data.CleanedBikePath)
	require.NoError(t, err)
	require.Len(t, merged, 6)
	assert.Equal(t, int64(1), merged[0].TripID)
	assert.Equal(t, int64(1500), merged[1].TripDuration)

	stations, err := tripdata.ReadStations(cfg.Data.CleanedStationPath)
	require.NoError(t, err)
	assert.Len(t, stations, 5)
}

func TestClean_MissingInput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.BikePath = filepath.Join(t.TempDir(), "absent.csv")

	_, err := New(cfg, &bytes.Buffer{}).Clean(context.Background())
	assert.Error(t, err)
}

func TestClean_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig(t), &bytes.Buffer{}).Clean(ctx)
	assert.True(t, eris.Is(err, context.Canceled))
}

func TestSummary(t *testing.T) {
	var out bytes.Buffer
	p := New(testConfig(t), &out)

	res, err := p.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 6, res.ValidTrips)
	assert.Equal(t, 5, res.UsedStations)
	assert.Equal(t, 5, res.UniqueBikes)

	assert.Contains(t, out.String(), "the number of valid bicycle trips on 25 July 2019: 6")
	assert.Contains(t, out.String(), "the number of unique bikes used on 25 July 2019: 5")
}

func TestSummary_DateMismatch(t *testing.T) {
	_, err := New(testConfig(t), &bytes.Buffer{}).Summary(context.Background(), "2019-07-26")
	require.Error(t, err)
	assert.True(t, eris.Is(err, tripdata.ErrTimeWindow))
}

func TestTripStats(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer
	p := New(cfg, &out)
	_, err := p.Clean(context.Background())
	require.NoError(t, err)

	r, err := p.TripStats(context.Background(), TripStatsOptions{})
	require.NoError(t, err)
	assert.Equal(t, "task2", r.Task)

	maxDuration, ok := r.Table.Value("Max Value", stats.ColTripDuration)
	require.True(t, ok)
	assert.Equal(t, 1800.0, maxDuration)
	minDistance, _ := r.Table.Value("Min Value", stats.ColTripDistance)
	assert.Greater(t, minDistance, 0.0)

	assert.Contains(t, out.String(), "trip_duration/s")
	assert.Contains(t, out.String(), "Standard Deviation")
	assert.NoDirExists(t, cfg.Report.OutputDir)
}

func TestTripStats_YAMLReport(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &bytes.Buffer{})
	_, err := p.Clean(context.Background())
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "stats.yaml")
	_, err = p.TripStats(context.Background(), TripStatsOptions{Format: report.FormatYAML, OutPath: out})
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestTripStats_XLSXDefaultPath(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &bytes.Buffer{})
	_, err := p.Clean(context.Background())
	require.NoError(t, err)

	_, err = p.TripStats(context.Background(), TripStatsOptions{Format: report.FormatXLSX})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cfg.Report.OutputDir, "task2.xlsx"))
}

func TestTripStats_RequiresClean(t *testing.T) {
	_, err := New(testConfig(t), &bytes.Buffer{}).TripStats(context.Background(), TripStatsOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run clean first")
}

func TestVisualize(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &bytes.Buffer{})
	_, err := p.Clean(context.Background())
	require.NoError(t, err)

	paths, err := p.Visualize(context.Background())
	require.NoError(t, err)

	var names []string
	for _, path := range paths {
		assert.FileExists(t, path)
		names = append(names, filepath.Base(path))
	}
	assert.Equal(t, []string{
		"trend.html",
		"departure_spatial.html",
		"departure_boxplot.html",
		"arrival_spatial.html",
		"arrival_boxplot.html",
		"kde_distance.html",
		"kde_duration.html",
	}, names)
}

func TestClusterStations(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer
	p := New(cfg, &out)

	res, err := p.ClusterStations(context.Background())
	require.NoError(t, err)

	// The five downtown stations are too far apart for a 600 m radius.
	assert.Empty(t, res.Summary.Sizes)
	assert.Equal(t, 5, res.Summary.Noise)
	assert.FileExists(t, res.ChartPath)
	assert.Contains(t, out.String(), "STATION_COUNT")
}

func TestClusterStations_WideRadius(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cluster.Eps = 5000
	p := New(cfg, &bytes.Buffer{})

	res, err := p.ClusterStations(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Summary.Sizes, 1)
	assert.Equal(t, 5, res.Summary.Sizes[0].StationCount)
	assert.Len(t, res.Summary.Members, 5)
	assert.Zero(t, res.Summary.Noise)
}

func TestRushHours(t *testing.T) {
	cfg := testConfig(t)
	cfg.Charts.RushHours = []config.HourRange{{Start: 6, End: 10}}
	assert.Equal(t, []charts.Band{{Start: 6, End: 10}}, New(cfg, nil).rushHours())

	cfg.Charts.RushHours = nil
	assert.Equal(t, charts.DefaultRushHours, New(cfg, nil).rushHours())
}

func TestClusterStations_ParamDefaults(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cluster = config.ClusterConfig{}

	res, err := New(cfg, &bytes.Buffer{}).ClusterStations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, res.Summary.Noise)
}
