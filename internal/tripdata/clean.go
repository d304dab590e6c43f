package tripdata

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/model"
)

// DroppedTripColumns are removed from the raw trip log before any row is
// checked for missing values.
var DroppedTripColumns = []string{
	"usertype", "gender", "birthyear", "from_station_name", "to_station_name",
}

// Trip log column names kept after cleaning.
const (
	ColTripID        = "trip_id"
	ColStartTime     = "start_time"
	ColEndTime       = "end_time"
	ColBikeID        = "bikeid"
	ColTripDuration  = "tripduration"
	ColFromStationID = "from_station_id"
	ColToStationID   = "to_station_id"
)

var tripColumns = []string{
	ColTripID, ColStartTime, ColEndTime, ColBikeID, ColTripDuration, ColFromStationID, ColToStationID,
}

// Window is the half-open time range [Start, End) a trip must fall in.
type Window struct {
	Start  time.Time
	End    time.Time
	Layout string
}

// NewWindow parses start and end with layout.
func NewWindow(start, end, layout string) (Window, error) {
	if layout == "" {
		layout = model.TimeLayout
	}
	s, err := time.Parse(layout, start)
	if err != nil {
		return Window{}, eris.Wrapf(err, "tripdata: parse window start %q", start)
	}
	e, err := time.Parse(layout, end)
	if err != nil {
		return Window{}, eris.Wrapf(err, "tripdata: parse window end %q", end)
	}
	if !s.Before(e) {
		return Window{}, eris.Errorf("tripdata: window start %s is not before end %s", start, end)
	}
	return Window{Start: s, End: e, Layout: layout}, nil
}

// Contains reports whether a trip starting at start and ending at end lies
// inside the window.
func (w Window) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && end.Before(w.End)
}

// CleanStats counts the rows removed by each cleaning step.
type CleanStats struct {
	Input            int
	Missing          int
	Negative         int
	OutsideWindow    int
	DurationMismatch int
	Kept             int
}

// CleanRawTrips drops the unused columns, drops rows with any missing value,
// coerces identifiers, durations, and timestamps, and keeps the trips inside
// the window. Input order is preserved.
func CleanRawTrips(df dataframe.DataFrame, w Window) ([]model.Trip, CleanStats, error) {
	if err := requireColumns(df, DroppedTripColumns...); err != nil {
		return nil, CleanStats{}, err
	}
	df = df.Drop(DroppedTripColumns)
	if df.Err != nil {
		return nil, CleanStats{}, eris.Wrap(df.Err, "tripdata: drop columns")
	}
	if err := requireColumns(df, tripColumns...); err != nil {
		return nil, CleanStats{}, err
	}

	layout := w.Layout
	if layout == "" {
		layout = model.TimeLayout
	}

	records, missing := columnRecords(df)
	stats := CleanStats{Input: df.Nrow()}

	trips := make([]model.Trip, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		if missing[i] {
			stats.Missing++
			continue
		}
		trip, err := parseTrip(records, i, layout)
		if err != nil {
			return nil, stats, err
		}
		trips = append(trips, trip)
	}

	kept, filterStats := FilterTrips(trips, w)
	stats.Negative = filterStats.Negative
	stats.OutsideWindow = filterStats.OutsideWindow
	stats.DurationMismatch = filterStats.DurationMismatch
	stats.Kept = filterStats.Kept

	zap.L().Info("cleaned trips",
		zap.Int("input", stats.Input),
		zap.Int("missing", stats.Missing),
		zap.Int("negative", stats.Negative),
		zap.Int("outside_window", stats.OutsideWindow),
		zap.Int("duration_mismatch", stats.DurationMismatch),
		zap.Int("kept", stats.Kept),
	)
	return kept, stats, nil
}

// FilterTrips applies the typed cleaning rules: identifiers must be
// non-negative, the trip must not end before it starts, and it must lie in
// the window. Duration is reset to end minus start. Applying it to its own
// output returns the same trips.
func FilterTrips(trips []model.Trip, w Window) ([]model.Trip, CleanStats) {
	stats := CleanStats{Input: len(trips)}
	kept := make([]model.Trip, 0, len(trips))
	for _, t := range trips {
		if t.TripID < 0 || t.BikeID < 0 || t.FromStationID < 0 || t.ToStationID < 0 || t.EndTime.Before(t.StartTime.Time) {
			stats.Negative++
			continue
		}
		if !w.Contains(t.StartTime.Time, t.EndTime.Time) {
			stats.OutsideWindow++
			continue
		}
		elapsed := t.Elapsed()
		if d := t.TripDuration - elapsed; d > 1 || d < -1 {
			stats.DurationMismatch++
		}
		t.TripDuration = elapsed
		kept = append(kept, t)
	}
	stats.Kept = len(kept)
	return kept, stats
}

// Station list column names.
const (
	ColRawStationLon = "data__stations__lon"
	ColRawStationLat = "data__stations__lat"
	ColRawStationID  = "data__stations__station_id"
	ColStationID     = "station_id"
	ColLon           = "lon"
	ColLat           = "lat"
)

// CleanStations selects and renames the three station columns. Rows with a
// missing value are skipped; a repeated station id is an error.
func CleanStations(df dataframe.DataFrame) ([]model.Station, error) {
	if err := requireColumns(df, ColRawStationLon, ColRawStationLat, ColRawStationID); err != nil {
		return nil, err
	}
	df = df.Select([]string{ColRawStationLon, ColRawStationLat, ColRawStationID}).
		Rename(ColLon, ColRawStationLon).
		Rename(ColLat, ColRawStationLat).
		Rename(ColStationID, ColRawStationID)
	if df.Err != nil {
		return nil, eris.Wrap(df.Err, "tripdata: select station columns")
	}

	records, missing := columnRecords(df)
	stations := make([]model.Station, 0, df.Nrow())
	skipped := 0
	for i := 0; i < df.Nrow(); i++ {
		if missing[i] {
			skipped++
			continue
		}
		id, err := parseInt(records, ColStationID, i)
		if err != nil {
			return nil, err
		}
		lon, err := parseFloat(records, ColLon, i)
		if err != nil {
			return nil, err
		}
		lat, err := parseFloat(records, ColLat, i)
		if err != nil {
			return nil, err
		}
		stations = append(stations, model.Station{ID: id, Lon: lon, Lat: lat})
	}

	if _, err := IndexStations(stations); err != nil {
		return nil, err
	}
	if skipped > 0 {
		zap.L().Warn("skipped stations with missing values", zap.Int("skipped", skipped))
	}
	return stations, nil
}

// IndexStations keys stations by id.
func IndexStations(stations []model.Station) (map[int64]model.Station, error) {
	idx := make(map[int64]model.Station, len(stations))
	for _, s := range stations {
		if _, ok := idx[s.ID]; ok {
			return nil, eris.Errorf("tripdata: duplicate station id %d", s.ID)
		}
		idx[s.ID] = s
	}
	return idx, nil
}

func requireColumns(df dataframe.DataFrame, cols ...string) error {
	names := df.Names()
	var absent []string
	for _, c := range cols {
		if !slices.Contains(names, c) {
			absent = append(absent, c)
		}
	}
	if len(absent) > 0 {
		return eris.Errorf("tripdata: missing columns %s", strings.Join(absent, ", "))
	}
	return nil
}

// columnRecords returns the raw string values of every column and a per-row
// flag set when any column holds a missing value.
func columnRecords(df dataframe.DataFrame) (map[string][]string, []bool) {
	records := make(map[string][]string, df.Ncol())
	missing := make([]bool, df.Nrow())
	for _, name := range df.Names() {
		col := df.Col(name)
		values := col.Records()
		nan := col.IsNaN()
		for i, v := range values {
			if nan[i] || isMissing(v) {
				missing[i] = true
			}
		}
		records[name] = values
	}
	return records, missing
}

func isMissing(v string) bool {
	return slices.Contains(missingValues, strings.TrimSpace(v))
}

func parseTrip(records map[string][]string, i int, layout string) (model.Trip, error) {
	var (
		t   model.Trip
		err error
	)
	if t.TripID, err = parseInt(records, ColTripID, i); err != nil {
		return t, err
	}
	if t.BikeID, err = parseInt(records, ColBikeID, i); err != nil {
		return t, err
	}
	if t.FromStationID, err = parseInt(records, ColFromStationID, i); err != nil {
		return t, err
	}
	if t.ToStationID, err = parseInt(records, ColToStationID, i); err != nil {
		return t, err
	}
	if t.TripDuration, err = parseInt(records, ColTripDuration, i); err != nil {
		return t, err
	}
	start, err := parseTime(records, ColStartTime, i, layout)
	if err != nil {
		return t, err
	}
	end, err := parseTime(records, ColEndTime, i, layout)
	if err != nil {
		return t, err
	}
	t.StartTime = model.NewTimestamp(start)
	t.EndTime = model.NewTimestamp(end)
	return t, nil
}

// parseInt accepts integer, decimal, and thousands-separated values and
// truncates any fractional part.
func parseInt(records map[string][]string, col string, i int) (int64, error) {
	f, err := parseFloat(records, col, i)
	if err != nil {
		return 0, err
	}
	if math.Abs(f) > math.MaxInt64/2 {
		return 0, eris.Errorf("tripdata: row %d column %s: value %v out of range", i, col, f)
	}
	return int64(math.Trunc(f)), nil
}

func parseFloat(records map[string][]string, col string, i int) (float64, error) {
	raw := strings.TrimSpace(records[col][i])
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, eris.Wrapf(err, "tripdata: row %d column %s: parse %q", i, col, raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, eris.Errorf("tripdata: row %d column %s: non-finite value %q", i, col, raw)
	}
	return f, nil
}

func parseTime(records map[string][]string, col string, i int, layout string) (time.Time, error) {
	raw := strings.TrimSpace(records[col][i])
	t, err := time.Parse(layout, raw)
	if err != nil {
		return t, eris.Wrapf(err, "tripdata: row %d column %s: parse %q", i, col, raw)
	}
	return t, nil
}
