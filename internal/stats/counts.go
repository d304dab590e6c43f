// Package stats computes the trip counts, descriptive statistics and
// aggregations reported by the analysis commands.
package stats

import (
	"slices"

	"github.com/sells-group/bikeshare-cli/internal/model"
	"github.com/sells-group/bikeshare-cli/internal/tripdata"
)

// CountValidTrips returns the number of distinct trip ids. A non-empty date
// first checks that every trip starts and ends on that day.
func CountValidTrips[T model.TripRecord](trips []T, date string) (int, error) {
	if err := tripdata.CheckTimeWindow(trips, date); err != nil {
		return 0, err
	}
	seen := make(map[int64]struct{}, len(trips))
	for _, r := range trips {
		seen[r.Base().TripID] = struct{}{}
	}
	return len(seen), nil
}

// CountUsedStations returns the number of stations appearing as an origin or
// a destination.
func CountUsedStations[T model.TripRecord](trips []T) int {
	seen := make(map[int64]struct{})
	for _, r := range trips {
		t := r.Base()
		seen[t.FromStationID] = struct{}{}
		seen[t.ToStationID] = struct{}{}
	}
	return len(seen)
}

// CountUniqueBikes returns the number of distinct bike ids.
func CountUniqueBikes[T model.TripRecord](trips []T) int {
	seen := make(map[int64]struct{})
	for _, r := range trips {
		seen[r.Base().BikeID] = struct{}{}
	}
	return len(seen)
}

// HourlyCounts buckets trips by the hour of their start time.
func HourlyCounts[T model.TripRecord](trips []T) [24]int {
	var counts [24]int
	for _, r := range trips {
		counts[r.Base().StartTime.Hour()]++
	}
	return counts
}

// StationCount is the number of trips leaving or reaching one station.
type StationCount struct {
	StationID int64 `json:"station_id" yaml:"station_id"`
	Count     int   `json:"count" yaml:"count"`
}

// DeparturesByStation counts trips per origin station, ordered by station id.
func DeparturesByStation[T model.TripRecord](trips []T) []StationCount {
	return countBy(trips, func(t model.Trip) int64 { return t.FromStationID })
}

// ArrivalsByStation counts trips per destination station, ordered by station id.
func ArrivalsByStation[T model.TripRecord](trips []T) []StationCount {
	return countBy(trips, func(t model.Trip) int64 { return t.ToStationID })
}

func countBy[T model.TripRecord](trips []T, key func(model.Trip) int64) []StationCount {
	counts := make(map[int64]int)
	for _, r := range trips {
		counts[key(r.Base())]++
	}

	out := make([]StationCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, StationCount{StationID: id, Count: n})
	}
	slices.SortFunc(out, func(a, b StationCount) int {
		switch {
		case a.StationID < b.StationID:
			return -1
		case a.StationID > b.StationID:
			return 1
		}
		return 0
	})
	return out
}

