package tripdata

import (
	"slices"

	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/model"
)

// MergeTripsStations attaches origin and destination coordinates to every
// trip. It is an inner join: trips naming a station absent from stations are
// dropped. The result is ordered by start time; ties keep input order.
func MergeTripsStations(trips []model.Trip, stations []model.Station) ([]model.MergedTrip, error) {
	idx, err := IndexStations(stations)
	if err != nil {
		return nil, err
	}

	merged := make([]model.MergedTrip, 0, len(trips))
	dropped := 0
	for _, t := range trips {
		from, ok := idx[t.FromStationID]
		if !ok {
			dropped++
			continue
		}
		to, ok := idx[t.ToStationID]
		if !ok {
			dropped++
			continue
		}
		merged = append(merged, model.MergedTrip{
			Trip:    t,
			LonFrom: from.Lon,
			LatFrom: from.Lat,
			LonTo:   to.Lon,
			LatTo:   to.Lat,
		})
	}

	slices.SortStableFunc(merged, func(a, b model.MergedTrip) int {
		return a.StartTime.Compare(b.StartTime.Time)
	})

	zap.L().Info("merged trips with stations",
		zap.Int("trips", len(trips)),
		zap.Int("merged", len(merged)),
		zap.Int("unknown_station", dropped),
	)
	return merged, nil
}
