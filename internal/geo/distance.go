package geo

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/model"
)

// ConvertCoordinates builds projected origin and destination points for each
// trip. Distances are left at zero; see CalcDistances.
func ConvertCoordinates(trips []model.MergedTrip, p *Projector) ([]model.ProjectedTrip, error) {
	out := make([]model.ProjectedTrip, len(trips))
	for i, t := range trips {
		from, err := p.Point(t.LonFrom, t.LatFrom)
		if err != nil {
			return nil, eris.Wrapf(err, "geo: trip %d origin", t.TripID)
		}
		to, err := p.Point(t.LonTo, t.LatTo)
		if err != nil {
			return nil, eris.Wrapf(err, "geo: trip %d destination", t.TripID)
		}
		out[i] = model.ProjectedTrip{Trip: t.Trip, From: from, To: to}
	}

	zap.L().Debug("projected trips",
		zap.Int("trips", len(out)),
		zap.Int("source_epsg", p.SourceEPSG()),
		zap.Int("target_epsg", p.TargetEPSG()),
	)
	return out, nil
}

// CalcDistances sets Distance to the planar Euclidean distance between origin
// and destination. Every point must be tagged with the projected CRS epsg;
// geographic coordinates are rejected.
func CalcDistances(trips []model.ProjectedTrip, epsg int) error {
	if epsg == EPSGWGS84 {
		return eris.Errorf("geo: distances need a projected CRS, got EPSG:%d", epsg)
	}
	for i := range trips {
		t := &trips[i]
		if t.From == nil || t.To == nil {
			return eris.Errorf("geo: trip %d has no projected points", t.TripID)
		}
		if !HasCRS(t.From, epsg) || !HasCRS(t.To, epsg) {
			return eris.Errorf("geo: trip %d points are not in EPSG:%d", t.TripID, epsg)
		}
		t.Distance = xy.Distance(t.From.Coords(), t.To.Coords())
	}
	return nil
}

// ProjectTrips is ConvertCoordinates followed by CalcDistances.
func ProjectTrips(trips []model.MergedTrip, p *Projector) ([]model.ProjectedTrip, error) {
	out, err := ConvertCoordinates(trips, p)
	if err != nil {
		return nil, err
	}
	if err := CalcDistances(out, p.TargetEPSG()); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectStations attaches a projected point to every station.
func ProjectStations(stations []model.Station, p *Projector) ([]model.ProjectedStation, error) {
	out := make([]model.ProjectedStation, len(stations))
	for i, s := range stations {
		pt, err := p.Point(s.Lon, s.Lat)
		if err != nil {
			return nil, eris.Wrapf(err, "geo: station %d", s.ID)
		}
		out[i] = model.ProjectedStation{Station: s, Point: pt}
	}
	return out, nil
}
