package model

import (
	"time"

	"github.com/twpayne/go-geom"
)

// Trip is a single cleaned bike-share trip.
type Trip struct {
	TripID        int64     `csv:"trip_id" json:"trip_id" yaml:"trip_id"`
	StartTime     Timestamp `csv:"start_time" json:"start_time" yaml:"start_time"`
	EndTime       Timestamp `csv:"end_time" json:"end_time" yaml:"end_time"`
	BikeID        int64     `csv:"bikeid" json:"bikeid" yaml:"bikeid"`
	TripDuration  int64     `csv:"tripduration" json:"tripduration" yaml:"tripduration"`
	FromStationID int64     `csv:"from_station_id" json:"from_station_id" yaml:"from_station_id"`
	ToStationID   int64     `csv:"to_station_id" json:"to_station_id" yaml:"to_station_id"`
}

// Base returns the trip itself. Types embedding Trip inherit it, which lets
// aggregations accept any of the trip shapes.
func (t Trip) Base() Trip {
	return t
}

// Elapsed returns end minus start in whole seconds.
func (t Trip) Elapsed() int64 {
	return int64(t.EndTime.Sub(t.StartTime.Time) / time.Second)
}

// TripRecord is implemented by Trip and every type embedding it.
type TripRecord interface {
	Base() Trip
}

// MergedTrip is a trip joined with the coordinates of its origin and
// destination stations.
type MergedTrip struct {
	Trip
	LonFrom float64 `csv:"lon_from" json:"lon_from"`
	LatFrom float64 `csv:"lat_from" json:"lat_from"`
	LonTo   float64 `csv:"lon_to" json:"lon_to"`
	LatTo   float64 `csv:"lat_to" json:"lat_to"`
}

// ProjectedTrip carries origin and destination as points in a projected CRS
// together with the planar distance between them in CRS units.
type ProjectedTrip struct {
	Trip
	From     *geom.Point
	To       *geom.Point
	Distance float64
}
