package model

import "github.com/twpayne/go-geom"

// NoiseCluster labels a station that belongs to no density cluster.
const NoiseCluster = -1

// Station is a docking station in geographic coordinates (EPSG:4326).
type Station struct {
	ID  int64   `csv:"station_id" json:"station_id"`
	Lon float64 `csv:"lon" json:"lon"`
	Lat float64 `csv:"lat" json:"lat"`
}

// ProjectedStation adds the station location in a projected CRS.
type ProjectedStation struct {
	Station
	Point *geom.Point
}

// ClusteredStation is a projected station with its cluster label.
type ClusteredStation struct {
	ProjectedStation
	Cluster int
}

// IsNoise reports whether the station was not assigned to any cluster.
func (s ClusteredStation) IsNoise() bool {
	return s.Cluster == NoiseCluster
}
