package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boundaryGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Loop"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[-87.64, 41.87], [-87.62, 41.87], [-87.62, 41.89], [-87.64, 41.89], [-87.64, 41.87]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"name": "North"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[-87.70, 42.00], [-87.68, 42.00], [-87.68, 42.02], [-87.70, 42.00]]],
          [[[-87.66, 42.01], [-87.65, 42.01], [-87.65, 42.02], [-87.66, 42.01]]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"name": "Marker"},
      "geometry": {"type": "Point", "coordinates": [-87.6, 41.9]}
    }
  ]
}`

func writeBoundary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chicago.geojson")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBoundary_GeoJSON(t *testing.T) {
	b, err := LoadBoundary(writeBoundary(t, boundaryGeoJSON))
	require.NoError(t, err)

	assert.Equal(t, EPSGWGS84, b.EPSG)
	assert.Len(t, b.Polygons, 3)
	assert.Len(t, b.Rings(), 3)

	bounds := b.Bounds()
	assert.InDelta(t, -87.70, bounds.Min(0), 1e-9)
	assert.InDelta(t, 41.87, bounds.Min(1), 1e-9)
	assert.InDelta(t, -87.62, bounds.Max(0), 1e-9)
	assert.InDelta(t, 42.02, bounds.Max(1), 1e-9)
}

func TestLoadBoundary_NoPolygons(t *testing.T) {
	path := writeBoundary(t, `{"type":"FeatureCollection","features":[]}`)

	_, err := LoadBoundary(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no polygons")
}

func TestLoadBoundary_InvalidJSON(t *testing.T) {
	_, err := LoadBoundary(writeBoundary(t, `{"type":`))
	assert.Error(t, err)
}

func TestLoadBoundary_Shapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chicago.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAME", 20)}))

	pl := shp.NewPolyLine([][]shp.Point{{
		{X: -87.64, Y: 41.87}, {X: -87.62, Y: 41.87}, {X: -87.62, Y: 41.89}, {X: -87.64, Y: 41.87},
	}})
	poly := shp.Polygon(*pl)
	w.Write(&poly)
	require.NoError(t, w.WriteAttribute(0, 0, "Chicago"))
	w.Close()

	b, err := LoadBoundary(path)
	require.NoError(t, err)
	require.Len(t, b.Polygons, 1)
	assert.Equal(t, 4, b.Polygons[0].NumCoords())
}

func TestBoundaryReproject(t *testing.T) {
	p := newTestProjector(t)
	b, err := LoadBoundary(writeBoundary(t, boundaryGeoJSON))
	require.NoError(t, err)

	projected, err := b.Reproject(p)
	require.NoError(t, err)
	assert.Equal(t, EPSGUTM16N, projected.EPSG)
	require.Len(t, projected.Polygons, 3)
	assert.Equal(t, EPSGUTM16N, projected.Polygons[0].SRID())

	bounds := projected.Bounds()
	assert.Greater(t, bounds.Min(0), 400000.0)
	assert.Greater(t, bounds.Min(1), 4600000.0)

	// Source geometry is left untouched.
	assert.InDelta(t, -87.64, b.Polygons[0].FlatCoords()[0], 1e-9)

	_, err = projected.Reproject(p)
	assert.Error(t, err)
}
