package geo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// Boundary is a set of polygons outlining the study area.
type Boundary struct {
	EPSG     int
	Polygons []*geom.Polygon
}

// LoadBoundary reads a GeoJSON FeatureCollection or, for a .shp path, an
// ESRI shapefile. Coordinates are assumed to be lon/lat in EPSG:4326.
func LoadBoundary(path string) (*Boundary, error) {
	var (
		b   *Boundary
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		b, err = loadShapefile(path)
	} else {
		b, err = loadGeoJSON(path)
	}
	if err != nil {
		return nil, err
	}
	if len(b.Polygons) == 0 {
		return nil, eris.Errorf("geo: boundary %s has no polygons", path)
	}

	zap.L().Info("loaded boundary", zap.String("path", path), zap.Int("polygons", len(b.Polygons)))
	return b, nil
}

func loadGeoJSON(path string) (*Boundary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: read boundary %s", path)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "geo: decode boundary %s", path)
	}

	b := &Boundary{EPSG: EPSGWGS84}
	for _, f := range fc.Features {
		b.add(f.Geometry)
	}
	return b, nil
}

func loadShapefile(path string) (*Boundary, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	b := &Boundary{EPSG: EPSGWGS84}
	skipped := 0
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok || poly == nil {
			skipped++
			continue
		}
		b.add(shapePolygon(poly))
	}

	if skipped > 0 {
		zap.L().Debug("geo: skipped non-polygon shapefile records", zap.Int("skipped", skipped))
	}
	return b, nil
}

// shapePolygon converts each ring of a shapefile polygon to its own polygon.
func shapePolygon(p *shp.Polygon) *geom.MultiPolygon {
	mp := geom.NewMultiPolygon(geom.XY).SetSRID(EPSGWGS84)
	if p.NumParts == 0 || len(p.Points) == 0 {
		return mp
	}

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		flat := make([]float64, 0, 2*(end-start))
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			zap.L().Debug("geo: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("geo: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
		}
	}
	return mp
}

func (b *Boundary) add(g geom.T) {
	switch g := g.(type) {
	case *geom.Polygon:
		b.Polygons = append(b.Polygons, g)
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			b.Polygons = append(b.Polygons, g.Polygon(i))
		}
	case *geom.GeometryCollection:
		for _, sub := range g.Geoms() {
			b.add(sub)
		}
	}
}

// Reproject returns a copy of the boundary in p's target CRS.
func (b *Boundary) Reproject(p *Projector) (*Boundary, error) {
	if b.EPSG != p.SourceEPSG() {
		return nil, eris.Errorf("geo: boundary is EPSG:%d, projector expects EPSG:%d", b.EPSG, p.SourceEPSG())
	}

	out := &Boundary{EPSG: p.TargetEPSG(), Polygons: make([]*geom.Polygon, 0, len(b.Polygons))}
	for _, poly := range b.Polygons {
		stride := poly.Stride()
		flat := slices.Clone(poly.FlatCoords())
		for i := 0; i+1 < len(flat); i += stride {
			x, y, err := p.Forward(flat[i], flat[i+1])
			if err != nil {
				return nil, err
			}
			flat[i], flat[i+1] = x, y
		}
		np := geom.NewPolygonFlat(poly.Layout(), flat, slices.Clone(poly.Ends())).SetSRID(out.EPSG)
		out.Polygons = append(out.Polygons, np)
	}
	return out, nil
}

// Bounds returns the bounding box of every polygon.
func (b *Boundary) Bounds() *geom.Bounds {
	bounds := geom.NewBounds(geom.XY)
	for _, poly := range b.Polygons {
		bounds.Extend(poly)
	}
	return bounds
}

// Rings returns the exterior and interior rings of every polygon as
// coordinate lists, for drawing.
func (b *Boundary) Rings() [][]geom.Coord {
	var rings [][]geom.Coord
	for _, poly := range b.Polygons {
		for i := 0; i < poly.NumLinearRings(); i++ {
			rings = append(rings, poly.LinearRing(i).Coords())
		}
	}
	return rings
}
