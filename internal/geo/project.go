// Package geo reprojects station coordinates, builds trip geometries, and
// loads the city boundary used as a map backdrop.
package geo

import (
	"fmt"
	"math"

	"github.com/bluele/gcache"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-proj/v10"
)

// EPSG codes used by the analysis.
const (
	EPSGWGS84  = 4326
	EPSGUTM16N = 26916
)

const defaultCacheSize = 4096

// Projector transforms lon/lat coordinates between two CRSs. Forward results
// are cached because a day of trips references only a few hundred distinct
// station coordinates.
type Projector struct {
	source, target int
	pj             *proj.PJ
	cache          gcache.Cache
}

// NewProjector creates a transform from sourceEPSG to targetEPSG. Axis order
// is normalised so that geographic coordinates are always (lon, lat).
// cacheSize <= 0 selects a default.
func NewProjector(sourceEPSG, targetEPSG, cacheSize int) (*Projector, error) {
	pj, err := proj.NewCRSToCRS(epsg(sourceEPSG), epsg(targetEPSG), nil)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: create transform %s -> %s", epsg(sourceEPSG), epsg(targetEPSG))
	}
	norm, err := pj.NormalizeForVisualization()
	pj.Destroy()
	if err != nil {
		return nil, eris.Wrap(err, "geo: normalize axis order")
	}

	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	p := &Projector{source: sourceEPSG, target: targetEPSG, pj: norm}
	p.cache = gcache.New(cacheSize).
		LRU().
		LoaderFunc(func(key any) (any, error) {
			k := key.([2]float64)
			return p.forward(k[0], k[1])
		}).
		Build()
	return p, nil
}

func epsg(code int) string {
	return fmt.Sprintf("EPSG:%d", code)
}

// SourceEPSG returns the EPSG code of the input CRS.
func (p *Projector) SourceEPSG() int { return p.source }

// TargetEPSG returns the EPSG code of the output CRS.
func (p *Projector) TargetEPSG() int { return p.target }

// Forward transforms (lon, lat) in the source CRS to (x, y) in the target CRS.
func (p *Projector) Forward(lon, lat float64) (x, y float64, err error) {
	v, err := p.cache.Get([2]float64{lon, lat})
	if err != nil {
		return 0, 0, eris.Wrapf(err, "geo: project (%f, %f)", lon, lat)
	}
	xy := v.([2]float64)
	return xy[0], xy[1], nil
}

// Inverse transforms (x, y) in the target CRS back to the source CRS.
func (p *Projector) Inverse(x, y float64) (lon, lat float64, err error) {
	out, err := p.pj.Inverse(proj.NewCoord(x, y, 0, 0))
	if err != nil {
		return 0, 0, eris.Wrapf(err, "geo: inverse project (%f, %f)", x, y)
	}
	if !finite(out.X(), out.Y()) {
		return 0, 0, eris.Errorf("geo: inverse project (%f, %f): result out of range", x, y)
	}
	return out.X(), out.Y(), nil
}

// Point projects (lon, lat) and returns it as a point tagged with the target
// EPSG code.
func (p *Projector) Point(lon, lat float64) (*geom.Point, error) {
	x, y, err := p.Forward(lon, lat)
	if err != nil {
		return nil, err
	}
	return geom.NewPointFlat(geom.XY, []float64{x, y}).SetSRID(p.target), nil
}

// Close releases the PROJ transform.
func (p *Projector) Close() {
	p.cache.Purge()
	p.pj.Destroy()
}

func (p *Projector) forward(lon, lat float64) ([2]float64, error) {
	if !finite(lon, lat) {
		return [2]float64{}, eris.New("non-finite coordinate")
	}
	out, err := p.pj.Forward(proj.NewCoord(lon, lat, 0, 0))
	if err != nil {
		return [2]float64{}, err
	}
	if !finite(out.X(), out.Y()) {
		return [2]float64{}, eris.New("result out of range")
	}
	return [2]float64{out.X(), out.Y()}, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// HasCRS reports whether g is tagged with the given EPSG code.
func HasCRS(g geom.T, code int) bool {
	return g != nil && g.SRID() == code
}
