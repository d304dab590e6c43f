package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func newTestProjector(t *testing.T) *Projector {
	t.Helper()
	p, err := NewProjector(EPSGWGS84, EPSGUTM16N, 0)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func TestProjectorForward_Chicago(t *testing.T) {
	p := newTestProjector(t)

	x, y, err := p.Forward(-87.6298, 41.8781)
	require.NoError(t, err)
	assert.Greater(t, x, 440000.0)
	assert.Less(t, x, 455000.0)
	assert.Greater(t, y, 4630000.0)
	assert.Less(t, y, 4645000.0)
}

func TestProjectorRoundTrip(t *testing.T) {
	p := newTestProjector(t)

	points := [][2]float64{
		{-87.640552, 41.882242},
		{-87.626804, 41.891466},
		{-87.612043, 41.892278},
		{-87.7, 42.05},
	}
	for _, pt := range points {
		x, y, err := p.Forward(pt[0], pt[1])
		require.NoError(t, err)
		lon, lat, err := p.Inverse(x, y)
		require.NoError(t, err)
		assert.InDelta(t, pt[0], lon, 1e-6)
		assert.InDelta(t, pt[1], lat, 1e-6)
	}
}

func TestProjectorForward_Cached(t *testing.T) {
	p := newTestProjector(t)

	x1, y1, err := p.Forward(-87.64, 41.88)
	require.NoError(t, err)
	x2, y2, err := p.Forward(-87.64, 41.88)
	require.NoError(t, err)
	assert.Equal(t, x1, x2)
	assert.Equal(t, y1, y2)
	assert.True(t, p.cache.Has([2]float64{-87.64, 41.88}))
}

func TestProjectorPoint(t *testing.T) {
	p := newTestProjector(t)

	pt, err := p.Point(-87.64, 41.88)
	require.NoError(t, err)
	assert.Equal(t, EPSGUTM16N, pt.SRID())
	assert.True(t, HasCRS(pt, EPSGUTM16N))
	assert.False(t, HasCRS(pt, EPSGWGS84))
	assert.False(t, HasCRS(nil, EPSGWGS84))
	assert.Equal(t, geom.XY, pt.Layout())
}

func TestNewProjector_UnknownCRS(t *testing.T) {
	_, err := NewProjector(EPSGWGS84, 999999, 0)
	assert.Error(t, err)
}
