package tripdata

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadRawTrips_CSV(t *testing.T) {
	path := writeFile(t, "trips.csv", rawTripsCSV)

	df, err := ReadRawTrips(path, "utf-8")
	require.NoError(t, err)
	rows, cols := df.Dims()
	assert.Equal(t, 7, rows)
	assert.Equal(t, 12, cols)
	assert.Contains(t, df.Names(), "trip_id")
}

func TestReadRawTrips_BOM(t *testing.T) {
	path := writeFile(t, "trips.csv", "\ufeff"+rawTripsCSV)

	df, err := ReadRawTrips(path, "")
	require.NoError(t, err)
	assert.Equal(t, "trip_id", df.Names()[0])
}

func TestReadRawStations_ZIP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("Divvy_Stations/station.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte(rawStationsCSV))
	require.NoError(t, err)
	_, err = zw.Create("Divvy_Stations/README.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	df, err := ReadRawStations(path, "utf-8")
	require.NoError(t, err)
	assert.Equal(t, 3, df.Nrow())
}

func TestReadRawStations_ZIPWithTwoCSVs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range []string{"a.csv", "b.csv"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(rawStationsCSV))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = ReadRawStations(path, "utf-8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected one csv")
}

func TestReadRawStations_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(strings.Replace(rawStationsCSV, "Clinton", "Clintón", 1))
	require.NoError(t, err)
	path := writeFile(t, "stations.csv", encoded)

	df, err := ReadRawStations(path, "latin1")
	require.NoError(t, err)
	assert.Equal(t, "Clintón St & Madison St", df.Col("data__stations__name").Records()[0])
}

func TestReadRawTrips_UnknownEncoding(t *testing.T) {
	path := writeFile(t, "trips.csv", rawTripsCSV)

	_, err := ReadRawTrips(path, "klingon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encoding")
}

func TestReadRawTrips_MissingFile(t *testing.T) {
	_, err := ReadRawTrips(filepath.Join(t.TempDir(), "nope.csv"), "utf-8")
	assert.Error(t, err)
}
