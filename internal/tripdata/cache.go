package tripdata

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bikeshare-cli/internal/model"
)

// WriteMergedTrips writes the cleaned, merged trips to path.
func WriteMergedTrips(path string, trips []model.MergedTrip) error {
	return writeCSV(path, trips)
}

// ReadMergedTrips reads trips written by WriteMergedTrips.
func ReadMergedTrips(path string) ([]model.MergedTrip, error) {
	return readCSV[model.MergedTrip](path)
}

// WriteStations writes the cleaned stations to path.
func WriteStations(path string, stations []model.Station) error {
	return writeCSV(path, stations)
}

// ReadStations reads stations written by WriteStations.
func ReadStations(path string) ([]model.Station, error) {
	stations, err := readCSV[model.Station](path)
	if err != nil {
		return nil, err
	}
	if _, err := IndexStations(stations); err != nil {
		return nil, err
	}
	return stations, nil
}

func writeCSV[T any](path string, rows []T) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "tripdata: create dir %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "tripdata: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	if len(rows) == 0 {
		var zero T
		if err := enc.EncodeHeader(zero); err != nil {
			return eris.Wrapf(err, "tripdata: encode header %s", path)
		}
	} else if err := enc.Encode(rows); err != nil {
		return eris.Wrapf(err, "tripdata: encode %s", path)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "tripdata: flush %s", path)
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "tripdata: close %s", path)
	}

	zap.L().Info("wrote csv", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

func readCSV[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tripdata: read %s", path)
	}

	var rows []T
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return nil, eris.Wrapf(err, "tripdata: decode %s", path)
	}
	return rows, nil
}
