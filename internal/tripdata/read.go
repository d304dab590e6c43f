// Package tripdata loads, cleans, and joins the raw bike-share trip log and
// station list, and reads and writes the cleaned CSV cache.
package tripdata

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// missingValues are the raw cell values treated as absent.
var missingValues = []string{"", "NA", "NaN", "nan", "null", "NULL"}

// ReadRawTrips loads the raw trip log into a string-typed data frame.
func ReadRawTrips(path, encoding string) (dataframe.DataFrame, error) {
	return readFrame("trips", path, encoding)
}

// ReadRawStations loads the raw station list into a string-typed data frame.
func ReadRawStations(path, encoding string) (dataframe.DataFrame, error) {
	return readFrame("stations", path, encoding)
}

// ReadFrameFrom parses CSV from r. All columns are kept as strings so that
// cleaning decides how each one is coerced.
func ReadFrameFrom(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingValues),
	)
	if df.Err != nil {
		return df, eris.Wrap(df.Err, "tripdata: parse csv")
	}
	return df, nil
}

func readFrame(kind, path, encoding string) (dataframe.DataFrame, error) {
	r, closeFn, err := openSource(path, encoding)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer closeFn()

	df, err := ReadFrameFrom(r)
	if err != nil {
		return df, eris.Wrapf(err, "tripdata: read %s %s", kind, path)
	}

	rows, cols := df.Dims()
	zap.L().Info("loaded raw frame",
		zap.String("kind", kind),
		zap.String("path", path),
		zap.Int("rows", rows),
		zap.Int("columns", cols),
		zap.Strings("names", df.Names()),
	)
	return df, nil
}

// openSource opens a CSV file, or the single CSV inside a ZIP archive, and
// decodes it from the given character encoding to UTF-8.
func openSource(path, encoding string) (io.Reader, func(), error) {
	var (
		rc      io.ReadCloser
		closers []io.Closer
	)

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		zr, err := zip.OpenReader(path)
		if err != nil {
			return nil, nil, eris.Wrapf(err, "tripdata: open archive %s", path)
		}
		closers = append(closers, zr)

		entry, err := singleCSV(zr.File)
		if err != nil {
			_ = zr.Close()
			return nil, nil, eris.Wrapf(err, "tripdata: archive %s", path)
		}
		rc, err = entry.Open()
		if err != nil {
			_ = zr.Close()
			return nil, nil, eris.Wrapf(err, "tripdata: open %s in %s", entry.Name, path)
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, eris.Wrapf(err, "tripdata: open %s", path)
		}
		rc = f
	}
	closers = append([]io.Closer{rc}, closers...)

	closeFn := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	r, err := decodeReader(rc, encoding)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return r, closeFn, nil
}

func singleCSV(files []*zip.File) (*zip.File, error) {
	var found *zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".csv") {
			continue
		}
		if strings.HasPrefix(filepath.Base(f.Name), "._") {
			continue
		}
		if found != nil {
			return nil, eris.Errorf("expected one csv, found %s and %s", found.Name, f.Name)
		}
		found = f
	}
	if found == nil {
		return nil, eris.New("no csv file found")
	}
	return found, nil
}

func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, eris.Wrapf(err, "tripdata: unknown encoding %q", encoding)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
