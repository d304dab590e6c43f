// Package report formats analysis results for the terminal and writes them
// to YAML or XLSX files.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/bikeshare-cli/internal/cluster"
	"github.com/sells-group/bikeshare-cli/internal/stats"
)

// Output formats.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatXLSX  = "xlsx"
)

// Report is a statistics table with the metadata of the run that produced it.
type Report struct {
	RunID       uuid.UUID   `yaml:"run_id"`
	Task        string      `yaml:"task"`
	GeneratedAt time.Time   `yaml:"generated_at"`
	Table       stats.Table `yaml:"table"`
}

// New creates a report stamped with a fresh run id.
func New(task string, table stats.Table) Report {
	return Report{
		RunID:       uuid.New(),
		Task:        task,
		GeneratedAt: time.Now().UTC(),
		Table:       table,
	}
}

// Count is a labelled total printed by the counting task.
type Count struct {
	Label string
	Value int
}

var printer = message.NewPrinter(language.English)

// PrintCounts writes one line per count with digits grouped.
func PrintCounts(w io.Writer, counts []Count) {
	for _, c := range counts {
		_, _ = printer.Fprintf(w, "%s: %d\n", c.Label, c.Value)
	}
}

// PrintTable writes t as aligned columns with values to two decimals.
func PrintTable(w io.Writer, t stats.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprint(tw, "\t")
	for _, c := range t.Columns {
		_, _ = fmt.Fprintf(tw, "%s\t", c)
	}
	_, _ = fmt.Fprintln(tw)

	for i, label := range t.Index {
		_, _ = fmt.Fprintf(tw, "%s\t", label)
		for _, v := range t.Rows[i] {
			_, _ = fmt.Fprintf(tw, "%s\t", formatValue(v))
		}
		_, _ = fmt.Fprintln(tw)
	}
	return eris.Wrap(tw.Flush(), "report: flush table")
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// PrintClusters writes station counts per cluster followed by the station
// membership list.
func PrintClusters(w io.Writer, s cluster.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CLUSTER\tSTATION_COUNT")
	for _, sz := range s.Sizes {
		_, _ = fmt.Fprintf(tw, "%d\t%d\n", sz.Cluster, sz.StationCount)
	}
	_, _ = fmt.Fprintln(tw)
	_, _ = fmt.Fprintln(tw, "STATION_ID\tCLUSTER")
	for _, m := range s.Members {
		_, _ = fmt.Fprintf(tw, "%d\t%d\n", m.StationID, m.Cluster)
	}
	return eris.Wrap(tw.Flush(), "report: flush clusters")
}

// WriteYAML encodes r as YAML.
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return eris.Wrap(err, "report: encode yaml")
	}
	return eris.Wrap(enc.Close(), "report: close yaml encoder")
}

// Save writes r to path in the given file format (yaml or xlsx).
func Save(path, format string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "report: create dir for %s", path)
	}

	var err error
	switch format {
	case FormatYAML:
		err = saveYAML(path, r)
	case FormatXLSX:
		err = saveXLSX(path, r)
	default:
		return eris.Errorf("report: unsupported file format %q", format)
	}
	if err != nil {
		return err
	}

	zap.L().Info("report written",
		zap.String("path", path),
		zap.String("format", format),
		zap.String("run_id", r.RunID.String()),
	)
	return nil
}

func saveYAML(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "report: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := WriteYAML(f, r); err != nil {
		return err
	}
	return eris.Wrapf(f.Close(), "report: close %s", path)
}

// DefaultPath returns dir/<task>.<ext> for a file format.
func DefaultPath(dir, task, format string) string {
	return filepath.Join(dir, task+"."+format)
}
