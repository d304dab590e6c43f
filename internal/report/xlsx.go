package report

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

const (
	statsSheet = "statistics"
	metaSheet  = "run"
)

// saveXLSX writes the table to one sheet and the run metadata to another.
func saveXLSX(path string, r Report) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet(statsSheet)
	if err != nil {
		return eris.Wrap(err, "report: add statistics sheet")
	}
	header := sheet.AddRow()
	header.AddCell().SetString("")
	for _, c := range r.Table.Columns {
		header.AddCell().SetString(c)
	}
	for i, label := range r.Table.Index {
		row := sheet.AddRow()
		row.AddCell().SetString(label)
		for _, v := range r.Table.Rows[i] {
			cell := row.AddCell()
			if math.IsNaN(v) || math.IsInf(v, 0) {
				cell.SetString(formatValue(v))
				continue
			}
			cell.SetFloat(v)
		}
	}

	meta, err := f.AddSheet(metaSheet)
	if err != nil {
		return eris.Wrap(err, "report: add run sheet")
	}
	for _, kv := range [][2]string{
		{"run_id", r.RunID.String()},
		{"task", r.Task},
		{"generated_at", r.GeneratedAt.Format("2006-01-02T15:04:05Z07:00")},
	} {
		row := meta.AddRow()
		row.AddCell().SetString(kv[0])
		row.AddCell().SetString(kv[1])
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}
