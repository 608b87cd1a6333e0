package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes the tabular form of a snapshot: header rows
// identifying the simulator and the generation date, a section listing
// each field, then the result.
func WriteCSV(w io.Writer, snap Snapshot) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	head := [][]string{
		{"simulator", snap.Title},
		{"generated", fmtTime(snap.GeneratedAt)},
		{},
		{"field", "value"},
	}
	for _, rec := range head {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	for _, row := range snap.Rows {
		if err := cw.Write([]string{row.Label, row.Value}); err != nil {
			return err
		}
	}
	for _, rec := range [][]string{{}, {"result", snap.Result}} {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
