package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteDocument writes the printable document form of a snapshot:
// title, one line per field, the result line and a generation
// timestamp. The output is plain text; a PDF renderer downstream treats
// it as an opaque body.
func WriteDocument(w io.Writer, snap Snapshot) error {
	title := snap.Title
	if title == "" {
		title = "Simulation"
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", len([]rune(title)))); err != nil {
		return err
	}
	for _, row := range snap.Rows {
		if _, err := fmt.Fprintf(w, "%s: %s\n", row.Label, row.Value); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nResult: %s\n", snap.Result); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Generated: %s\n", fmtTime(snap.GeneratedAt))
	return err
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
