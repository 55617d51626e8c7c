package recfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderList writes one "key: value" line per field, with a blank line
// between records. Every field of every record is shown, including keys the
// first record lacks.
func renderList(w io.Writer, rs RecordSet) error {
	width := 0
	for _, rec := range rs {
		for _, f := range rec {
			width = max(width, runewidth.StringWidth(f.Key))
		}
	}
	for i, rec := range rs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		for _, f := range rec {
			line := runewidth.FillRight(f.Key+":", width+1) + " " + FormatValue(f.Value)
			if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}
