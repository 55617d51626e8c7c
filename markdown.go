package recfmt

import (
	"fmt"
	"io"
	"strings"
)

// markdownMinWidth keeps separator cells valid for every alignment marker.
const markdownMinWidth = 3

func renderMarkdown(w io.Writer, header []string, rows [][]string, aligns []alignment) error {
	escaped := make([][]string, len(rows))
	for i, row := range rows {
		escaped[i] = make([]string, len(row))
		for j, cell := range row {
			escaped[i][j] = escapeMarkdownCell(cell)
		}
	}
	hdr := make([]string, len(header))
	for i, h := range header {
		hdr[i] = escapeMarkdownCell(h)
	}

	widths := computeWidths(hdr, escaped)
	for i := range widths {
		widths[i] = max(widths[i], markdownMinWidth)
	}

	if err := writeMarkdownRow(w, hdr, widths, aligns); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		switch aligns[i] {
		case alignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range escaped {
		if err := writeMarkdownRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = alignCell(cells[i], width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

var markdownCellReplacer = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func escapeMarkdownCell(s string) string {
	return markdownCellReplacer.Replace(s)
}
