package recfmt

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Style selects how Render lays out records.
type Style string

const (
	StyleTable    Style = "table"    // ╭─╮ rounded borders
	StyleASCII    Style = "ascii"    // +-+ borders
	StylePlain    Style = "plain"    // space-separated, dashed rule under the header
	StyleMarkdown Style = "markdown" // GitHub-flavored table
	StyleHTML     Style = "html"     // <table> element
	StyleList     Style = "list"     // key: value lines, one block per record
)

var styles = []Style{StyleTable, StyleASCII, StylePlain, StyleMarkdown, StyleHTML, StyleList}

// Styles returns all render styles.
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// ParseStyle parses a style name.
func ParseStyle(s string) (Style, error) {
	for _, st := range styles {
		if string(st) == strings.ToLower(s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedStyle, s)
}

type alignment int

const (
	alignLeft alignment = iota
	alignRight
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[Style]borderChars{
	StyleTable: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	StyleASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
}

// Render writes rs for reading in a terminal. Columns follow the first
// record's keys, like CSV output; numeric columns are right-aligned.
// StyleList is the exception and prints every field of every record.
// An empty RecordSet renders nothing.
func Render(w io.Writer, rs RecordSet, style Style) error {
	if len(rs) == 0 {
		if !slices.Contains(styles, style) {
			return fmt.Errorf("%w: %q", ErrUnsupportedStyle, style)
		}
		return nil
	}
	if style == StyleList {
		return renderList(w, rs)
	}
	header := rs.Header()
	rows := rs.cells(header)
	aligns := columnAligns(rs[0])

	switch style {
	case StyleTable, StyleASCII:
		widths := computeWidths(header, rows)
		return renderBorderedTable(w, header, rows, widths, aligns, borderSets[style])
	case StylePlain:
		widths := computeWidths(header, rows)
		return renderPlainTable(w, header, rows, widths, aligns)
	case StyleMarkdown:
		return renderMarkdown(w, header, rows, aligns)
	case StyleHTML:
		return renderHTML(w, header, rows, aligns)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedStyle, style)
	}
}

func columnAligns(first Record) []alignment {
	aligns := make([]alignment, len(first))
	for i, f := range first {
		switch f.Value.(type) {
		case int64, float64:
			aligns[i] = alignRight
		}
	}
	return aligns
}

func computeWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// --- Plain table ---

func renderPlainTable(w io.Writer, header []string, rows [][]string, widths []int, aligns []alignment) error {
	if err := writePlainRow(w, header, widths, aligns); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintln(w, strings.Join(sep, "  ")); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writePlainRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func writePlainRow(w io.Writer, cells []string, widths []int, aligns []alignment) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = alignCell(cells[i], width, aligns[i])
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, header []string, rows [][]string, widths []int, aligns []alignment, bc borderChars) error {
	if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}
	if err := drawBorderedRow(w, header, widths, aligns, bc.vertical); err != nil {
		return err
	}
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}
	for _, row := range rows {
		if err := drawBorderedRow(w, row, widths, aligns, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, aligns []alignment, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(alignCell(cells[i], width, aligns[i]))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func alignCell(s string, width int, align alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case alignRight:
		return strings.Repeat(" ", pad) + s
	default:
		return s + strings.Repeat(" ", pad)
	}
}
