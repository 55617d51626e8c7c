package recfmt

import (
	"fmt"
	"html"
	"io"
)

func renderHTML(w io.Writer, header []string, rows [][]string, aligns []alignment) error {
	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <thead>\n    <tr>"); err != nil {
		return err
	}
	for i, col := range header {
		if _, err := fmt.Fprintf(w, "      <th%s>%s</th>\n", alignStyle(aligns[i]), html.EscapeString(col)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "    </tr>\n  </thead>"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for i, cell := range row {
			if _, err := fmt.Fprintf(w, "      <td%s>%s</td>\n", alignStyle(aligns[i]), html.EscapeString(cell)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func alignStyle(a alignment) string {
	if a == alignRight {
		return ` style="text-align: right"`
	}
	return ""
}
