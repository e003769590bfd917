package report

import (
	"bufio"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const csvLineEnd = "\r\n"

// WriteCSV renders t as a single header row followed by data rows. Booleans
// are spelled True and False.
func WriteCSV(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)

	header := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.SubHeader
		if header[i] == "" {
			header[i] = col.Header
		}
	}
	writeCSVLine(bw, header)

	for _, row := range t.Rows {
		fields := make([]string, len(row))
		for i, cell := range row {
			fields[i] = csvValue(cell)
		}
		writeCSVLine(bw, fields)
	}

	if err := bw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to write csv")
	}
	return nil
}

func writeCSVLine(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		_, _ = w.WriteString(escapeCSV(f))
	}
	_, _ = w.WriteString(csvLineEnd)
}

func csvValue(c Cell) string {
	switch c.kind {
	case cellBool:
		if c.flag {
			return "True"
		}
		return "False"
	case cellText:
		return c.text
	default:
		return ""
	}
}

// escapeCSV quotes a field only when it holds a delimiter, a quote or a line
// break. Everything else is written as is.
func escapeCSV(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
