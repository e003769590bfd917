package report

import (
	"archive/zip"
	"bufio"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// SheetName is the only sheet of a spreadsheet report
const SheetName = "Supplier evidence"

const odsManifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
 <manifest:file-entry manifest:full-path="/" manifest:version="1.2" manifest:media-type="application/vnd.oasis.opendocument.spreadsheet"/>
 <manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
 <manifest:file-entry manifest:full-path="styles.xml" manifest:media-type="text/xml"/>
</manifest:manifest>
`

const odsStyles = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" office:version="1.2"/>
`

const odsContentHead = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" office:version="1.2">
<office:body><office:spreadsheet>`

const odsContentTail = `</office:spreadsheet></office:body></office:document-content>
`

// WriteODS renders t as an OpenDocument spreadsheet. The first column is a
// leading region holding the title; questions start in the second column.
// Booleans are spelled true and false.
func WriteODS(w io.Writer, t *Table) error {
	zw := zip.NewWriter(w)

	// mimetype must be the first entry and stored uncompressed
	mt, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return goerr.Wrap(err, "failed to create mimetype entry")
	}
	if _, err := io.WriteString(mt, ContentTypeODS); err != nil {
		return goerr.Wrap(err, "failed to write mimetype entry")
	}

	for _, entry := range []struct{ name, body string }{
		{"META-INF/manifest.xml", odsManifest},
		{"styles.xml", odsStyles},
	} {
		f, err := zw.Create(entry.name)
		if err != nil {
			return goerr.Wrap(err, "failed to create ods entry", goerr.V("name", entry.name))
		}
		if _, err := io.WriteString(f, entry.body); err != nil {
			return goerr.Wrap(err, "failed to write ods entry", goerr.V("name", entry.name))
		}
	}

	content, err := zw.Create("content.xml")
	if err != nil {
		return goerr.Wrap(err, "failed to create content entry")
	}
	if err := writeContent(content, t); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return goerr.Wrap(err, "failed to finish ods archive")
	}
	return nil
}

func writeContent(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)

	_, _ = bw.WriteString(odsContentHead)
	_, _ = bw.WriteString(`<table:table table:name="`)
	escapeXML(bw, SheetName)
	_, _ = bw.WriteString(`">`)
	_, _ = bw.WriteString(`<table:table-column table:number-columns-repeated="`)
	_, _ = bw.WriteString(strconv.Itoa(len(t.Columns) + 1))
	_, _ = bw.WriteString(`"/>`)

	headers := []Cell{Text(t.Title)}
	subHeaders := []Cell{Blank}
	for _, col := range t.Columns {
		headers = append(headers, textOrBlank(col.Header))
		subHeaders = append(subHeaders, textOrBlank(col.SubHeader))
	}
	writeRow(bw, headers)
	writeRow(bw, subHeaders)

	for _, row := range t.Rows {
		writeRow(bw, append([]Cell{Blank}, row...))
	}

	_, _ = bw.WriteString(`</table:table>`)
	_, _ = bw.WriteString(odsContentTail)

	if err := bw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to write ods content")
	}
	return nil
}

func textOrBlank(s string) Cell {
	if s == "" {
		return Blank
	}
	return Text(s)
}

func writeRow(w *bufio.Writer, cells []Cell) {
	_, _ = w.WriteString(`<table:table-row>`)
	for _, c := range cells {
		writeCell(w, c)
	}
	_, _ = w.WriteString(`</table:table-row>`)
}

func writeCell(w *bufio.Writer, c Cell) {
	var value string
	switch c.kind {
	case cellBool:
		value = strconv.FormatBool(c.flag)
	case cellText:
		value = c.text
	default:
		_, _ = w.WriteString(`<table:table-cell/>`)
		return
	}

	_, _ = w.WriteString(`<table:table-cell office:value-type="string">`)
	for _, line := range strings.Split(value, "\n") {
		_, _ = w.WriteString(`<text:p>`)
		escapeXML(w, line)
		_, _ = w.WriteString(`</text:p>`)
	}
	_, _ = w.WriteString(`</table:table-cell>`)
}

func escapeXML(w io.Writer, s string) {
	_ = xml.EscapeText(w, []byte(s))
}
