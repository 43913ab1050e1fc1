// Package export turns table data into downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// Column is one exported column. Key selects the value from each row.
type Column struct {
	Key    string
	Header string
}

// Sheet is the input of an export: the visible columns, the rows keyed by
// Column.Key, the download filename and a title written above the header.
type Sheet struct {
	Title    string
	Filename string
	Columns  []Column
	Rows     []map[string]string
}

// WriteCSV writes s as CSV. A non-empty title becomes a leading "# title"
// row.
func WriteCSV(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)
	if s.Title != "" {
		if err := cw.Write([]string{"# " + s.Title}); err != nil {
			return fmt.Errorf("write title: %w", err)
		}
	}

	header := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		header[i] = c.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(s.Columns))
	for _, row := range s.Rows {
		for i, c := range s.Columns {
			record[i] = sanitizeCell(row[c.Key])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ServeCSV writes s as a CSV attachment.
func ServeCSV(w http.ResponseWriter, s Sheet) error {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": Filename(s.Filename, ".csv"),
	}))
	return WriteCSV(w, s)
}

// Filename strips path separators and control characters from name and
// makes sure it ends in ext.
func Filename(name, ext string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(name))
	if name == "" {
		name = "export"
	}
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return name
}

// sanitizeCell keeps spreadsheet applications from evaluating cell text as
// a formula.
func sanitizeCell(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + v
	}
	return v
}
