// Package csvfile reads header-keyed CSV documents.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Row maps header names to raw cell text. Cells missing from short records are absent.
type Row map[string]string

// Value returns the first non-blank cell among the given header aliases, trimmed.
func (r Row) Value(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(r[key]); v != "" {
			return v
		}
	}
	return ""
}

// Has reports whether any of the given headers is present in the row, blank or not.
func (r Row) Has(keys ...string) bool {
	for _, key := range keys {
		if _, ok := r[key]; ok {
			return true
		}
	}
	return false
}

// Document is a parsed CSV file.
type Document struct {
	Header []string
	Rows   []Row
}

// Read decodes UTF-8 CSV (a leading byte order mark is dropped). The first record is the
// header. Blank lines are ignored and ragged records are tolerated. An input with no bytes
// at all yields an empty document.
func Read(r io.Reader) (Document, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Document{}, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	doc := Document{Header: header}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, fmt.Errorf("read csv record %d: %w", line, err)
		}
		if blankRecord(record) {
			continue
		}

		row := make(Row, len(header))
		for i, name := range header {
			if i >= len(record) || name == "" {
				continue
			}
			row[name] = record[i]
		}
		doc.Rows = append(doc.Rows, row)
	}
	return doc, nil
}

// ReadFile is Read over a file on disk.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// CountRows returns the number of non-blank data records in a CSV file.
func CountRows(path string) (int, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return 0, err
	}
	return len(doc.Rows), nil
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
