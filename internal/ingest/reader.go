package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	ColumnTitle  = "Title"
	ColumnAuthor = "Author"
)

var ErrMissingColumn = errors.New("missing required column")

// Row is one input record. Line is the 1-based line in the file.
type Row struct {
	Line   int
	Title  string
	Author string
}

// Reader reads rows from a CSV file with a header line. Columns are matched
// by exact header name; extra columns are ignored.
type Reader struct {
	csv       *csv.Reader
	titleIdx  int
	authorIdx int
}

func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && string(bom) == "\xef\xbb\xbf" {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range []string{ColumnTitle, ColumnAuthor} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	return &Reader{csv: cr, titleIdx: idx[ColumnTitle], authorIdx: idx[ColumnAuthor]}, nil
}

// Read returns the next row, or io.EOF when the input is exhausted. A
// malformed line yields an error but the reader can keep going.
func (r *Reader) Read() (Row, error) {
	record, err := r.csv.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return Row{Line: parseErr.StartLine}, err
		}
		return Row{}, err
	}
	line, _ := r.csv.FieldPos(0)
	return Row{
		Line:   line,
		Title:  field(record, r.titleIdx),
		Author: field(record, r.authorIdx),
	}, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

// PrimaryAuthor keeps the part of an author field before the first comma,
// so "Herbert, Frank" and "Gaiman, Pratchett" both reduce to the first name.
func PrimaryAuthor(s string) string {
	before, _, _ := strings.Cut(s, ",")
	return strings.TrimSpace(before)
}
