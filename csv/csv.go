// Package csv serializes result tables as CSV.
package csv

import (
	"bufio"
	"bytes"
	gocsv "encoding/csv"
	"fmt"
	"io"
	"slices"

	"github.com/fwojciec/newsbrowse"
)

// BOM is the UTF-8 byte order mark. Spreadsheet applications need it to
// detect UTF-8 in Korean text.
const BOM = "\ufeff"

// ContentType is the media type of encoded tables.
const ContentType = "text/csv; charset=utf-8"

type options struct {
	bom bool
}

// Option configures encoding.
type Option func(*options)

// WithBOM sets whether the output starts with a UTF-8 byte order mark.
// Defaults to true.
func WithBOM(bom bool) Option {
	return func(o *options) {
		o.bom = bom
	}
}

// Encode writes the table to w: an optional BOM, the header row, then one
// record per row in table order.
func Encode(w io.Writer, table *newsbrowse.ResultTable, opts ...Option) error {
	o := options{bom: true}
	for _, opt := range opts {
		opt(&o)
	}

	if o.bom {
		if _, err := io.WriteString(w, BOM); err != nil {
			return err
		}
	}

	cw := gocsv.NewWriter(w)
	if err := cw.Write(newsbrowse.Columns); err != nil {
		return err
	}
	for i := range table.Rows {
		if err := cw.Write(table.Rows[i].Values()); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Marshal returns the encoded table.
func Marshal(table *newsbrowse.ResultTable, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, table, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads rows written by Encode. A leading BOM is skipped. Returns
// EINVALID if the header does not match newsbrowse.Columns.
func Decode(r io.Reader) ([]newsbrowse.ResultRow, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(BOM)); err == nil && string(b) == BOM {
		_, _ = br.Discard(len(BOM))
	}

	cr := gocsv.NewReader(br)
	cr.FieldsPerRecord = len(newsbrowse.Columns)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, newsbrowse.Errorf(newsbrowse.EINVALID, "missing header")
	} else if err != nil {
		return nil, newsbrowse.Errorf(newsbrowse.EINVALID, "read header: %v", err)
	}
	if !slices.Equal(header, newsbrowse.Columns) {
		return nil, newsbrowse.Errorf(newsbrowse.EINVALID, "unexpected header %v", header)
	}

	var rows []newsbrowse.ResultRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, newsbrowse.Errorf(newsbrowse.EINVALID, "read row %d: %v", len(rows), err)
		}
		rows = append(rows, newsbrowse.ResultRow{
			ArticleRecord: newsbrowse.ArticleRecord{
				Domain: rec[0],
				Date:   rec[1],
				Title:  rec[2],
				URL:    rec[3],
				Author: rec[4],
			},
			Text: rec[5],
		})
	}
	return rows, nil
}
