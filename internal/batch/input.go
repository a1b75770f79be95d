// Package batch classifies names read from CSV or XLSX files and writes the
// resulting records as JSON lines, a JSON array or CSV.
package batch

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Row is one name read from an input file. Line is 1-based and counts the
// header row when present.
type Row struct {
	Line int
	Name string
}

// Column selects the name column. Name is matched case-insensitively against
// the header row and takes precedence over Index.
type Column struct {
	Name  string
	Index int
}

// CSVOptions configures the streaming CSV reader.
type CSVOptions struct {
	Column     Column
	Delimiter  rune // default ','
	HasHeader  bool
	LazyQuotes bool
}

// XLSXOptions configures the streaming XLSX reader.
type XLSXOptions struct {
	Column    Column
	SheetName string // if empty, the first sheet is used
	HasHeader bool
}

// StreamCSV reads names from a CSV stream and sends them to a channel.
// Both channels are closed when processing completes.
func StreamCSV(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan Row, <-chan error) {
	rowCh := make(chan Row, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		if opts.Delimiter != 0 {
			reader.Comma = opts.Delimiter
		}
		reader.LazyQuotes = opts.LazyQuotes
		reader.FieldsPerRecord = -1 // allow variable fields

		col := opts.Column.Index
		line := 0
		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "batch: csv context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "batch: csv read row")
				return
			}
			line++

			if line == 1 && opts.HasHeader {
				if col, err = resolveColumn(record, opts.Column); err != nil {
					errCh <- err
					return
				}
				continue
			}

			select {
			case rowCh <- Row{Line: line, Name: cell(record, col)}:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "batch: csv context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// StreamXLSX reads names from one sheet of an XLSX file and sends them to a
// channel. Both channels are closed when processing completes.
func StreamXLSX(ctx context.Context, path string, opts XLSXOptions) (<-chan Row, <-chan error) {
	rowCh := make(chan Row, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		f, err := xlsx.OpenFile(path)
		if err != nil {
			errCh <- eris.Wrap(err, "batch: xlsx open file")
			return
		}

		sheet, err := getSheet(f, opts.SheetName)
		if err != nil {
			errCh <- err
			return
		}

		col := opts.Column.Index
		for i, row := range sheet.Rows {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "batch: xlsx context cancelled")
				return
			}

			cells := rowToStrings(row)
			if i == 0 && opts.HasHeader {
				if col, err = resolveColumn(cells, opts.Column); err != nil {
					errCh <- err
					return
				}
				continue
			}

			select {
			case rowCh <- Row{Line: i + 1, Name: cell(cells, col)}:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "batch: xlsx context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

func resolveColumn(header []string, c Column) (int, error) {
	if c.Name == "" {
		return c.Index, nil
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), c.Name) {
			return i, nil
		}
	}
	return 0, eris.Errorf("batch: column %q not found in header", c.Name)
}

func cell(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return record[col]
}

func getSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("batch: xlsx sheet %q not found", name)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("batch: xlsx file has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, c := range row.Cells {
		cells[j] = c.String()
	}
	return cells
}
