package batch

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Writer serializes results.
type Writer interface {
	Write(results []Result) error
}

// NewWriter returns a Writer for format: jsonl, json or csv.
func NewWriter(format string, w io.Writer) (Writer, error) {
	switch format {
	case "jsonl":
		return &jsonlWriter{w: w}, nil
	case "json":
		return &jsonWriter{w: w}, nil
	case "csv":
		return &csvWriter{w: w}, nil
	}
	return nil, eris.Errorf("batch: unknown output format %q", format)
}

type jsonlWriter struct{ w io.Writer }

func (j *jsonlWriter) Write(results []Result) error {
	enc := json.NewEncoder(j.w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return eris.Wrapf(err, "batch: encode line %d", r.Line)
		}
	}
	return nil
}

type jsonWriter struct{ w io.Writer }

func (j *jsonWriter) Write(results []Result) error {
	if results == nil {
		results = []Result{}
	}
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return eris.Wrap(err, "batch: encode results")
	}
	return nil
}

// CSVHeader is the column layout written by the csv format.
var CSVHeader = []string{"line", "original_name", "clean_name", "is_company", "entity_type", "industry", "country"}

type csvWriter struct{ w io.Writer }

func (c *csvWriter) Write(results []Result) error {
	cw := csv.NewWriter(c.w)
	if err := cw.Write(CSVHeader); err != nil {
		return eris.Wrap(err, "batch: write csv header")
	}
	for _, r := range results {
		rec := []string{
			strconv.Itoa(r.Line),
			r.OriginalName,
			r.CleanName,
			strconv.FormatBool(r.IsCompany),
			strings.Join(r.EntityType, "|"),
			strings.Join(r.Industry, "|"),
			strings.Join(r.Country, "|"),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrapf(err, "batch: write csv line %d", r.Line)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "batch: flush csv")
	}
	return nil
}
