package format

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/reflyze/accessor"
)

// CSVHeader is the first line of every CSV report.
const CSVHeader = "count,refName,names"

// CSVEncoder writes the comma-delimited report. Accessor names are
// generated identifiers, so fields are written without quoting.
type CSVEncoder struct {
	w      io.Writer
	report accessor.Report
}

func NewCSVEncoder(w io.Writer) *CSVEncoder {
	return &CSVEncoder{w: w}
}

func (e *CSVEncoder) Encode(report accessor.Report) error {
	e.report = report
	return write(e.w, e)
}

func (e *CSVEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(CSVHeader)
	sb.WriteByte('\n')
	for _, r := range e.report.Records() {
		sb.WriteString(strconv.Itoa(r.Count()))
		sb.WriteByte(',')
		sb.WriteString(r.Key.String())
		for _, name := range r.AccessorNames {
			sb.WriteByte(',')
			sb.WriteString(name)
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// ReadCSV reads a report written by CSVEncoder. Rows keep their file order.
func ReadCSV(r io.Reader) ([]accessor.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header %q", CSVHeader)
	}
	if err != nil {
		return nil, err
	}
	if strings.Join(header, ",") != CSVHeader {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(header, ","))
	}

	var records []accessor.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(row) < 2 {
			return nil, fmt.Errorf("line %d: want at least 2 fields, got %d", line, len(row))
		}
		count, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: count: %w", line, err)
		}
		class, method, ok := strings.Cut(row[1], "#")
		if !ok {
			return nil, fmt.Errorf("line %d: refName %q has no '#'", line, row[1])
		}
		names := row[2:]
		if count != len(names) {
			return nil, fmt.Errorf("line %d: count %d does not match %d names", line, count, len(names))
		}
		records = append(records, accessor.Record{
			Key:           accessor.Key{Class: class, Method: method},
			AccessorNames: names,
		})
	}
}
