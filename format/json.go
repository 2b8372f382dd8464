package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/reflyze/accessor"
)

type JSONEncoder struct {
	w      io.Writer
	report accessor.Report
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(report accessor.Report) error {
	e.report = report
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(e.buildReportData(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type jsonReport struct {
	Total int       `json:"total"`
	Rows  []jsonRow `json:"rows"`
}

type jsonRow struct {
	Count   int      `json:"count"`
	RefName string   `json:"refName"`
	Class   string   `json:"class"`
	Method  string   `json:"method"`
	Names   []string `json:"names"`
}

func (e *JSONEncoder) buildReportData() jsonReport {
	records := e.report.Records()
	data := jsonReport{Rows: make([]jsonRow, len(records))}
	for i, r := range records {
		data.Total += r.Count()
		data.Rows[i] = jsonRow{
			Count:   r.Count(),
			RefName: r.Key.String(),
			Class:   r.Key.Class,
			Method:  r.Key.Method,
			Names:   r.AccessorNames,
		}
	}
	return data
}
