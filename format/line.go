package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/reflyze/accessor"
)

// LineEncoder writes one tab-separated line per record:
//
//	count	Class#method	Accessor1 Accessor2
type LineEncoder struct {
	w      io.Writer
	report accessor.Report
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(report accessor.Report) error {
	e.report = report
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, r := range e.report.Records() {
		fmt.Fprintf(&sb, "%d\t%s\t%s\n", r.Count(), r.Key, namesStr(r.AccessorNames))
	}
	return []byte(sb.String()), nil
}

func namesStr(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " ")
}
