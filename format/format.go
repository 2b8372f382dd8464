// Package format renders accessor reports and syntax trees.
package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/reflyze/accessor"
)

// Encoder writes one report. MarshalText renders the report most recently
// passed to Encode.
type Encoder interface {
	encoding.TextMarshaler
	Encode(report accessor.Report) error
}

var encoders = map[string]func(io.Writer) Encoder{
	"csv":  func(w io.Writer) Encoder { return NewCSVEncoder(w) },
	"json": func(w io.Writer) Encoder { return NewJSONEncoder(w) },
	"line": func(w io.Writer) Encoder { return NewLineEncoder(w) },
}

// Names lists the encoder names accepted by NewEncoder.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func NewEncoder(name string, w io.Writer) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q (want one of %v)", name, Names())
	}
	return newEncoder(w), nil
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
