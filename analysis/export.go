package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/reflyze/accessor"
	"github.com/dhamidi/reflyze/format"
)

// DefaultReportPath is where a run writes its report unless told otherwise.
const DefaultReportPath = "reflect-analysis-result.csv"

// ExportError reports a report file that could not be written. The target
// is left as it was.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Export writes report to path in the named format. The report goes to a
// temporary file next to path which is then renamed over it, so readers
// see the old report or the whole new one.
func Export(path string, report accessor.Report, formatName string) error {
	if formatName == "" {
		formatName = "csv"
	}
	fail := func(err error) error {
		return &ExportError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fail(err)
	}
	defer os.Remove(tmp.Name())

	enc, err := format.NewEncoder(formatName, tmp)
	if err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := enc.Encode(report); err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err)
	}
	return nil
}

// Outcome is the result of AnalyzeAndExport. Err is nil when the report was
// written.
type Outcome struct {
	Path  string
	Rows  int
	Stats Stats
	Err   error
}

func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("reflect analysis failed: %v", o.Err)
	}
	return fmt.Sprintf("wrote %d rows to %s (%s)", o.Rows, o.Path, o.Stats)
}

// AnalyzeAndExport runs one analysis over provider and writes the report
// to path.
func AnalyzeAndExport(ctx context.Context, provider Provider, path string, opts Options) Outcome {
	if path == "" {
		path = DefaultReportPath
	}
	outcome := Outcome{Path: path}

	result, err := NewAnalyzer(opts).Run(ctx, provider)
	if err != nil {
		log.Errorf("reflect analysis: %s", err)
		outcome.Err = err
		return outcome
	}
	outcome.Stats = result.Stats

	log.Infof("start export of %d rows to %s", result.Report.Len(), path)
	if err := Export(path, result.Report, opts.Format); err != nil {
		log.Errorf("%s", err)
		outcome.Err = err
		return outcome
	}
	outcome.Rows = result.Report.Len()
	log.Infof("export of %s finished, %d rows", path, outcome.Rows)
	return outcome
}
