package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func accessorSource(name string, imports []string, returnExpr string) string {
	var b strings.Builder
	b.WriteString("package sun.reflect;\n\n")
	for _, imp := range imports {
		fmt.Fprintf(&b, "import %s;\n", imp)
	}
	fmt.Fprintf(&b, `
public class %s
extends MethodAccessorImpl {
    public Object invoke(Object object, Object[] objectArray) throws InvocationTargetException {
        try {
            return %s;
        }
        catch (Throwable throwable) {
            throw new InvocationTargetException(throwable);
        }
    }
}
`, name, returnExpr)
	return b.String()
}

func targetAccessor(name, class, method string) string {
	simple := class[strings.LastIndexByte(class, '.')+1:]
	imports := []string{class, "java.lang.reflect.InvocationTargetException", "sun.reflect.MethodAccessorImpl"}
	return accessorSource(name, imports, fmt.Sprintf("((%s)object).%s()", simple, method))
}

// sampleProvider holds the three-unit example plus one unit for every skip
// reason.
func sampleProvider() MapProvider {
	return MapProvider{
		"sun.reflect.Accessor1": targetAccessor("Accessor1", "pkg.Foo", "bar"),
		"sun.reflect.Accessor2": targetAccessor("Accessor2", "pkg.Foo", "bar"),
		"sun.reflect.Accessor3": targetAccessor("Accessor3", "pkg.Baz", "qux"),
		"sun.reflect.Accessor4": accessorSource("Accessor4",
			[]string{"java.lang.Object", "sun.reflect.MagicAccessorImpl"}, "object.toString()"),
		"sun.reflect.Accessor5": "public class Accessor5 { void invoke( }",
		"sun.reflect.Accessor6": "package sun.reflect;\nimport pkg.Foo;\n",
		"sun.reflect.Accessor7": accessorSource("Accessor7", []string{"pkg.Foo"}, "(Object)object"),
	}
}

const sampleCSV = "count,refName,names\n2,pkg.Foo#bar,Accessor1,Accessor2\n1,pkg.Baz#qux,Accessor3\n"

type failingProvider struct{ err error }

func (p failingProvider) Units(context.Context) ([]Unit, error) {
	return nil, p.err
}

func TestAnalyzerRun(t *testing.T) {
	result, err := NewAnalyzer(Options{}).Run(context.Background(), sampleProvider())
	require.NoError(t, err)

	require.Equal(t, 7, result.Stats.Units)
	require.Equal(t, 3, result.Stats.Attributed)
	require.Equal(t, map[SkipReason]int{
		SkipParseError:      1,
		SkipInvalidUnit:     1,
		SkipShapeMismatch:   1,
		SkipNoForeignImport: 1,
	}, result.Stats.Skipped)

	var rows []string
	for _, r := range result.Report.Records() {
		rows = append(rows, fmt.Sprintf("%d %s %v", r.Count(), r.Key, r.AccessorNames))
	}
	require.Equal(t, []string{
		"2 pkg.Foo#bar [Accessor1 Accessor2]",
		"1 pkg.Baz#qux [Accessor3]",
	}, rows)
}

func TestAnalyzerRunIsIndependentOfWorkers(t *testing.T) {
	var reports [][]string
	for _, workers := range []int{1, 2, 16} {
		result, err := NewAnalyzer(Options{Workers: workers}).Run(context.Background(), sampleProvider())
		require.NoError(t, err)

		skipped := 0
		for _, n := range result.Stats.Skipped {
			skipped += n
		}
		require.Equal(t, result.Stats.Units, result.Stats.Attributed+skipped, "workers=%d", workers)
		require.Equal(t, 1, result.Stats.Skipped[SkipShapeMismatch], "workers=%d", workers)

		var rows []string
		for _, r := range result.Report.Records() {
			rows = append(rows, fmt.Sprintf("%s %v", r.Key, r.AccessorNames))
		}
		reports = append(reports, rows)
	}
	require.Equal(t, reports[0], reports[1])
	require.Equal(t, reports[0], reports[2])
}

func TestAnalyzerRunDiscoveryFailure(t *testing.T) {
	cause := errors.New("class search failed")
	_, err := NewAnalyzer(Options{}).Run(context.Background(), failingProvider{err: cause})

	require.ErrorIs(t, err, ErrDiscovery)
	require.ErrorIs(t, err, cause)
}

func TestClassify(t *testing.T) {
	analyzer := NewAnalyzer(Options{})
	units, err := sampleProvider().Units(context.Background())
	require.NoError(t, err)

	got := make(map[string]SkipReason)
	for _, unit := range units {
		if _, err := analyzer.Attribute(unit); err != nil {
			got[unit.Name] = Classify(err)
		}
	}
	require.Equal(t, map[string]SkipReason{
		"Accessor4": SkipNoForeignImport,
		"Accessor5": SkipParseError,
		"Accessor6": SkipInvalidUnit,
		"Accessor7": SkipShapeMismatch,
	}, got)
}

func TestAnalyzeAndExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	outcome := AnalyzeAndExport(context.Background(), sampleProvider(), path, Options{})
	require.NoError(t, outcome.Err)
	require.Equal(t, path, outcome.Path)
	require.Equal(t, 2, outcome.Rows)
	require.Equal(t, 3, outcome.Stats.Attributed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, sampleCSV, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestAnalyzeAndExportRoundTrip(t *testing.T) {
	provider := MapProvider{}
	want := map[string]int{}
	for i := 0; i < 30; i++ {
		name := fmt.Sprintf("GeneratedMethodAccessor%d", i)
		class := fmt.Sprintf("com.example.Service%d", i%4)
		method := fmt.Sprintf("call%d", i%3)
		provider["sun.reflect."+name] = targetAccessor(name, class, method)
		want[class+"#"+method]++
	}

	path := filepath.Join(t.TempDir(), DefaultReportPath)
	outcome := AnalyzeAndExport(context.Background(), provider, path, Options{Workers: 4})
	require.NoError(t, outcome.Err)
	require.Equal(t, len(want), outcome.Rows)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Equal(t, "count,refName,names", lines[0])

	got := map[string]int{}
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		require.Equal(t, fmt.Sprint(len(fields)-2), fields[0], line)
		got[fields[1]] = len(fields) - 2
	}
	require.Equal(t, want, got)
}

func TestAnalyzeAndExportFailures(t *testing.T) {
	dir := t.TempDir()

	t.Run("discovery", func(t *testing.T) {
		path := filepath.Join(dir, "discovery.csv")
		outcome := AnalyzeAndExport(context.Background(), failingProvider{err: errors.New("boom")}, path, Options{})

		require.ErrorIs(t, outcome.Err, ErrDiscovery)
		require.NoFileExists(t, path)
	})

	t.Run("export", func(t *testing.T) {
		path := filepath.Join(dir, "missing", "report.csv")
		outcome := AnalyzeAndExport(context.Background(), sampleProvider(), path, Options{})

		var exportErr *ExportError
		require.ErrorAs(t, outcome.Err, &exportErr)
		require.Equal(t, path, exportErr.Path)
		require.Zero(t, outcome.Rows)
	})

	t.Run("unknown format", func(t *testing.T) {
		path := filepath.Join(dir, "format.csv")
		require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

		outcome := AnalyzeAndExport(context.Background(), sampleProvider(), path, Options{Format: "xml"})

		var exportErr *ExportError
		require.ErrorAs(t, outcome.Err, &exportErr)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, sampleCSV, string(data), "a failed export must leave the old report")
	})
}

func TestTrigger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "async.csv")
	job := Trigger(sampleProvider(), path, Options{})

	require.Equal(t, "The reflect analysis result is being generated asynchronously, check the "+path+" file later", job.Message())

	outcome := job.Wait()
	require.NoError(t, outcome.Err)
	<-job.Done()
	require.Equal(t, StatusCompleted, job.Status())
	require.NotZero(t, job.Elapsed())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, sampleCSV, string(data))
}

func TestTriggerFailure(t *testing.T) {
	job := Trigger(failingProvider{err: errors.New("boom")}, filepath.Join(t.TempDir(), "r.csv"), Options{})

	outcome := job.Wait()
	require.ErrorIs(t, outcome.Err, ErrDiscovery)
	require.Equal(t, StatusFailed, job.Status())
}

func TestTriggerDefaultPath(t *testing.T) {
	job := &Job{Path: DefaultReportPath}
	require.Contains(t, job.Message(), "check the reflect-analysis-result.csv file later")
}

func TestOutcomeString(t *testing.T) {
	ok := Outcome{Path: "r.csv", Rows: 2, Stats: Stats{Units: 3, Attributed: 3, Skipped: map[SkipReason]int{}}}
	require.Equal(t, "wrote 2 rows to r.csv (3 units, 3 attributed, skipped: 0 parse_error, 0 invalid_unit, 0 shape_mismatch, 0 no_foreign_import)", ok.String())

	failed := Outcome{Err: errors.New("disk full")}
	require.Equal(t, "reflect analysis failed: disk full", failed.String())
}
