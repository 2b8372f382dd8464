package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/reflyze/accessor"
	"github.com/dhamidi/reflyze/java/parser"
)

func sampleReport() accessor.Report {
	return accessor.Rank([]accessor.Record{
		{Key: accessor.Key{Class: "pkg.Baz", Method: "qux"}, AccessorNames: []string{"Accessor3"}},
		{Key: accessor.Key{Class: "pkg.Foo", Method: "bar"}, AccessorNames: []string{"Accessor1", "Accessor2"}},
	})
}

// requireText fails with a unified diff when got differs from want.
func requireText(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	require.NoError(t, err)
	t.Fatalf("output mismatch:\n%s", diff)
}

func TestCSVEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVEncoder(&buf).Encode(sampleReport()))

	requireText(t, "count,refName,names\n2,pkg.Foo#bar,Accessor1,Accessor2\n1,pkg.Baz#qux,Accessor3\n", buf.String())
}

func TestCSVEncoderEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVEncoder(&buf).Encode(accessor.Rank(nil)))

	require.Equal(t, "count,refName,names\n", buf.String())
}

func TestReadCSV(t *testing.T) {
	var buf bytes.Buffer
	report := sampleReport()
	require.NoError(t, NewCSVEncoder(&buf).Encode(report))

	records, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, report.Records(), records)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "missing header"},
		{"wrong header", "a,b,c\n", "unexpected header"},
		{"bad count", "count,refName,names\nx,pkg.Foo#bar,A\n", "count"},
		{"no hash", "count,refName,names\n1,pkg.Foo.bar,A\n", "has no '#'"},
		{"count mismatch", "count,refName,names\n2,pkg.Foo#bar,A\n", "does not match"},
		{"short row", "count,refName,names\n1\n", "at least 2 fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(sampleReport()))

	var got jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, 3, got.Total)
	require.Len(t, got.Rows, 2)
	require.Equal(t, jsonRow{
		Count:   2,
		RefName: "pkg.Foo#bar",
		Class:   "pkg.Foo",
		Method:  "bar",
		Names:   []string{"Accessor1", "Accessor2"},
	}, got.Rows[0])
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(sampleReport()))

	requireText(t, "2\tpkg.Foo#bar\tAccessor1 Accessor2\n1\tpkg.Baz#qux\tAccessor3\n", buf.String())
}

func TestNewEncoder(t *testing.T) {
	require.Equal(t, []string{"csv", "json", "line"}, Names())

	for _, name := range Names() {
		var buf bytes.Buffer
		enc, err := NewEncoder(name, &buf)
		require.NoError(t, err)
		require.NoError(t, enc.Encode(sampleReport()))
		require.NotEmpty(t, buf.String())
	}

	_, err := NewEncoder("xml", &bytes.Buffer{})
	require.ErrorContains(t, err, `unknown report format "xml"`)
}

func TestTreeJSONEncoder(t *testing.T) {
	root, err := parser.Parse("A.java", []byte("import pkg.Foo;\nclass A {}\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTreeJSONEncoder(&buf, true).Encode(root))

	var got treeNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "CompilationUnit", got.Kind)
	require.Equal(t, "1:1", got.Start)
	require.Len(t, got.Children, 2)
	require.Equal(t, "ImportDecl", got.Children[0].Kind)
	require.Equal(t, "ClassDecl", got.Children[1].Kind)
}

func TestTreeJSONEncoderWithoutPositions(t *testing.T) {
	root, err := parser.Parse("A.java", []byte("class A {}\n"))
	require.NoError(t, err)

	text, err := NewTreeJSONEncoder(nil, false).MarshalTree(root)
	require.NoError(t, err)
	require.NotContains(t, string(text), `"start"`)
}

func TestWriteTree(t *testing.T) {
	root, err := parser.Parse("A.java", []byte("class A {}\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, root, false))
	require.True(t, strings.HasPrefix(buf.String(), "CompilationUnit\n  ClassDecl\n"))
}
