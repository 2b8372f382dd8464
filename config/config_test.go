package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/reflyze/accessor"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
output: out/report.json
format: json
parser: treesitter
pattern: "Generated*Accessor*"
workers: 4
reserved_prefixes:
  - java.
  - sun.
  - jdk.internal.
`))
	require.NoError(t, err)
	require.Equal(t, Config{
		Output:           "out/report.json",
		Format:           "json",
		Parser:           ParserTreeSitter,
		Pattern:          "Generated*Accessor*",
		Workers:          4,
		ReservedPrefixes: []string{"java.", "sun.", "jdk.internal."},
	}, cfg)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("workers: 2\n"))
	require.NoError(t, err)

	want := Default()
	want.Workers = 2
	require.Equal(t, want, cfg)

	empty, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), empty)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "outptu: x.csv\n", "field outptu not found"},
		{"bad format", "format: xml\n", "unknown report format"},
		{"bad parser", "parser: javac\n", "parser: want native or treesitter"},
		{"negative workers", "workers: -1\n", "workers"},
		{"empty output", "output: \"\"\n", "output"},
		{"bad type", "workers: many\n", "cannot unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: line\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "line", cfg.Format)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorContains(t, err, "read config")
}

func TestLoadDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(FileName, []byte("parser: treesitter\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, ParserTreeSitter, cfg.Parser)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Workers = 3
	cfg.ReservedPrefixes = []string{"jdk.internal."}

	opts := cfg.Options(accessor.NativeParser{})
	require.Equal(t, 3, opts.Workers)
	require.Equal(t, "csv", opts.Format)
	require.True(t, opts.Resolver.IsReserved("jdk.internal.reflect.X"))
	require.False(t, opts.Resolver.IsReserved("java.lang.Object"))
}
