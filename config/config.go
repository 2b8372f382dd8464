// Package config loads reflyze.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	yaml "gopkg.in/yaml.v3"

	"github.com/dhamidi/reflyze/accessor"
	"github.com/dhamidi/reflyze/analysis"
	"github.com/dhamidi/reflyze/format"
)

// FileName is looked up in the working directory when no path is given.
const FileName = "reflyze.yaml"

// Parser backends.
const (
	ParserNative     = "native"
	ParserTreeSitter = "treesitter"
)

type Config struct {
	// Output is the report path.
	Output string `yaml:"output"`
	// Format is a report encoder name: csv, json or line.
	Format string `yaml:"format"`
	// Parser selects the syntax backend: native or treesitter.
	Parser string `yaml:"parser"`
	// Pattern filters discovered sources by simple class name.
	Pattern string `yaml:"pattern"`
	// Workers bounds parallel unit analysis; zero means one per CPU.
	Workers int `yaml:"workers"`
	// ReservedPrefixes never name a declaring class.
	ReservedPrefixes []string `yaml:"reserved_prefixes"`
}

func Default() Config {
	return Config{
		Output:           analysis.DefaultReportPath,
		Format:           "csv",
		Parser:           ParserNative,
		Pattern:          analysis.DefaultPattern,
		ReservedPrefixes: slices.Clone(accessor.DefaultReservedPrefixes),
	}
}

// Load reads the configuration at path over the defaults. An empty path
// means FileName in the working directory, which may be absent.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !slices.Contains(format.Names(), c.Format) {
		return fmt.Errorf("format: unknown report format %q", c.Format)
	}
	switch c.Parser {
	case ParserNative, ParserTreeSitter:
	default:
		return fmt.Errorf("parser: want %s or %s, got %q", ParserNative, ParserTreeSitter, c.Parser)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers: must not be negative")
	}
	if c.Output == "" {
		return fmt.Errorf("output: must not be empty")
	}
	return nil
}

// Options turns the configuration into analysis options. The caller picks
// the syntax parser.
func (c Config) Options(p accessor.SyntaxParser) analysis.Options {
	return analysis.Options{
		Parser:   p,
		Resolver: accessor.NewResolver(c.ReservedPrefixes...),
		Workers:  c.Workers,
		Format:   c.Format,
	}
}
