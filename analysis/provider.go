// Package analysis runs the accessor correlation over a set of decompiled
// sources and writes the ranked report.
package analysis

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhamidi/reflyze/accessor"
)

// DefaultPattern selects the accessor classes a reflection runtime
// generates, matched against the simple class name.
const DefaultPattern = "GeneratedMethodAccessor*"

// ErrDiscovery marks a failure to enumerate the units of a run. Such a run
// writes no report.
var ErrDiscovery = errors.New("unit discovery failed")

// Unit is one decompiled accessor class.
type Unit struct {
	// Name is the simple class name, e.g. GeneratedMethodAccessor12.
	Name string
	// RuntimeName is the fully-qualified class name.
	RuntimeName string
	// Path locates the source for diagnostics. It is empty for in-memory
	// units.
	Path   string
	Source []byte
}

// Provider enumerates the units of one run.
type Provider interface {
	Units(ctx context.Context) ([]Unit, error)
}

// MapProvider serves sources keyed by fully-qualified runtime name. Units
// are returned sorted by runtime name.
type MapProvider map[string]string

func (m MapProvider) Units(ctx context.Context) ([]Unit, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	units := make([]Unit, 0, len(names))
	for _, runtimeName := range names {
		simple := runtimeName
		if i := strings.LastIndexByte(simple, '.'); i >= 0 {
			simple = simple[i+1:]
		}
		units = append(units, Unit{Name: simple, RuntimeName: runtimeName, Source: []byte(m[runtimeName])})
	}
	return units, nil
}

// DirProvider reads the .java files of a decompiler output directory. The
// runtime name of a unit is its path relative to Root with separators
// turned into dots.
type DirProvider struct {
	Root string
	// Pattern filters by simple class name. Empty means DefaultPattern.
	Pattern string
}

func (d DirProvider) Units(ctx context.Context) ([]Unit, error) {
	pattern, err := checkPattern(d.Pattern)
	if err != nil {
		return nil, err
	}

	var units []Unit
	err = filepath.WalkDir(d.Root, func(p string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if p != d.Root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isUnitFile(p, pattern) {
			return nil
		}

		src, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(d.Root, p)
		if err != nil {
			return err
		}
		units = append(units, Unit{
			Name:        accessor.UnitName(p),
			RuntimeName: runtimeName(filepath.ToSlash(rel)),
			Path:        p,
			Source:      src,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walk %s: %w", ErrDiscovery, d.Root, err)
	}
	return units, nil
}

// ZipProvider reads the .java entries of a zip or jar archive holding
// decompiled sources.
type ZipProvider struct {
	Path    string
	Pattern string
}

func (z ZipProvider) Units(ctx context.Context) ([]Unit, error) {
	pattern, err := checkPattern(z.Pattern)
	if err != nil {
		return nil, err
	}

	r, err := zip.OpenReader(z.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}
	defer r.Close()

	var units []Unit
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
		}
		if f.FileInfo().IsDir() || !isUnitFile(f.Name, pattern) {
			continue
		}
		src, err := readZipEntry(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s!%s: %w", ErrDiscovery, z.Path, f.Name, err)
		}
		units = append(units, Unit{
			Name:        accessor.UnitName(f.Name),
			RuntimeName: runtimeName(f.Name),
			Path:        z.Path + "!" + f.Name,
			Source:      src,
		})
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Path < units[j].Path })
	return units, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// NewProvider picks a DirProvider or, for .zip and .jar files, a
// ZipProvider.
func NewProvider(source, pattern string) Provider {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".zip", ".jar":
		return ZipProvider{Path: source, Pattern: pattern}
	}
	return DirProvider{Root: source, Pattern: pattern}
}

func patternOrDefault(pattern string) string {
	if pattern == "" {
		return DefaultPattern
	}
	return pattern
}

// checkPattern applies the default pattern and rejects a malformed one.
func checkPattern(pattern string) (string, error) {
	pattern = patternOrDefault(pattern)
	if _, err := path.Match(pattern, ""); err != nil {
		return "", fmt.Errorf("%w: pattern %q: %w", ErrDiscovery, pattern, err)
	}
	return pattern, nil
}

func isUnitFile(name, pattern string) bool {
	if !strings.HasSuffix(name, ".java") {
		return false
	}
	ok, _ := path.Match(pattern, accessor.UnitName(name))
	return ok
}

func runtimeName(rel string) string {
	return strings.ReplaceAll(strings.TrimSuffix(rel, ".java"), "/", ".")
}
