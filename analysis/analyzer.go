package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/reflyze/accessor"
	"github.com/dhamidi/reflyze/java/parser"
)

var log = commonlog.GetLogger("reflyze.analysis")

// SkipReason says why a unit contributed nothing to a report.
type SkipReason string

const (
	SkipParseError      SkipReason = "parse_error"
	SkipInvalidUnit     SkipReason = "invalid_unit"
	SkipShapeMismatch   SkipReason = "shape_mismatch"
	SkipNoForeignImport SkipReason = "no_foreign_import"
)

var skipReasons = []SkipReason{SkipParseError, SkipInvalidUnit, SkipShapeMismatch, SkipNoForeignImport}

// Classify maps a per-unit error to its skip reason.
func Classify(err error) SkipReason {
	var syntaxErr *parser.SyntaxError
	switch {
	case errors.Is(err, accessor.ErrNoForeignImport):
		return SkipNoForeignImport
	case errors.Is(err, accessor.ErrShapeMismatch):
		return SkipShapeMismatch
	case errors.As(err, &syntaxErr):
		return SkipParseError
	}
	return SkipInvalidUnit
}

type Stats struct {
	Units      int
	Attributed int
	Skipped    map[SkipReason]int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d units, %d attributed, skipped: %d %s, %d %s, %d %s, %d %s",
		s.Units, s.Attributed,
		s.Skipped[SkipParseError], SkipParseError,
		s.Skipped[SkipInvalidUnit], SkipInvalidUnit,
		s.Skipped[SkipShapeMismatch], SkipShapeMismatch,
		s.Skipped[SkipNoForeignImport], SkipNoForeignImport)
}

type Options struct {
	// Parser defaults to accessor.NativeParser.
	Parser   accessor.SyntaxParser
	Resolver accessor.Resolver
	// Workers bounds the units analysed at once. Zero means one per CPU.
	Workers int
	// Format names the report encoder used by Export. Empty means csv.
	Format string
}

// Result is the outcome of analysing every unit of a run.
type Result struct {
	Report accessor.Report
	Stats  Stats
}

// Analyzer attributes units in parallel and folds the observations in
// discovery order.
type Analyzer struct {
	opts Options
}

func NewAnalyzer(opts Options) *Analyzer {
	if opts.Parser == nil {
		opts.Parser = accessor.NativeParser{}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Analyzer{opts: opts}
}

type unitResult struct {
	obs    accessor.Observation
	err    error
	reason SkipReason
}

// Run analyses the units of provider. Only discovery fails a run; units that
// cannot be attributed are logged and counted.
func (a *Analyzer) Run(ctx context.Context, provider Provider) (*Result, error) {
	units, err := provider.Units(ctx)
	if err != nil {
		if !errors.Is(err, ErrDiscovery) {
			err = fmt.Errorf("%w: %w", ErrDiscovery, err)
		}
		return nil, err
	}

	counters := make(map[SkipReason]*xsync.Counter, len(skipReasons))
	for _, reason := range skipReasons {
		counters[reason] = xsync.NewCounter()
	}

	// Each goroutine owns its slot.
	results := make([]unitResult, len(units))
	var g errgroup.Group
	g.SetLimit(a.opts.Workers)
	for i, unit := range units {
		g.Go(func() error {
			obs, err := a.Attribute(unit)
			result := unitResult{obs: obs, err: err}
			if err != nil {
				result.reason = Classify(err)
				counters[result.reason].Inc()
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	agg := accessor.NewAggregator()
	stats := Stats{Units: len(units), Skipped: make(map[SkipReason]int, len(skipReasons))}
	for i, r := range results {
		if r.err != nil {
			log.Debugf("skip %s (%s): %s", units[i].RuntimeName, r.reason, r.err)
			continue
		}
		agg.Observe(r.obs)
		stats.Attributed++
	}
	for reason, counter := range counters {
		stats.Skipped[reason] = int(counter.Value())
	}

	return &Result{Report: accessor.Rank(agg.Records()), Stats: stats}, nil
}

// Attribute parses one unit and attributes it to a call site.
func (a *Analyzer) Attribute(unit Unit) (accessor.Observation, error) {
	su, err := accessor.ParseUnit(a.opts.Parser, unit.Name, unit.Source)
	if err != nil {
		return accessor.Observation{}, err
	}
	return accessor.Attribute(su, a.opts.Resolver)
}
