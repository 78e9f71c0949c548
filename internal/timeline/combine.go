package timeline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// DefaultGapThreshold is the largest tolerated gap between two adjacent files
// before the pipeline aborts.
const DefaultGapThreshold = 6 * time.Hour

// Loader reads one source file into a RecordSet.
// csvio.Reader is the production implementation; tests substitute their own.
type Loader interface {
	Load(ctx context.Context, file string) (*domain.RecordSet, error)
}

// Combiner runs the combine-and-verify pipeline: load, sequence, validate,
// merge. A Combiner is stateless across runs and safe for concurrent use.
type Combiner struct {
	loader       Loader
	gapThreshold time.Duration
	sink         WarningSink
}

// NewCombiner constructs a Combiner. A zero gapThreshold falls back to
// DefaultGapThreshold; a nil sink discards warnings.
func NewCombiner(loader Loader, gapThreshold time.Duration, sink WarningSink) *Combiner {
	if gapThreshold == 0 {
		gapThreshold = DefaultGapThreshold
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &Combiner{loader: loader, gapThreshold: gapThreshold, sink: sink}
}

// CombineAndVerify stitches the given booking-log files into one continuous,
// duplicate-free timeline.
//
// Files are sorted lexicographically ascending and loaded in that order; the
// order is fixed here and relied upon by every later stage. Validation runs
// across all adjacent boundaries before any merge step: overlapping regions
// must carry identical bookings on both sides, and gaps must stay within the
// configured tolerance (within-tolerance gaps are reported to the warning
// sink and do not abort).
//
// On any violated invariant the pipeline stops and returns an error wrapping
// one of domain.ErrParse, ErrOverlapLength, ErrOverlapIdentity, ErrGapTooLarge
// or ErrInvalidInput, carrying the file identifiers and measured values needed
// to diagnose the failure. Nothing is retried or recovered internally.
func (c *Combiner) CombineAndVerify(ctx context.Context, files []string) (*domain.RecordSet, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("timeline.Combiner.CombineAndVerify: %w: no input files", domain.ErrInvalidInput)
	}

	sorted := slices.Clone(files)
	slices.Sort(sorted)

	sets := make([]*domain.RecordSet, 0, len(sorted))
	for _, file := range sorted {
		set, err := c.loader.Load(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("timeline.Combiner.CombineAndVerify: %w", err)
		}
		sets = append(sets, set)
	}

	if err := verifyBoundaries(ctx, sets, c.gapThreshold, c.sink); err != nil {
		return nil, fmt.Errorf("timeline.Combiner.CombineAndVerify: %w", err)
	}

	merged, err := Merge(sets)
	if err != nil {
		return nil, fmt.Errorf("timeline.Combiner.CombineAndVerify: %w", err)
	}
	return merged, nil
}
