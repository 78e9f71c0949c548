package timeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// validateOverlap checks that both sides of an overlapping boundary carry an
// identical set of bookings in the shared window.
//
// overlapA is every row of the earlier set with reservation start >= First;
// overlapB every row of the later set with reservation start <= Last. The two
// regions must have the same length and the same set of booking IDs. The ID
// comparison is order-independent — the exporter does not guarantee row order
// inside a file.
func validateOverlap(b Boundary) error {
	overlapA := b.Earlier.Filter(func(r domain.Booking) bool {
		return !r.ReservationStart.Before(b.First)
	})
	overlapB := b.Later.Filter(func(r domain.Booking) bool {
		return !r.ReservationStart.After(b.Last)
	})

	if overlapA.Len() != overlapB.Len() {
		return &domain.OverlapLengthError{
			EarlierFile: b.Earlier.File,
			LaterFile:   b.Later.File,
			EarlierLen:  overlapA.Len(),
			LaterLen:    overlapB.Len(),
		}
	}

	idsA := bookingIDSet(overlapA)
	idsB := bookingIDSet(overlapB)
	if len(idsA) != len(idsB) {
		return &domain.OverlapIdentityError{EarlierFile: b.Earlier.File, LaterFile: b.Later.File}
	}
	for id := range idsA {
		if _, ok := idsB[id]; !ok {
			return &domain.OverlapIdentityError{EarlierFile: b.Earlier.File, LaterFile: b.Later.File}
		}
	}
	return nil
}

// bookingIDSet collects the distinct booking IDs of a record set.
func bookingIDSet(s *domain.RecordSet) map[string]struct{} {
	ids := make(map[string]struct{}, s.Len())
	for _, b := range s.Bookings {
		ids[b.BookingID] = struct{}{}
	}
	return ids
}

// checkGap bounds a gapped boundary against the tolerance. Within tolerance
// the gap is reported to the sink and processing continues; beyond it the
// boundary is a fatal error.
func checkGap(ctx context.Context, b Boundary, threshold time.Duration, sink WarningSink) error {
	if gap := b.Gap(); gap > threshold {
		return &domain.GapError{
			EarlierFile: b.Earlier.File,
			LaterFile:   b.Later.File,
			Gap:         gap,
			Threshold:   threshold,
		}
	}
	sink.GapDetected(ctx, GapWarning{
		EarlierFile: b.Earlier.File,
		LaterFile:   b.Later.File,
		Last:        b.Last,
		First:       b.First,
	})
	return nil
}

// verifyBoundaries validates every adjacent pair of sets. It is a read-only
// pass and must fully succeed before any merge step runs: a failure at any
// boundary aborts the whole pipeline, not just that boundary.
//
// Overlap checks are independent of each other, so they run concurrently;
// their results are collected before the gap pass. Gap checks run
// sequentially in file order so warnings come out ordered.
func verifyBoundaries(ctx context.Context, sets []*domain.RecordSet, threshold time.Duration, sink WarningSink) error {
	boundaries := make([]Boundary, 0, len(sets)-1)
	for i := 0; i+1 < len(sets); i++ {
		boundaries = append(boundaries, Classify(sets[i], sets[i+1]))
	}

	var g errgroup.Group
	for _, b := range boundaries {
		b := b
		if b.Kind != Overlapping {
			continue
		}
		g.Go(func() error { return validateOverlap(b) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, b := range boundaries {
		if b.Kind != Gapped {
			continue
		}
		if err := checkGap(ctx, b, threshold, sink); err != nil {
			return err
		}
	}
	return nil
}
