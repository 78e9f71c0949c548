package timeline

import (
	"fmt"
	"slices"
	"time"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// Merge combines an ordered sequence of validated record sets into one
// duplicate-free timeline.
//
// The merged set starts as the first input set. Each later set contributes
// only rows whose reservation start is strictly after the running maximum of
// the merged result. Strict ">" keeps a boundary record present in both
// overlapping files exactly once, sourced from the earlier file.
//
// Merge assumes validation has already succeeded across all boundaries; it
// only rejects structurally invalid input (empty sequence, nil set, header
// mismatch) with an error wrapping domain.ErrInvalidInput. A one-element
// sequence is returned as-is — there is no boundary to deduplicate.
func Merge(sets []*domain.RecordSet) (*domain.RecordSet, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("timeline.Merge: %w: empty record-set sequence", domain.ErrInvalidInput)
	}
	for i, s := range sets {
		if s == nil {
			return nil, fmt.Errorf("timeline.Merge: %w: nil record set at position %d", domain.ErrInvalidInput, i)
		}
		if !slices.Equal(s.Header, sets[0].Header) {
			return nil, fmt.Errorf("timeline.Merge: %w: %s has a different column schema than %s",
				domain.ErrInvalidInput, s.File, sets[0].File)
		}
	}
	if len(sets) == 1 {
		return sets[0], nil
	}

	merged := slices.Clone(sets[0].Bookings)
	runningMax := sets[0].MaxStart()

	for _, s := range sets[1:] {
		for _, b := range s.Bookings {
			if b.ReservationStart.After(runningMax) {
				merged = append(merged, b)
			}
		}
		runningMax = laterOf(runningMax, s.MaxStart())
	}

	return domain.NewRecordSet("", sets[0].Header, merged), nil
}

func laterOf(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
