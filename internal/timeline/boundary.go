// Package timeline implements the combine-and-verify pipeline for Fahrten
// exports: adjacent files are classified as overlapping or gapped, overlap
// regions are checked for identical content, gaps are bounded against a
// tolerance, and the verified files are merged into one duplicate-free
// timeline.
//
// The pipeline assumes that lexicographic file order equals chronological
// booking order. That precondition is the caller's responsibility; violating
// it makes validation results undefined.
package timeline

import (
	"time"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// BoundaryKind classifies the relation between two chronologically adjacent
// record sets.
type BoundaryKind int

const (
	// Overlapping means the earlier file's last reservation start is at or
	// after the later file's first one, so both files carry a shared region
	// of re-emitted trailing records.
	Overlapping BoundaryKind = iota

	// Gapped means there is open time between the two files.
	Gapped
)

// Boundary is the computed relation between two adjacent record sets.
// Boundaries are derived on demand and never persisted.
type Boundary struct {
	Earlier *domain.RecordSet
	Later   *domain.RecordSet
	Kind    BoundaryKind

	// Last is the latest reservation start in the earlier set,
	// First the earliest in the later set.
	Last  time.Time
	First time.Time
}

// Classify computes the boundary between two adjacent sets. Exact coincidence
// (Last == First) counts as Overlapping: the shared instant must then carry
// the same booking on both sides, which the overlap validator checks. Using
// ">=" here is deliberate — ">" would route that boundary to the gap check
// instead.
func Classify(earlier, later *domain.RecordSet) Boundary {
	b := Boundary{
		Earlier: earlier,
		Later:   later,
		Last:    earlier.MaxStart(),
		First:   later.MinStart(),
	}
	if !b.Last.Before(b.First) {
		b.Kind = Overlapping
	} else {
		b.Kind = Gapped
	}
	return b
}

// Gap returns the duration between the earlier file's last booking and the
// later file's first. Only meaningful for Gapped boundaries, where it is
// positive. No clock-skew allowance is applied: a boundary that misses
// overlapping by microseconds is treated as a real (tiny) gap.
func (b Boundary) Gap() time.Duration {
	return b.First.Sub(b.Last)
}
