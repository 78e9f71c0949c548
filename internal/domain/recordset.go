package domain

import "time"

// RecordSet is the set of bookings loaded from one source file.
//
// The minimum and maximum reservation start are computed once at construction,
// so boundary classification between adjacent files is O(1). A RecordSet is
// never mutated after construction — Filter returns a new set.
//
// Row order inside a set is whatever the source file contained; only
// ReservationStart is guaranteed to be usable as a sort key.
type RecordSet struct {
	// File identifies the source file this set was loaded from.
	// Empty for sets produced by merging.
	File string

	// Header lists all column names of the source file, in file order.
	Header []string

	Bookings []Booking

	minStart time.Time
	maxStart time.Time
}

// NewRecordSet builds a RecordSet and caches the min/max reservation start
// across its bookings. An empty bookings slice yields zero bounds; callers
// that rely on the bounds must not pass empty sets (the loader rejects
// files with no data rows).
func NewRecordSet(file string, header []string, bookings []Booking) *RecordSet {
	s := &RecordSet{File: file, Header: header, Bookings: bookings}
	for i, b := range bookings {
		if i == 0 || b.ReservationStart.Before(s.minStart) {
			s.minStart = b.ReservationStart
		}
		if i == 0 || b.ReservationStart.After(s.maxStart) {
			s.maxStart = b.ReservationStart
		}
	}
	return s
}

// Len returns the number of bookings in the set.
func (s *RecordSet) Len() int { return len(s.Bookings) }

// MinStart returns the earliest reservation start in the set.
func (s *RecordSet) MinStart() time.Time { return s.minStart }

// MaxStart returns the latest reservation start in the set.
func (s *RecordSet) MaxStart() time.Time { return s.maxStart }

// Filter returns a new RecordSet containing only the bookings for which keep
// returns true. The receiver is left untouched; File and Header carry over.
func (s *RecordSet) Filter(keep func(Booking) bool) *RecordSet {
	var out []Booking
	for _, b := range s.Bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return NewRecordSet(s.File, s.Header, out)
}
