// Package domain contains the core data types for the Fahrtenlog pipeline.
// This package has zero external dependencies and is imported by every other
// internal package (csvio, timeline, repo, service, handler).
package domain

import "time"

// Column names of a Fahrten export. These are the German field names used by
// the upstream exporter and must be preserved verbatim — the merged output is
// consumed by tooling that expects exactly this schema.
const (
	ColBookingID        = "fahrtneu_id"
	ColReservationStart = "anfang"
	ColReservationEnd   = "ende"
	ColTripStart        = "fahrt_anfang"
	ColTripEnd          = "fahrt_ende"
)

// Booking is one row of a Fahrten export: a single carsharing booking with its
// reservation window (anfang..ende) and the actual trip window
// (fahrt_anfang..fahrt_ende), which may differ from the reservation bounds.
type Booking struct {
	// BookingID is the stable booking identifier (fahrtneu_id), kept verbatim
	// as exported. It is the key used to match rows across overlapping files.
	BookingID string

	ReservationStart time.Time // anfang
	ReservationEnd   time.Time // ende
	TripStart        time.Time // fahrt_anfang
	TripEnd          time.Time // fahrt_ende

	// Raw holds every source column of the row in header order, so the merged
	// output keeps the full input schema, not just the five parsed columns.
	// Nil for bookings reconstructed from the database.
	Raw []string
}
