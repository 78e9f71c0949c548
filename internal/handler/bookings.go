// Package handler — bookings.go implements GET /imports/{id}/bookings:
// reading a persisted merged timeline back out, optionally bounded to a
// reservation-start range.
package handler

import (
	"net/http"
	"time"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// bookingResponse serializes one merged booking. The JSON keys are the
// exporter's German column names, matching the CSV schema downstream tooling
// already understands.
type bookingResponse struct {
	BookingID        string    `json:"fahrtneu_id"`
	ReservationStart time.Time `json:"anfang"`
	ReservationEnd   time.Time `json:"ende"`
	TripStart        time.Time `json:"fahrt_anfang"`
	TripEnd          time.Time `json:"fahrt_ende"`
}

// ListBookings handles GET /imports/{id}/bookings.
// Optional query parameters "from" and "to" (RFC 3339) bound the
// reservation-start range.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	id, ok := runIDParam(r)
	if !ok {
		requestError(w, "id must be a valid UUID")
		return
	}

	from, ok := timeQueryParam(r, "from")
	if !ok {
		requestError(w, "from must be an RFC 3339 timestamp")
		return
	}
	to, ok := timeQueryParam(r, "to")
	if !ok {
		requestError(w, "to must be an RFC 3339 timestamp")
		return
	}

	bookings, err := s.bookings.ListByRun(r.Context(), id, from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		BookingID:        b.BookingID,
		ReservationStart: b.ReservationStart,
		ReservationEnd:   b.ReservationEnd,
		TripStart:        b.TripStart,
		TripEnd:          b.TripEnd,
	}
}

// timeQueryParam parses an optional RFC 3339 query parameter.
// An absent or empty parameter yields the zero time (open bound).
func timeQueryParam(r *http.Request, name string) (time.Time, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, v)
	return t, err == nil
}
