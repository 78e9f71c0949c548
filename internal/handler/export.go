// Package handler — export.go implements GET /imports/{id}/export: a
// persisted merged timeline as a downloadable CSV.
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// csvHeaders defines the column names written as the first row of the export.
// Rows read back from the database carry only the five canonical columns;
// extra source columns are preserved in file exports, not database exports.
var csvHeaders = []string{
	domain.ColBookingID,
	domain.ColReservationStart,
	domain.ColReservationEnd,
	domain.ColTripStart,
	domain.ColTripEnd,
}

// exportTimeLayout is the exporter's timestamp format, reused so the output
// round-trips through the record loader.
const exportTimeLayout = "2006-01-02 15:04:05"

// ExportCSV handles GET /imports/{id}/export.
// It returns the run's full merged timeline as a ";"-delimited CSV ordered by
// reservation start.
func (s *Server) ExportCSV(w http.ResponseWriter, r *http.Request) {
	id, ok := runIDParam(r)
	if !ok {
		requestError(w, "id must be a valid UUID")
		return
	}

	bookings, err := s.bookings.ListByRun(r.Context(), id, time.Time{}, time.Time{})
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Comma = ';'

	//nolint:errcheck — bytes.Buffer writes never fail.
	cw.Write(csvHeaders)
	for _, b := range bookings {
		//nolint:errcheck
		cw.Write([]string{
			b.BookingID,
			b.ReservationStart.Format(exportTimeLayout),
			b.ReservationEnd.Format(exportTimeLayout),
			b.TripStart.Format(exportTimeLayout),
			b.TripEnd.Format(exportTimeLayout),
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", `attachment; filename="fahrten_merged.csv"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	buf.WriteTo(w)
}
