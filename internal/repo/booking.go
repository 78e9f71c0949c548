package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// BookingRepo defines the persistence operations for merged booking timelines.
type BookingRepo interface {
	// InsertTimeline bulk-inserts every booking of a merged record set under
	// the given run ID and returns the number of rows written. The parent run
	// must already exist.
	InsertTimeline(ctx context.Context, runID uuid.UUID, set *domain.RecordSet) (int64, error)

	// ListByRun returns the bookings of one run ordered by reservation start.
	// A zero from/to leaves the corresponding bound open.
	ListByRun(ctx context.Context, runID uuid.UUID, from, to time.Time) ([]domain.Booking, error)
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

// bookingColumns is the insert column order used by InsertTimeline.
var bookingColumns = []string{"run_id", "fahrtneu_id", "anfang", "ende", "fahrt_anfang", "fahrt_ende"}

// InsertTimeline writes the merged set via COPY, which is far faster than
// row-by-row INSERTs for the tens of thousands of rows a full merge produces.
func (r *pgBookingRepo) InsertTimeline(ctx context.Context, runID uuid.UUID, set *domain.RecordSet) (int64, error) {
	rows := make([][]any, 0, set.Len())
	for _, b := range set.Bookings {
		rows = append(rows, []any{
			runID, b.BookingID, b.ReservationStart, b.ReservationEnd, b.TripStart, b.TripEnd,
		})
	}

	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"bookings"}, bookingColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("repo.BookingRepo.InsertTimeline: %w", err)
	}
	return n, nil
}

// ListByRun returns one run's bookings ordered by reservation start ascending.
func (r *pgBookingRepo) ListByRun(ctx context.Context, runID uuid.UUID, from, to time.Time) ([]domain.Booking, error) {
	const q = `
		SELECT fahrtneu_id, anfang, ende, fahrt_anfang, fahrt_ende
		FROM bookings
		WHERE run_id = @run_id
		  AND (@from::timestamptz IS NULL OR anfang >= @from)
		  AND (@to::timestamptz   IS NULL OR anfang <= @to)
		ORDER BY anfang ASC`

	args := pgx.NamedArgs{
		"run_id": runID,
		"from":   nullableTime(from),
		"to":     nullableTime(to),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByRun: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.BookingID, &b.ReservationStart, &b.ReservationEnd, &b.TripStart, &b.TripEnd); err != nil {
			return nil, fmt.Errorf("repo.BookingRepo.ListByRun: scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByRun: rows: %w", err)
	}

	return bookings, nil
}

// nullableTime maps the zero time to NULL so the SQL bound stays open.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
