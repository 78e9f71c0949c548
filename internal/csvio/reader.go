// Package csvio reads and writes Fahrten CSV exports.
// The upstream exporter emits ISO-8859-1 encoded files with ";" as the field
// delimiter; both are configurable because older exports used other formats.
// No validation or merge logic lives here — only file I/O and column parsing.
package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// Defaults matching the upstream exporter's output format.
const (
	DefaultEncoding  = "iso-8859-1"
	DefaultDelimiter = ';'
)

// requiredColumns must all be present in a source file's header row.
// The names are case-sensitive and match the exporter's schema verbatim.
var requiredColumns = []string{
	domain.ColReservationStart,
	domain.ColReservationEnd,
	domain.ColTripStart,
	domain.ColTripEnd,
	domain.ColBookingID,
}

// timeLayouts are tried in order when parsing a timestamp column.
// The exporter writes "2006-01-02 15:04:05"; the other layouts cover
// hand-edited files and older export versions.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"2006-01-02",
}

// Reader loads Fahrten CSV files into domain.RecordSets.
// A Reader is stateless and safe for concurrent use.
type Reader struct {
	enc   encoding.Encoding
	delim rune
}

// NewReader constructs a Reader for the given character encoding and field
// delimiter. Supported encodings: "iso-8859-1" (alias "latin1") and "utf-8".
func NewReader(encodingName string, delimiter rune) (*Reader, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("csvio.NewReader: %w", err)
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &Reader{enc: enc, delim: delimiter}, nil
}

// Load reads one source file into a RecordSet with all four timestamp columns
// parsed. It returns an error wrapping domain.ErrParse when the file cannot
// be read, a required column is missing, a timestamp does not parse, or the
// file contains no data rows.
func (r *Reader) Load(ctx context.Context, file string) (*domain.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("csvio.Reader.Load: %s: %w", file, err)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("csvio.Reader.Load: %w: %v", domain.ErrParse, err)
	}
	defer f.Close()

	cr := csv.NewReader(transform.NewReader(f, r.enc.NewDecoder()))
	cr.Comma = r.delim

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csvio.Reader.Load: %s: %w: reading header: %v", file, domain.ErrParse, err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, fmt.Errorf("csvio.Reader.Load: %s: %w", file, err)
	}

	var bookings []domain.Booking
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvio.Reader.Load: %s: %w: %v", file, domain.ErrParse, err)
		}

		b, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("csvio.Reader.Load: %s: row %d: %w", file, len(bookings)+2, err)
		}
		bookings = append(bookings, b)
	}

	if len(bookings) == 0 {
		// An empty file has no min/max reservation start, so it cannot take
		// part in boundary classification. Reject it here rather than let the
		// pipeline compare against zero times.
		return nil, fmt.Errorf("csvio.Reader.Load: %s: %w: no data rows", file, domain.ErrParse)
	}

	return domain.NewRecordSet(file, header, bookings), nil
}

// columnIndexes holds the position of each required column in the header.
type columnIndexes struct {
	bookingID, resStart, resEnd, tripStart, tripEnd int
}

// locateColumns maps the required column names to header positions.
// The error names every missing column, not just the first.
func locateColumns(header []string) (columnIndexes, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[name] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := pos[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columnIndexes{}, fmt.Errorf("%w: missing required columns: %s",
			domain.ErrParse, strings.Join(missing, ", "))
	}

	return columnIndexes{
		bookingID: pos[domain.ColBookingID],
		resStart:  pos[domain.ColReservationStart],
		resEnd:    pos[domain.ColReservationEnd],
		tripStart: pos[domain.ColTripStart],
		tripEnd:   pos[domain.ColTripEnd],
	}, nil
}

// parseRow converts one CSV row into a Booking, keeping the raw row alongside
// the parsed columns.
func parseRow(row []string, cols columnIndexes) (domain.Booking, error) {
	b := domain.Booking{
		BookingID: row[cols.bookingID],
		Raw:       row,
	}

	var err error
	if b.ReservationStart, err = parseTimestamp(domain.ColReservationStart, row[cols.resStart]); err != nil {
		return domain.Booking{}, err
	}
	if b.ReservationEnd, err = parseTimestamp(domain.ColReservationEnd, row[cols.resEnd]); err != nil {
		return domain.Booking{}, err
	}
	if b.TripStart, err = parseTimestamp(domain.ColTripStart, row[cols.tripStart]); err != nil {
		return domain.Booking{}, err
	}
	if b.TripEnd, err = parseTimestamp(domain.ColTripEnd, row[cols.tripEnd]); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

// parseTimestamp tries each supported layout in order.
func parseTimestamp(column, value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: column %q: unparseable timestamp %q", domain.ErrParse, column, value)
}

// lookupEncoding resolves an encoding name to its x/text implementation.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DefaultEncoding, "latin1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "utf-8", "utf8":
		return encoding.Nop, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
