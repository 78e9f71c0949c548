package csvio_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitag/fahrtenlog/internal/csvio"
	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// writeFixture drops raw bytes into a temp file and returns its path.
// Fixtures are byte slices, not strings, so tests can encode ISO-8859-1
// content exactly as the upstream exporter does.
func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// latin1Fixture is a two-row export in the exporter's native format:
// ISO-8859-1, ";" delimiter, one extra column beyond the required five.
// 0xFC is "ü" in ISO-8859-1 ("Nürnberg").
var latin1Fixture = []byte("fahrtneu_id;anfang;ende;fahrt_anfang;fahrt_ende;ort\n" +
	"101;2023-05-01 08:00:00;2023-05-01 09:00:00;2023-05-01 08:05:00;2023-05-01 08:55:00;N\xfcrnberg\n" +
	"102;2023-05-01 10:30:00;2023-05-01 12:00:00;2023-05-01 10:40:00;2023-05-01 11:50:00;Erlangen\n")

func TestReader_Load(t *testing.T) {
	path := writeFixture(t, "fahrten.csv", latin1Fixture)

	r, err := csvio.NewReader(csvio.DefaultEncoding, csvio.DefaultDelimiter)
	require.NoError(t, err)

	set, err := r.Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, path, set.File)
	assert.Equal(t, []string{"fahrtneu_id", "anfang", "ende", "fahrt_anfang", "fahrt_ende", "ort"}, set.Header)
	require.Equal(t, 2, set.Len())

	first := set.Bookings[0]
	assert.Equal(t, "101", first.BookingID)
	assert.True(t, first.ReservationStart.Equal(time.Date(2023, 5, 1, 8, 0, 0, 0, time.UTC)))
	assert.True(t, first.TripEnd.Equal(time.Date(2023, 5, 1, 8, 55, 0, 0, time.UTC)))

	// The decoder must have turned 0xFC into a proper UTF-8 "ü",
	// and the extra column must survive untouched in the raw row.
	assert.Equal(t, "Nürnberg", first.Raw[5])

	assert.True(t, set.MinStart().Equal(time.Date(2023, 5, 1, 8, 0, 0, 0, time.UTC)))
	assert.True(t, set.MaxStart().Equal(time.Date(2023, 5, 1, 10, 30, 0, 0, time.UTC)))
}

func TestReader_Load_UTF8WithCommaDelimiter(t *testing.T) {
	fixture := []byte("fahrtneu_id,anfang,ende,fahrt_anfang,fahrt_ende\n" +
		"7,2023-05-01 08:00:00,2023-05-01 09:00:00,2023-05-01 08:00:00,2023-05-01 09:00:00\n")
	path := writeFixture(t, "utf8.csv", fixture)

	r, err := csvio.NewReader("utf-8", ',')
	require.NoError(t, err)

	set, err := r.Load(context.Background(), path)

	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "7", set.Bookings[0].BookingID)
}

func TestReader_Load_MissingColumns(t *testing.T) {
	fixture := []byte("fahrtneu_id;anfang;ende\n1;2023-05-01 08:00:00;2023-05-01 09:00:00\n")
	path := writeFixture(t, "short.csv", fixture)

	r, err := csvio.NewReader(csvio.DefaultEncoding, csvio.DefaultDelimiter)
	require.NoError(t, err)

	_, err = r.Load(context.Background(), path)

	require.ErrorIs(t, err, domain.ErrParse)
	// The error must name every missing column so the caller can fix the
	// export in one pass.
	assert.ErrorContains(t, err, "fahrt_anfang")
	assert.ErrorContains(t, err, "fahrt_ende")
}

func TestReader_Load_UnparseableTimestamp(t *testing.T) {
	fixture := []byte("fahrtneu_id;anfang;ende;fahrt_anfang;fahrt_ende\n" +
		"1;not-a-date;2023-05-01 09:00:00;2023-05-01 08:00:00;2023-05-01 09:00:00\n")
	path := writeFixture(t, "bad.csv", fixture)

	r, err := csvio.NewReader(csvio.DefaultEncoding, csvio.DefaultDelimiter)
	require.NoError(t, err)

	_, err = r.Load(context.Background(), path)

	require.ErrorIs(t, err, domain.ErrParse)
	assert.ErrorContains(t, err, "anfang")
	assert.ErrorContains(t, err, "not-a-date")
}

func TestReader_Load_HeaderOnly(t *testing.T) {
	fixture := []byte("fahrtneu_id;anfang;ende;fahrt_anfang;fahrt_ende\n")
	path := writeFixture(t, "empty.csv", fixture)

	r, err := csvio.NewReader(csvio.DefaultEncoding, csvio.DefaultDelimiter)
	require.NoError(t, err)

	_, err = r.Load(context.Background(), path)

	require.ErrorIs(t, err, domain.ErrParse)
	assert.ErrorContains(t, err, "no data rows")
}

func TestReader_Load_FileMissing(t *testing.T) {
	r, err := csvio.NewReader(csvio.DefaultEncoding, csvio.DefaultDelimiter)
	require.NoError(t, err)

	_, err = r.Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))

	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestNewReader_UnsupportedEncoding(t *testing.T) {
	_, err := csvio.NewReader("ebcdic", ';')

	require.Error(t, err)
	assert.ErrorContains(t, err, "ebcdic")
}

// A merged set written back out must load again byte-identically in content:
// same header, same rows, same ISO-8859-1 umlauts.
func TestWriter_RoundTrip(t *testing.T) {
	srcPath := writeFixture(t, "src.csv", latin1Fixture)

	r, err := csvio.NewReader(csvio.DefaultEncoding, csvio.DefaultDelimiter)
	require.NoError(t, err)
	set, err := r.Load(context.Background(), srcPath)
	require.NoError(t, err)

	w, err := csvio.NewWriter(csvio.DefaultEncoding, csvio.DefaultDelimiter)
	require.NoError(t, err)
	outPath := filepath.Join(t.TempDir(), "merged.csv")
	require.NoError(t, w.WriteFile(outPath, set))

	reloaded, err := r.Load(context.Background(), outPath)
	require.NoError(t, err)

	assert.Equal(t, set.Header, reloaded.Header)
	require.Equal(t, set.Len(), reloaded.Len())
	for i := range set.Bookings {
		assert.Equal(t, set.Bookings[i].Raw, reloaded.Bookings[i].Raw)
	}
}

func TestWriter_RejectsBookingWithoutRawRow(t *testing.T) {
	set := domain.NewRecordSet("", []string{"fahrtneu_id", "anfang", "ende", "fahrt_anfang", "fahrt_ende"},
		[]domain.Booking{{BookingID: "1"}})

	w, err := csvio.NewWriter(csvio.DefaultEncoding, csvio.DefaultDelimiter)
	require.NoError(t, err)

	err = w.WriteFile(filepath.Join(t.TempDir(), "out.csv"), set)

	require.Error(t, err)
	assert.ErrorContains(t, err, "no raw source row")
}
