package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// Writer persists a RecordSet back to CSV in the same encoding and delimiter
// the Reader accepts, so a merged timeline is a drop-in replacement for the
// source files it was built from.
type Writer struct {
	enc   encoding.Encoding
	delim rune
}

// NewWriter constructs a Writer for the given character encoding and field
// delimiter. Supported encodings match NewReader.
func NewWriter(encodingName string, delimiter rune) (*Writer, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("csvio.NewWriter: %w", err)
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &Writer{enc: enc, delim: delimiter}, nil
}

// Write encodes the set's header row and every booking's raw source row to w.
// Bookings reconstructed from the database carry no raw row; Write fails on
// those because the original column layout cannot be recovered.
func (wr *Writer) Write(w io.Writer, set *domain.RecordSet) error {
	tw := transform.NewWriter(w, wr.enc.NewEncoder())
	cw := csv.NewWriter(tw)
	cw.Comma = wr.delim

	if err := cw.Write(set.Header); err != nil {
		return fmt.Errorf("csvio.Writer.Write: header: %w", err)
	}
	for i, b := range set.Bookings {
		if b.Raw == nil {
			return fmt.Errorf("csvio.Writer.Write: booking %s has no raw source row", b.BookingID)
		}
		if err := cw.Write(b.Raw); err != nil {
			return fmt.Errorf("csvio.Writer.Write: row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csvio.Writer.Write: flush: %w", err)
	}
	return tw.Close()
}

// WriteFile writes the set to the named file, creating or truncating it.
func (wr *Writer) WriteFile(path string, set *domain.RecordSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvio.Writer.WriteFile: %w", err)
	}
	if err := wr.Write(f, set); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
