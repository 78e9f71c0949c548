package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing file list, from after to).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrParse is returned by the record loader when a source file cannot be read,
// a required column is missing, or a timestamp does not parse.
var ErrParse = errors.New("parse error")

// ErrInvalidInput is returned by the pipeline when it is called with a
// malformed record-set sequence (empty, nil set, mismatched headers).
var ErrInvalidInput = errors.New("invalid input")

// ErrOverlapLength is the sentinel wrapped by OverlapLengthError.
var ErrOverlapLength = errors.New("overlap length mismatch")

// ErrOverlapIdentity is the sentinel wrapped by OverlapIdentityError.
var ErrOverlapIdentity = errors.New("overlap identity mismatch")

// ErrGapTooLarge is the sentinel wrapped by GapError.
var ErrGapTooLarge = errors.New("gap too large")

// OverlapLengthError reports that the overlapping regions of two adjacent
// files contain a different number of bookings. The exporter re-emits
// trailing records identically, so any disagreement means the data is
// corrupt upstream — fatal, never recovered internally.
type OverlapLengthError struct {
	EarlierFile string
	LaterFile   string
	EarlierLen  int
	LaterLen    int
}

func (e *OverlapLengthError) Error() string {
	return fmt.Sprintf("overlapping bookings have different lengths between %s (%d rows) and %s (%d rows)",
		e.EarlierFile, e.EarlierLen, e.LaterFile, e.LaterLen)
}

func (e *OverlapLengthError) Unwrap() error { return ErrOverlapLength }

// OverlapIdentityError reports that the overlapping regions of two adjacent
// files reference different booking IDs even though their lengths match.
type OverlapIdentityError struct {
	EarlierFile string
	LaterFile   string
}

func (e *OverlapIdentityError) Error() string {
	return fmt.Sprintf("overlapping bookings do not align between %s and %s", e.EarlierFile, e.LaterFile)
}

func (e *OverlapIdentityError) Unwrap() error { return ErrOverlapIdentity }

// GapError reports a gap between two adjacent files that exceeds the
// configured tolerance.
type GapError struct {
	EarlierFile string
	LaterFile   string
	Gap         time.Duration
	Threshold   time.Duration
}

func (e *GapError) Error() string {
	return fmt.Sprintf("no overlap and time difference %s greater than %s between %s and %s",
		e.Gap, e.Threshold, e.EarlierFile, e.LaterFile)
}

func (e *GapError) Unwrap() error { return ErrGapTooLarge }
