package timeline

import (
	"context"
	"log/slog"
	"time"
)

// GapWarning describes a within-tolerance gap between two adjacent files.
// It is informational: the pipeline continues after emitting it.
type GapWarning struct {
	EarlierFile string
	LaterFile   string

	// Last is the latest reservation start in the earlier file,
	// First the earliest in the later file.
	Last  time.Time
	First time.Time
}

// WarningSink receives non-fatal events from the pipeline. The sink is an
// injected capability rather than a package-level logger so tests can observe
// warnings directly and the pipeline carries no ambient global state.
type WarningSink interface {
	GapDetected(ctx context.Context, w GapWarning)
}

// NewSlogSink returns a WarningSink that logs each gap as a structured
// warning line via the provided slog.Logger.
func NewSlogSink(log *slog.Logger) WarningSink {
	return &slogSink{log: log}
}

type slogSink struct {
	log *slog.Logger
}

func (s *slogSink) GapDetected(ctx context.Context, w GapWarning) {
	s.log.WarnContext(ctx, "no overlap between files",
		"earlier_file", w.EarlierFile,
		"later_file", w.LaterFile,
		"last", w.Last,
		"first", w.First,
		"gap", w.First.Sub(w.Last).String(),
	)
}

// nopSink is used when the caller passes a nil sink.
type nopSink struct{}

func (nopSink) GapDetected(context.Context, GapWarning) {}
