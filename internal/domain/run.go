package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportRun is one execution of the combine-and-verify pipeline that was
// persisted to the database. It records which files went in and how many
// merged rows came out, so imports are auditable after the fact.
type ImportRun struct {
	ID          uuid.UUID  `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"` // nil while the run is in flight or after a failed run
	SourceFiles []string   `json:"source_files"`
	RowCount    int        `json:"row_count"`
}
