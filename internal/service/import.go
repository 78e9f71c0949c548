// Package service contains the business logic for the Fahrtenlog API.
// Services validate inputs, enforce business rules, and orchestrate the
// pipeline and repo calls. No SQL and no CSV parsing live here — services
// depend on interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfreitag/fahrtenlog/internal/domain"
	"github.com/mfreitag/fahrtenlog/internal/repo"
)

// Combiner is the slice of the pipeline the import service depends on.
// timeline.Combiner is the production implementation.
type Combiner interface {
	CombineAndVerify(ctx context.Context, files []string) (*domain.RecordSet, error)
}

// ImportService runs the combine-and-verify pipeline over a set of source
// files and persists the merged timeline.
type ImportService struct {
	combiner Combiner
	runs     repo.RunRepo
	bookings repo.BookingRepo
}

// NewImportService constructs an ImportService backed by the provided
// pipeline and repos.
func NewImportService(combiner Combiner, runs repo.RunRepo, bookings repo.BookingRepo) *ImportService {
	return &ImportService{combiner: combiner, runs: runs, bookings: bookings}
}

// Run executes one import: validate input, record the run, combine-and-verify
// the files, persist the merged rows, and stamp the run finished.
//
// A failed pipeline leaves the run row behind with a nil FinishedAt, which is
// how aborted imports stay visible for diagnosis. Pipeline errors are passed
// through unwrapped-able: callers can errors.Is against the domain sentinels.
func (s *ImportService) Run(ctx context.Context, files []string) (domain.ImportRun, error) {
	if len(files) == 0 {
		return domain.ImportRun{}, fmt.Errorf("service.ImportService.Run: %w: no source files given", domain.ErrValidation)
	}

	run, err := s.runs.Create(ctx, domain.ImportRun{ID: uuid.New(), SourceFiles: files})
	if err != nil {
		return domain.ImportRun{}, fmt.Errorf("service.ImportService.Run: %w", err)
	}

	merged, err := s.combiner.CombineAndVerify(ctx, files)
	if err != nil {
		return domain.ImportRun{}, fmt.Errorf("service.ImportService.Run: %w", err)
	}

	n, err := s.bookings.InsertTimeline(ctx, run.ID, merged)
	if err != nil {
		return domain.ImportRun{}, fmt.Errorf("service.ImportService.Run: %w", err)
	}

	finished, err := s.runs.Finish(ctx, run.ID, int(n))
	if err != nil {
		return domain.ImportRun{}, fmt.Errorf("service.ImportService.Run: %w", err)
	}
	return finished, nil
}

// GetByID returns a single import run.
func (s *ImportService) GetByID(ctx context.Context, id uuid.UUID) (domain.ImportRun, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return domain.ImportRun{}, fmt.Errorf("service.ImportService.GetByID: %w", err)
	}
	return run, nil
}

// List returns all import runs, most recent first.
func (s *ImportService) List(ctx context.Context) ([]domain.ImportRun, error) {
	runs, err := s.runs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ImportService.List: %w", err)
	}
	return runs, nil
}
