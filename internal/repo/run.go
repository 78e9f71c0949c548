// Package repo contains all database access logic for the Fahrtenlog API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// RunRepo defines the persistence operations for import runs.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type RunRepo interface {
	// Create inserts a new run in its started state and returns the persisted
	// record (with DB-generated started_at populated).
	Create(ctx context.Context, run domain.ImportRun) (domain.ImportRun, error)

	// Finish marks a run as completed with the given merged row count.
	// Returns domain.ErrNotFound if no run with that ID exists.
	Finish(ctx context.Context, id uuid.UUID, rowCount int) (domain.ImportRun, error)

	// GetByID retrieves a single run by its UUID primary key.
	// Returns domain.ErrNotFound if no run with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.ImportRun, error)

	// List returns all runs ordered by started_at descending.
	List(ctx context.Context) ([]domain.ImportRun, error)
}

// pgRunRepo is the Postgres implementation of RunRepo.
type pgRunRepo struct {
	db db
}

// NewRunRepo constructs a RunRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRunRepo(db db) RunRepo {
	return &pgRunRepo{db: db}
}

// Create inserts a new run row and returns the full persisted record.
func (r *pgRunRepo) Create(ctx context.Context, run domain.ImportRun) (domain.ImportRun, error) {
	const q = `
		INSERT INTO import_runs (id, source_files)
		VALUES (@id, @source_files)
		RETURNING id, started_at, finished_at, source_files, row_count`

	args := pgx.NamedArgs{
		"id":           run.ID,
		"source_files": run.SourceFiles,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRun(row)
	if err != nil {
		return domain.ImportRun{}, fmt.Errorf("repo.RunRepo.Create: %w", err)
	}
	return result, nil
}

// Finish stamps finished_at and records the merged row count.
func (r *pgRunRepo) Finish(ctx context.Context, id uuid.UUID, rowCount int) (domain.ImportRun, error) {
	const q = `
		UPDATE import_runs
		SET finished_at = now(),
		    row_count   = @row_count
		WHERE id = @id
		RETURNING id, started_at, finished_at, source_files, row_count`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "row_count": rowCount})
	result, err := scanRun(row)
	if err != nil {
		return domain.ImportRun{}, fmt.Errorf("repo.RunRepo.Finish: %w", err)
	}
	return result, nil
}

// GetByID retrieves a run by primary key.
func (r *pgRunRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ImportRun, error) {
	const q = `
		SELECT id, started_at, finished_at, source_files, row_count
		FROM import_runs
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRun(row)
	if err != nil {
		return domain.ImportRun{}, fmt.Errorf("repo.RunRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all runs, most recent first.
func (r *pgRunRepo) List(ctx context.Context) ([]domain.ImportRun, error) {
	const q = `
		SELECT id, started_at, finished_at, source_files, row_count
		FROM import_runs
		ORDER BY started_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RunRepo.List: %w", err)
	}
	defer rows.Close()

	var runs []domain.ImportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RunRepo.List: scan: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RunRepo.List: rows: %w", err)
	}

	return runs, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanRun to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanRun maps a single database row into a domain.ImportRun.
// It handles the UUID and nullable finished_at conversions.
func scanRun(s scanner) (domain.ImportRun, error) {
	var (
		run        domain.ImportRun
		id         pgtype.UUID
		finishedAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &run.StartedAt, &finishedAt, &run.SourceFiles, &run.RowCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ImportRun{}, domain.ErrNotFound
		}
		return domain.ImportRun{}, err
	}

	run.ID = uuid.UUID(id.Bytes)
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}

	return run, nil
}
