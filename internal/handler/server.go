// Package handler implements the HTTP handlers for the Fahrtenlog API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, imports.go, bookings.go, export.go) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// ImportServicer defines the business operations the import handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or pipeline.
type ImportServicer interface {
	Run(ctx context.Context, files []string) (domain.ImportRun, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.ImportRun, error)
	List(ctx context.Context) ([]domain.ImportRun, error)
}

// BookingServicer defines the read operations the booking handlers depend on.
type BookingServicer interface {
	ListByRun(ctx context.Context, runID uuid.UUID, from, to time.Time) ([]domain.Booking, error)
}

// Server holds the dependencies shared by all API endpoints.
type Server struct {
	imports  ImportServicer
	bookings BookingServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(imports ImportServicer, bookings BookingServicer) *Server {
	return &Server{imports: imports, bookings: bookings}
}

// Routes returns the chi router with every API endpoint registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Post("/imports", s.CreateImport)
	r.Get("/imports", s.ListImports)
	r.Get("/imports/{id}", s.GetImport)
	r.Get("/imports/{id}/bookings", s.ListBookings)
	r.Get("/imports/{id}/export", s.ExportCSV)
	return r
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck — the client is gone if this fails; nothing to do.
	json.NewEncoder(w).Encode(v)
}

// runIDParam parses the {id} URL parameter as a UUID.
func runIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}
