// Package handler — imports.go implements the /imports endpoints: triggering
// a combine-and-verify run over a list of source files and inspecting past runs.
package handler

import (
	"encoding/json"
	"net/http"
)

// createImportRequest is the body of POST /imports.
type createImportRequest struct {
	// Files lists the source CSV paths. The pipeline sorts them
	// lexicographically; the caller's order does not matter.
	Files []string `json:"files"`
}

// CreateImport handles POST /imports. It runs the full pipeline synchronously
// and returns the finished run on success. Pipeline failures surface as 409
// (data integrity) or 422 (parse/validation) with both file names in the message.
func (s *Server) CreateImport(w http.ResponseWriter, r *http.Request) {
	var req createImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be JSON with a \"files\" array")
		return
	}
	if len(req.Files) == 0 {
		requestError(w, "files must not be empty")
		return
	}

	run, err := s.imports.Run(r.Context(), req.Files)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, run)
}

// GetImport handles GET /imports/{id}.
func (s *Server) GetImport(w http.ResponseWriter, r *http.Request) {
	id, ok := runIDParam(r)
	if !ok {
		requestError(w, "id must be a valid UUID")
		return
	}

	run, err := s.imports.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// ListImports handles GET /imports.
func (s *Server) ListImports(w http.ResponseWriter, r *http.Request) {
	runs, err := s.imports.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}
