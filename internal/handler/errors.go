package handler

import (
	"errors"
	"net/http"

	"github.com/mfreitag/fahrtenlog/internal/domain"
)

// ErrorResponse is the JSON body returned for every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain errors to HTTP status codes and stable error codes.
//
// Data-integrity failures of the pipeline (overlap mismatches, oversized gaps)
// map to 409 Conflict: the request was well-formed, but the source files
// contradict each other. Parse and validation failures map to 422.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not_found", err))
	case errors.Is(err, domain.ErrOverlapLength):
		writeJSON(w, http.StatusConflict, errorBody("overlap_length_mismatch", err))
	case errors.Is(err, domain.ErrOverlapIdentity):
		writeJSON(w, http.StatusConflict, errorBody("overlap_identity_mismatch", err))
	case errors.Is(err, domain.ErrGapTooLarge):
		writeJSON(w, http.StatusConflict, errorBody("gap_too_large", err))
	case errors.Is(err, domain.ErrParse):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("parse_error", err))
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", err))
	default:
		// Do not leak internals for unexpected failures.
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}

// requestError writes a 422 for requests rejected before reaching the service
// layer (e.g. malformed body or URL parameter).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorDetail{Code: "validation_error", Message: message},
	})
}

func errorBody(code string, err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: err.Error()}}
}
