package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/domain"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error     string                   `json:"error"`
	Errors    []domain.ValidationError `json:"errors,omitempty"`
	RequestID string                   `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps domain errors onto status codes. Unexpected errors are
// logged and hidden behind a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	requestID := logger.RequestID(r.Context())
	resp := ErrorResponse{Error: err.Error(), RequestID: requestID}

	var verrs domain.ValidationErrors
	var status int
	switch {
	case errors.As(err, &verrs):
		status = http.StatusBadRequest
		resp.Error = "Validation failed"
		resp.Errors = verrs
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	default:
		log.Error("request_failed", "Unhandled error", requestID, map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		}, err)
		status = http.StatusInternalServerError
		resp.Error = "Internal server error"
	}

	writeJSON(w, status, resp)
}

// decodeJSON reads one JSON object from the body. A malformed body is a
// validation failure on "body".
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("body", "request body is required")
		}
		return domain.NewValidationError("body", "invalid JSON body: "+err.Error())
	}
	return nil
}
