package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/calegria/bookstore-backend/internal/domain"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error   string        `json:"error"`
	Fields  []fieldError  `json:"fields,omitempty"`
	Details *stockDetails `json:"details,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// stockDetails accompanies insufficient-stock errors so clients can show
// how many copies are actually left.
type stockDetails struct {
	Available int `json:"available"`
	Requested int `json:"requested"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps domain errors to HTTP status codes. Unknown errors
// become opaque 500s; the details stay in the server log.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		verr *domain.ValidationError
		ise  *domain.InsufficientStockError
	)

	switch {
	case errors.As(err, &verr):
		resp := errorResponse{Error: "validation failed"}
		for _, fe := range verr.Errors {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)

	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.As(err, &ise):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:   ise.Error(),
			Details: &stockDetails{Available: ise.Available, Requested: ise.Requested},
		})

	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})

	case errors.Is(err, domain.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "already exists"})

	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "conflict"})

	default:
		log.ErrorContext(r.Context(), "internal error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
