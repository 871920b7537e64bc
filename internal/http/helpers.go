package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// statusForError maps domain errors onto the HTTP taxonomy: validation
// and conflicts are 400, missing records 404, auth failures 401,
// everything else 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrConflict),
		errors.Is(err, core.ErrMissingFields),
		errors.Is(err, core.ErrEmptyText),
		errors.Is(err, core.ErrMissingAmount),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrEmptyTitle),
		errors.Is(err, core.ErrInvalidTarget),
		errors.Is(err, core.ErrMissingDeadline):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeMessage writes the {message} error envelope used by the auth,
// budget and goal handlers.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeMessageError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
		message = "Server Error"
	}
	writeMessage(w, status, message)
}

// writeTransactionError writes the {success:false, error} envelope used
// by the transaction handlers.
func writeTransactionError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}

func transactionError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
		message = "Server Error"
	}
	writeTransactionError(w, status, message)
}

// flexibleNumber decodes a JSON number given either as a number or as a
// numeric string, matching the loose contract of the original clients.
type flexibleNumber float64

func (n *flexibleNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*n = flexibleNumber(v)
	return nil
}
