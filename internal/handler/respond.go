package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/service"
	"github.com/sadieom/BiblioMatch/internal/validation"
)

// maxBodyBytes límite para los bodies JSON.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError responde {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeValidationError responde 400 con el detalle por campo.
func writeValidationError(w http.ResponseWriter, err error) {
	body := map[string]any{"error": "Validation failed"}
	var ve *validation.Error
	if errors.As(err, &ve) {
		body["fields"] = ve.Fields
	}
	writeJSON(w, http.StatusBadRequest, body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	return nil
}

// writeServiceError traduce los errores de service a códigos HTTP.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Error().Err(err).Str("path", r.URL.Path).Msg("request falló")
	}
	writeError(w, status, msg)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		return http.StatusNotFound, "Book not found"
	case errors.Is(err, service.ErrProcessing):
		return http.StatusInternalServerError, "Error processing book data"
	case errors.Is(err, service.ErrModelNotLoaded):
		return http.StatusServiceUnavailable, "Model not loaded"
	case errors.Is(err, service.ErrNoActiveModel):
		return http.StatusNotFound, "No active model"
	case errors.Is(err, service.ErrVersionNotFound):
		return http.StatusNotFound, "Model version not found"
	case errors.Is(err, service.ErrAlreadyOnShelf):
		return http.StatusConflict, "Book already on bookshelf"
	case errors.Is(err, service.ErrNotOnShelf):
		return http.StatusNotFound, "Book not on bookshelf"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, service.ErrDetailsNotFound):
		return http.StatusNotFound, "No description found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
