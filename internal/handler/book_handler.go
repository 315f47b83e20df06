package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/models"
	"github.com/sadieom/BiblioMatch/internal/service"
)

// DetailsFinder lo que usa BookHandler.
type DetailsFinder interface {
	Details(ctx context.Context, isbn, title string) (*models.BookDetails, error)
}

type BookHandler struct {
	svc DetailsFinder
}

func NewBookHandler(s DetailsFinder) *BookHandler {
	return &BookHandler{svc: s}
}

// @Summary Descripción de un libro
// @Description Consulta Open Library y Google Books por ISBN (y por título como último intento)
// @Tags books
// @Produce json
// @Param isbn path string true "ISBN"
// @Param title query string false "título para la búsqueda por nombre"
// @Success 200 {object} models.BookDetails
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/books/{isbn}/details [get]
func (h *BookHandler) Details(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimSpace(chi.URLParam(r, "isbn"))
	if isbn == "" {
		writeError(w, http.StatusBadRequest, "No isbn provided")
		return
	}

	d, err := h.svc.Details(r.Context(), isbn, strings.TrimSpace(r.URL.Query().Get("title")))
	if err != nil {
		if errors.Is(err, service.ErrDetailsNotFound) {
			writeServiceError(w, r, err)
			return
		}
		logging.Warn().Err(err).Str("isbn", isbn).Msg("proveedores externos fallaron")
		writeError(w, http.StatusBadGateway, "External lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, d)
}
