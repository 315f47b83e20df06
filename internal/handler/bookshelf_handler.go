package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sadieom/BiblioMatch/internal/models"
	"github.com/sadieom/BiblioMatch/internal/validation"
)

// Shelf lo que usan los handlers del estante.
type Shelf interface {
	List(ctx context.Context, userID int) ([]models.ShelfItem, error)
	Add(ctx context.Context, userID int, bookName string) (*models.ShelfItem, error)
	Remove(ctx context.Context, userID int, title string) error
	Recommendations(ctx context.Context, userID int) ([]models.BookCard, error)
	History(ctx context.Context, userID int, limit int64) ([]models.TasteHistory, error)
}

type BookshelfHandler struct {
	svc Shelf
}

func NewBookshelfHandler(s Shelf) *BookshelfHandler {
	return &BookshelfHandler{svc: s}
}

// @Summary Mi estante
// @Tags bookshelf
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.ShelfItem
// @Router /me/bookshelf [get]
func (h *BookshelfHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// @Summary Agregar libro al estante
// @Description El título se resuelve con la misma búsqueda difusa de /api/recommend
// @Tags bookshelf
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body recommendRequest true "título"
// @Success 201 {object} models.ShelfItem
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /me/bookshelf [post]
func (h *BookshelfHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeJSON(w, r, &req); err != nil || validation.Struct(&req) != nil {
		writeError(w, http.StatusBadRequest, "No book name provided")
		return
	}

	item, err := h.svc.Add(r.Context(), UserIDFromContext(r.Context()), req.BookName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// @Summary Quitar libro del estante
// @Tags bookshelf
// @Security BearerAuth
// @Param title path string true "título exacto (url-encoded)"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /me/bookshelf/{title} [delete]
func (h *BookshelfHandler) Remove(w http.ResponseWriter, r *http.Request) {
	title, err := url.PathUnescape(chi.URLParam(r, "title"))
	if err != nil || title == "" {
		writeError(w, http.StatusBadRequest, "Invalid title")
		return
	}

	if err := h.svc.Remove(r.Context(), UserIDFromContext(r.Context()), title); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Recomendaciones según mi estante
// @Description Corre un taste test con los libros del estante y lo guarda en el historial
// @Tags bookshelf
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.BookCard
// @Router /me/recommendations [get]
func (h *BookshelfHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Recommendations(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// @Summary Historial de taste tests
// @Tags bookshelf
// @Security BearerAuth
// @Produce json
// @Param limit query int false "límite (default: 20)"
// @Success 200 {array} models.TasteHistory
// @Router /me/history [get]
func (h *BookshelfHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	out, err := h.svc.History(r.Context(), UserIDFromContext(r.Context()), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if out == nil {
		out = []models.TasteHistory{}
	}
	writeJSON(w, http.StatusOK, out)
}

func MountBookshelfRoutes(r chi.Router, h *BookshelfHandler) {
	r.Get("/me/bookshelf", h.List)
	r.Post("/me/bookshelf", h.Add)
	r.Delete("/me/bookshelf/{title}", h.Remove)
	r.Get("/me/recommendations", h.Recommendations)
	r.Get("/me/history", h.History)
}
