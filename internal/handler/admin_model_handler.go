package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sadieom/BiblioMatch/internal/models"
	"github.com/sadieom/BiblioMatch/internal/service"
)

// ModelAdmin lo que usan los endpoints /admin/model*.
type ModelAdmin interface {
	Status(ctx context.Context) (models.ModelStatus, error)
	Versions(ctx context.Context, limit int64) ([]models.ModelDoc, error)
	Version(ctx context.Context, version string) (*models.ModelDoc, error)
	Load(ctx context.Context) (*service.Model, error)
}

type AdminModelHandler struct {
	svc ModelAdmin
}

func NewAdminModelHandler(s ModelAdmin) *AdminModelHandler {
	return &AdminModelHandler{svc: s}
}

// @Summary Estado del modelo (ADMIN)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.ModelStatus
// @Router /admin/model [get]
func (h *AdminModelHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Status(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// @Summary Versiones construidas (ADMIN)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "límite (default: 20)"
// @Success 200 {array} models.ModelDoc
// @Router /admin/models [get]
func (h *AdminModelHandler) Versions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit <= 0 {
		limit = 20
	}

	out, err := h.svc.Versions(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if out == nil {
		out = []models.ModelDoc{}
	}
	writeJSON(w, http.StatusOK, out)
}

// @Summary Detalle de una versión (ADMIN)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param version path string true "versión"
// @Success 200 {object} models.ModelDoc
// @Failure 404 {object} map[string]string
// @Router /admin/models/{version} [get]
func (h *AdminModelHandler) Version(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Version(r.Context(), chi.URLParam(r, "version"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// @Summary Recargar el modelo activo (ADMIN)
// @Description Vuelve a leer de Mongo la versión activa. Si ya está cargada no hace nada.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /admin/model/reload [post]
func (h *AdminModelHandler) Reload(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Load(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"version":  m.Version,
		"titles":   m.Len(),
		"books":    m.Books(),
		"loadedAt": m.LoadedAt,
	})
}

func MountAdminModelRoutes(r chi.Router, h *AdminModelHandler) {
	r.Get("/admin/model", h.Status)
	r.Get("/admin/models", h.Versions)
	r.Get("/admin/models/{version}", h.Version)
	r.Post("/admin/model/reload", h.Reload)
}
