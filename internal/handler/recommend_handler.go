package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/metrics"
	"github.com/sadieom/BiblioMatch/internal/models"
	"github.com/sadieom/BiblioMatch/internal/service"
	"github.com/sadieom/BiblioMatch/internal/validation"
)

// MaxTasteTestBooks máximo de títulos por taste test.
const MaxTasteTestBooks = 50

// Recommender lo que usan los handlers de recomendación.
type Recommender interface {
	Recommend(ctx context.Context, bookName string) (*models.RecommendResult, error)
	TasteTest(ctx context.Context, books []string) ([]models.BookCard, error)
	TasteTestWithProgress(ctx context.Context, books []string, progress func(service.TasteProgress)) ([]models.BookCard, error)
}

type RecommendHandler struct {
	svc Recommender
}

func NewRecommendHandler(s Recommender) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

type recommendRequest struct {
	BookName string `json:"book_name" validate:"required"`
}

type tasteTestRequest struct {
	Books []string `json:"books" validate:"required,min=1"`
}

// @Summary Recomendar libros parecidos
// @Description Busca el título más parecido (tolera errores de tipeo) y devuelve sus vecinos
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body recommendRequest true "título a buscar"
// @Success 200 {object} models.RecommendResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/recommend [post]
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeJSON(w, r, &req); err != nil || validation.Struct(&req) != nil {
		writeError(w, http.StatusBadRequest, "No book name provided")
		return
	}

	res, err := h.svc.Recommend(r.Context(), req.BookName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Taste test
// @Description Junta las recomendaciones de varios libros y devuelve las 10 más repetidas
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body tasteTestRequest true "títulos"
// @Success 200 {array} models.BookCard
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/taste_test [post]
func (h *RecommendHandler) TasteTest(w http.ResponseWriter, r *http.Request) {
	var req tasteTestRequest
	if err := decodeJSON(w, r, &req); err != nil || validation.Struct(&req) != nil {
		writeError(w, http.StatusBadRequest, "No books provided")
		return
	}
	if len(req.Books) > MaxTasteTestBooks {
		writeError(w, http.StatusBadRequest, "Too many books provided")
		return
	}

	items, err := h.svc.TasteTest(r.Context(), req.Books)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsReadTimeout = 30 * time.Second

// @Summary Taste test en tiempo real (WebSocket)
// @Description El cliente manda {"books": [...]}; el servidor responde start, un progress por título y recommendations
// @Tags recommend
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/ws/taste_test [get]
func (h *RecommendHandler) TasteTestWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el error
		return
	}
	defer conn.Close()
	metrics.WSConnections.Inc()
	defer metrics.WSConnections.Dec()

	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	var req tasteTestRequest
	if err := conn.ReadJSON(&req); err != nil || validation.Struct(&req) != nil {
		_ = conn.WriteJSON(map[string]any{"type": "error", "error": "No books provided"})
		return
	}
	if len(req.Books) > MaxTasteTestBooks {
		_ = conn.WriteJSON(map[string]any{"type": "error", "error": "Too many books provided"})
		return
	}

	_ = conn.WriteJSON(map[string]any{
		"type":  "start",
		"total": len(req.Books),
		"msg":   "Conexión WS abierta, iniciando taste test…",
	})

	step := 0
	items, err := h.svc.TasteTestWithProgress(r.Context(), req.Books, func(p service.TasteProgress) {
		step++
		msg := map[string]any{
			"type":  "progress",
			"step":  step,
			"total": len(req.Books),
			"input": p.Input,
		}
		if p.Error != "" {
			msg["error"] = p.Error
		} else {
			msg["matched"] = p.Matched
		}
		if err := conn.WriteJSON(msg); err != nil {
			logging.Debug().Err(err).Msg("ws write progress")
		}
	})
	if err != nil {
		_, text := statusFor(err)
		if errors.Is(err, context.Canceled) {
			text = "cancelled"
		}
		_ = conn.WriteJSON(map[string]any{"type": "error", "error": text})
		return
	}

	_ = conn.WriteJSON(map[string]any{
		"type":        "recommendations",
		"items":       items,
		"generatedAt": time.Now().UTC(),
	})
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
}
