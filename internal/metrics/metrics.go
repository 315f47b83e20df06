// Package metrics expone los contadores Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bibliomatch_http_requests_total",
			Help: "Total de requests HTTP por método, ruta y código",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bibliomatch_http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	MatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bibliomatch_title_match_total",
			Help: "Resultados del match difuso de títulos",
		},
		[]string{"outcome"}, // "found", "not_found"
	)

	MatchScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bibliomatch_title_match_score",
			Help:    "Puntaje WRatio del mejor candidato",
			Buckets: []float64{50, 60, 70, 80, 85, 90, 95, 100},
		},
	)

	TasteTestInputs = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bibliomatch_taste_test_inputs",
			Help:    "Cantidad de títulos por taste test",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		},
	)

	ModelLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bibliomatch_model_loads_total",
			Help: "Cargas del modelo en memoria",
		},
		[]string{"result"}, // "ok", "error", "unchanged"
	)

	ModelTitles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bibliomatch_model_titles",
			Help: "Títulos del modelo cargado",
		},
	)

	ExternalLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bibliomatch_external_lookups_total",
			Help: "Consultas a Open Library / Google Books",
		},
		[]string{"provider", "result"}, // result: "hit", "miss", "error"
	)

	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bibliomatch_ws_connections",
			Help: "Conexiones WebSocket abiertas",
		},
	)
)

// RecordAPIRequest registra un request terminado.
func RecordAPIRequest(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordMatch registra el resultado de un match difuso.
func RecordMatch(found bool, score int) {
	if found {
		MatchTotal.WithLabelValues("found").Inc()
	} else {
		MatchTotal.WithLabelValues("not_found").Inc()
	}
	if score >= 0 {
		MatchScore.Observe(float64(score))
	}
}

func RecordModelLoad(result string, titles int) {
	ModelLoadsTotal.WithLabelValues(result).Inc()
	if result == "ok" {
		ModelTitles.Set(float64(titles))
	}
}

func RecordExternalLookup(provider, result string) {
	ExternalLookupsTotal.WithLabelValues(provider, result).Inc()
}

// Middleware instrumenta cada request usando el patrón de ruta de chi para
// no explotar la cardinalidad con ids.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RecordAPIRequest(r.Method, route, status, time.Since(start))
	})
}
