package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordMatch(t *testing.T) {
	found := testutil.ToFloat64(MatchTotal.WithLabelValues("found"))
	missed := testutil.ToFloat64(MatchTotal.WithLabelValues("not_found"))

	RecordMatch(true, 92)
	RecordMatch(false, 40)
	RecordMatch(false, -1)

	assert.Equal(t, found+1, testutil.ToFloat64(MatchTotal.WithLabelValues("found")))
	assert.Equal(t, missed+2, testutil.ToFloat64(MatchTotal.WithLabelValues("not_found")))
}

func TestRecordModelLoad(t *testing.T) {
	RecordModelLoad("ok", 812)
	assert.Equal(t, 812.0, testutil.ToFloat64(ModelTitles))

	RecordModelLoad("error", 0)
	assert.Equal(t, 812.0, testutil.ToFloat64(ModelTitles), "errors keep the previous size")
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))
	RecordAPIRequest("GET", "/health", 200, 3*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/books/{isbn}/details", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c := HTTPRequestsTotal.WithLabelValues("GET", "/api/books/{isbn}/details", "404")
	before := testutil.ToFloat64(c)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books/0439554934/details", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestRecordExternalLookup(t *testing.T) {
	c := ExternalLookupsTotal.WithLabelValues("openlibrary", "hit")
	before := testutil.ToFloat64(c)
	RecordExternalLookup("openlibrary", "hit")
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
