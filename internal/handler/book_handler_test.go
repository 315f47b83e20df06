package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadieom/BiblioMatch/internal/models"
	"github.com/sadieom/BiblioMatch/internal/service"
)

type fakeDetails struct {
	d     *models.BookDetails
	err   error
	isbn  string
	title string
}

func (f *fakeDetails) Details(_ context.Context, isbn, title string) (*models.BookDetails, error) {
	f.isbn, f.title = isbn, title
	return f.d, f.err
}

func bookRouter(f *fakeDetails) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/books/{isbn}/details", NewBookHandler(f).Details)
	return r
}

func TestBookDetails(t *testing.T) {
	f := &fakeDetails{d: &models.BookDetails{ISBN: "316015849", Description: "Vampires.", Source: "openlibrary"}}

	rec := do(t, bookRouter(f), http.MethodGet, "/api/books/316015849/details?title=Twilight", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "316015849", f.isbn)
	assert.Equal(t, "Twilight", f.title)
	assert.Equal(t, "openlibrary", decodeBody[models.BookDetails](t, rec).Source)
}

func TestBookDetailsErrors(t *testing.T) {
	rec := do(t, bookRouter(&fakeDetails{err: service.ErrDetailsNotFound}), http.MethodGet, "/api/books/1/details", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No description found", decodeBody[map[string]string](t, rec)["error"])

	rec = do(t, bookRouter(&fakeDetails{err: errors.New("status 500")}), http.MethodGet, "/api/books/1/details", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
