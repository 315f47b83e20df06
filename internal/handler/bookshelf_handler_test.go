package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadieom/BiblioMatch/internal/models"
	"github.com/sadieom/BiblioMatch/internal/service"
)

type fakeShelf struct {
	items   map[int][]models.ShelfItem
	removed string
	limit   int64
}

func (f *fakeShelf) List(_ context.Context, userID int) ([]models.ShelfItem, error) {
	items, ok := f.items[userID]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	return items, nil
}

func (f *fakeShelf) Add(_ context.Context, userID int, name string) (*models.ShelfItem, error) {
	for _, it := range f.items[userID] {
		if it.Title == name {
			return nil, service.ErrAlreadyOnShelf
		}
	}
	it := models.ShelfItem{BookCard: models.BookCard{Title: name}}
	f.items[userID] = append(f.items[userID], it)
	return &it, nil
}

func (f *fakeShelf) Remove(_ context.Context, userID int, title string) error {
	f.removed = title
	for i, it := range f.items[userID] {
		if it.Title == title {
			f.items[userID] = append(f.items[userID][:i], f.items[userID][i+1:]...)
			return nil
		}
	}
	return service.ErrNotOnShelf
}

func (f *fakeShelf) Recommendations(_ context.Context, userID int) ([]models.BookCard, error) {
	return []models.BookCard{{Title: "A"}}, nil
}

func (f *fakeShelf) History(_ context.Context, _ int, limit int64) ([]models.TasteHistory, error) {
	f.limit = limit
	return nil, nil
}

func shelfRouter(f *fakeShelf, userID int) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler { return withUser(userID, "user", next) })
	MountBookshelfRoutes(r, NewBookshelfHandler(f))
	return r
}

func TestBookshelfAddListRemove(t *testing.T) {
	f := &fakeShelf{items: map[int][]models.ShelfItem{5: {}}}
	r := shelfRouter(f, 5)

	rec := do(t, r, http.MethodPost, "/me/bookshelf", map[string]string{"book_name": "AC/DC: The Book"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, http.MethodPost, "/me/bookshelf", map[string]string{"book_name": "AC/DC: The Book"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, r, http.MethodGet, "/me/bookshelf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.ShelfItem](t, rec), 1)

	rec = do(t, r, http.MethodDelete, "/me/bookshelf/AC%2FDC:%20The%20Book", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "AC/DC: The Book", f.removed)

	rec = do(t, r, http.MethodDelete, "/me/bookshelf/Dune", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Book not on bookshelf", decodeBody[map[string]string](t, rec)["error"])
}

func TestBookshelfUnknownUser(t *testing.T) {
	r := shelfRouter(&fakeShelf{items: map[int][]models.ShelfItem{}}, 9)

	rec := do(t, r, http.MethodGet, "/me/bookshelf", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookshelfAddBadRequest(t *testing.T) {
	r := shelfRouter(&fakeShelf{items: map[int][]models.ShelfItem{5: {}}}, 5)

	rec := do(t, r, http.MethodPost, "/me/bookshelf", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookshelfHistoryLimit(t *testing.T) {
	f := &fakeShelf{items: map[int][]models.ShelfItem{5: {}}}
	r := shelfRouter(f, 5)

	rec := do(t, r, http.MethodGet, "/me/history?limit=500", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(20), f.limit)
	assert.Equal(t, "[]\n", rec.Body.String())

	do(t, r, http.MethodGet, "/me/history?limit=3", nil)
	assert.Equal(t, int64(3), f.limit)

	rec = do(t, r, http.MethodGet, "/me/recommendations", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
