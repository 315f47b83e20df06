package service

import (
	"context"
	"time"

	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/models"
)

// HistoryStore historial de taste tests.
type HistoryStore interface {
	Insert(ctx context.Context, rec *models.TasteHistory) error
	FindByUser(ctx context.Context, userID int, limit int64) ([]models.TasteHistory, error)
}

// Recommender lo que el estante usa del RecommendService.
type Recommender interface {
	Recommend(ctx context.Context, bookName string) (*models.RecommendResult, error)
	TasteTest(ctx context.Context, books []string) ([]models.BookCard, error)
}

// BookshelfService guarda en el usuario los libros que marcó como favoritos.
type BookshelfService struct {
	users   UserStore
	history HistoryStore
	rec     Recommender
	store   Snapshotter
}

func NewBookshelfService(users UserStore, history HistoryStore, rec Recommender, store Snapshotter) *BookshelfService {
	return &BookshelfService{users: users, history: history, rec: rec, store: store}
}

func (s *BookshelfService) List(ctx context.Context, userID int) ([]models.ShelfItem, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.Bookshelf == nil {
		return []models.ShelfItem{}, nil
	}
	return u.Bookshelf, nil
}

// Add resuelve bookName al título del catálogo y lo guarda. Un título que ya
// está en el estante devuelve ErrAlreadyOnShelf.
func (s *BookshelfService) Add(ctx context.Context, userID int, bookName string) (*models.ShelfItem, error) {
	res, err := s.rec.Recommend(ctx, bookName)
	if err != nil {
		return nil, err
	}

	item := models.ShelfItem{
		BookCard: res.FoundBook,
		AddedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	added, err := s.users.AddToShelf(ctx, userID, item)
	if err != nil {
		return nil, err
	}
	if !added {
		u, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, ErrUserNotFound
		}
		return nil, ErrAlreadyOnShelf
	}
	return &item, nil
}

func (s *BookshelfService) Remove(ctx context.Context, userID int, title string) error {
	removed, err := s.users.RemoveFromShelf(ctx, userID, title)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotOnShelf
	}
	return nil
}

// Recommendations corre un taste test sobre los títulos del estante y lo
// guarda en el historial. Si no se puede guardar solo se loguea.
func (s *BookshelfService) Recommendations(ctx context.Context, userID int) ([]models.BookCard, error) {
	shelf, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(shelf) == 0 {
		return []models.BookCard{}, nil
	}

	titles := make([]string, 0, len(shelf))
	for _, it := range shelf {
		titles = append(titles, it.Title)
	}
	items, err := s.rec.TasteTest(ctx, titles)
	if err != nil {
		return nil, err
	}

	rec := &models.TasteHistory{UserID: userID, Inputs: titles, Items: items}
	if m := s.store.Current(); m != nil {
		rec.ModelVersion = m.Version
	}
	if err := s.history.Insert(ctx, rec); err != nil {
		logging.Warn().Err(err).Int("userId", userID).Msg("no se pudo guardar el historial")
	}
	return items, nil
}

func (s *BookshelfService) History(ctx context.Context, userID int, limit int64) ([]models.TasteHistory, error) {
	return s.history.FindByUser(ctx, userID, limit)
}
