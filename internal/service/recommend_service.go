package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/metrics"
	"github.com/sadieom/BiblioMatch/internal/models"
)

const (
	DefaultMatchThreshold = 80
	// TasteTestLimit máximo de libros devueltos por un taste test.
	TasteTestLimit = 10
)

// Snapshotter entrega el modelo activo.
type Snapshotter interface {
	Current() *Model
}

type RecommendService struct {
	store     Snapshotter
	threshold int
}

func NewRecommendService(store Snapshotter, threshold int) *RecommendService {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &RecommendService{store: store, threshold: threshold}
}

// Recommend busca el título más parecido a bookName y devuelve sus vecinos.
func (s *RecommendService) Recommend(ctx context.Context, bookName string) (*models.RecommendResult, error) {
	m := s.store.Current()
	if m == nil {
		return nil, ErrModelNotLoaded
	}
	return s.recommendWith(m, bookName)
}

func (s *RecommendService) recommendWith(m *Model, bookName string) (*models.RecommendResult, error) {
	match, ok := m.Match(bookName)
	if !ok || match.Score < s.threshold {
		score := -1
		if ok {
			score = match.Score
		}
		metrics.RecordMatch(false, score)
		return nil, ErrBookNotFound
	}
	metrics.RecordMatch(true, match.Score)

	title := match.Value
	logging.Debug().
		Str("input", bookName).
		Str("title", title).
		Int("score", match.Score).
		Msg("título encontrado")

	found, ok := m.Card(title)
	if !ok {
		found = models.BookCard{Title: title}
	}

	neighbors, err := m.NeighborsOf(match.Index)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	recs := make([]models.BookCard, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Title == title {
			continue
		}
		card, ok := m.Card(n.Title)
		if !ok {
			continue
		}
		recs = append(recs, card)
	}
	return &models.RecommendResult{FoundBook: found, Recommendations: recs}, nil
}

// TasteProgress se reporta una vez por cada título de entrada.
type TasteProgress struct {
	Input   string `json:"input"`
	Matched string `json:"matched,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TasteTest junta las recomendaciones de varios libros. Cada libro
// recomendado suma un punto por aparición; se ordena por puntaje (empates en
// orden de aparición) y se devuelven los primeros 10. Las entradas que no
// matchean se ignoran.
func (s *RecommendService) TasteTest(ctx context.Context, books []string) ([]models.BookCard, error) {
	return s.TasteTestWithProgress(ctx, books, nil)
}

// TasteTestWithProgress igual que TasteTest pero avisa por cada entrada.
func (s *RecommendService) TasteTestWithProgress(ctx context.Context, books []string, progress func(TasteProgress)) ([]models.BookCard, error) {
	m := s.store.Current()
	if m == nil {
		return nil, ErrModelNotLoaded
	}
	metrics.TasteTestInputs.Observe(float64(len(books)))

	type scored struct {
		card  models.BookCard
		score int
	}
	var order []*scored
	byTitle := map[string]*scored{}

	for _, name := range books {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := s.recommendWith(m, name)
		if err != nil {
			if progress != nil {
				progress(TasteProgress{Input: name, Error: err.Error()})
			}
			continue
		}
		if progress != nil {
			progress(TasteProgress{Input: name, Matched: res.FoundBook.Title})
		}
		for _, rec := range res.Recommendations {
			if sc, ok := byTitle[rec.Title]; ok {
				sc.score++
				continue
			}
			sc := &scored{card: rec, score: 1}
			byTitle[rec.Title] = sc
			order = append(order, sc)
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return order[i].score > order[j].score })

	out := make([]models.BookCard, 0, min(len(order), TasteTestLimit))
	for _, sc := range order {
		if len(out) == TasteTestLimit {
			break
		}
		out = append(out, sc.card)
	}
	return out, nil
}
