package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/metrics"
	"github.com/sadieom/BiblioMatch/internal/models"
)

type ModelSource interface {
	GetActive(ctx context.Context) (*models.ModelDoc, error)
	FindByVersion(ctx context.Context, version string) (*models.ModelDoc, error)
	List(ctx context.Context, limit int64) ([]models.ModelDoc, error)
}

type BookSource interface {
	AllByVersion(ctx context.Context, version string) ([]models.BookDoc, error)
}

type SimilaritySource interface {
	AllByVersion(ctx context.Context, version string) ([]models.SimilarityDoc, error)
}

// ModelStore mantiene el modelo activo. Las lecturas son lock-free; las
// cargas se serializan.
type ModelStore struct {
	current atomic.Pointer[Model]
	loadMu  sync.Mutex

	models ModelSource
	books  BookSource
	sims   SimilaritySource
	log    zerolog.Logger
}

func NewModelStore(m ModelSource, b BookSource, s SimilaritySource) *ModelStore {
	return &ModelStore{models: m, books: b, sims: s, log: logging.Component("model")}
}

// Current devuelve el snapshot activo o nil si todavía no se cargó.
func (s *ModelStore) Current() *Model {
	return s.current.Load()
}

// Set reemplaza el snapshot.
func (s *ModelStore) Set(m *Model) {
	s.current.Store(m)
}

// Load lee la versión activa de Mongo y la pone en memoria. Si ya está
// cargada no hace nada.
func (s *ModelStore) Load(ctx context.Context) (*Model, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	active, err := s.models.GetActive(ctx)
	if err != nil {
		metrics.RecordModelLoad("error", 0)
		return nil, fmt.Errorf("get active model: %w", err)
	}
	if active == nil {
		metrics.RecordModelLoad("error", 0)
		return nil, ErrNoActiveModel
	}
	if cur := s.current.Load(); cur != nil && cur.Version == active.Version {
		metrics.RecordModelLoad("unchanged", cur.Len())
		return cur, nil
	}

	var (
		books []models.BookDoc
		sims  []models.SimilarityDoc
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = s.books.AllByVersion(gctx, active.Version)
		return err
	})
	g.Go(func() error {
		var err error
		sims, err = s.sims.AllByVersion(gctx, active.Version)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.RecordModelLoad("error", 0)
		return nil, fmt.Errorf("load artifacts %s: %w", active.Version, err)
	}

	m, err := NewModel(active.Version, sims, books)
	if err != nil {
		metrics.RecordModelLoad("error", 0)
		return nil, err
	}
	s.current.Store(m)
	metrics.RecordModelLoad("ok", m.Len())
	s.log.Info().
		Str("version", m.Version).
		Int("titles", m.Len()).
		Int("books", m.Books()).
		Msg("modelo cargado")
	return m, nil
}

// Version descriptor de una versión cualquiera (activa, pendiente o retirada).
func (s *ModelStore) Version(ctx context.Context, version string) (*models.ModelDoc, error) {
	m, err := s.models.FindByVersion(ctx, version)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrVersionNotFound
	}
	return m, nil
}

// Versions últimas versiones construidas.
func (s *ModelStore) Versions(ctx context.Context, limit int64) ([]models.ModelDoc, error) {
	return s.models.List(ctx, limit)
}

// Status resume lo que hay en Mongo y lo que hay en memoria.
func (s *ModelStore) Status(ctx context.Context) (models.ModelStatus, error) {
	active, err := s.models.GetActive(ctx)
	if err != nil {
		return models.ModelStatus{}, err
	}
	st := models.ModelStatus{Active: active}
	if cur := s.current.Load(); cur != nil {
		st.Loaded = true
		st.Version = cur.Version
		st.Titles = cur.Len()
		st.Books = cur.Books()
		st.LoadedAt = cur.LoadedAt
	}
	return st, nil
}
