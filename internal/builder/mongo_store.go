package builder

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/models"
)

// DefaultKeep versiones que se conservan (la activa incluida).
const DefaultKeep = 2

const rollbackTimeout = 30 * time.Second

type bookWriter interface {
	InsertMany(ctx context.Context, docs []models.BookDoc) error
	DeleteOtherVersions(ctx context.Context, keep []string) (int64, error)
	DeleteVersion(ctx context.Context, version string) (int64, error)
}

type similarityWriter interface {
	InsertMany(ctx context.Context, docs []models.SimilarityDoc) error
	DeleteOtherVersions(ctx context.Context, keep []string) (int64, error)
	DeleteVersion(ctx context.Context, version string) (int64, error)
}

type modelWriter interface {
	Insert(ctx context.Context, m *models.ModelDoc) error
	Activate(ctx context.Context, version string) error
	List(ctx context.Context, limit int64) ([]models.ModelDoc, error)
	Delete(ctx context.Context, version string) error
	DeleteExcept(ctx context.Context, keep []string) (int64, error)
}

// MongoStore escribe books, similarities y models y poda versiones viejas.
type MongoStore struct {
	books  bookWriter
	sims   similarityWriter
	models modelWriter
	keep   int
}

func NewMongoStore(books bookWriter, sims similarityWriter, m modelWriter, keep int) *MongoStore {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &MongoStore{books: books, sims: sims, models: m, keep: keep}
}

// Save inserta el descriptor como pending, escribe libros y vecinos en
// paralelo y recién entonces activa la versión. Si algo falla antes de
// activar se borra lo escrito de esa versión.
func (s *MongoStore) Save(ctx context.Context, art *Artifact) error {
	if err := s.models.Insert(ctx, &art.Model); err != nil {
		return fmt.Errorf("insert model: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.books.InsertMany(gctx, art.Books); err != nil {
			return fmt.Errorf("insert books: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.sims.InsertMany(gctx, art.Similarities); err != nil {
			return fmt.Errorf("insert similarities: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.rollback(ctx, art.Model.Version)
		return err
	}

	if err := s.models.Activate(ctx, art.Model.Version); err != nil {
		s.rollback(ctx, art.Model.Version)
		return fmt.Errorf("activate: %w", err)
	}
	art.Model.Status = models.ModelStatusActive

	return s.prune(ctx, art.Model.Version)
}

// rollback borra libros, vecinos y descriptor de una versión que no llegó a
// activarse. Corre aunque ctx esté cancelado; sus errores solo se loguean.
func (s *MongoStore) rollback(ctx context.Context, version string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	log := logging.Component("builder")
	if _, err := s.books.DeleteVersion(ctx, version); err != nil {
		log.Error().Err(err).Str("version", version).Msg("no se pudieron borrar los libros de la versión fallida")
	}
	if _, err := s.sims.DeleteVersion(ctx, version); err != nil {
		log.Error().Err(err).Str("version", version).Msg("no se pudieron borrar los vecinos de la versión fallida")
	}
	if err := s.models.Delete(ctx, version); err != nil {
		log.Error().Err(err).Str("version", version).Msg("no se pudo borrar el descriptor de la versión fallida")
	}
}

// prune deja la versión nueva más las últimas activas/retiradas hasta keep.
func (s *MongoStore) prune(ctx context.Context, current string) error {
	recent, err := s.models.List(ctx, int64(s.keep)*4)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	keep := []string{current}
	for _, m := range recent {
		if len(keep) >= s.keep {
			break
		}
		if m.Version == current || m.Status == models.ModelStatusPending {
			continue
		}
		keep = append(keep, m.Version)
	}

	if _, err := s.books.DeleteOtherVersions(ctx, keep); err != nil {
		return fmt.Errorf("prune books: %w", err)
	}
	if _, err := s.sims.DeleteOtherVersions(ctx, keep); err != nil {
		return fmt.Errorf("prune similarities: %w", err)
	}
	if _, err := s.models.DeleteExcept(ctx, keep); err != nil {
		return fmt.Errorf("prune models: %w", err)
	}
	return nil
}
