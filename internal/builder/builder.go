// Package builder es el job offline: limpia los csv, arma la matriz
// título x usuario, calcula los vecinos y publica una versión nueva del
// modelo.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sadieom/BiblioMatch/internal/dataset"
	"github.com/sadieom/BiblioMatch/internal/knn"
	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/matrix"
	"github.com/sadieom/BiblioMatch/internal/models"
	"github.com/sadieom/BiblioMatch/internal/pubsub"
)

// ArtifactStore persiste y activa una versión completa del modelo.
type ArtifactStore interface {
	Save(ctx context.Context, art *Artifact) error
}

// Publisher avisa a las APIs que hay un modelo nuevo.
type Publisher interface {
	Publish(ctx context.Context, msg pubsub.ModelUpdated) error
}

type Options struct {
	BooksPath      string
	RatingsPath    string
	MinUserRatings int
	K              int
	Workers        int
	DryRun         bool
}

// Artifact es todo lo que produce una corrida.
type Artifact struct {
	Model        models.ModelDoc
	Report       dataset.Report
	Books        []models.BookDoc
	Similarities []models.SimilarityDoc
}

type Builder struct {
	store ArtifactStore
	pub   Publisher
	log   zerolog.Logger
}

// New arma un builder. store y pub pueden ser nil en modo dry-run.
func New(store ArtifactStore, pub Publisher) *Builder {
	return &Builder{store: store, pub: pub, log: logging.Component("builder")}
}

// Run lee los archivos, construye el artefacto y, salvo DryRun, lo guarda y
// lo anuncia.
func (b *Builder) Run(ctx context.Context, opts Options) (*Artifact, error) {
	booksF, err := os.Open(opts.BooksPath)
	if err != nil {
		return nil, fmt.Errorf("open books: %w", err)
	}
	defer booksF.Close()

	ratingsF, err := os.Open(opts.RatingsPath)
	if err != nil {
		return nil, fmt.Errorf("open ratings: %w", err)
	}
	defer ratingsF.Close()

	art, err := Build(ctx, booksF, ratingsF, opts)
	if err != nil {
		return nil, err
	}
	b.log.Info().
		Str("version", art.Model.Version).
		Int("titles", art.Model.Stats.Titles).
		Int("users", art.Model.Stats.Users).
		Int("nnz", art.Model.Stats.NonZero).
		Int64("ms", art.Model.BuildMillis).
		Msg("modelo construido")

	if opts.DryRun {
		b.log.Info().Msg("dry-run: no se persiste nada")
		return art, nil
	}
	if b.store == nil {
		return nil, errors.New("builder: no artifact store configured")
	}

	if err := b.store.Save(ctx, art); err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}
	b.log.Info().Str("version", art.Model.Version).Msg("modelo activado")

	if b.pub != nil {
		msg := pubsub.ModelUpdated{Version: art.Model.Version, Titles: art.Model.Stats.Titles}
		if err := b.pub.Publish(ctx, msg); err != nil {
			// las APIs igual lo toman en el próximo reload
			b.log.Warn().Err(err).Msg("no se pudo publicar el aviso")
		}
	}
	return art, nil
}

// Build corre el pipeline en memoria sin tocar la base.
func Build(ctx context.Context, booksR, ratingsR io.Reader, opts Options) (*Artifact, error) {
	start := time.Now()
	if opts.MinUserRatings <= 0 {
		opts.MinUserRatings = dataset.DefaultMinUserRatings
	}
	if opts.K <= 0 {
		opts.K = knn.DefaultK
	}

	res, err := dataset.Clean(booksR, ratingsR, dataset.Options{MinUserRatings: opts.MinUserRatings})
	if err != nil {
		return nil, err
	}

	m := matrix.Pivot(res.Interactions)
	ix, err := knn.Fit(ctx, m, knn.Options{K: opts.K, Workers: opts.Workers})
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}

	version := uuid.NewString()
	titles, users := m.Shape()

	art := &Artifact{
		Report:       res.Report,
		Books:        make([]models.BookDoc, 0, len(res.Books)),
		Similarities: make([]models.SimilarityDoc, 0, titles),
	}
	for _, bk := range res.Books {
		art.Books = append(art.Books, models.BookDoc{
			Version:  version,
			BookID:   bk.BookID,
			Title:    bk.Title,
			ISBN:     bk.ISBN,
			Authors:  bk.Authors,
			ImgURL:   bk.ImgURL,
			Position: bk.Position,
		})
	}
	for i := 0; i < titles; i++ {
		ns := ix.Of(i)
		doc := models.SimilarityDoc{
			Version:   version,
			Title:     m.Title(i),
			Row:       i,
			Metric:    knn.Metric,
			K:         ix.K,
			Neighbors: make([]models.Neighbor, 0, len(ns)),
		}
		for _, n := range ns {
			doc.Neighbors = append(doc.Neighbors, models.Neighbor{
				Title:    m.Title(n.Row),
				Row:      n.Row,
				Sim:      n.Similarity,
				Distance: n.Distance(),
			})
		}
		art.Similarities = append(art.Similarities, doc)
	}

	rep := res.Report
	art.Model = models.ModelDoc{
		Version: version,
		Status:  models.ModelStatusPending,
		Params: models.ModelParams{
			MinUserRatings: opts.MinUserRatings,
			K:              ix.K,
			Metric:         knn.Metric,
			Workers:        opts.Workers,
		},
		Stats: models.ModelStats{
			RawBooks:       rep.RawBooks,
			Books:          rep.Books,
			RawRatings:     rep.RawRatings,
			SkippedRatings: rep.SkippedRatings,
			ActiveUsers:    rep.ActiveUsers,
			Interactions:   rep.Interactions,
			Titles:         titles,
			Users:          users,
			NonZero:        m.NNZ(),
		},
		BuildMillis: time.Since(start).Milliseconds(),
		CreatedAt:   time.Now().UTC(),
	}
	return art, nil
}
