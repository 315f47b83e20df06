package repository

import (
	"context"

	"github.com/sadieom/BiblioMatch/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SimilarityRepository struct {
	col *mongo.Collection
}

func NewSimilarityRepository(d *mongo.Database) *SimilarityRepository {
	return &SimilarityRepository{col: d.Collection("similarities")}
}

func (r *SimilarityRepository) InsertMany(ctx context.Context, docs []models.SimilarityDoc) error {
	return insertBatches(ctx, r.col, docs)
}

// AllByVersion devuelve un documento por fila, ordenados por fila.
func (r *SimilarityRepository) AllByVersion(ctx context.Context, version string) ([]models.SimilarityDoc, error) {
	opts := options.Find().SetSort(bson.D{{Key: "row", Value: 1}})
	return findAll[models.SimilarityDoc](ctx, r.col, bson.M{"version": version}, opts)
}

func (r *SimilarityRepository) DeleteOtherVersions(ctx context.Context, keep []string) (int64, error) {
	return deleteOtherVersions(ctx, r.col, keep)
}

func (r *SimilarityRepository) DeleteVersion(ctx context.Context, version string) (int64, error) {
	return deleteVersion(ctx, r.col, version)
}
