package repository

import (
	"context"

	"github.com/sadieom/BiblioMatch/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(d *mongo.Database) *BookRepository {
	return &BookRepository{col: d.Collection("books")}
}

func (r *BookRepository) InsertMany(ctx context.Context, docs []models.BookDoc) error {
	return insertBatches(ctx, r.col, docs)
}

// AllByVersion devuelve los libros de una versión en el orden del csv.
func (r *BookRepository) AllByVersion(ctx context.Context, version string) ([]models.BookDoc, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	return findAll[models.BookDoc](ctx, r.col, bson.M{"version": version}, opts)
}

func (r *BookRepository) DeleteOtherVersions(ctx context.Context, keep []string) (int64, error) {
	return deleteOtherVersions(ctx, r.col, keep)
}

func (r *BookRepository) DeleteVersion(ctx context.Context, version string) (int64, error) {
	return deleteVersion(ctx, r.col, version)
}
