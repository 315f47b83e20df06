package repository

import (
	"context"
	"time"

	"github.com/sadieom/BiblioMatch/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecommendationRepository historial de taste tests por usuario.
type RecommendationRepository struct {
	col *mongo.Collection
}

func NewRecommendationRepository(d *mongo.Database) *RecommendationRepository {
	return &RecommendationRepository{
		col: d.Collection("taste_history"),
	}
}

func (r *RecommendationRepository) Insert(ctx context.Context, rec *models.TasteHistory) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, rec)
	return err
}

// FindByUser últimos taste tests del usuario, más nuevos primero.
func (r *RecommendationRepository) FindByUser(ctx context.Context, userID int, limit int64) ([]models.TasteHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return findAll[models.TasteHistory](ctx, r.col, bson.M{"userId": userID}, opts)
}
