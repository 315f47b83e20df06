package repository

import (
	"context"
	"time"

	"github.com/sadieom/BiblioMatch/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ModelRepository guarda un descriptor por versión construida.
type ModelRepository struct {
	col *mongo.Collection
}

func NewModelRepository(d *mongo.Database) *ModelRepository {
	return &ModelRepository{col: d.Collection("models")}
}

func (r *ModelRepository) Insert(ctx context.Context, m *models.ModelDoc) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if m.Status == "" {
		m.Status = models.ModelStatusPending
	}
	_, err := r.col.InsertOne(ctx, m)
	return err
}

func (r *ModelRepository) FindByVersion(ctx context.Context, version string) (*models.ModelDoc, error) {
	var m models.ModelDoc
	err := r.col.FindOne(ctx, bson.M{"_id": version}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetActive devuelve el modelo activo más reciente o nil si no hay.
func (r *ModelRepository) GetActive(ctx context.Context) (*models.ModelDoc, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "activatedAt", Value: -1}})
	var m models.ModelDoc
	err := r.col.FindOne(ctx, bson.M{"status": models.ModelStatusActive}, opts).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Activate marca la versión como activa y retira las demás activas.
func (r *ModelRepository) Activate(ctx context.Context, version string) error {
	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": version},
		bson.M{"$set": bson.M{"status": models.ModelStatusActive, "activatedAt": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	_, err = r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$ne": version}, "status": models.ModelStatusActive},
		bson.M{"$set": bson.M{"status": models.ModelStatusRetired}},
	)
	return err
}

// List últimas versiones, más nuevas primero.
func (r *ModelRepository) List(ctx context.Context, limit int64) ([]models.ModelDoc, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return findAll[models.ModelDoc](ctx, r.col, bson.M{}, opts)
}

// Delete borra el descriptor de una versión.
func (r *ModelRepository) Delete(ctx context.Context, version string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": version})
	return err
}

// DeleteExcept borra los descriptores que no están en keep.
func (r *ModelRepository) DeleteExcept(ctx context.Context, keep []string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$nin": keep}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
