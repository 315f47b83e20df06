package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// insertBatchSize documentos por InsertMany.
const insertBatchSize = 1000

func insertBatches[T any](ctx context.Context, col *mongo.Collection, docs []T) error {
	for start := 0; start < len(docs); start += insertBatchSize {
		end := min(start+insertBatchSize, len(docs))
		batch := make([]any, 0, end-start)
		for i := start; i < end; i++ {
			batch = append(batch, docs[i])
		}
		if _, err := col.InsertMany(ctx, batch, options.InsertMany().SetOrdered(false)); err != nil {
			return err
		}
	}
	return nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}

// deleteOtherVersions borra los documentos cuya versión no está en keep.
func deleteOtherVersions(ctx context.Context, col *mongo.Collection, keep []string) (int64, error) {
	res, err := col.DeleteMany(ctx, bson.M{"version": bson.M{"$nin": keep}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// deleteVersion borra todos los documentos de una versión.
func deleteVersion(ctx context.Context, col *mongo.Collection, version string) (int64, error) {
	res, err := col.DeleteMany(ctx, bson.M{"version": version})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
