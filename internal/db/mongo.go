package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sadieom/BiblioMatch/internal/config"
	"github.com/sadieom/BiblioMatch/internal/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client
var mongoDB *mongo.Database

// InitMongo conecta, hace ping y deja la base lista en DB().
func InitMongo(cfg *config.Config) error {
	log := logging.Component("mongo")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDB)
	log.Info().Str("db", cfg.MongoDB).Msg("conectado")

	if err := EnsureIndexes(ctx, mongoDB); err != nil {
		log.Warn().Err(err).Msg("no se pudieron crear índices")
	}
	return nil
}

// EnsureIndexes crea los índices que usan los repositorios.
func EnsureIndexes(ctx context.Context, d *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		"books": {
			{Keys: bson.D{{Key: "version", Value: 1}, {Key: "position", Value: 1}}},
		},
		"similarities": {
			{Keys: bson.D{{Key: "version", Value: 1}, {Key: "row", Value: 1}}},
		},
		"models": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"taste_history": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
	for col, models := range specs {
		if _, err := d.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexes %s: %w", col, err)
		}
	}
	return nil
}

func DB() *mongo.Database {
	return mongoDB
}

// Close desconecta el cliente global.
func Close(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	return mongoClient.Disconnect(ctx)
}
