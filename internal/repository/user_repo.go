package repository

import (
	"context"

	"github.com/sadieom/BiblioMatch/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(d *mongo.Database) *UserRepository {
	return &UserRepository{col: d.Collection("users")}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.UserDoc, error) {
	var u models.UserDoc
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID int) (*models.UserDoc, error) {
	var u models.UserDoc
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetNextUserID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "userId", Value: -1}})
	var u models.UserDoc
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return u.UserID + 1, nil
}

func (r *UserRepository) Insert(ctx context.Context, u *models.UserDoc) error {
	if u.Bookshelf == nil {
		u.Bookshelf = []models.ShelfItem{}
	}
	_, err := r.col.InsertOne(ctx, u)
	return err
}

// AddToShelf agrega el libro si el título no está ya en el estante.
// added=false cuando ya estaba (o el usuario no existe).
func (r *UserRepository) AddToShelf(ctx context.Context, userID int, item models.ShelfItem) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID, "bookshelf.title": bson.M{"$ne": item.Title}},
		bson.M{
			"$push": bson.M{"bookshelf": item},
			"$set":  bson.M{"updatedAt": item.AddedAt},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// RemoveFromShelf saca el título del estante. removed=false si no estaba.
func (r *UserRepository) RemoveFromShelf(ctx context.Context, userID int, title string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"bookshelf": bson.M{"title": title}}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
