package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/sadieom/BiblioMatch/internal/models"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestBookRepository(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("all by version", func(mt *mtest.T) {
		repo := NewBookRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bibliomatch.books", mtest.FirstBatch,
			bson.D{{Key: "version", Value: "v1"}, {Key: "bookId", Value: 1}, {Key: "title", Value: "Twilight"}, {Key: "isbn", Value: "316015849"}, {Key: "position", Value: 0}},
			bson.D{{Key: "version", Value: "v1"}, {Key: "bookId", Value: 2}, {Key: "title", Value: "The Hobbit"}, {Key: "isbn", Value: "618260307"}, {Key: "position", Value: 1}},
		))

		books, err := repo.AllByVersion(ctx, "v1")
		require.NoError(mt, err)
		require.Len(mt, books, 2)
		assert.Equal(mt, "Twilight", books[0].Title)
		assert.Equal(mt, 1, books[1].Position)
	})

	mt.Run("insert many", func(mt *mtest.T) {
		repo := NewBookRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.InsertMany(ctx, []models.BookDoc{{Version: "v1", Title: "Twilight"}})
		require.NoError(mt, err)
	})

	mt.Run("delete other versions", func(mt *mtest.T) {
		repo := NewBookRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))

		n, err := repo.DeleteOtherVersions(ctx, []string{"v2"})
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})

	mt.Run("delete version", func(mt *mtest.T) {
		repo := NewBookRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))

		n, err := repo.DeleteVersion(ctx, "v3")
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), n)
	})
}

func TestSimilarityRepository(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("all by version error", func(mt *mtest.T) {
		repo := NewSimilarityRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query"}))

		_, err := repo.AllByVersion(ctx, "v1")
		require.Error(mt, err)
	})

	mt.Run("delete version error", func(mt *mtest.T) {
		repo := NewSimilarityRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad delete"}))

		_, err := repo.DeleteVersion(ctx, "v3")
		require.Error(mt, err)
	})
}

func TestModelRepository(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("get active none", func(mt *mtest.T) {
		repo := NewModelRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bibliomatch.models", mtest.FirstBatch))

		m, err := repo.GetActive(ctx)
		require.NoError(mt, err)
		assert.Nil(mt, m)
	})

	mt.Run("get active", func(mt *mtest.T) {
		repo := NewModelRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bibliomatch.models", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "v7"},
			{Key: "status", Value: models.ModelStatusActive},
			{Key: "params", Value: bson.D{{Key: "k", Value: 5}, {Key: "metric", Value: "cosine"}}},
		}))

		m, err := repo.GetActive(ctx)
		require.NoError(mt, err)
		require.NotNil(mt, m)
		assert.Equal(mt, "v7", m.Version)
		assert.Equal(mt, 5, m.Params.K)
	})

	mt.Run("insert sets defaults", func(mt *mtest.T) {
		repo := NewModelRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		m := &models.ModelDoc{Version: "v8"}
		require.NoError(mt, repo.Insert(ctx, m))
		assert.Equal(mt, models.ModelStatusPending, m.Status)
		assert.False(mt, m.CreatedAt.IsZero())
	})

	mt.Run("find by version", func(mt *mtest.T) {
		repo := NewModelRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bibliomatch.models", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "v3"}, {Key: "status", Value: models.ModelStatusRetired}}))

		m, err := repo.FindByVersion(ctx, "v3")
		require.NoError(mt, err)
		require.NotNil(mt, m)
		assert.Equal(mt, models.ModelStatusRetired, m.Status)
	})

	mt.Run("find by version missing", func(mt *mtest.T) {
		repo := NewModelRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bibliomatch.models", mtest.FirstBatch))

		m, err := repo.FindByVersion(ctx, "nope")
		require.NoError(mt, err)
		assert.Nil(mt, m)
	})

	mt.Run("activate", func(mt *mtest.T) {
		repo := NewModelRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		require.NoError(mt, repo.Activate(ctx, "v8"))
	})

	mt.Run("activate unknown version", func(mt *mtest.T) {
		repo := NewModelRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.Activate(ctx, "nope")
		require.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewModelRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, repo.Delete(ctx, "v8"))
	})
}

func TestUserRepository(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("find by email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bibliomatch.users", mtest.FirstBatch, bson.D{
			{Key: "userId", Value: 4},
			{Key: "email", Value: "ana@example.com"},
			{Key: "role", Value: "user"},
			{Key: "bookshelf", Value: bson.A{
				bson.D{{Key: "title", Value: "Twilight"}, {Key: "isbn", Value: "316015849"}, {Key: "addedAt", Value: "2024-01-01T00:00:00Z"}},
			}},
		}))

		u, err := repo.FindByEmail(ctx, "ana@example.com")
		require.NoError(mt, err)
		require.NotNil(mt, u)
		assert.Equal(mt, 4, u.UserID)
		require.Len(mt, u.Bookshelf, 1)
		assert.Equal(mt, "Twilight", u.Bookshelf[0].Title)
	})

	mt.Run("next user id empty collection", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bibliomatch.users", mtest.FirstBatch))

		id, err := repo.GetNextUserID(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, 1, id)
	})

	mt.Run("next user id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bibliomatch.users", mtest.FirstBatch,
			bson.D{{Key: "userId", Value: 41}}))

		id, err := repo.GetNextUserID(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, 42, id)
	})

	mt.Run("add to shelf duplicate", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		added, err := repo.AddToShelf(ctx, 4, models.ShelfItem{BookCard: models.BookCard{Title: "Twilight"}})
		require.NoError(mt, err)
		assert.False(mt, added)
	})

	mt.Run("remove from shelf", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		removed, err := repo.RemoveFromShelf(ctx, 4, "Twilight")
		require.NoError(mt, err)
		assert.True(mt, removed)
	})
}

func TestRecommendationRepository(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("insert and list", func(mt *mtest.T) {
		repo := NewRecommendationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		rec := &models.TasteHistory{UserID: 4, Inputs: []string{"Twilight"}}
		require.NoError(mt, repo.Insert(ctx, rec))
		assert.False(mt, rec.CreatedAt.IsZero())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bibliomatch.taste_history", mtest.FirstBatch,
			bson.D{{Key: "userId", Value: 4}, {Key: "inputs", Value: bson.A{"Twilight"}}},
		))
		out, err := repo.FindByUser(ctx, 4, 10)
		require.NoError(mt, err)
		require.Len(mt, out, 1)
		assert.Equal(mt, []string{"Twilight"}, out[0].Inputs)
	})
}
