package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-service/internal/domain/apperror"
	"rental-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoPropertyRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find returns document", func(mt *mtest.T) {
		repo := NewMongoPropertyRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.properties", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "ownerRezId", Value: int64(42)},
			{Key: "description", Value: "Lakefront cabin"},
			{Key: "status", Value: "Active"},
			{Key: "amenities", Value: bson.A{"wifi", "dock"}},
		}))

		p, err := repo.FindByOwnerRezID(context.Background(), 42)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, int64(42), p.OwnerRezID)
		assert.Equal(t, "Lakefront cabin", p.Description)
		assert.Equal(t, []string{"wifi", "dock"}, p.Amenities)
	})

	mt.Run("find missing returns nil", func(mt *mtest.T) {
		repo := NewMongoPropertyRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.properties", mtest.FirstBatch))

		p, err := repo.FindByOwnerRezID(context.Background(), 42)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	mt.Run("find store failure", func(mt *mtest.T) {
		repo := NewMongoPropertyRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom", Name: "BadValue"}))

		_, err := repo.FindByOwnerRezID(context.Background(), 42)
		var perr *apperror.PersistenceError
		assert.True(t, errors.As(err, &perr))
	})

	mt.Run("upsert returns updated document", func(mt *mtest.T) {
		repo := NewMongoPropertyRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "ownerRezId", Value: int64(42)},
			{Key: "description", Value: "Updated"},
			{Key: "status", Value: "Pending"},
		}}))

		p, err := repo.UpsertByOwnerRezID(context.Background(), 42, &entity.LocalPropertyInput{Description: "Updated"})
		require.NoError(t, err)
		assert.Equal(t, "Updated", p.Description)
		assert.Equal(t, "Pending", p.Status)
	})

	mt.Run("touch sync time", func(mt *mtest.T) {
		repo := NewMongoPropertyRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		// no local document is not an error
		assert.NoError(t, repo.TouchSyncedAt(context.Background(), 42, time.Now()))
	})
}

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("find by id", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		guestID := int64(77)
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "jane@example.com"},
			{Key: "fullName", Value: "Jane Doe"},
			{Key: "role", Value: "admin"},
			{Key: "guestId", Value: guestID},
			{Key: "password", Value: "$2a$10$hash"},
		}))

		u, err := repo.FindByID(context.Background(), id.Hex())
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "Jane Doe", u.FullName)
		require.NotNil(t, u.GuestID)
		assert.Equal(t, guestID, *u.GuestID)
		assert.Equal(t, "$2a$10$hash", u.Password)
	})

	mt.Run("malformed id finds nothing", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)

		u, err := repo.FindByID(context.Background(), "not-an-object-id")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	mt.Run("update profile matched", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := repo.UpdateProfile(context.Background(), id.Hex(), map[string]interface{}{"fullName": "Jane Q Doe"})
		assert.NoError(t, err)
	})

	mt.Run("update profile unmatched", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.UpdateProfile(context.Background(), id.Hex(), map[string]interface{}{"fullName": "Nobody"})
		var nf *apperror.NotFoundError
		assert.True(t, errors.As(err, &nf))
	})

	mt.Run("update password", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		assert.NoError(t, repo.UpdatePassword(context.Background(), id.Hex(), "$2a$10$new"))
	})
}
