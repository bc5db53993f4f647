package repository

import (
	"context"
	"errors"
	"time"

	"rental-service/internal/domain/apperror"
	"rental-service/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements UserRepository
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new user repository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection("users"),
	}
}

// EnsureIndexes creates the unique index on email
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByID finds a user by hex object id. An unknown or malformed id returns nil.
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var user entity.User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, &apperror.PersistenceError{Op: "find user", Err: err}
	}
	return &user, nil
}

// UpdateProfile sets the given fields and updatedAt on one user
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set["updatedAt"] = time.Now().UTC()

	return r.updateOne(ctx, "update profile", id, set)
}

// UpdatePassword stores a new password hash
func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return r.updateOne(ctx, "update password", id, bson.M{
		"password":  passwordHash,
		"updatedAt": time.Now().UTC(),
	})
}

func (r *MongoUserRepository) updateOne(ctx context.Context, op, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &apperror.NotFoundError{Resource: "User", ID: id}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return &apperror.PersistenceError{Op: op, Err: err}
	}

	if result.MatchedCount == 0 {
		return &apperror.NotFoundError{Resource: "User", ID: id}
	}

	return nil
}
