package repository

import (
	"context"
	"errors"
	"time"

	"rental-service/internal/domain/apperror"
	"rental-service/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultPropertyStatus = "Pending"

// MongoPropertyRepository implements PropertyRepository
type MongoPropertyRepository struct {
	collection *mongo.Collection
}

// NewMongoPropertyRepository creates a new property repository
func NewMongoPropertyRepository(db *mongo.Database) *MongoPropertyRepository {
	return &MongoPropertyRepository{
		collection: db.Collection("properties"),
	}
}

// EnsureIndexes creates the unique index on ownerRezId
func (r *MongoPropertyRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerRezId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByOwnerRezID returns the local document for a remote property, or nil when there is none
func (r *MongoPropertyRepository) FindByOwnerRezID(ctx context.Context, ownerRezID int64) (*entity.LocalProperty, error) {
	var property entity.LocalProperty
	err := r.collection.FindOne(ctx, bson.M{"ownerRezId": ownerRezID}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, &apperror.PersistenceError{Op: "find property", Err: err}
	}
	return &property, nil
}

// UpsertByOwnerRezID writes the locally owned fields, creating the document if needed
func (r *MongoPropertyRepository) UpsertByOwnerRezID(ctx context.Context, ownerRezID int64, input *entity.LocalPropertyInput) (*entity.LocalProperty, error) {
	now := time.Now().UTC()

	set := bson.M{
		"name":        input.Name,
		"description": input.Description,
		"amenities":   nonNil(input.Amenities),
		"rules":       nonNil(input.Rules),
		"isVerified":  input.IsVerified,
		"images":      nonNil(input.Images),
		"updatedAt":   now,
	}
	if input.Pricing != nil {
		set["pricing"] = input.Pricing
	}
	if input.Availability != nil {
		set["availability"] = input.Availability
	}
	if input.Policies != nil {
		set["policies"] = input.Policies
	}
	if input.Owner != nil {
		set["owner"] = input.Owner
	}

	setOnInsert := bson.M{
		"ownerRezId": ownerRezID,
		"createdAt":  now,
	}
	if input.Status != "" {
		set["status"] = input.Status
	} else {
		setOnInsert["status"] = defaultPropertyStatus
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var property entity.LocalProperty
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"ownerRezId": ownerRezID},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		opts,
	).Decode(&property)
	if err != nil {
		return nil, &apperror.PersistenceError{Op: "upsert property", Err: err}
	}

	return &property, nil
}

// TouchSyncedAt records the time of the last successful remote write. A property
// without a local document is left alone.
func (r *MongoPropertyRepository) TouchSyncedAt(ctx context.Context, ownerRezID int64, syncedAt time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"ownerRezId": ownerRezID},
		bson.M{"$set": bson.M{
			"lastSyncedWithOwnerRez": syncedAt,
			"updatedAt":              syncedAt,
		}},
	)
	if err != nil {
		return &apperror.PersistenceError{Op: "touch property sync time", Err: err}
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
