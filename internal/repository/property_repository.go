package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yourorg/homenest/internal/domain"
)

// MongoPropertyRepository implements domain.PropertyRepository over the
// properties collection. Every call runs under a bounded timeout so no
// request blocks indefinitely on the store.
type MongoPropertyRepository struct {
	coll    *mongo.Collection
	logger  *slog.Logger
	timeout time.Duration
}

// NewMongoPropertyRepository creates a property repository backed by db.
func NewMongoPropertyRepository(db *mongo.Database, logger *slog.Logger, timeout time.Duration) *MongoPropertyRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MongoPropertyRepository{
		coll:    db.Collection("properties"),
		logger:  logger,
		timeout: timeout,
	}
}

// List returns properties matching the optional search term, ordered by
// the requested sort (createdAt descending when none is given).
func (r *MongoPropertyRepository) List(ctx context.Context, q domain.PropertyQuery) ([]domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, buildPropertyFilter(q), options.Find().SetSort(buildPropertySort(q)))
	if err != nil {
		return nil, domain.NewStoreError("properties.find", err)
	}
	defer cursor.Close(ctx)

	properties := []domain.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, domain.NewStoreError("properties.decode", err)
	}
	return properties, nil
}

// Featured returns the most recent properties, capped at limit.
func (r *MongoPropertyRepository) Featured(ctx context.Context, limit int64) ([]domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, domain.NewStoreError("properties.find", err)
	}
	defer cursor.Close(ctx)

	properties := []domain.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, domain.NewStoreError("properties.decode", err)
	}
	return properties, nil
}

// GetByID retrieves one property. A malformed id is indistinguishable
// from an absent document to the caller: both are ErrNotFound.
func (r *MongoPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var property domain.Property
	err = r.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewStoreError("properties.findOne", err)
	}
	return &property, nil
}

// ListByOwner returns the properties recorded under the given owner
// email, newest first.
func (r *MongoPropertyRepository) ListByOwner(ctx context.Context, email string) ([]domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userEmail": email}, opts)
	if err != nil {
		return nil, domain.NewStoreError("properties.find", err)
	}
	defer cursor.Close(ctx)

	properties := []domain.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, domain.NewStoreError("properties.decode", err)
	}
	return properties, nil
}

// Insert stores a new property and fills in its assigned id.
func (r *MongoPropertyRepository) Insert(ctx context.Context, p *domain.Property) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return domain.NewStoreError("properties.insertOne", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	r.logger.Debug("property inserted", slog.String("property_id", p.ID.Hex()))
	return nil
}

// Update applies the fixed set of mutable fields and refreshes
// updatedAt, returning the post-update document. Ownership and
// createdAt are never part of the write.
func (r *MongoPropertyRepository) Update(ctx context.Context, id string, upd domain.PropertyUpdate) (*domain.Property, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	set := bson.M{
		"propertyName": upd.PropertyName,
		"description":  upd.Description,
		"category":     upd.Category,
		"price":        upd.Price,
		"location":     upd.Location,
		"imageUrl":     upd.ImageURL,
		"updatedAt":    time.Now().UTC(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Property
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewStoreError("properties.findOneAndUpdate", err)
	}
	return &updated, nil
}

// Delete removes a property and reports how many documents went away.
func (r *MongoPropertyRepository) Delete(ctx context.Context, id string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return 0, domain.NewStoreError("properties.deleteOne", err)
	}
	r.logger.Debug("property deleted", slog.String("property_id", id), slog.Int64("count", result.DeletedCount))
	return result.DeletedCount, nil
}
