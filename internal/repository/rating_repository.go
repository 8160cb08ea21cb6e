package repository

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yourorg/homenest/internal/domain"
)

// MongoRatingRepository implements domain.RatingRepository over the
// ratings collection.
type MongoRatingRepository struct {
	coll    *mongo.Collection
	logger  *slog.Logger
	timeout time.Duration
}

// NewMongoRatingRepository creates a rating repository backed by db.
func NewMongoRatingRepository(db *mongo.Database, logger *slog.Logger, timeout time.Duration) *MongoRatingRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MongoRatingRepository{
		coll:    db.Collection("ratings"),
		logger:  logger,
		timeout: timeout,
	}
}

// ListByProperty returns the ratings attached to a property, newest
// first. The property id is matched as the plain string the rating was
// created with; no existence check against properties is made.
func (r *MongoRatingRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.Rating, error) {
	return r.list(ctx, bson.M{"propertyId": propertyID})
}

// ListByReviewer returns the ratings submitted by a reviewer, newest first.
func (r *MongoRatingRepository) ListByReviewer(ctx context.Context, email string) ([]domain.Rating, error) {
	return r.list(ctx, bson.M{"reviewerEmail": email})
}

func (r *MongoRatingRepository) list(ctx context.Context, filter bson.M) ([]domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.NewStoreError("ratings.find", err)
	}
	defer cursor.Close(ctx)

	ratings := []domain.Rating{}
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, domain.NewStoreError("ratings.decode", err)
	}
	return ratings, nil
}

// Insert stores a new rating and fills in its assigned id.
func (r *MongoRatingRepository) Insert(ctx context.Context, rating *domain.Rating) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.coll.InsertOne(ctx, rating)
	if err != nil {
		return domain.NewStoreError("ratings.insertOne", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rating.ID = oid
	}
	r.logger.Debug("rating inserted",
		slog.String("rating_id", rating.ID.Hex()),
		slog.String("property_id", rating.PropertyID),
	)
	return nil
}

// DeleteByProperty removes every rating referencing the given property
// id and reports how many went away. Used by the cascade after a
// property deletion.
func (r *MongoRatingRepository) DeleteByProperty(ctx context.Context, propertyID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"propertyId": propertyID})
	if err != nil {
		return 0, domain.NewStoreError("ratings.deleteMany", err)
	}
	return result.DeletedCount, nil
}

// DistinctPropertyIDs returns every property id referenced by at least
// one rating. The orphan reaper uses it to find ratings whose property
// no longer resolves.
func (r *MongoRatingRepository) DistinctPropertyIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "propertyId", bson.M{})
	if err != nil {
		return nil, domain.NewStoreError("ratings.distinct", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
