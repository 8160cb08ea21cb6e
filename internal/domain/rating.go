package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is a review left on a property. Ratings are append-only from
// the client's perspective: they are removed only when the owning
// property is deleted. PropertyID is stored as a plain string, not a
// store-native reference, and is not validated against the properties
// collection.
type Rating struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyID    string             `bson:"propertyId" json:"propertyId"`
	ReviewerEmail string             `bson:"reviewerEmail" json:"reviewerEmail"` // immutable, authorizes the write
	ReviewerName  string             `bson:"reviewerName,omitempty" json:"reviewerName,omitempty"`
	Score         float64            `bson:"score" json:"score"`
	Comment       string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// RatingRepository defines data access for the ratings collection
type RatingRepository interface {
	ListByProperty(ctx context.Context, propertyID string) ([]Rating, error)
	ListByReviewer(ctx context.Context, email string) ([]Rating, error)
	Insert(ctx context.Context, r *Rating) error
	DeleteByProperty(ctx context.Context, propertyID string) (int64, error)
	DistinctPropertyIDs(ctx context.Context) ([]string, error)
}
