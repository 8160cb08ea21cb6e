package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListedBy identifies the agent or developer shown on a listing. By
// convention ListedBy.Email matches UserEmail, but that is not enforced.
type ListedBy struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// Property represents a real-estate listing
type Property struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyName       string             `bson:"propertyName" json:"propertyName"`
	Category           string             `bson:"category" json:"category"`
	PropertyType       string             `bson:"propertyType" json:"propertyType"`
	PropertyFor        string             `bson:"propertyFor" json:"propertyFor"` // Sale or Rent
	PropertySize       string             `bson:"propertySize,omitempty" json:"propertySize,omitempty"`
	Price              float64            `bson:"price" json:"price"`
	PriceUnit          string             `bson:"priceUnit,omitempty" json:"priceUnit,omitempty"`
	Location           string             `bson:"location" json:"location"`
	ConstructionStatus string             `bson:"constructionStatus,omitempty" json:"constructionStatus,omitempty"`
	TransactionType    string             `bson:"transactionType,omitempty" json:"transactionType,omitempty"`
	DepositAmount      float64            `bson:"depositAmount,omitempty" json:"depositAmount,omitempty"`
	AvailableFrom      string             `bson:"availableFrom,omitempty" json:"availableFrom,omitempty"`
	Bedrooms           int                `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms          int                `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Balconies          int                `bson:"balconies,omitempty" json:"balconies,omitempty"`
	TotalFloor         int                `bson:"totalFloor,omitempty" json:"totalFloor,omitempty"`
	FloorAvailableOn   string             `bson:"floorAvailableOn,omitempty" json:"floorAvailableOn,omitempty"`
	Facing             string             `bson:"facing,omitempty" json:"facing,omitempty"`
	Garages            string             `bson:"garages,omitempty" json:"garages,omitempty"`
	Description        string             `bson:"description" json:"description"`
	ImageURL           string             `bson:"imageUrl" json:"imageUrl"`
	Features           []string           `bson:"features,omitempty" json:"features,omitempty"`
	ListedBy           ListedBy           `bson:"listedBy" json:"listedBy"`
	UserEmail          string             `bson:"userEmail" json:"userEmail"` // owner identity, immutable after creation
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PropertyQuery carries the optional filter and sort parameters of the
// public listing endpoint.
type PropertyQuery struct {
	Search    string // case-insensitive substring of propertyName
	SortBy    string
	SortOrder string // asc or desc, default asc
}

// PropertyUpdate holds the mutable fields of a property. Everything
// outside this set (ownership, timestamps, identity) is never written
// by an update.
type PropertyUpdate struct {
	PropertyName string
	Description  string
	Category     string
	Price        float64
	Location     string
	ImageURL     string
}

// PropertyRepository defines data access for the properties collection
type PropertyRepository interface {
	List(ctx context.Context, q PropertyQuery) ([]Property, error)
	Featured(ctx context.Context, limit int64) ([]Property, error)
	GetByID(ctx context.Context, id string) (*Property, error)
	ListByOwner(ctx context.Context, email string) ([]Property, error)
	Insert(ctx context.Context, p *Property) error
	Update(ctx context.Context, id string, upd PropertyUpdate) (*Property, error)
	Delete(ctx context.Context, id string) (int64, error)
}
