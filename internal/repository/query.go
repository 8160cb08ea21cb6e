package repository

import (
	"regexp"

	"github.com/yourorg/homenest/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildPropertyFilter translates the optional search parameter into a
// Mongo filter. The search term is matched as a literal case-insensitive
// substring of propertyName: regex metacharacters in the input are
// escaped so they cannot widen the match.
func buildPropertyFilter(q domain.PropertyQuery) bson.M {
	filter := bson.M{}
	if q.Search != "" {
		filter["propertyName"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(q.Search),
			Options: "i",
		}
	}
	return filter
}

// buildPropertySort translates sortBy/sortOrder into a Mongo sort
// specification. Without sortBy, listings come back newest first.
func buildPropertySort(q domain.PropertyQuery) bson.D {
	if q.SortBy == "" {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	order := 1
	if q.SortOrder == "desc" {
		order = -1
	}
	return bson.D{{Key: q.SortBy, Value: order}}
}
