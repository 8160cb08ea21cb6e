package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yourorg/homenest/internal/domain"
)

func TestBuildPropertyFilter(t *testing.T) {
	// No search means an unfiltered query
	if f := buildPropertyFilter(domain.PropertyQuery{}); len(f) != 0 {
		t.Fatalf("expected empty filter, got %v", f)
	}

	f := buildPropertyFilter(domain.PropertyQuery{Search: "villa"})
	rx, ok := f["propertyName"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex on propertyName, got %T", f["propertyName"])
	}
	if rx.Pattern != "villa" || rx.Options != "i" {
		t.Fatalf("unexpected regex: %+v", rx)
	}
}

func TestBuildPropertyFilterEscapesMetacharacters(t *testing.T) {
	f := buildPropertyFilter(domain.PropertyQuery{Search: "a.b*c"})
	rx := f["propertyName"].(primitive.Regex)
	if rx.Pattern != `a\.b\*c` {
		t.Fatalf("metacharacters must be escaped, got %q", rx.Pattern)
	}
}

func TestBuildPropertySort(t *testing.T) {
	// Default: newest first
	s := buildPropertySort(domain.PropertyQuery{})
	if len(s) != 1 || s[0].Key != "createdAt" || s[0].Value != -1 {
		t.Fatalf("expected createdAt desc default, got %v", s)
	}

	// sortBy without sortOrder is ascending
	s = buildPropertySort(domain.PropertyQuery{SortBy: "price"})
	if s[0].Key != "price" || s[0].Value != 1 {
		t.Fatalf("expected price asc, got %v", s)
	}

	// Explicit descending
	s = buildPropertySort(domain.PropertyQuery{SortBy: "price", SortOrder: "desc"})
	if s[0].Key != "price" || s[0].Value != -1 {
		t.Fatalf("expected price desc, got %v", s)
	}

	// Unknown sortOrder values fall back to ascending
	s = buildPropertySort(domain.PropertyQuery{SortBy: "price", SortOrder: "descending"})
	if s[0].Value != 1 {
		t.Fatalf("expected asc for unrecognized order, got %v", s)
	}
}
