package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yourorg/homenest/internal/domain"
)

type memPropertyRepo struct {
	byID map[string]*domain.Property

	insertErr error
	deleteErr error
}

func newMemPropertyRepo() *memPropertyRepo {
	return &memPropertyRepo{byID: map[string]*domain.Property{}}
}

func (m *memPropertyRepo) List(ctx context.Context, q domain.PropertyQuery) ([]domain.Property, error) {
	out := []domain.Property{}
	for _, p := range m.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memPropertyRepo) Featured(ctx context.Context, limit int64) ([]domain.Property, error) {
	all, _ := m.List(ctx, domain.PropertyQuery{})
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memPropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	if p, ok := m.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memPropertyRepo) ListByOwner(ctx context.Context, email string) ([]domain.Property, error) {
	out := []domain.Property{}
	for _, p := range m.byID {
		if p.UserEmail == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPropertyRepo) Insert(ctx context.Context, p *domain.Property) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	m.byID[p.ID.Hex()] = &cp
	return nil
}

func (m *memPropertyRepo) Update(ctx context.Context, id string, upd domain.PropertyUpdate) (*domain.Property, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.PropertyName = upd.PropertyName
	p.Description = upd.Description
	p.Category = upd.Category
	p.Price = upd.Price
	p.Location = upd.Location
	p.ImageURL = upd.ImageURL
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (m *memPropertyRepo) Delete(ctx context.Context, id string) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

type memRatingRepo struct {
	byProperty map[string][]domain.Rating

	insertErr error
	deleteErr error
}

func newMemRatingRepo() *memRatingRepo {
	return &memRatingRepo{byProperty: map[string][]domain.Rating{}}
}

func (m *memRatingRepo) ListByProperty(ctx context.Context, propertyID string) ([]domain.Rating, error) {
	return append([]domain.Rating{}, m.byProperty[propertyID]...), nil
}

func (m *memRatingRepo) ListByReviewer(ctx context.Context, email string) ([]domain.Rating, error) {
	out := []domain.Rating{}
	for _, rs := range m.byProperty {
		for _, r := range rs {
			if r.ReviewerEmail == email {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (m *memRatingRepo) Insert(ctx context.Context, r *domain.Rating) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	m.byProperty[r.PropertyID] = append(m.byProperty[r.PropertyID], *r)
	return nil
}

func (m *memRatingRepo) DeleteByProperty(ctx context.Context, propertyID string) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	n := int64(len(m.byProperty[propertyID]))
	delete(m.byProperty, propertyID)
	return n, nil
}

func (m *memRatingRepo) DistinctPropertyIDs(ctx context.Context) ([]string, error) {
	out := []string{}
	for id := range m.byProperty {
		out = append(out, id)
	}
	return out, nil
}

func seedProperty(t *testing.T, repo *memPropertyRepo, owner string) *domain.Property {
	t.Helper()
	p := &domain.Property{
		PropertyName: "Lakeside Duplex",
		Category:     "Apartment",
		PropertyType: "Apartment/Flats",
		PropertyFor:  "Sale",
		Price:        5000000,
		Location:     "Dhanmondi, Dhaka",
		Description:  "Spacious duplex",
		ImageURL:     "https://example.com/duplex.jpg",
		UserEmail:    owner,
	}
	if err := repo.Insert(context.Background(), p); err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}
	return p
}

func TestCreateAssignsTimestamps(t *testing.T) {
	props := newMemPropertyRepo()
	s := NewPropertyService(props, newMemRatingRepo(), nil)
	principal := &domain.Principal{Email: "alice@example.com"}

	p := &domain.Property{
		PropertyName: "Hilltop Villa",
		UserEmail:    "alice@example.com",
		// Client-supplied timestamps must be discarded
		CreatedAt: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	created, err := s.Create(context.Background(), principal, p)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatalf("expected assigned id")
	}
	if created.CreatedAt.Year() == 2000 || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected fresh equal timestamps, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}
}

func TestCreateRejectsEmailMismatch(t *testing.T) {
	props := newMemPropertyRepo()
	s := NewPropertyService(props, newMemRatingRepo(), nil)
	principal := &domain.Principal{Email: "alice@example.com"}

	_, err := s.Create(context.Background(), principal, &domain.Property{UserEmail: "mallory@example.com"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(props.byID) != 0 {
		t.Fatalf("expected no property stored on rejection")
	}
}

func TestUpdateOwnershipAndNotFound(t *testing.T) {
	props := newMemPropertyRepo()
	s := NewPropertyService(props, newMemRatingRepo(), nil)
	owner := &domain.Principal{Email: "alice@example.com"}
	stranger := &domain.Principal{Email: "mallory@example.com"}
	p := seedProperty(t, props, owner.Email)

	upd := domain.PropertyUpdate{PropertyName: "Renamed", Price: 6000000}

	// Unknown id
	if _, err := s.Update(context.Background(), owner, primitive.NewObjectID().Hex(), upd); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Foreign owner: rejected and nothing written
	if _, err := s.Update(context.Background(), stranger, p.ID.Hex(), upd); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if stored, _ := props.GetByID(context.Background(), p.ID.Hex()); stored.PropertyName != "Lakeside Duplex" {
		t.Fatalf("expected unchanged property after rejected update, got %q", stored.PropertyName)
	}

	// Owner succeeds and gets the post-update document back
	updated, err := s.Update(context.Background(), owner, p.ID.Hex(), upd)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PropertyName != "Renamed" || updated.Price != 6000000 {
		t.Fatalf("expected updated fields in response, got %+v", updated)
	}
	if updated.UserEmail != owner.Email {
		t.Fatalf("owner identity must survive the update")
	}
}

func TestDeleteCascadesRatings(t *testing.T) {
	props := newMemPropertyRepo()
	ratings := newMemRatingRepo()
	s := NewPropertyService(props, ratings, nil)
	owner := &domain.Principal{Email: "alice@example.com"}
	p := seedProperty(t, props, owner.Email)

	for i := 0; i < 3; i++ {
		r := &domain.Rating{PropertyID: p.ID.Hex(), ReviewerEmail: "bob@example.com", Score: 4}
		if err := ratings.Insert(context.Background(), r); err != nil {
			t.Fatalf("seed rating failed: %v", err)
		}
	}

	res, err := s.Delete(context.Background(), owner, p.ID.Hex())
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if res.DeletedCount != 1 || res.RatingsRemoved != 3 {
		t.Fatalf("expected 1 property and 3 ratings removed, got %+v", res)
	}
	if _, err := props.GetByID(context.Background(), p.ID.Hex()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected property gone")
	}
}

func TestDeleteSucceedsWhenCascadeFails(t *testing.T) {
	props := newMemPropertyRepo()
	ratings := newMemRatingRepo()
	ratings.deleteErr = errors.New("ratings collection unavailable")
	s := NewPropertyService(props, ratings, nil)
	owner := &domain.Principal{Email: "alice@example.com"}
	p := seedProperty(t, props, owner.Email)

	res, err := s.Delete(context.Background(), owner, p.ID.Hex())
	if err != nil {
		t.Fatalf("delete should not fail when only the cascade fails: %v", err)
	}
	if res.DeletedCount != 1 || res.RatingsRemoved != 0 {
		t.Fatalf("expected property deleted with zero ratings reported, got %+v", res)
	}
}

func TestDeleteRejectsForeignOwner(t *testing.T) {
	props := newMemPropertyRepo()
	s := NewPropertyService(props, newMemRatingRepo(), nil)
	p := seedProperty(t, props, "alice@example.com")

	_, err := s.Delete(context.Background(), &domain.Principal{Email: "mallory@example.com"}, p.ID.Hex())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := props.GetByID(context.Background(), p.ID.Hex()); err != nil {
		t.Fatalf("property must survive a rejected delete")
	}
}

func TestListMineScoping(t *testing.T) {
	props := newMemPropertyRepo()
	s := NewPropertyService(props, newMemRatingRepo(), nil)
	seedProperty(t, props, "alice@example.com")
	seedProperty(t, props, "bob@example.com")

	alice := &domain.Principal{Email: "alice@example.com"}
	mine, err := s.ListMine(context.Background(), alice, "alice@example.com")
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if len(mine) != 1 || mine[0].UserEmail != "alice@example.com" {
		t.Fatalf("expected only alice's properties, got %+v", mine)
	}

	// Asking for someone else's slice is rejected
	if _, err := s.ListMine(context.Background(), alice, "bob@example.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
