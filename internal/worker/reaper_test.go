package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/yourorg/homenest/internal/domain"
)

type stubPropertyRepo struct {
	existing map[string]bool
	failing  map[string]bool
}

func (s *stubPropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	if s.failing[id] {
		return nil, domain.NewStoreError("properties.find", errors.New("timeout"))
	}
	if s.existing[id] {
		return &domain.Property{UserEmail: "alice@example.com"}, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubPropertyRepo) List(ctx context.Context, q domain.PropertyQuery) ([]domain.Property, error) {
	return nil, nil
}
func (s *stubPropertyRepo) Featured(ctx context.Context, limit int64) ([]domain.Property, error) {
	return nil, nil
}
func (s *stubPropertyRepo) ListByOwner(ctx context.Context, email string) ([]domain.Property, error) {
	return nil, nil
}
func (s *stubPropertyRepo) Insert(ctx context.Context, p *domain.Property) error { return nil }
func (s *stubPropertyRepo) Update(ctx context.Context, id string, upd domain.PropertyUpdate) (*domain.Property, error) {
	return nil, nil
}
func (s *stubPropertyRepo) Delete(ctx context.Context, id string) (int64, error) { return 0, nil }

type stubRatingRepo struct {
	byProperty map[string][]domain.Rating
}

func (s *stubRatingRepo) ListByProperty(ctx context.Context, propertyID string) ([]domain.Rating, error) {
	return s.byProperty[propertyID], nil
}
func (s *stubRatingRepo) ListByReviewer(ctx context.Context, email string) ([]domain.Rating, error) {
	return nil, nil
}
func (s *stubRatingRepo) Insert(ctx context.Context, r *domain.Rating) error { return nil }
func (s *stubRatingRepo) DeleteByProperty(ctx context.Context, propertyID string) (int64, error) {
	n := int64(len(s.byProperty[propertyID]))
	delete(s.byProperty, propertyID)
	return n, nil
}
func (s *stubRatingRepo) DistinctPropertyIDs(ctx context.Context) ([]string, error) {
	out := []string{}
	for id := range s.byProperty {
		out = append(out, id)
	}
	return out, nil
}

func TestSweepRemovesOnlyOrphans(t *testing.T) {
	props := &stubPropertyRepo{
		existing: map[string]bool{"live": true},
		failing:  map[string]bool{"flaky": true},
	}
	ratings := &stubRatingRepo{byProperty: map[string][]domain.Rating{
		"live":   {{PropertyID: "live", Score: 5}},
		"orphan": {{PropertyID: "orphan", Score: 3}, {PropertyID: "orphan", Score: 4}},
		"flaky":  {{PropertyID: "flaky", Score: 2}},
	}}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reaper := NewRatingReaper(props, ratings, log, time.Hour)
	reaper.sweep(context.Background())

	if _, ok := ratings.byProperty["orphan"]; ok {
		t.Fatalf("expected orphaned ratings removed")
	}
	if len(ratings.byProperty["live"]) != 1 {
		t.Fatalf("ratings of a live property must survive the sweep")
	}
	// A store read failure is not proof of absence
	if len(ratings.byProperty["flaky"]) != 1 {
		t.Fatalf("ratings must survive when the property check fails")
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	props := &stubPropertyRepo{existing: map[string]bool{}}
	ratings := &stubRatingRepo{byProperty: map[string][]domain.Rating{}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reaper := NewRatingReaper(props, ratings, log, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reaper.Start(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("reaper did not stop after cancel")
	}
}
