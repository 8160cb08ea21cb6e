package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/homenest/internal/domain"
	"github.com/yourorg/homenest/internal/observability/metrics"
	"github.com/yourorg/homenest/internal/reliability/retry"
)

// PropertyService owns the decision logic around property listings:
// ownership checks, server-assigned timestamps, the update allow-list,
// and the best-effort rating cascade on delete.
type PropertyService struct {
	properties domain.PropertyRepository
	ratings    domain.RatingRepository
	logger     *slog.Logger
	retryCfg   *retry.Config
}

// NewPropertyService creates a new property service
func NewPropertyService(
	properties domain.PropertyRepository,
	ratings domain.RatingRepository,
	logger *slog.Logger,
) *PropertyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PropertyService{
		properties: properties,
		ratings:    ratings,
		logger:     logger,
		retryCfg:   retry.DefaultConfig(),
	}
}

// DeleteResult reports the outcome of a property deletion.
type DeleteResult struct {
	DeletedCount   int64 `json:"deletedCount"`
	RatingsRemoved int64 `json:"ratingsRemoved"`
}

// List returns properties matching the optional search/sort parameters.
func (s *PropertyService) List(ctx context.Context, q domain.PropertyQuery) ([]domain.Property, error) {
	return s.properties.List(ctx, q)
}

// Featured returns the most recent listings, capped at limit.
func (s *PropertyService) Featured(ctx context.Context, limit int64) ([]domain.Property, error) {
	return s.properties.Featured(ctx, limit)
}

// Get returns one property by id.
func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	return s.properties.GetByID(ctx, id)
}

// Create stores a new property for the principal. The payload's
// userEmail must equal the verified principal email; timestamps are
// assigned server-side regardless of what the client sent.
func (s *PropertyService) Create(ctx context.Context, principal *domain.Principal, p *domain.Property) (*domain.Property, error) {
	if p.UserEmail != principal.Email {
		s.logger.Warn("property create rejected: email mismatch",
			slog.String("principal", principal.Email),
			slog.String("payload_email", p.UserEmail),
		)
		return nil, fmt.Errorf("%w: email mismatch", domain.ErrForbidden)
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.properties.Insert(ctx, p); err != nil {
		metrics.ObservePropertyOperation("create", "error")
		return nil, err
	}

	metrics.ObservePropertyOperation("create", "ok")
	s.logger.Info("property created",
		slog.String("property_id", p.ID.Hex()),
		slog.String("owner", p.UserEmail),
	)
	return p, nil
}

// ListMine returns the properties owned by email. The path email must
// equal the verified principal email.
func (s *PropertyService) ListMine(ctx context.Context, principal *domain.Principal, email string) ([]domain.Property, error) {
	if email != principal.Email {
		return nil, fmt.Errorf("%w: access denied", domain.ErrForbidden)
	}
	return s.properties.ListByOwner(ctx, email)
}

// Update applies the allow-listed fields to an existing property after
// verifying the principal owns it. The stored document is fetched
// first: an absent property is ErrNotFound, a foreign owner is
// ErrForbidden, and in neither case is anything written.
func (s *PropertyService) Update(ctx context.Context, principal *domain.Principal, id string, upd domain.PropertyUpdate) (*domain.Property, error) {
	existing, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.UserEmail != principal.Email {
		s.logger.Warn("property update rejected: not owner",
			slog.String("principal", principal.Email),
			slog.String("owner", existing.UserEmail),
			slog.String("property_id", id),
		)
		return nil, fmt.Errorf("%w: you can only update your own properties", domain.ErrForbidden)
	}

	updated, err := s.properties.Update(ctx, id, upd)
	if err != nil {
		metrics.ObservePropertyOperation("update", "error")
		return nil, err
	}

	metrics.ObservePropertyOperation("update", "ok")
	return updated, nil
}

// Delete removes a property owned by the principal, then cascades the
// deletion to its ratings. The cascade is best-effort: it runs with a
// bounded retry and a failure never rolls back the property deletion.
func (s *PropertyService) Delete(ctx context.Context, principal *domain.Principal, id string) (*DeleteResult, error) {
	existing, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.UserEmail != principal.Email {
		s.logger.Warn("property delete rejected: not owner",
			slog.String("principal", principal.Email),
			slog.String("owner", existing.UserEmail),
			slog.String("property_id", id),
		)
		return nil, fmt.Errorf("%w: you can only delete your own properties", domain.ErrForbidden)
	}

	deleted, err := s.properties.Delete(ctx, id)
	if err != nil {
		metrics.ObservePropertyOperation("delete", "error")
		return nil, err
	}
	metrics.ObservePropertyOperation("delete", "ok")

	removed, err := retry.Do(ctx, s.retryCfg, s.logger, "ratings.cascade", func(ctx context.Context) (int64, error) {
		return s.ratings.DeleteByProperty(ctx, id)
	})
	if err != nil {
		// The property is already gone; orphaned ratings are accepted
		// and swept up later by the reaper.
		s.logger.Error("rating cascade failed",
			slog.String("property_id", id),
			slog.String("error", err.Error()),
		)
		metrics.ObserveCascade("error", 0)
		return &DeleteResult{DeletedCount: deleted}, nil
	}

	metrics.ObserveCascade("ok", removed)
	s.logger.Info("property deleted",
		slog.String("property_id", id),
		slog.Int64("ratings_removed", removed),
	)
	return &DeleteResult{DeletedCount: deleted, RatingsRemoved: removed}, nil
}
