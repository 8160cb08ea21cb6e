package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/homenest/internal/domain"
	"github.com/yourorg/homenest/internal/observability/metrics"
)

// RatingService owns the decision logic around ratings. Ratings carry
// no update or delete path of their own; the reviewerEmail recorded at
// creation authorizes nothing further.
type RatingService struct {
	ratings domain.RatingRepository
	logger  *slog.Logger
}

// NewRatingService creates a new rating service
func NewRatingService(ratings domain.RatingRepository, logger *slog.Logger) *RatingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RatingService{ratings: ratings, logger: logger}
}

// ListByProperty returns the ratings for a property, newest first.
// Whether the property itself exists is not checked.
func (s *RatingService) ListByProperty(ctx context.Context, propertyID string) ([]domain.Rating, error) {
	return s.ratings.ListByProperty(ctx, propertyID)
}

// Create stores a new rating for the principal. The payload's
// reviewerEmail must equal the verified principal email; createdAt is
// assigned server-side.
func (s *RatingService) Create(ctx context.Context, principal *domain.Principal, r *domain.Rating) (*domain.Rating, error) {
	if r.ReviewerEmail != principal.Email {
		s.logger.Warn("rating create rejected: email mismatch",
			slog.String("principal", principal.Email),
			slog.String("payload_email", r.ReviewerEmail),
		)
		return nil, fmt.Errorf("%w: email mismatch", domain.ErrForbidden)
	}

	r.CreatedAt = time.Now().UTC()

	if err := s.ratings.Insert(ctx, r); err != nil {
		metrics.ObserveRatingOperation("create", "error")
		return nil, err
	}

	metrics.ObserveRatingOperation("create", "ok")
	s.logger.Info("rating created",
		slog.String("rating_id", r.ID.Hex()),
		slog.String("property_id", r.PropertyID),
		slog.String("reviewer", r.ReviewerEmail),
	)
	return r, nil
}

// ListMine returns the ratings submitted by email. The path email must
// equal the verified principal email.
func (s *RatingService) ListMine(ctx context.Context, principal *domain.Principal, email string) ([]domain.Rating, error) {
	if email != principal.Email {
		return nil, fmt.Errorf("%w: access denied", domain.ErrForbidden)
	}
	return s.ratings.ListByReviewer(ctx, email)
}
