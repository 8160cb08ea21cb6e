package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/yourorg/homenest/internal/domain"
	"github.com/yourorg/homenest/internal/observability/metrics"
	"github.com/yourorg/homenest/internal/reliability/retry"
)

// RatingReaper periodically removes ratings whose property no longer
// resolves. The delete cascade is best-effort, so a store failure
// between the property deletion and the rating cleanup can leave
// orphans behind; the reaper finishes those cascades on a schedule.
// It never touches ratings whose property still exists.
type RatingReaper struct {
	properties domain.PropertyRepository
	ratings    domain.RatingRepository
	logger     *slog.Logger
	interval   time.Duration
	retryCfg   *retry.Config
}

// NewRatingReaper creates a new rating reaper
func NewRatingReaper(
	properties domain.PropertyRepository,
	ratings domain.RatingRepository,
	logger *slog.Logger,
	interval time.Duration,
) *RatingReaper {
	return &RatingReaper{
		properties: properties,
		ratings:    ratings,
		logger:     logger,
		interval:   interval,
		retryCfg:   retry.DefaultConfig(),
	}
}

// Start begins the reaper loop. It runs until ctx is cancelled.
func (w *RatingReaper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("rating reaper started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("rating reaper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep runs one pass over the referenced property ids.
func (w *RatingReaper) sweep(ctx context.Context) {
	propertyIDs, err := w.ratings.DistinctPropertyIDs(ctx)
	if err != nil {
		w.logger.Error("reaper failed to list referenced properties", slog.String("error", err.Error()))
		return
	}

	var removed int64
	for _, id := range propertyIDs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, err := w.properties.GetByID(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			// Store trouble; skip rather than risk deleting live ratings.
			w.logger.Warn("reaper skipping property check", slog.String("property_id", id), slog.String("error", err.Error()))
			continue
		}

		count, err := retry.Do(ctx, w.retryCfg, w.logger, "reaper.deleteByProperty", func(ctx context.Context) (int64, error) {
			return w.ratings.DeleteByProperty(ctx, id)
		})
		if err != nil {
			w.logger.Error("reaper failed to remove orphaned ratings",
				slog.String("property_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		removed += count
	}

	if removed > 0 {
		metrics.ObserveCascade("reaper", removed)
		w.logger.Info("reaper removed orphaned ratings", slog.Int64("count", removed))
	}
}
