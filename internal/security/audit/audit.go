package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Logger emits a structured audit record for every mutation of a
// listing or rating, keyed by the acting principal's email.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

func (al *Logger) LogAction(ctx context.Context, principalEmail, action, resource, resourceID, status, details string) {
	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("principal", principalEmail),
		slog.String("status", status),
		slog.String("details", details),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *Logger) LogPropertyCreated(ctx context.Context, principalEmail, propertyID string) {
	al.LogAction(ctx, principalEmail, "create", "property", propertyID, "ok", "")
}

func (al *Logger) LogPropertyUpdated(ctx context.Context, principalEmail, propertyID string) {
	al.LogAction(ctx, principalEmail, "update", "property", propertyID, "ok", "")
}

func (al *Logger) LogPropertyDeleted(ctx context.Context, principalEmail, propertyID string, ratingsRemoved int64) {
	al.LogAction(ctx, principalEmail, "delete", "property", propertyID, "ok",
		fmt.Sprintf("ratings_removed=%d", ratingsRemoved))
}

func (al *Logger) LogRatingCreated(ctx context.Context, principalEmail, ratingID string) {
	al.LogAction(ctx, principalEmail, "create", "rating", ratingID, "ok", "")
}

func (al *Logger) LogDenied(ctx context.Context, principalEmail, resource, resourceID, reason string) {
	al.LogAction(ctx, principalEmail, "access_denied", resource, resourceID, "denied", reason)
}
