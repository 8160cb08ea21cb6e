package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yourorg/homenest/internal/domain"
	"github.com/yourorg/homenest/internal/security/audit"
	"github.com/yourorg/homenest/internal/security/middleware"
	"github.com/yourorg/homenest/internal/service"
)

// RatingHandler exposes the rating endpoints.
type RatingHandler struct {
	service *service.RatingService
	audit   *audit.Logger
	logger  *slog.Logger
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(svc *service.RatingService, auditLog *audit.Logger, logger *slog.Logger) *RatingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RatingHandler{service: svc, audit: auditLog, logger: logger}
}

// ListByProperty handles GET /api/ratings/property/{propertyId}
func (h *RatingHandler) ListByProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := r.PathValue("propertyId")

	ratings, err := h.service.ListByProperty(r.Context(), propertyID)
	if err != nil {
		h.logger.Error("failed to list ratings", slog.String("property_id", propertyID), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Error fetching ratings", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

// Create handles POST /api/ratings (protected)
func (h *RatingHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access - No token provided", "")
		return
	}

	var rating domain.Rating
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if rating.PropertyID == "" {
		writeError(w, http.StatusBadRequest, "Invalid input", "propertyId is required")
		return
	}
	if rating.ReviewerEmail == "" {
		writeError(w, http.StatusBadRequest, "Invalid input", "reviewerEmail is required")
		return
	}

	created, err := h.service.Create(r.Context(), principal, &rating)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			h.audit.LogDenied(r.Context(), principal.Email, "rating", "", "email mismatch")
			writeError(w, http.StatusForbidden, "Forbidden - Email mismatch", "")
			return
		}
		h.logger.Error("failed to create rating", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Error adding rating", err.Error())
		return
	}

	h.audit.LogRatingCreated(r.Context(), principal.Email, created.ID.Hex())
	writeJSON(w, http.StatusCreated, created)
}

// ListByUser handles GET /api/ratings/user/{email} (protected)
func (h *RatingHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access - No token provided", "")
		return
	}
	email := r.PathValue("email")

	ratings, err := h.service.ListMine(r.Context(), principal, email)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			h.audit.LogDenied(r.Context(), principal.Email, "rating", "", "path email mismatch")
			writeError(w, http.StatusForbidden, "Forbidden - Access denied", "")
			return
		}
		h.logger.Error("failed to list user ratings", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Error fetching user ratings", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}
