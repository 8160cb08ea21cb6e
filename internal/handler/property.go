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

// PropertyHandler exposes the property endpoints. It decodes and
// validates input, calls the service, and maps typed errors to status
// codes; all decision logic lives in the service.
type PropertyHandler struct {
	service       *service.PropertyService
	audit         *audit.Logger
	logger        *slog.Logger
	featuredLimit int64
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(svc *service.PropertyService, auditLog *audit.Logger, logger *slog.Logger, featuredLimit int64) *PropertyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if featuredLimit <= 0 {
		featuredLimit = 6
	}
	return &PropertyHandler{
		service:       svc,
		audit:         auditLog,
		logger:        logger,
		featuredLimit: featuredLimit,
	}
}

// List handles GET /api/properties?search=&sortBy=&sortOrder=
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := domain.PropertyQuery{
		Search:    r.URL.Query().Get("search"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortOrder: r.URL.Query().Get("sortOrder"),
	}

	properties, err := h.service.List(r.Context(), q)
	if err != nil {
		h.logger.Error("failed to list properties", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Error fetching properties", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

// Featured handles GET /api/properties/featured
func (h *PropertyHandler) Featured(w http.ResponseWriter, r *http.Request) {
	properties, err := h.service.Featured(r.Context(), h.featuredLimit)
	if err != nil {
		h.logger.Error("failed to list featured properties", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Error fetching featured properties", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

// Get handles GET /api/properties/{id}
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	property, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Property not found", "")
			return
		}
		h.logger.Error("failed to get property", slog.String("property_id", id), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Error fetching property", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// Create handles POST /api/properties (protected)
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access - No token provided", "")
		return
	}

	var property domain.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if missing := missingPropertyFields(&property); missing != "" {
		writeError(w, http.StatusBadRequest, "Invalid input", missing+" is required")
		return
	}

	created, err := h.service.Create(r.Context(), principal, &property)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			h.audit.LogDenied(r.Context(), principal.Email, "property", "", "email mismatch")
			writeError(w, http.StatusForbidden, "Forbidden - Email mismatch", "")
			return
		}
		h.logger.Error("failed to create property", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Error adding property", err.Error())
		return
	}

	h.audit.LogPropertyCreated(r.Context(), principal.Email, created.ID.Hex())
	writeJSON(w, http.StatusCreated, created)
}

// ListByUser handles GET /api/properties/user/{email} (protected)
func (h *PropertyHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access - No token provided", "")
		return
	}
	email := r.PathValue("email")

	properties, err := h.service.ListMine(r.Context(), principal, email)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			h.audit.LogDenied(r.Context(), principal.Email, "property", "", "path email mismatch")
			writeError(w, http.StatusForbidden, "Forbidden - Access denied", "")
			return
		}
		h.logger.Error("failed to list user properties", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Error fetching user properties", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

// updatePropertyRequest carries the mutable fields of a property.
// Anything else in the body is silently ignored, so ownership and
// timestamps cannot be overwritten through this endpoint.
type updatePropertyRequest struct {
	PropertyName string  `json:"propertyName"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Location     string  `json:"location"`
	ImageURL     string  `json:"imageUrl"`
}

// Update handles PUT /api/properties/{id} (protected, owner only)
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access - No token provided", "")
		return
	}
	id := r.PathValue("id")

	var req updatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.PropertyName == "" {
		writeError(w, http.StatusBadRequest, "Invalid input", "propertyName is required")
		return
	}

	updated, err := h.service.Update(r.Context(), principal, id, domain.PropertyUpdate{
		PropertyName: req.PropertyName,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		Location:     req.Location,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Property not found", "")
		case errors.Is(err, domain.ErrForbidden):
			h.audit.LogDenied(r.Context(), principal.Email, "property", id, "not owner")
			writeError(w, http.StatusForbidden, "Forbidden - You can only update your own properties", "")
		default:
			h.logger.Error("failed to update property", slog.String("property_id", id), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "Error updating property", err.Error())
		}
		return
	}

	h.audit.LogPropertyUpdated(r.Context(), principal.Email, id)
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/properties/{id} (protected, owner only)
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized access - No token provided", "")
		return
	}
	id := r.PathValue("id")

	result, err := h.service.Delete(r.Context(), principal, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Property not found", "")
		case errors.Is(err, domain.ErrForbidden):
			h.audit.LogDenied(r.Context(), principal.Email, "property", id, "not owner")
			writeError(w, http.StatusForbidden, "Forbidden - You can only delete your own properties", "")
		default:
			h.logger.Error("failed to delete property", slog.String("property_id", id), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "Error deleting property", err.Error())
		}
		return
	}

	h.audit.LogPropertyDeleted(r.Context(), principal.Email, id, result.RatingsRemoved)
	writeJSON(w, http.StatusOK, result)
}

// missingPropertyFields names the first absent required field, or
// returns "" when the payload passes presence validation.
func missingPropertyFields(p *domain.Property) string {
	switch {
	case p.PropertyName == "":
		return "propertyName"
	case p.Category == "":
		return "category"
	case p.PropertyType == "":
		return "propertyType"
	case p.PropertyFor == "":
		return "propertyFor"
	case p.Price == 0:
		return "price"
	case p.Location == "":
		return "location"
	case p.Description == "":
		return "description"
	case p.ImageURL == "":
		return "imageUrl"
	case p.UserEmail == "":
		return "userEmail"
	}
	return ""
}
