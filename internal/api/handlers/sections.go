package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/api/middleware"
	"github.com/dvloznov/polarix/internal/apperrors"
	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/sections"
	"github.com/dvloznov/polarix/internal/store"
)

// SectionsHandler exposes the aggregation protocol.
type SectionsHandler struct {
	agg   *sections.Aggregator
	users store.UserRepository
	log   zerolog.Logger
}

// NewSectionsHandler creates a new sections handler.
func NewSectionsHandler(agg *sections.Aggregator, users store.UserRepository, log zerolog.Logger) *SectionsHandler {
	return &SectionsHandler{agg: agg, users: users, log: log}
}

// Upsert handles POST /api/sections
func (h *SectionsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	var req struct {
		Email    string           `json:"email"`
		Category string           `json:"category"`
		Data     *sections.Totals `json:"data"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	if req.Email == "" || req.Category == "" || req.Data == nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Validation("Email, category and data are required"))
		return
	}
	if err := requireOwnEmail(r, h.users, id, req.Email); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	if err := h.agg.Upsert(r.Context(), req.Email, domain.SectionCategory(req.Category), *req.Data); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Section updated successfully!"})
}

// Get handles GET /api/sections/{email}/{category}/{subcategory}. A section
// never written reads as {"total": 0}.
func (h *SectionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	email := pathParam(r, "email")
	if err := requireOwnEmail(r, h.users, id, email); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	section, err := h.agg.Get(r.Context(), email, domain.SectionCategory(pathParam(r, "category")), pathParam(r, "subcategory"))
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	if section.ID == "" {
		middleware.WriteJSON(w, http.StatusOK, map[string]float64{"total": 0})
		return
	}

	middleware.WriteJSON(w, http.StatusOK, section)
}
