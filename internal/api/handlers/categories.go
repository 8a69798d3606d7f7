package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/api/middleware"
	"github.com/dvloznov/polarix/internal/apperrors"
	"github.com/dvloznov/polarix/internal/domain"
	"github.com/dvloznov/polarix/internal/store"
)

// CategoriesHandler handles the caller's categories.
type CategoriesHandler struct {
	categories store.CategoryRepository
	log        zerolog.Logger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(categories store.CategoryRepository, log zerolog.Logger) *CategoriesHandler {
	return &CategoriesHandler{categories: categories, log: log}
}

type categoryRequest struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// List handles GET /api/categories
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	categories, err := h.categories.ListCategories(r.Context(), id.UserID)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to fetch categories", err))
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}

	middleware.WriteJSON(w, http.StatusOK, categories)
}

// Create handles POST /api/categories
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Subcategories) == 0 {
		middleware.WriteAppError(w, r, h.log, apperrors.Validation("Name and subcategories are required"))
		return
	}

	category := &domain.Category{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Subcategories: req.Subcategories,
		UserID:        id.UserID,
	}
	if err := h.categories.InsertCategory(r.Context(), category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			middleware.WriteAppError(w, r, h.log, apperrors.Conflict("Category already exists"))
			return
		}
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to create category", err))
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Category created successfully",
		"category": category,
	})
}

// Update handles PUT /api/categories/{id}
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.WriteAppError(w, r, h.log, apperrors.Validation("Name is required"))
		return
	}
	if req.Subcategories == nil {
		req.Subcategories = []string{}
	}

	category, err := h.categories.UpdateCategory(r.Context(), id.UserID, chiID(r), req.Name, req.Subcategories)
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("Category not found"))
		return
	case errors.Is(err, store.ErrDuplicate):
		middleware.WriteAppError(w, r, h.log, apperrors.Conflict("Category already exists"))
		return
	case err != nil:
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to update category", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// Delete handles DELETE /api/categories/{id}
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteAppError(w, r, h.log, err)
		return
	}

	err = h.categories.DeleteCategory(r.Context(), id.UserID, chiID(r))
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteAppError(w, r, h.log, apperrors.NotFound("Category not found or already deleted"))
		return
	}
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to delete category", err))
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
