package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/polarix/internal/api/middleware"
	"github.com/dvloznov/polarix/internal/apperrors"
	"github.com/dvloznov/polarix/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TemplatesHandler serves the transaction import template.
type TemplatesHandler struct {
	log zerolog.Logger
}

// NewTemplatesHandler creates a new templates handler.
func NewTemplatesHandler(log zerolog.Logger) *TemplatesHandler {
	return &TemplatesHandler{log: log}
}

// Transactions handles GET /api/templates/transactions.xlsx
func (h *TemplatesHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	data, err := export.BuildTemplate()
	if err != nil {
		middleware.WriteAppError(w, r, h.log, apperrors.Internal("Failed to build template", err))
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Warn().Err(err).Msg("Template write interrupted")
	}
}

// Health handles GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
