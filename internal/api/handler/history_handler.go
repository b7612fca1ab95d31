package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cmsforge/translate-gateway/internal/api/middleware"
	"github.com/cmsforge/translate-gateway/internal/core/ports"
)

// HistoryHandler serves the caller's recent translation audit trail. Only
// registered when history storage is configured.
type HistoryHandler struct {
	repo ports.TranslationRepository
}

func NewHistoryHandler(repo ports.TranslationRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

type historyItem struct {
	Section        string `json:"section,omitempty"`
	TargetLanguage string `json:"target_language"`
	Model          string `json:"model"`
	Success        bool   `json:"success"`
	DurationMs     int64  `json:"duration_ms"`
	CreatedAt      string `json:"created_at"`
}

type historyResponse struct {
	Items []historyItem `json:"items"`
}

// List handles GET /v1/translations.
//
// @Summary      List the caller's recent translations
// @Tags         translate
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of records (default 20, max 100)"
// @Success      200    {object}  historyResponse
// @Failure      401    {object}  map[string]string
// @Failure      422    {object}  map[string]string
// @Router       /v1/translations [get]
func (h *HistoryHandler) List(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "limit must be an integer")
		}
		limit = parsed
	}

	records, err := h.repo.ListByEmail(c.Request().Context(), principal.Email, limit)
	if err != nil {
		return err
	}

	items := make([]historyItem, 0, len(records))
	for _, r := range records {
		items = append(items, historyItem{
			Section:        r.Section,
			TargetLanguage: r.TargetLanguage,
			Model:          r.Model,
			Success:        r.Success,
			DurationMs:     r.DurationMs,
			CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, historyResponse{Items: items})
}
