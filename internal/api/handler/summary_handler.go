package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cmsforge/translate-gateway/internal/api/middleware"
	"github.com/cmsforge/translate-gateway/internal/core/ports"
)

// SummaryHandler handles HTTP requests for article summarization.
type SummaryHandler struct {
	service ports.TranslationService
}

func NewSummaryHandler(service ports.TranslationService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// The esArticle key matches the CMS payload shape.
type summarizeRequest struct {
	Article        string `json:"article" validate:"required,max=131072"`
	SpanishArticle string `json:"esArticle" validate:"required,max=131072"`
}

type summarizeResponse struct {
	Article        string `json:"article"`
	SpanishArticle string `json:"esArticle"`
}

// Summarize handles POST /v1/summarize.
//
// @Summary      Generate teaser descriptions for an article pair
// @Tags         summarize
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      summarizeRequest  true  "English and Spanish article content"
// @Success      200   {object}  summarizeResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/summarize [post]
func (h *SummaryHandler) Summarize(c echo.Context) error {
	var req summarizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	result, err := h.service.Summarize(c.Request().Context(), ports.SummarizeInput{
		Article:        req.Article,
		SpanishArticle: req.SpanishArticle,
		Principal:      principal,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summarizeResponse{
		Article:        result.Article,
		SpanishArticle: result.SpanishArticle,
	})
}
