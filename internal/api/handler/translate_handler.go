package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cmsforge/translate-gateway/internal/api/middleware"
	"github.com/cmsforge/translate-gateway/internal/core/ports"
)

// TranslateHandler handles HTTP requests for translation operations.
type TranslateHandler struct {
	service ports.TranslationService
}

func NewTranslateHandler(service ports.TranslationService) *TranslateHandler {
	return &TranslateHandler{service: service}
}

// --- Request / Response types ---

// Empty title/body/section are valid (sanitization may reduce them to empty
// anyway); target_language and model fall back to the configured defaults.
type translateRequest struct {
	Title          string `json:"title" validate:"max=2000"`
	Body           string `json:"body" validate:"max=65536"`
	Section        string `json:"section" validate:"max=2000"`
	TargetLanguage string `json:"target_language" validate:"max=64"`
	Model          string `json:"model" validate:"max=128"`
}

type translateResponse struct {
	TranslatedTitle string `json:"translated_title"`
	TranslatedBody  string `json:"translated_body"`
	TargetLanguage  string `json:"target_language"`
	Section         string `json:"section"`
	ModelUsed       string `json:"model_used"`
	Success         bool   `json:"success"`
}

// Translate handles POST /v1/translate.
//
// @Summary      Translate a structured CMS fragment
// @Tags         translate
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      translateRequest  true  "Fields to translate"
// @Success      200   {object}  translateResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Failure      504   {object}  map[string]string
// @Router       /v1/translate [post]
func (h *TranslateHandler) Translate(c echo.Context) error {
	var req translateRequest
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

	result, err := h.service.Translate(c.Request().Context(), ports.TranslateInput{
		Title:          req.Title,
		Body:           req.Body,
		Section:        req.Section,
		TargetLanguage: req.TargetLanguage,
		Model:          req.Model,
		Principal:      principal,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, translateResponse{
		TranslatedTitle: result.TranslatedTitle,
		TranslatedBody:  result.TranslatedBody,
		TargetLanguage:  result.TargetLanguage,
		Section:         result.Section,
		ModelUsed:       result.ModelUsed,
		Success:         result.Success,
	})
}
