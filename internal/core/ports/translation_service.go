package ports

import (
	"context"

	"github.com/cmsforge/translate-gateway/internal/core/domain"
)

// TranslateInput carries one translation request through the pipeline.
// Empty title/body/section are valid; TargetLanguage and Model fall back to
// the configured defaults when empty.
type TranslateInput struct {
	Title          string
	Body           string
	Section        string
	TargetLanguage string
	Model          string
	Principal      domain.Principal
}

// TranslateResult is only ever constructed after a successful backend call;
// partial results are never returned with Success set.
type TranslateResult struct {
	TranslatedTitle string
	TranslatedBody  string
	TargetLanguage  string
	Section         string
	ModelUsed       string
	Success         bool
}

// SummarizeInput carries an article pair (English and Spanish) to be reduced
// to teaser descriptions.
type SummarizeInput struct {
	Article        string
	SpanishArticle string
	Principal      domain.Principal
}

// SummarizeResult holds one teaser per input article.
type SummarizeResult struct {
	Article        string
	SpanishArticle string
}

// TranslationService defines the use-case operations of the gateway.
type TranslationService interface {
	Translate(ctx context.Context, in TranslateInput) (*TranslateResult, error)
	Summarize(ctx context.Context, in SummarizeInput) (*SummarizeResult, error)
}

// TranslationRepository persists the translation audit trail.
type TranslationRepository interface {
	Insert(ctx context.Context, rec *domain.TranslationRecord) error
	ListByEmail(ctx context.Context, email string, limit int64) ([]domain.TranslationRecord, error)
}
