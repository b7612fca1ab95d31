package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cmsforge/translate-gateway/internal/api/metrics"
	"github.com/cmsforge/translate-gateway/internal/core/domain"
	"github.com/cmsforge/translate-gateway/internal/core/ports"
	"github.com/cmsforge/translate-gateway/internal/core/prompt"
	"github.com/cmsforge/translate-gateway/internal/core/sanitize"
)

// Cache abstracts the completed-translation store (Redis). Both methods are
// best-effort: a cache failure never fails the request.
type Cache interface {
	Get(ctx context.Context, key string) (*ports.TranslateResult, error)
	Set(ctx context.Context, key string, res *ports.TranslateResult) error
}

type translationService struct {
	backend         ports.BackendClient
	history         ports.TranslationRepository // nil when history is disabled
	cache           Cache                       // nil when caching is disabled
	defaultModel    string
	defaultLanguage string
	log             zerolog.Logger
}

// NewTranslationService wires the end-to-end request pipeline. history and
// cache may be nil; the service then runs fully stateless.
func NewTranslationService(
	backend ports.BackendClient,
	history ports.TranslationRepository,
	cache Cache,
	defaultModel string,
	defaultLanguage string,
	log zerolog.Logger,
) ports.TranslationService {
	return &translationService{
		backend:         backend,
		history:         history,
		cache:           cache,
		defaultModel:    defaultModel,
		defaultLanguage: defaultLanguage,
		log:             log,
	}
}

// Translate runs one request through the pipeline: defaults, sanitization,
// prompt construction, backend invocation with a single bounded retry, output
// sanitization. A result with Success set exists only on the full path.
func (s *translationService) Translate(ctx context.Context, in ports.TranslateInput) (*ports.TranslateResult, error) {
	started := time.Now()

	model := in.Model
	if model == "" {
		model = s.defaultModel
	}
	language := in.TargetLanguage
	if language == "" {
		language = s.defaultLanguage
	}

	// 1. Sanitize every free-text field before it goes anywhere near the prompt.
	title := sanitize.Clean(in.Title)
	body := sanitize.Clean(in.Body)
	section := sanitize.Clean(in.Section)
	language = sanitize.Clean(language)

	// 2. Deterministic prompt.
	p := prompt.Translation(title, body, section, language)

	// 3. Cache lookup — identical sanitized input yields an identical key.
	cacheKey := CacheKey(model, language, p)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err != nil {
			s.log.Warn().Err(err).Msg("cache lookup failed, continuing")
		} else if cached != nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			s.log.Debug().Str("model", model).Str("target_language", language).Msg("translation served from cache")
			return cached, nil
		} else {
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	// 4. Invoke the backend, retrying the whole sequence exactly once on
	// transient faults.
	raw, err := s.invokeBackend(ctx, model, p)
	if err != nil {
		return nil, s.failed(in, model, language, started, err)
	}

	// 5. Sanitize the completion and split it back into fields.
	fields := prompt.ParseTranslation(raw)
	result := &ports.TranslateResult{
		TranslatedTitle: sanitize.Clean(fields.Title),
		TranslatedBody:  sanitize.Clean(fields.Body),
		TargetLanguage:  language,
		Section:         section,
		ModelUsed:       model,
		Success:         true,
	}

	// 6. Audit trail + cache, both non-fatal.
	s.record(ctx, in, model, language, started, true)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache translation")
		}
	}

	metrics.TranslationsTotal.WithLabelValues("completed", language).Inc()
	s.log.Info().
		Str("model", model).
		Str("target_language", language).
		Str("user", in.Principal.Email).
		Dur("duration", time.Since(started)).
		Msg("translation completed")

	return result, nil
}

// Summarize reduces an English/Spanish article pair to teaser descriptions.
// HTML articles keep their safe markup; plain text is cleaned outright.
func (s *translationService) Summarize(ctx context.Context, in ports.SummarizeInput) (*ports.SummarizeResult, error) {
	article := in.Article
	spanish := in.SpanishArticle
	if sanitize.HasMarkup(article) || sanitize.HasMarkup(spanish) {
		article = sanitize.CleanHTML(article)
		spanish = sanitize.CleanHTML(spanish)
	}

	en, err := s.summarizeOne(ctx, article, "en")
	if err != nil {
		return nil, err
	}
	es, err := s.summarizeOne(ctx, spanish, "es")
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user", in.Principal.Email).Msg("summary completed")
	return &ports.SummarizeResult{Article: en, SpanishArticle: es}, nil
}

func (s *translationService) summarizeOne(ctx context.Context, article, language string) (string, error) {
	raw, err := s.invokeBackend(ctx, s.defaultModel, prompt.Summary(article, language))
	if err != nil {
		return "", err
	}
	return sanitize.Clean(raw), nil
}

// invokeBackend applies the orchestrator's retry rule to the whole backend
// sequence: exactly one extra attempt, and only for timeouts and connectivity
// faults — whichever leg hit them. Rejections and unknown models signal a
// request-shape problem a retry cannot fix.
func (s *translationService) invokeBackend(ctx context.Context, model, p string) (string, error) {
	raw, err := s.generateOnce(ctx, model, p)
	if err == nil {
		return raw, nil
	}
	if !retryable(err) {
		return "", err
	}

	metrics.BackendRetriesTotal.Inc()
	s.log.Warn().Err(err).Str("model", model).Msg("backend call failed, retrying once")

	raw, err = s.generateOnce(ctx, model, p)
	if err != nil {
		return "", err
	}
	return raw, nil
}

// generateOnce is one full backend attempt: confirm the model is loadable,
// then generate.
func (s *translationService) generateOnce(ctx context.Context, model, p string) (string, error) {
	if err := s.backend.EnsureModel(ctx, model); err != nil {
		return "", fmt.Errorf("ensure model %q: %w", model, err)
	}
	return s.backend.Generate(ctx, model, p)
}

func retryable(err error) bool {
	return errors.Is(err, domain.ErrBackendTimeout) || errors.Is(err, domain.ErrBackendUnreachable)
}

func (s *translationService) failed(in ports.TranslateInput, model, language string, started time.Time, err error) error {
	metrics.TranslationsTotal.WithLabelValues("failed", language).Inc()
	// The request context may already be dead; the audit row should still land.
	s.record(context.Background(), in, model, language, started, false)
	return err
}

// record writes the audit entry when history is enabled. Failures are logged,
// never surfaced: losing an audit row must not fail a translation.
func (s *translationService) record(ctx context.Context, in ports.TranslateInput, model, language string, started time.Time, success bool) {
	if s.history == nil {
		return
	}
	rec := &domain.TranslationRecord{
		Subject:        in.Principal.Subject,
		Email:          in.Principal.Email,
		Section:        sanitize.Clean(in.Section),
		TargetLanguage: language,
		Model:          model,
		Success:        success,
		DurationMs:     time.Since(started).Milliseconds(),
		CreatedAt:      time.Now().UTC(),
	}
	insertCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.history.Insert(insertCtx, rec); err != nil {
		s.log.Warn().Err(err).Str("user", rec.Email).Msg("failed to insert translation record")
	}
}
