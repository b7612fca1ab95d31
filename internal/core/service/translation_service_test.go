package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cmsforge/translate-gateway/internal/core/domain"
	"github.com/cmsforge/translate-gateway/internal/core/ports"
)

// stubBackend scripts one error per EnsureModel/Generate call; after a script
// runs out the call succeeds (Generate answers with completion).
type stubBackend struct {
	completion   string
	ensureErrs   []error
	generateErrs []error

	ensureCalls   int
	generateCalls int
	lastModel     string
	lastPrompt    string
}

func (b *stubBackend) CheckHealth(context.Context) domain.BackendHealth {
	return domain.BackendHealth{Reachable: true}
}

func (b *stubBackend) EnsureModel(_ context.Context, model string) error {
	idx := b.ensureCalls
	b.ensureCalls++
	if idx < len(b.ensureErrs) && b.ensureErrs[idx] != nil {
		return b.ensureErrs[idx]
	}
	return nil
}

func (b *stubBackend) Generate(_ context.Context, model, prompt string) (string, error) {
	idx := b.generateCalls
	b.generateCalls++
	b.lastModel = model
	b.lastPrompt = prompt
	if idx < len(b.generateErrs) && b.generateErrs[idx] != nil {
		return "", b.generateErrs[idx]
	}
	return b.completion, nil
}

type stubRepository struct {
	inserted []domain.TranslationRecord
}

func (r *stubRepository) Insert(_ context.Context, rec *domain.TranslationRecord) error {
	r.inserted = append(r.inserted, *rec)
	return nil
}

func (r *stubRepository) ListByEmail(context.Context, string, int64) ([]domain.TranslationRecord, error) {
	return nil, nil
}

type stubCache struct {
	store map[string]*ports.TranslateResult
	gets  int
	sets  int
}

func newStubCache() *stubCache {
	return &stubCache{store: map[string]*ports.TranslateResult{}}
}

func (c *stubCache) Get(_ context.Context, key string) (*ports.TranslateResult, error) {
	c.gets++
	return c.store[key], nil
}

func (c *stubCache) Set(_ context.Context, key string, res *ports.TranslateResult) error {
	c.sets++
	c.store[key] = res
	return nil
}

func newTestService(backend ports.BackendClient, history ports.TranslationRepository, cache Cache) ports.TranslationService {
	return NewTranslationService(backend, history, cache, "llama3.2", "spanish", zerolog.Nop())
}

func principal() domain.Principal {
	return domain.Principal{VerifiedClaims: domain.VerifiedClaims{
		Subject:       "sub-1",
		Email:         "editor@example.com",
		EmailVerified: true,
	}}
}

func TestTranslateAppliesDefaults(t *testing.T) {
	backend := &stubBackend{completion: "Title: Hola\nBody: Mundo"}
	svc := newTestService(backend, nil, nil)

	res, err := svc.Translate(context.Background(), ports.TranslateInput{
		Title:     "Hello",
		Body:      "World",
		Principal: principal(),
	})
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if res.ModelUsed != "llama3.2" {
		t.Fatalf("ModelUsed = %q, want default llama3.2", res.ModelUsed)
	}
	if res.TargetLanguage != "spanish" {
		t.Fatalf("TargetLanguage = %q, want default spanish", res.TargetLanguage)
	}
	if !strings.Contains(backend.lastPrompt, "Translate the following text to spanish") {
		t.Fatalf("prompt missing default language:\n%s", backend.lastPrompt)
	}
	if res.TranslatedTitle != "Hola" || res.TranslatedBody != "Mundo" {
		t.Fatalf("parsed completion = %q / %q", res.TranslatedTitle, res.TranslatedBody)
	}
	if !res.Success {
		t.Fatalf("Success = false on the happy path")
	}
}

func TestTranslateSanitizesInputAndOutput(t *testing.T) {
	backend := &stubBackend{completion: "Body: <b>Hola</b> <script>x()</script>Mundo"}
	svc := newTestService(backend, nil, nil)

	res, err := svc.Translate(context.Background(), ports.TranslateInput{
		Body:      `<p>Hello <script>alert(1)</script>world</p>`,
		Section:   "<i>news</i>",
		Principal: principal(),
	})
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if strings.Contains(backend.lastPrompt, "<") {
		t.Fatalf("markup leaked into the prompt:\n%s", backend.lastPrompt)
	}
	if res.TranslatedBody != "Hola Mundo" {
		t.Fatalf("TranslatedBody = %q, want markup stripped", res.TranslatedBody)
	}
	if res.Section != "news" {
		t.Fatalf("Section = %q, want sanitized echo of the request", res.Section)
	}
}

func TestTranslateRetriesOnceOnTimeout(t *testing.T) {
	backend := &stubBackend{
		completion:   "Body: Hola",
		generateErrs: []error{domain.ErrBackendTimeout},
	}
	svc := newTestService(backend, nil, nil)

	res, err := svc.Translate(context.Background(), ports.TranslateInput{Body: "x", Principal: principal()})
	if err != nil {
		t.Fatalf("Translate() error after recoverable timeout: %v", err)
	}
	if backend.generateCalls != 2 {
		t.Fatalf("generate calls = %d, want 2 (one retry)", backend.generateCalls)
	}
	if !res.Success {
		t.Fatalf("Success = false after successful retry")
	}
}

func TestTranslateGivesUpAfterSecondTimeout(t *testing.T) {
	backend := &stubBackend{
		generateErrs: []error{domain.ErrBackendTimeout, domain.ErrBackendTimeout},
	}
	svc := newTestService(backend, nil, nil)

	_, err := svc.Translate(context.Background(), ports.TranslateInput{Body: "x", Principal: principal()})
	if !errors.Is(err, domain.ErrBackendTimeout) {
		t.Fatalf("error = %v, want ErrBackendTimeout", err)
	}
	if backend.generateCalls != 2 {
		t.Fatalf("generate calls = %d, want exactly 2", backend.generateCalls)
	}
}

func TestTranslateDoesNotRetryRejection(t *testing.T) {
	backend := &stubBackend{
		generateErrs: []error{domain.ErrBackendRejected},
	}
	svc := newTestService(backend, nil, nil)

	_, err := svc.Translate(context.Background(), ports.TranslateInput{Body: "x", Principal: principal()})
	if !errors.Is(err, domain.ErrBackendRejected) {
		t.Fatalf("error = %v, want ErrBackendRejected", err)
	}
	if backend.generateCalls != 1 {
		t.Fatalf("generate calls = %d, rejections must not be retried", backend.generateCalls)
	}
}

func TestTranslateModelUnavailable(t *testing.T) {
	backend := &stubBackend{ensureErrs: []error{domain.ErrModelUnavailable}}
	svc := newTestService(backend, nil, nil)

	_, err := svc.Translate(context.Background(), ports.TranslateInput{Body: "x", Principal: principal()})
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Fatalf("error = %v, want ErrModelUnavailable", err)
	}
	if backend.ensureCalls != 1 {
		t.Fatalf("ensure-model calls = %d, an unavailable model must not be retried", backend.ensureCalls)
	}
	if backend.generateCalls != 0 {
		t.Fatalf("generate called %d times for an unavailable model", backend.generateCalls)
	}
}

func TestTranslateRetriesWhenModelCheckUnreachable(t *testing.T) {
	// The retry covers the whole backend sequence: a connectivity fault during
	// the model check gets the same single retry as one during generation.
	backend := &stubBackend{
		completion: "Body: Hola",
		ensureErrs: []error{domain.ErrBackendUnreachable},
	}
	svc := newTestService(backend, nil, nil)

	res, err := svc.Translate(context.Background(), ports.TranslateInput{Body: "x", Principal: principal()})
	if err != nil {
		t.Fatalf("Translate() error after recoverable model-check fault: %v", err)
	}
	if backend.ensureCalls != 2 {
		t.Fatalf("ensure-model calls = %d, want 2 (one retry)", backend.ensureCalls)
	}
	if backend.generateCalls != 1 {
		t.Fatalf("generate calls = %d, want 1", backend.generateCalls)
	}
	if !res.Success {
		t.Fatalf("Success = false after successful retry")
	}
}

func TestTranslateUnreachableModelCheckFailsAfterRetry(t *testing.T) {
	backend := &stubBackend{
		ensureErrs: []error{domain.ErrBackendUnreachable, domain.ErrBackendUnreachable},
	}
	svc := newTestService(backend, nil, nil)

	_, err := svc.Translate(context.Background(), ports.TranslateInput{Body: "x", Principal: principal()})
	if !errors.Is(err, domain.ErrBackendUnreachable) {
		t.Fatalf("error = %v, want ErrBackendUnreachable", err)
	}
	if backend.ensureCalls != 2 {
		t.Fatalf("ensure-model calls = %d, want exactly 2", backend.ensureCalls)
	}
	if backend.generateCalls != 0 {
		t.Fatalf("generate calls = %d, the backend never answered the model check", backend.generateCalls)
	}
}

func TestTranslateRecordsHistory(t *testing.T) {
	backend := &stubBackend{completion: "Body: Hola"}
	repo := &stubRepository{}
	svc := newTestService(backend, repo, nil)

	if _, err := svc.Translate(context.Background(), ports.TranslateInput{
		Body:      "Hello",
		Section:   "news",
		Principal: principal(),
	}); err != nil {
		t.Fatalf("Translate() error: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("records inserted = %d, want 1", len(repo.inserted))
	}
	rec := repo.inserted[0]
	if rec.Email != "editor@example.com" || !rec.Success || rec.Model != "llama3.2" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestTranslateRecordsFailure(t *testing.T) {
	backend := &stubBackend{
		generateErrs: []error{domain.ErrBackendRejected},
	}
	repo := &stubRepository{}
	svc := newTestService(backend, repo, nil)

	if _, err := svc.Translate(context.Background(), ports.TranslateInput{Body: "x", Principal: principal()}); err == nil {
		t.Fatalf("Translate() succeeded, want backend error")
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("records inserted = %d, want 1", len(repo.inserted))
	}
	if repo.inserted[0].Success {
		t.Fatalf("failure recorded with Success = true")
	}
}

func TestTranslateCacheHitSkipsBackend(t *testing.T) {
	backend := &stubBackend{completion: "Body: Hola"}
	cache := newStubCache()
	svc := newTestService(backend, nil, cache)

	in := ports.TranslateInput{Body: "Hello", Principal: principal()}

	first, err := svc.Translate(context.Background(), in)
	if err != nil {
		t.Fatalf("first Translate() error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}

	second, err := svc.Translate(context.Background(), in)
	if err != nil {
		t.Fatalf("second Translate() error: %v", err)
	}
	if backend.generateCalls != 1 {
		t.Fatalf("generate calls = %d, cache hit must skip the backend", backend.generateCalls)
	}
	if *second != *first {
		t.Fatalf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestSummarize(t *testing.T) {
	backend := &stubBackend{completion: "A short teaser."}
	svc := newTestService(backend, nil, nil)

	res, err := svc.Summarize(context.Background(), ports.SummarizeInput{
		Article:        "An article about Go.",
		SpanishArticle: "Un artículo sobre Go.",
		Principal:      principal(),
	})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if backend.generateCalls != 2 {
		t.Fatalf("generate calls = %d, want 2 (one per language)", backend.generateCalls)
	}
	if res.Article != "A short teaser." || res.SpanishArticle != "A short teaser." {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSummarizePropagatesBackendError(t *testing.T) {
	backend := &stubBackend{
		generateErrs: []error{domain.ErrBackendUnreachable, domain.ErrBackendUnreachable},
	}
	svc := newTestService(backend, nil, nil)

	_, err := svc.Summarize(context.Background(), ports.SummarizeInput{
		Article:        "a",
		SpanishArticle: "b",
		Principal:      principal(),
	})
	if !errors.Is(err, domain.ErrBackendUnreachable) {
		t.Fatalf("error = %v, want ErrBackendUnreachable", err)
	}
}
