package ports

import (
	"context"

	"github.com/cmsforge/translate-gateway/internal/core/domain"
)

// BackendClient talks to the LLM backend. Operations are independent and
// idempotent; there is no shared "model loaded" state, so concurrent requests
// for different models never race. Every call is bounded by a timeout and
// honours context cancellation. The client never retries — retry policy
// belongs to the service layer.
type BackendClient interface {
	// CheckHealth issues a lightweight model-listing request. The backend is
	// reachable iff it answers with a well-formed listing within the timeout.
	CheckHealth(ctx context.Context) domain.BackendHealth

	// EnsureModel verifies the model is registered with the backend and
	// triggers a pull when it is absent. Returns domain.ErrModelUnavailable
	// when the model cannot be made available.
	EnsureModel(ctx context.Context, model string) error

	// Generate sends the prompt to the generation endpoint with streaming
	// disabled and returns the raw completion text.
	Generate(ctx context.Context, model, prompt string) (string, error)
}
