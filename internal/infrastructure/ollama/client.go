// Package ollama implements the backend client against a locally hosted
// Ollama instance using the official API client. All calls are bounded by a
// timeout, honour caller cancellation, and classify failures into the
// domain's backend error taxonomy. The client never retries.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog"

	"github.com/cmsforge/translate-gateway/internal/api/metrics"
	"github.com/cmsforge/translate-gateway/internal/core/domain"
	"github.com/cmsforge/translate-gateway/internal/core/ports"
)

const (
	healthTimeout = 5 * time.Second
	listTimeout   = 10 * time.Second
	pullTimeout   = 10 * time.Minute
)

// Lower temperature keeps translations consistent across identical requests.
const generateTemperature = 0.3

// Client wraps the official Ollama API client. The underlying http.Client is
// shared, so concurrent requests reuse one connection pool and a slow
// generation does not block health checks.
type Client struct {
	api     *api.Client
	timeout time.Duration
	log     zerolog.Logger
}

var _ ports.BackendClient = (*Client)(nil)

// New builds a Client for the given base URL (e.g. http://localhost:11434).
func New(baseURL string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("ollama: parse base url %q: %w", baseURL, err)
	}
	return &Client{
		// Per-call deadlines come from contexts, not from the http.Client.
		api:     api.NewClient(parsed, &http.Client{}),
		timeout: timeout,
		log:     log,
	}, nil
}

// CheckHealth issues a model-listing request. The backend counts as reachable
// iff it answers with a well-formed listing within a short bound.
func (c *Client) CheckHealth(ctx context.Context) domain.BackendHealth {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	_, err := observe("list", func() (*api.ListResponse, error) {
		return c.api.List(ctx)
	})
	return domain.BackendHealth{
		Reachable: err == nil,
		CheckedAt: time.Now().UTC(),
	}
}

// EnsureModel verifies the model is registered and pulls it when absent.
// Ollama lists models with an explicit tag ("llama3.2:latest"), so the
// comparison tolerates a missing tag on either side.
func (c *Client) EnsureModel(ctx context.Context, model string) error {
	listCtx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	list, err := observe("list", func() (*api.ListResponse, error) {
		return c.api.List(listCtx)
	})
	if err != nil {
		return classify(err)
	}
	for _, m := range list.Models {
		if modelMatches(m.Name, model) {
			return nil
		}
	}

	c.log.Info().Str("model", model).Msg("model absent, pulling")
	pullCtx, cancelPull := context.WithTimeout(ctx, pullTimeout)
	defer cancelPull()

	_, err = observe("pull", func() (struct{}, error) {
		return struct{}{}, c.api.Pull(pullCtx, &api.PullRequest{Model: model}, func(api.ProgressResponse) error {
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: pull failed for %q: %v", domain.ErrModelUnavailable, model, err)
	}
	return nil
}

// Generate sends the prompt to the generation endpoint with streaming
// disabled, so one deadline covers the whole call.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream := false
	req := &api.GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": generateTemperature,
		},
	}

	out, err := observe("generate", func() (string, error) {
		var sb strings.Builder
		err := c.api.Generate(ctx, req, func(r api.GenerateResponse) error {
			sb.WriteString(r.Response)
			return nil
		})
		return sb.String(), err
	})
	if err != nil {
		return "", classify(err)
	}
	return strings.TrimSpace(out), nil
}

// observe runs one backend call and records its duration.
func observe[T any](op string, fn func() (T, error)) (T, error) {
	started := time.Now()
	v, err := fn()
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.BackendRequestDuration.WithLabelValues(op, status).Observe(time.Since(started).Seconds())
	return v, err
}

func modelMatches(have, want string) bool {
	if have == want {
		return true
	}
	return strings.TrimSuffix(have, ":latest") == strings.TrimSuffix(want, ":latest")
}

// classify maps a transport/API error onto the backend error taxonomy:
// deadline → timeout, non-2xx → rejected (404 means the model itself is
// unknown), anything else transport-level → unreachable. Caller cancellation
// is propagated untouched so a client disconnect aborts the request instead
// of masquerading as a backend fault.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
		}
		return fmt.Errorf("%w: %v", domain.ErrBackendRejected, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrBackendTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrBackendTimeout, err)
	}

	return fmt.Errorf("%w: %v", domain.ErrBackendUnreachable, err)
}
