package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cmsforge/translate-gateway/internal/api/metrics"
	"github.com/cmsforge/translate-gateway/internal/core/domain"
	"github.com/cmsforge/translate-gateway/internal/core/ports"
	"github.com/cmsforge/translate-gateway/internal/core/service"
)

// principalKey is the echo context key under which the authorized principal
// is stored.
const principalKey = "principal"

// Auth extracts the bearer token, verifies it, runs the access policy, and
// injects the resulting principal into the request context. The error handler
// maps the three failure modes onto 401/401/403: a missing credential is a
// distinct error from a present-but-invalid one, and a valid identity that
// fails the policy is distinct from both.
func Auth(verifier ports.TokenVerifier, policy *service.AccessPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrMissingToken
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrInvalidToken
			}

			claims, err := verifier.Verify(c.Request().Context(), parts[1])
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrInvalidToken
			}

			principal, err := policy.Authorize(*claims)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("insufficient_permissions").Inc()
				return err
			}

			c.Set(principalKey, *principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal injected by Auth. The second return is
// false when the middleware did not run, which handlers treat as a defect.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}
