package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cmsforge/translate-gateway/internal/core/domain"
	"github.com/cmsforge/translate-gateway/internal/core/service"
)

type stubVerifier struct {
	claims *domain.VerifiedClaims
	err    error
	calls  int
}

func (v *stubVerifier) Verify(context.Context, string) (*domain.VerifiedClaims, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func runAuth(t *testing.T, verifier *stubVerifier, authHeader string) (error, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/translate", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var reachedHandler bool
	h := Auth(verifier, service.NewAccessPolicy())(func(c echo.Context) error {
		reachedHandler = true
		return c.NoContent(http.StatusOK)
	})
	return h(c), reachedHandler
}

func TestAuthMissingHeader(t *testing.T) {
	verifier := &stubVerifier{}
	err, reached := runAuth(t, verifier, "")
	if err != domain.ErrMissingToken {
		t.Fatalf("error = %v, want ErrMissingToken", err)
	}
	if verifier.calls != 0 {
		t.Fatalf("verifier called %d times for a missing header", verifier.calls)
	}
	if reached {
		t.Fatalf("handler reached without credentials")
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	verifier := &stubVerifier{}
	for _, header := range []string{"token-without-scheme", "Basic abc", "Bearer "} {
		err, _ := runAuth(t, verifier, header)
		if err != domain.ErrInvalidToken {
			t.Fatalf("header %q: error = %v, want ErrInvalidToken", header, err)
		}
	}
	if verifier.calls != 0 {
		t.Fatalf("verifier called for malformed headers")
	}
}

func TestAuthVerifierRejection(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrInvalidToken}
	err, reached := runAuth(t, verifier, "Bearer bad-token")
	if err != domain.ErrInvalidToken {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
	if reached {
		t.Fatalf("handler reached with an invalid token")
	}
}

func TestAuthUnverifiedEmail(t *testing.T) {
	verifier := &stubVerifier{claims: &domain.VerifiedClaims{
		Subject: "sub-1",
		Email:   "new@example.com",
	}}
	err, reached := runAuth(t, verifier, "Bearer good-token")
	if err != domain.ErrInsufficientPermissions {
		t.Fatalf("error = %v, want ErrInsufficientPermissions", err)
	}
	if reached {
		t.Fatalf("handler reached despite failed authorization")
	}
}

func TestAuthInjectsPrincipal(t *testing.T) {
	verifier := &stubVerifier{claims: &domain.VerifiedClaims{
		Subject:       "sub-1",
		Email:         "editor@example.com",
		EmailVerified: true,
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/translate", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	c := e.NewContext(req, httptest.NewRecorder())

	h := Auth(verifier, service.NewAccessPolicy())(func(c echo.Context) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			t.Fatalf("principal missing from context")
		}
		if principal.Email != "editor@example.com" {
			t.Fatalf("principal email = %q", principal.Email)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
}
