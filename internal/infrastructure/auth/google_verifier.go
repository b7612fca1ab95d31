package auth

import (
	"context"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/cmsforge/translate-gateway/internal/core/domain"
	"github.com/cmsforge/translate-gateway/internal/core/ports"
)

// GoogleVerifier validates ID tokens against Google's published certificates.
type GoogleVerifier struct {
	audience string
}

var _ ports.TokenVerifier = (*GoogleVerifier)(nil)

// NewGoogleVerifier returns a verifier for tokens issued to the given OAuth
// client ID. An empty audience disables the audience check (matching a
// deployment that has not pinned a client ID yet).
func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{audience: audience}
}

// Verify checks signature, issuer, audience and lifetime, and extracts the
// identity claims. Expiry and issued-at are validated by the Google
// validator; the issuer is re-checked here so both trust anchors apply the
// same rule.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*domain.VerifiedClaims, error) {
	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if !issuerAllowed(payload.Issuer) {
		return nil, domain.ErrInvalidToken
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	name, _ := payload.Claims["name"].(string)

	return &domain.VerifiedClaims{
		Subject:       payload.Subject,
		Email:         email,
		Name:          name,
		EmailVerified: verified,
		IssuedAt:      time.Unix(payload.IssuedAt, 0).UTC(),
		ExpiresAt:     time.Unix(payload.Expires, 0).UTC(),
	}, nil
}
