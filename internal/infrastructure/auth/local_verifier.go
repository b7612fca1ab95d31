package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cmsforge/translate-gateway/internal/core/domain"
	"github.com/cmsforge/translate-gateway/internal/core/ports"
)

// identityClaims mirrors the claim set of a Google ID token.
type identityClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

// LocalVerifier validates tokens signed with a locally configured HS256
// secret. It exists for the designated test configuration only: the trust
// anchor changes, the validation rules do not.
type LocalVerifier struct {
	secret   []byte
	audience string
	parser   *jwt.Parser
}

var _ ports.TokenVerifier = (*LocalVerifier)(nil)

// NewLocalVerifier returns a verifier using the given signing secret and
// expected audience. An empty audience disables the audience check, exactly
// as in the Google verifier.
func NewLocalVerifier(secret, audience string) *LocalVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &LocalVerifier{
		secret:   []byte(secret),
		audience: audience,
		parser:   jwt.NewParser(opts...),
	}
}

// Verify checks signature, issuer, audience and lifetime against the local
// secret and extracts the identity claims.
func (v *LocalVerifier) Verify(_ context.Context, token string) (*domain.VerifiedClaims, error) {
	var claims identityClaims
	tkn, err := v.parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	if !issuerAllowed(claims.Issuer) {
		return nil, domain.ErrInvalidToken
	}

	var issuedAt, expiresAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time.UTC()
	}

	return &domain.VerifiedClaims{
		Subject:       claims.Subject,
		Email:         claims.Email,
		Name:          claims.Name,
		EmailVerified: claims.EmailVerified,
		IssuedAt:      issuedAt,
		ExpiresAt:     expiresAt,
	}, nil
}
