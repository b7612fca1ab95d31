package ports

import (
	"context"

	"github.com/cmsforge/translate-gateway/internal/core/domain"
)

// TokenVerifier validates a raw bearer token and extracts its claims.
// Implementations differ only in the signature trust anchor (Google's
// published certificates vs a locally configured test secret); issuer,
// audience and lifetime validation are identical in both.
//
// On any structural or cryptographic failure implementations return
// domain.ErrInvalidToken and expose no partial claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.VerifiedClaims, error)
}
