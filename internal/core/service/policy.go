package service

import (
	"github.com/cmsforge/translate-gateway/internal/core/domain"
)

// AccessPolicy decides whether a verified identity may use the gateway.
// Token validity (cryptographic correctness) and authorization (business
// permission) are separate stages: a well-formed token with an unverified
// email yields a 403-class error, not a 401.
type AccessPolicy struct{}

// NewAccessPolicy returns the gateway's access policy.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// Authorize promotes verified claims to a Principal. The only rule today is
// that the caller's email must be verified by the identity provider.
func (p *AccessPolicy) Authorize(claims domain.VerifiedClaims) (*domain.Principal, error) {
	if !claims.EmailVerified {
		return nil, domain.ErrInsufficientPermissions
	}
	return &domain.Principal{VerifiedClaims: claims}, nil
}
