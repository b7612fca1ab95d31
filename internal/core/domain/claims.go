package domain

import (
	"errors"
	"time"
)

// Authentication and authorization failures. The two are deliberately
// distinct: a malformed or expired token is a 401-class problem, a valid
// identity that fails the access policy is a 403-class problem.
var (
	ErrMissingToken            = errors.New("missing bearer token")
	ErrInvalidToken            = errors.New("invalid token")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

// VerifiedClaims are the facts extracted from a cryptographically verified
// identity token. They live for a single request and are never persisted.
type VerifiedClaims struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// Principal is a set of claims that passed the access policy. It carries no
// state beyond the claims themselves; a denial is always a typed error, never
// a nil principal treated as authorized.
type Principal struct {
	VerifiedClaims
}
