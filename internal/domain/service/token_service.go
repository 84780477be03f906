package service

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the JWT tokens. The subject carries the user ID.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the caller identity recovered from a verified token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken signs a token for the given user that expires after the configured lifetime.
	GenerateToken(userID uuid.UUID, email string) (string, error)

	// ValidateToken verifies signature and expiry. Every failure is domainerrors.ErrInvalidToken.
	ValidateToken(tokenString string) (*Identity, error)
}

// IdentityChecker confirms that a token subject still exists.
type IdentityChecker interface {
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}
