// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a freshly salted digest from a plaintext password.
	Hash(ctx context.Context, password string) (string, error)

	// Verify reports whether password matches digest. A mismatch is (false, nil);
	// an error means the digest itself is unusable.
	Verify(ctx context.Context, password, digest string) (bool, error)
}
