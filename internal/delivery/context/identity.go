package context

import (
	"context"

	"accounts/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// KeyIdentity holds the *service.Identity of an authenticated caller.
	KeyIdentity ContextKey = "identity"

	// KeyUserID holds the caller's uuid.UUID in echo.Context.
	KeyUserID = "userID"
)

// WithIdentity returns a new context carrying the authenticated caller.
func WithIdentity(ctx context.Context, identity *service.Identity) context.Context {
	return context.WithValue(ctx, KeyIdentity, identity)
}

// GetIdentity returns the authenticated caller, if any.
func GetIdentity(ctx context.Context) (*service.Identity, bool) {
	identity, ok := ctx.Value(KeyIdentity).(*service.Identity)

	return identity, ok && identity != nil
}

// SetIdentity attaches the caller to both echo.Context and the request context.
func SetIdentity(c echo.Context, identity *service.Identity) {
	c.Set(KeyUserID, identity.UserID)
	c.Set(string(KeyIdentity), identity)
	c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), identity)))
}

// GetUserID returns the authenticated caller's ID from echo.Context.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(KeyUserID).(uuid.UUID)

	return userID, ok
}
