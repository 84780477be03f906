package middleware

import (
	"strings"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	checker  service.IdentityChecker
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	Checker      service.IdentityChecker `optional:"true"`
	Config       *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware. The identity checker is only
// consulted when auth.verifyIdentity is enabled.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	m := &AuthMiddleware{tokenSvc: params.TokenService}
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.VerifyIdentity {
		m.checker = params.Checker
	}

	return m
}

// Authenticate validates the bearer token and attaches the caller to the request.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		tokenString, found := strings.CutPrefix(authHeader, bearerPrefix)
		if !found || tokenString == "" {
			return domainerrors.ErrMissingToken
		}

		identity, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return domainerrors.ErrInvalidToken.WrapMessage(err.Error())
		}

		if m.checker != nil {
			exists, err := m.checker.Exists(c.Request().Context(), identity.UserID)
			if err != nil {
				return errors.Wrap(err, "verify token subject")
			}
			if !exists {
				return domainerrors.ErrInvalidToken.WrapMessage("token subject no longer exists")
			}
		}

		deliverycontext.SetIdentity(c, identity)

		return next(c)
	}
}
