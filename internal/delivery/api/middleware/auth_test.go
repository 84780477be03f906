package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	mockSvc "accounts/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGuardedEcho(m *AuthMiddleware) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError
	e.GET("/protected", func(c echo.Context) error {
		userID, ok := deliverycontext.GetUserID(c)
		if !ok {
			return errors.New("identity missing")
		}
		identity, ok := deliverycontext.GetIdentity(c.Request().Context())
		if !ok {
			return errors.New("identity missing from request context")
		}

		return c.JSON(http.StatusOK, map[string]string{"userID": userID.String(), "email": identity.Email})
	}, m.Authenticate)

	return e
}

func doRequest(e *echo.Echo, authHeader string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)

	return rec, body
}

func configWithVerify(verify bool) *config.Config {
	return &config.Config{Auth: &config.AuthConfig{VerifyIdentity: verify}}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	e := newGuardedEcho(NewAuthMiddleware(AuthMiddlewareParams{TokenService: tokenSvc, Config: configWithVerify(false)}))

	for _, header := range []string{"", "Token abc", "bearer abc", "Bearer "} {
		rec, body := doRequest(e, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "Missing token", body["message"], "header %q", header)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken("bad").Return(nil, domainerrors.ErrInvalidToken.WrapMessage("signature is invalid"))
	e := newGuardedEcho(NewAuthMiddleware(AuthMiddlewareParams{TokenService: tokenSvc, Config: configWithVerify(false)}))

	rec, body := doRequest(e, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", body["message"])
	assert.Equal(t, "INVALID_TOKEN", body["error"].(map[string]any)["code"])
}

func TestAuthenticate_Success(t *testing.T) {
	identity := &service.Identity{UserID: uuid.New(), Email: "a@x.com"}
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken("good").Return(identity, nil)

	// The checker is ignored while verification is disabled.
	checker := mockSvc.NewMockIdentityChecker(t)
	e := newGuardedEcho(NewAuthMiddleware(AuthMiddlewareParams{TokenService: tokenSvc, Checker: checker, Config: configWithVerify(false)}))

	rec, body := doRequest(e, "Bearer good")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, identity.UserID.String(), body["userID"])
	assert.Equal(t, "a@x.com", body["email"])
}

func TestAuthenticate_VerifyIdentity(t *testing.T) {
	identity := &service.Identity{UserID: uuid.New(), Email: "a@x.com"}

	t.Run("subject exists", func(t *testing.T) {
		tokenSvc := mockSvc.NewMockTokenService(t)
		tokenSvc.EXPECT().ValidateToken("good").Return(identity, nil)
		checker := mockSvc.NewMockIdentityChecker(t)
		checker.EXPECT().Exists(mock.Anything, identity.UserID).Return(true, nil)

		e := newGuardedEcho(NewAuthMiddleware(AuthMiddlewareParams{TokenService: tokenSvc, Checker: checker, Config: configWithVerify(true)}))
		rec, _ := doRequest(e, "Bearer good")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("subject deleted", func(t *testing.T) {
		tokenSvc := mockSvc.NewMockTokenService(t)
		tokenSvc.EXPECT().ValidateToken("good").Return(identity, nil)
		checker := mockSvc.NewMockIdentityChecker(t)
		checker.EXPECT().Exists(mock.Anything, identity.UserID).Return(false, nil)

		e := newGuardedEcho(NewAuthMiddleware(AuthMiddlewareParams{TokenService: tokenSvc, Checker: checker, Config: configWithVerify(true)}))
		rec, body := doRequest(e, "Bearer good")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid or expired token", body["message"])
	})

	t.Run("store failure", func(t *testing.T) {
		tokenSvc := mockSvc.NewMockTokenService(t)
		tokenSvc.EXPECT().ValidateToken("good").Return(identity, nil)
		checker := mockSvc.NewMockIdentityChecker(t)
		checker.EXPECT().Exists(mock.Anything, identity.UserID).Return(false, errors.New("db down"))

		e := newGuardedEcho(NewAuthMiddleware(AuthMiddlewareParams{TokenService: tokenSvc, Checker: checker, Config: configWithVerify(true)}))
		rec, body := doRequest(e, "Bearer good")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Server error", body["message"])
	})
}
