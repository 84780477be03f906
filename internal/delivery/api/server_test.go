package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"accounts/config"
	apimiddleware "accounts/internal/delivery/api/middleware"
	"accounts/internal/delivery/api/router"
	"accounts/internal/delivery/api/router/handler"
	"accounts/internal/infra/auth"
	"accounts/internal/infra/persistence/memory"
	"accounts/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>accounts</h1>"), 0o600))

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:      4,
			HashConcurrency: 2,
			TokenTTL:        6 * time.Hour,
			DefaultPassword: "123456",
			VerifyIdentity:  true,
		},
	}
	cfg.SecretKey.Access = "test-secret"
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.HTTP.StaticDir = staticDir

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := memory.NewUserRepository()
	hasher := auth.NewBcryptHasher(cfg)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	accounts := impl.NewAccountService(impl.AccountServiceParams{
		UserRepo:     users,
		Hasher:       hasher,
		TokenService: tokens,
		Logger:       logger,
	})
	directory := impl.NewDirectoryService(impl.DirectoryServiceParams{
		UserRepo: users,
		Hasher:   hasher,
		Config:   cfg,
		Logger:   logger,
	})

	return NewEcho(cfg, logger, router.RouterParams{
		AuthHandler: handler.NewAuthHandler(accounts),
		UserHandler: handler.NewUserHandler(directory),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{
			TokenService: tokens,
			Checker:      auth.NewIdentityChecker(users),
			Config:       cfg,
		}),
		Config: cfg,
	})
}

func call(t *testing.T, e *echo.Echo, method, path, token, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec.Code, rec.Body.Bytes()
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))

	return out
}

func register(t *testing.T, e *echo.Echo, body string) (string, map[string]any) {
	t.Helper()

	status, raw := call(t, e, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusOK, status, string(raw))
	out := decode[map[string]any](t, raw)

	return out["token"].(string), out["user"].(map[string]any)
}

func TestAccountLifecycle(t *testing.T) {
	e := newTestEcho(t)

	token, user := register(t, e, `{"name":"Ann","email":"ann@x.com","password":"pw1","age":30}`)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Ann", user["name"])
	assert.Equal(t, user["id"], user["_id"])
	assert.EqualValues(t, 30, user["age"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
	id := user["id"].(string)

	status, raw := call(t, e, http.MethodPost, "/auth/register", "", `{"name":"Ann2","email":"ann@x.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already exists", decode[map[string]any](t, raw)["message"])

	status, raw = call(t, e, http.MethodPost, "/auth/login", "", `{"email":"ann@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, status)
	login := decode[map[string]any](t, raw)
	assert.NotEmpty(t, login["token"])
	assert.Equal(t, id, login["user"].(map[string]any)["id"])

	status, raw = call(t, e, http.MethodGet, "/users", token, "")
	require.Equal(t, http.StatusOK, status)
	list := decode[[]map[string]any](t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, "ann@x.com", list[0]["email"])

	status, raw = call(t, e, http.MethodPut, "/users/"+id, token, `{"age":31}`)
	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decode[map[string]any](t, raw)
	assert.EqualValues(t, 31, updated["age"])
	assert.Equal(t, "Ann", updated["name"])

	status, raw = call(t, e, http.MethodPut, "/users/"+id, token, `{"age":null}`)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.NotContains(t, decode[map[string]any](t, raw), "age")

	status, raw = call(t, e, http.MethodDelete, "/users/"+id, token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User deleted", decode[map[string]any](t, raw)["message"])

	// The token outlives its subject, and identity verification is enabled.
	status, raw = call(t, e, http.MethodGet, "/users", token, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", decode[map[string]any](t, raw)["message"])
}

func TestDirectory(t *testing.T) {
	e := newTestEcho(t)
	token, _ := register(t, e, `{"name":"Admin","email":"admin@x.com","password":"pw"}`)

	status, raw := call(t, e, http.MethodPost, "/users", token, `{"name":"Bob","email":"bob@x.com"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))
	bob := decode[map[string]any](t, raw)
	assert.NotContains(t, bob, "age")

	// Bob got the fallback password.
	status, _ = call(t, e, http.MethodPost, "/auth/login", "", `{"email":"bob@x.com","password":"123456"}`)
	assert.Equal(t, http.StatusOK, status)

	status, raw = call(t, e, http.MethodPost, "/users", token, `{"name":"Bob"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name and email required", decode[map[string]any](t, raw)["message"])

	status, raw = call(t, e, http.MethodPost, "/users", token, `{"name":"Bob","email":"bob@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already exists", decode[map[string]any](t, raw)["message"])

	status, raw = call(t, e, http.MethodPost, "/users", token, `{"name":"Old","email":"old@x.com","age":400}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAD_INPUT", decode[map[string]any](t, raw)["error"].(map[string]any)["code"])

	status, raw = call(t, e, http.MethodGet, "/users", token, "")
	require.Equal(t, http.StatusOK, status)
	list := decode[[]map[string]any](t, raw)
	require.Len(t, list, 2)
	assert.Equal(t, "bob@x.com", list[0]["email"], "newest first")
	assert.Equal(t, "admin@x.com", list[1]["email"])

	status, raw = call(t, e, http.MethodPut, "/users/not-a-uuid", token, `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", decode[map[string]any](t, raw)["message"])

	status, _ = call(t, e, http.MethodDelete, "/users/0190a8f0-0000-7000-8000-000000000000", token, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAccessGate(t *testing.T) {
	e := newTestEcho(t)

	status, raw := call(t, e, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Missing token", decode[map[string]any](t, raw)["message"])

	status, raw = call(t, e, http.MethodPost, "/users", "garbage", `{"name":"X","email":"x@x.com"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", decode[map[string]any](t, raw)["message"])

	status, raw = call(t, e, http.MethodPost, "/auth/login", "", `{"email":"nobody@x.com","password":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", decode[map[string]any](t, raw)["message"])

	status, raw = call(t, e, http.MethodPost, "/auth/register", "", `{"email":"x@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name, email, and password are required", decode[map[string]any](t, raw)["message"])
}

func TestHealthAndStatic(t *testing.T) {
	e := newTestEcho(t)

	status, raw := call(t, e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))

	status, raw = call(t, e, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "accounts")
}

func TestMalformedBodies(t *testing.T) {
	e := newTestEcho(t)
	token, user := register(t, e, `{"name":"Ann","email":"ann@x.com","password":"pw"}`)

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		body    string
		message string
	}{
		{"register", http.MethodPost, "/auth/register", "", `{"name":`, "Invalid registration input"},
		{"login", http.MethodPost, "/auth/login", "", `not json`, "Invalid login input"},
		{"create", http.MethodPost, "/users", token, `{"name":1}`, "Invalid user input"},
		{"update", http.MethodPut, "/users/" + user["id"].(string), token, `{"age":"old"}`, "Invalid user input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := call(t, e, tt.method, tt.path, tt.token, tt.body)

			assert.Equal(t, http.StatusBadRequest, status)
			body := decode[map[string]any](t, raw)
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, "BAD_INPUT", body["error"].(map[string]any)["code"])
			assert.NotEmpty(t, body["meta"].(map[string]any)["request_id"])
		})
	}
}
