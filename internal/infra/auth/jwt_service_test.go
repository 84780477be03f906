package auth

import (
	"strings"
	"testing"
	"time"

	"accounts/config"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: ttl}}
	cfg.SecretKey.Access = secret

	return cfg
}

func newTestJWTService(t *testing.T, now time.Time) *jwtService {
	t.Helper()

	svc, err := NewJWTService(newTestConfig(testSecret, 6*time.Hour))
	require.NoError(t, err)

	impl := svc.(*jwtService)
	impl.now = func() time.Time { return now }

	return impl
}

func TestJWTService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, time.Now())
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	identity, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestJWTService_Expiry(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now().Truncate(time.Second)
	svc := newTestJWTService(t, issuedAt)

	token, err := svc.GenerateToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(6*time.Hour - time.Second) }
	_, err = svc.ValidateToken(token)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(6*time.Hour + time.Second) }
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_WrongSecret(t *testing.T) {
	t.Parallel()

	other, err := NewJWTService(newTestConfig("another_secret", 6*time.Hour))
	require.NoError(t, err)

	token, err := other.GenerateToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	svc := newTestJWTService(t, time.Now())
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_TamperedToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, time.Now())
	token, err := svc.GenerateToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forged, err := svc.GenerateToken(uuid.New(), "mallory@x.com")
	require.NoError(t, err)
	// Original header and signature around a different payload.
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	_, err = svc.ValidateToken(tampered)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_Malformed(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, time.Now())

	for _, token := range []string{"", "clearly-not-a-jwt-token-format", "a.b.c"} {
		identity, err := svc.ValidateToken(token)
		assert.Nil(t, identity)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken), "token %q", token)
	}
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc := newTestJWTService(t, time.Now())
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_RequiresExpiry(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{Subject: uuid.NewString()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc := newTestJWTService(t, time.Now())
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_NonUUIDSubject(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Subject:   "64f1c0ffee",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc := newTestJWTService(t, time.Now())
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_ConfigErrors(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(newTestConfig("", 6*time.Hour))
	assert.Nil(t, svc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret must be provided")

	svc, err = NewJWTService(newTestConfig(testSecret, 0))
	assert.Nil(t, svc)
	require.Error(t, err)
}
