package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/socially/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// stubUserRepo satisfies the repository interface for resolver tests. Only
// the provider lookup is reachable here; everything else is unused.
type stubUserRepo struct {
	byProviderUID map[string]*models.User
}

func (s *stubUserRepo) CreateUser(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) GetUserByProviderUID(ctx context.Context, providerUID string) (*models.User, error) {
	if u, ok := s.byProviderUID[providerUID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) UpdateUser(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) SuggestedUsers(ctx context.Context, forUserID uint, limit int) ([]models.User, error) {
	return nil, nil
}

func signSessionToken(t *testing.T, userID uint, secret string) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		Email:  "someone@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func resolveActor(t *testing.T, authHeader string) uint {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolved uint
	handler := ActorResolver(nil, &stubUserRepo{}, testSecret)(func(c echo.Context) error {
		resolved = c.Get(ActorIDKey).(uint)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return resolved
}

func TestActorResolver_SessionToken(t *testing.T) {
	token := signSessionToken(t, 42, testSecret)
	assert.Equal(t, uint(42), resolveActor(t, "Bearer "+token))
}

func TestActorResolver_MissingHeaderIsAnonymous(t *testing.T) {
	assert.Equal(t, uint(0), resolveActor(t, ""))
}

func TestActorResolver_MalformedHeaderIsAnonymous(t *testing.T) {
	assert.Equal(t, uint(0), resolveActor(t, "Token abc"))
	assert.Equal(t, uint(0), resolveActor(t, "garbage"))
}

func TestActorResolver_BadSignatureIsAnonymous(t *testing.T) {
	token := signSessionToken(t, 42, "wrong-secret")
	assert.Equal(t, uint(0), resolveActor(t, "Bearer "+token))
}

func TestActorResolver_ExpiredTokenIsAnonymous(t *testing.T) {
	claims := &models.JwtCustomClaims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	assert.Equal(t, uint(0), resolveActor(t, "Bearer "+signed))
}
