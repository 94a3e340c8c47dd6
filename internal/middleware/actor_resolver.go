package middleware

import (
	"errors"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/socially/backend/internal/models"
	"github.com/socially/backend/internal/repositories"
	"gorm.io/gorm"
)

// ActorIDKey is the echo context key holding the resolved actor id.
// Zero means "no actor": the request proceeds and write operations degrade
// to their unauthenticated no-op result instead of failing.
const ActorIDKey = "actorID"

// ActorResolver maps the request's bearer credential to an internal actor
// id. Locally issued HS256 session tokens are tried first, then Firebase ID
// tokens. A missing or unverifiable credential resolves to actor id 0; a
// verified credential whose subject has no user row is a store failure, not
// an authentication failure.
func ActorResolver(firebaseAuth *auth.Client, users repositories.UserRepository, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ActorIDKey, uint(0))

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return next(c)
			}
			token := parts[1]

			if actorID, ok := resolveSessionToken(token, jwtSecret); ok {
				c.Set(ActorIDKey, actorID)
				return next(c)
			}

			if firebaseAuth != nil {
				verified, err := firebaseAuth.VerifyIDToken(c.Request().Context(), token)
				if err == nil {
					user, err := users.GetUserByProviderUID(c.Request().Context(), verified.UID)
					if err != nil {
						if errors.Is(err, gorm.ErrRecordNotFound) {
							// A valid session with no actor row means the sync
							// step was skipped or the store lost the row.
							return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
						}
						return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve user")
					}
					c.Set(ActorIDKey, user.ID)
				}
			}

			return next(c)
		}
	}
}

// resolveSessionToken validates a locally issued HS256 JWT and extracts the
// actor id from its claims.
func resolveSessionToken(tokenString, jwtSecret string) (uint, bool) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return 0, false
	}
	return claims.UserID, true
}
