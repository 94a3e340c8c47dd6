package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/socially/backend/internal/models"
	"github.com/socially/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related HTTP requests. It is the only
// place an actor row is created: once, on first successful session sync.
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/sync", h.SyncSession)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.CreateLocalUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return echo.NewHTTPError(http.StatusConflict, "Username or email already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}
	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user.ToCompact()})
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user.ToCompact()})
}

// SyncSessionRequest defines the request body for syncing an external session
type SyncSessionRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// SyncSession verifies an identity-provider token, creates the actor row on
// first sight and issues a local session JWT. Subsequent syncs for the same
// subject return the existing actor.
func (h *AuthHandler) SyncSession(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "External identity provider not configured")
	}

	var req SyncSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid ID token")
	}

	user, err := h.userRepository.GetUserByProviderUID(c.Request().Context(), token.UID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
		}
		user = userFromToken(token)
		if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				// Concurrent first sync for the same subject; re-read.
				user, err = h.userRepository.GetUserByProviderUID(c.Request().Context(), token.UID)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
				}
			} else {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
			}
		}
	}

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate session token")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": localJWT, "user": user.ToCompact()})
}

// userFromToken builds the initial actor row from the provider's claims.
func userFromToken(token *auth.Token) *models.User {
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	avatar, _ := token.Claims["picture"].(string)

	username := ""
	if email != "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	if username == "" {
		username = token.UID
	}

	return &models.User{
		Name:        name,
		Username:    username,
		Email:       email,
		AvatarURL:   avatar,
		ProviderUID: token.UID,
	}
}

// generateJWT generates a session JWT for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
