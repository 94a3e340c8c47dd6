package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/socially/backend/internal/models"
	"github.com/socially/backend/internal/repositories"
	"github.com/socially/backend/internal/services"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	postRepository   repositories.PostRepository
	feedService      *services.FeedService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	postRepo repositories.PostRepository,
	feedService *services.FeedService,
) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
		postRepository:   postRepo,
		feedService:      feedService,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/suggested", h.GetSuggestedUsers)
}

// userWithCounts is a public profile with relation counts
type userWithCounts struct {
	models.UserCompact
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Posts     int64 `json:"posts"`
}

func (h *UserHandler) profileFor(c echo.Context, userID uint) error {
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondErrorCode(c, http.StatusNotFound, codeNotFound, "User not found")
		}
		return respondServiceError(c, err)
	}

	followers, err := h.followRepository.CountFollowers(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	following, err := h.followRepository.CountFollowing(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	posts, err := h.postRepository.CountByAuthor(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondSuccess(c, http.StatusOK, userWithCounts{
		UserCompact: user.ToCompact(),
		Followers:   followers,
		Following:   following,
		Posts:       posts,
	})
}

// GetProfile retrieves the authenticated user's profile with counts
func (h *UserHandler) GetProfile(c echo.Context) error {
	actorID := getActorIDFromContext(c)
	if actorID == 0 {
		return respondErrorCode(c, http.StatusUnauthorized, codeUnauthenticated, "User not authenticated")
	}
	return h.profileFor(c, actorID)
}

// GetUser retrieves another user's public profile with counts
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondErrorCode(c, http.StatusBadRequest, codeInvalidArgument, "Invalid user ID")
	}
	return h.profileFor(c, uint(id))
}

// GetSuggestedUsers returns users the caller does not follow yet. Anonymous
// callers get an empty list, matching the feed's permissive reads.
func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	actorID := getActorIDFromContext(c)

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 20 {
		limit = 3
	}

	users, err := h.feedService.SuggestedUsers(c.Request().Context(), actorID, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"users": users})
}
