package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/socially/backend/internal/services"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	toggleService *services.ToggleService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(toggleService *services.ToggleService) *FollowHandler {
	return &FollowHandler{toggleService: toggleService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// ToggleFollow flips the caller's follow edge to another user. Following
// emits a notification to the followee; unfollowing is silent. Following
// yourself is rejected.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	actorID := getActorIDFromContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondErrorCode(c, http.StatusBadRequest, codeInvalidArgument, "Invalid user ID")
	}

	result, err := h.toggleService.ToggleFollow(c.Request().Context(), actorID, uint(targetID))
	if err != nil {
		return respondServiceError(c, err)
	}
	if !result.Authenticated {
		return respondUnauthenticated(c)
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"following": result.Active})
}
