package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/socially/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	toggleService *services.ToggleService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(toggleService *services.ToggleService) *LikeHandler {
	return &LikeHandler{toggleService: toggleService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/like", h.ToggleLike)
}

// ToggleLike flips the caller's like on a post. Liking emits a notification
// to the post's author; unliking is silent.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	actorID := getActorIDFromContext(c)

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return respondErrorCode(c, http.StatusBadRequest, codeInvalidArgument, "Invalid post ID")
	}

	result, err := h.toggleService.ToggleLike(c.Request().Context(), actorID, uint(postID))
	if err != nil {
		return respondServiceError(c, err)
	}
	if !result.Authenticated {
		return respondUnauthenticated(c)
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"liked": result.Active})
}
