package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/socially/backend/internal/models"
	"github.com/socially/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	interactionService *services.InteractionService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(interactionService *services.InteractionService) *CommentHandler {
	return &CommentHandler{interactionService: interactionService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
}

// CreateComment creates a new comment on a post. The comment and its
// notification to the post author are committed as one unit.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	actorID := getActorIDFromContext(c)

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return respondErrorCode(c, http.StatusBadRequest, codeInvalidArgument, "Invalid post ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorCode(c, http.StatusBadRequest, codeInvalidArgument, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.interactionService.CreateComment(c.Request().Context(), actorID, uint(postID), req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !result.Authenticated {
		return respondUnauthenticated(c)
	}

	return respondSuccess(c, http.StatusCreated, result.Comment)
}
