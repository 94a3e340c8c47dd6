package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/socially/backend/internal/models"
	"github.com/socially/backend/internal/services"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	interactionService *services.InteractionService
	feedService        *services.FeedService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(interactionService *services.InteractionService, feedService *services.FeedService) *PostHandler {
	return &PostHandler{
		interactionService: interactionService,
		feedService:        feedService,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post authored by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	actorID := getActorIDFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorCode(c, http.StatusBadRequest, codeInvalidArgument, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.interactionService.CreatePost(c.Request().Context(), actorID, req.Content, req.ImageURL)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !result.Authenticated {
		return respondUnauthenticated(c)
	}

	return respondSuccess(c, http.StatusCreated, result.Post)
}

// ListPosts returns all posts newest first, enriched with author identity,
// comments, liking actor ids and counts
func (h *PostHandler) ListPosts(c echo.Context) error {
	feed, err := h.feedService.ListPosts(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"posts": feed})
}

// DeletePost deletes one of the caller's posts; dependent rows are removed
// by the store cascade
func (h *PostHandler) DeletePost(c echo.Context) error {
	actorID := getActorIDFromContext(c)
	if actorID == 0 {
		return respondErrorCode(c, http.StatusUnauthorized, codeUnauthenticated, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondErrorCode(c, http.StatusBadRequest, codeInvalidArgument, "Invalid post ID")
	}

	if err := h.interactionService.DeletePost(c.Request().Context(), actorID, uint(postID)); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
