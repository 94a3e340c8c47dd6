package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/socially/backend/internal/services"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications returns paginated notifications
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	actorID := getActorIDFromContext(c)
	if actorID == 0 {
		return respondErrorCode(c, http.StatusUnauthorized, codeUnauthenticated, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	notifications, total, err := h.notificationService.List(c.Request().Context(), actorID, page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": notifications,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	actorID := getActorIDFromContext(c)
	if actorID == 0 {
		return respondErrorCode(c, http.StatusUnauthorized, codeUnauthenticated, "User not authenticated")
	}

	count, err := h.notificationService.UnreadCount(c.Request().Context(), actorID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks a notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	actorID := getActorIDFromContext(c)
	if actorID == 0 {
		return respondErrorCode(c, http.StatusUnauthorized, codeUnauthenticated, "User not authenticated")
	}

	notifID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondErrorCode(c, http.StatusBadRequest, codeInvalidArgument, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(c.Request().Context(), actorID, uint(notifID)); err != nil {
		return respondServiceError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"read": true})
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	actorID := getActorIDFromContext(c)
	if actorID == 0 {
		return respondErrorCode(c, http.StatusUnauthorized, codeUnauthenticated, "User not authenticated")
	}

	if err := h.notificationService.MarkAllRead(c.Request().Context(), actorID); err != nil {
		return respondServiceError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"read": true})
}
