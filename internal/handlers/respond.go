package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socially/backend/internal/middleware"
	"github.com/socially/backend/internal/services"
)

// Error codes surfaced to callers. Every mutating operation returns either
// {"success": true, "data": ...} or {"success": false, "error": {code,
// message}} — nothing escapes as an unhandled fault.
const (
	codeUnauthenticated  = "UNAUTHENTICATED"
	codeNotFound         = "NOT_FOUND"
	codeInvalidArgument  = "INVALID_ARGUMENT"
	codeInvalidOperation = "INVALID_OPERATION"
	codeConflict         = "CONFLICT"
	codeStoreFailure     = "STORE_FAILURE"
)

// getActorIDFromContext returns the resolved actor id, zero for anonymous
// requests.
func getActorIDFromContext(c echo.Context) uint {
	if id, ok := c.Get(middleware.ActorIDKey).(uint); ok {
		return id
	}
	return 0
}

func respondSuccess(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func respondErrorCode(c echo.Context, status int, code, message string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"error":   echo.Map{"code": code, "message": message},
	})
}

// respondUnauthenticated is the soft no-op result for write operations with
// no resolved actor. Deliberately not an HTTP error: "not logged in" is an
// informative outcome, not a failure.
func respondUnauthenticated(c echo.Context) error {
	return respondErrorCode(c, http.StatusOK, codeUnauthenticated, "no actor resolved for this request")
}

// respondServiceError maps the service error taxonomy onto HTTP statuses
// and stable error codes.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case services.IsNotFound(err):
		return respondErrorCode(c, http.StatusNotFound, codeNotFound, err.Error())
	case services.IsConflict(err):
		return respondErrorCode(c, http.StatusConflict, codeConflict, err.Error())
	case errors.Is(err, services.ErrSelfFollow):
		return respondErrorCode(c, http.StatusBadRequest, codeInvalidOperation, err.Error())
	case errors.Is(err, services.ErrEmptyContent):
		return respondErrorCode(c, http.StatusBadRequest, codeInvalidArgument, err.Error())
	case errors.Is(err, services.ErrNotOwner):
		return respondErrorCode(c, http.StatusForbidden, codeInvalidOperation, err.Error())
	default:
		return respondErrorCode(c, http.StatusInternalServerError, codeStoreFailure, "store operation failed")
	}
}
