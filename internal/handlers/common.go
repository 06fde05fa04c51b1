package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/services"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

// BaseHandler carries what every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ListResponse wraps paginated listings.
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func currentUserName(c *gin.Context) string {
	return c.GetString("user_name")
}

// handleServiceError maps service errors onto HTTP statuses in one place so
// handlers never switch on errors themselves.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "validation failed",
			Details: validationErrs,
		})
		return
	}

	var permErr *services.PermissionError
	if errors.As(err, &permErr) {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: permErr.Error()})
		return
	}

	switch {
	case errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})

	// Conflicts surface as 400, matching the API contract clients already
	// handle.
	case errors.Is(err, services.ErrAlreadyEnrolled),
		errors.Is(err, services.ErrQuizAlreadyCompleted),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrCourseHasStudents),
		errors.Is(err, services.ErrCourseNotActive),
		errors.Is(err, services.ErrQuizNotPublished):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrNotEnrolled),
		errors.Is(err, services.ErrUserBlocked):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrGenerationEmpty),
		errors.Is(err, services.ErrGenerationMalformed),
		errors.Is(err, services.ErrGenerationNoQuests),
		errors.Is(err, services.ErrGenerationNoSlides):
		h.logger.Error("generation failure", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})

	default:
		h.logger.Error("unhandled service error", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}
