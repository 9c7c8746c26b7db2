package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"landing-builder-backend/internal/content"
	"landing-builder-backend/internal/document"
	"landing-builder-backend/internal/landing"
	"landing-builder-backend/internal/service"
	"landing-builder-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

var badRequestErrors = []error{
	service.ErrInvalidTitle,
	service.ErrIndexOutOfRange,
	service.ErrUploadEmpty,
	content.ErrUnknownMode,
	content.ErrInvalidContent,
	landing.ErrUnknownSection,
	landing.ErrUnknownColor,
	landing.ErrUnknownList,
	landing.ErrUnknownMediaField,
	landing.ErrInvalidPatch,
	landing.ErrInvalidFloatingSection,
	landing.ErrNoMedia,
	landing.ErrInvalidMediaKey,
	document.ErrUnknownNodeType,
	document.ErrNotInsertable,
	document.ErrInvalidDocument,
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrLandingPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, content.ErrWrongMode), errors.Is(err, service.ErrSlugTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrUploadFailed):
		return http.StatusBadGateway
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(err, "Request failed", map[string]interface{}{
			"path":   c.FullPath(),
			"method": c.Request.Method,
		})
	}
	if status == http.StatusBadGateway {
		c.JSON(status, gin.H{"error": "media storage is unavailable, please retry", "retryable": true})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page id"})
		return 0, false
	}
	return uint(id), true
}
