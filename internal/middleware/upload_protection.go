package middleware

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

var publicUploadExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".avif": {},
	".svg":  {},
	".mp4":  {},
	".m4v":  {},
	".mov":  {},
	".webm": {},
	".ogg":  {},
	".ogv":  {},
}

// UploadsProtection only lets the public /uploads route serve media files.
func UploadsProtection() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawPath := strings.ToLower(strings.TrimSpace(c.Param("filepath")))
		ext := filepath.Ext(rawPath)
		if _, ok := publicUploadExtensions[ext]; ok && ext != "" {
			c.Next()
			return
		}

		c.AbortWithStatus(http.StatusNotFound)
	}
}
