package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

var youTubeFrameSources = []string{"https://www.youtube.com", "https://www.youtube-nocookie.com"}

// SecurityOptions lists the origins the content security policy trusts
// beyond the site itself.
type SecurityOptions struct {
	// MediaOrigins serve images and video, such as the media bucket.
	MediaOrigins []string
	// FrameAncestors may embed pages, such as the builder UI showing previews.
	FrameAncestors []string
}

// SecurityHeaders sets the response hardening headers.
func SecurityHeaders(opts SecurityOptions) gin.HandlerFunc {
	policy := buildContentSecurityPolicy(opts.MediaOrigins, opts.FrameAncestors)
	sameOriginFrames := len(originsOf(opts.FrameAncestors)) == 0
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		if sameOriginFrames {
			c.Header("X-Frame-Options", "SAMEORIGIN")
		}
		c.Header("Cross-Origin-Opener-Policy", "same-origin")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Header("Content-Security-Policy", policy)
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Next()
	}
}

func buildContentSecurityPolicy(mediaOrigins, frameAncestors []string) string {
	media := append([]string{"'self'", "data:", "blob:"}, originsOf(mediaOrigins)...)
	sources := strings.Join(media, " ")
	ancestors := append([]string{"'self'"}, originsOf(frameAncestors)...)

	directives := []string{
		"default-src 'self'",
		"object-src 'none'",
		"base-uri 'self'",
		"frame-ancestors " + strings.Join(ancestors, " "),
		"img-src " + sources + " https:",
		"media-src " + sources,
		"frame-src " + strings.Join(youTubeFrameSources, " "),
		"style-src 'self' 'unsafe-inline'",
	}
	return strings.Join(directives, "; ")
}

func originsOf(values []string) []string {
	var out []string
	for _, raw := range values {
		if origin := originOf(raw); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

// originOf returns scheme://host of an absolute URL, or "".
func originOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
