package validator

import (
	"mime"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	initOnce sync.Once

	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

// Init registers the custom tags on a package validator and on gin's binding
// engine. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		validate = validator.New()
		registerCustomValidations(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("hexcolor_or_empty", validateHexColorOrEmpty)
	v.RegisterValidation("media_url", validateMediaURL)
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

func validateSlug(fl validator.FieldLevel) bool {
	return IsSlug(fl.Field().String())
}

func validateHexColorOrEmpty(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value == "" || IsHexColor(value)
}

// IsHexColor reports whether value is a #rgb, #rgba, #rrggbb or #rrggbbaa color.
func IsHexColor(value string) bool {
	return hexColorPattern.MatchString(value)
}

func validateMediaURL(fl validator.FieldLevel) bool {
	return IsMediaURL(fl.Field().String())
}

// IsSlug reports whether value is lowercase words joined by single hyphens.
func IsSlug(value string) bool {
	return slugPattern.MatchString(value)
}

// IsMediaURL accepts an empty value, a site-relative path or an http(s) URL.
func IsMediaURL(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, "/") && !strings.HasPrefix(trimmed, "//") {
		return true
	}
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

// ValidateContentType reports whether contentType matches one of the allowed
// types. Entries ending in "/*" match the whole top-level type.
func ValidateContentType(contentType string, allowedMimeTypes []string) bool {
	if contentType == "" || len(allowedMimeTypes) == 0 {
		return false
	}

	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	for _, allowed := range allowedMimeTypes {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if mimeType == allowed {
			return true
		}
		if prefix, ok := strings.CutSuffix(allowed, "/*"); ok && strings.HasPrefix(mimeType, prefix+"/") {
			return true
		}
	}
	return false
}

// ValidateMediaContentType accepts the image and video types a landing page can show.
func ValidateMediaContentType(contentType string) bool {
	return ValidateContentType(contentType, []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/svg+xml",
		"image/avif",
		"video/mp4",
		"video/webm",
		"video/ogg",
		"video/quicktime",
		"video/x-m4v",
	})
}
