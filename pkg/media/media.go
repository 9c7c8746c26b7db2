package media

import (
	"html/template"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Kind classifies a media reference.
type Kind string

const (
	KindNone    Kind = ""
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindYouTube Kind = "youtube"
)

var videoExtensions = []string{".mp4", ".webm", ".ogg"}

// Ordered: the first matching pattern wins.
var youTubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]+)`),
}

// Options holds per-field playback settings.
type Options struct {
	Autoplay bool `json:"autoplay"`
	Mute     bool `json:"mute"`
}

// DefaultOptions returns the settings used when a field has no explicit entry.
func DefaultOptions() Options {
	return Options{Autoplay: false, Mute: true}
}

// Renderable is a resolved media reference ready to be turned into markup.
type Renderable struct {
	Kind     Kind   `json:"kind"`
	Src      string `json:"src"`
	VideoID  string `json:"video_id,omitempty"`
	Autoplay bool   `json:"autoplay"`
	Muted    bool   `json:"muted"`
}

// Classify reports the kind of media a URL points at. An empty URL is KindNone.
func Classify(rawURL string) Kind {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return KindNone
	}

	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be") {
		return KindYouTube
	}

	ext := strings.ToLower(path.Ext(urlPath(trimmed)))
	for _, candidate := range videoExtensions {
		if ext == candidate {
			return KindVideo
		}
	}

	return KindImage
}

// YouTubeID extracts the video id from watch, short and embed URLs.
func YouTubeID(rawURL string) (string, bool) {
	for _, pattern := range youTubePatterns {
		if match := pattern.FindStringSubmatch(rawURL); len(match) == 2 && match[1] != "" {
			return match[1], true
		}
	}
	return "", false
}

// EmbedURL builds the player URL. Parameter order is fixed so output is stable.
func EmbedURL(videoID string, opts Options) string {
	var sb strings.Builder
	sb.WriteString("https://www.youtube.com/embed/")
	sb.WriteString(url.PathEscape(videoID))
	sb.WriteString("?autoplay=")
	sb.WriteString(flag(opts.Autoplay))
	sb.WriteString("&mute=")
	sb.WriteString(flag(opts.Mute))
	sb.WriteString("&rel=0&modestbranding=1&playsinline=1")
	return sb.String()
}

// Resolve turns a media URL into a renderable element. It returns false when
// nothing should be rendered: an empty URL or a YouTube URL without a
// recognisable video id.
func Resolve(rawURL string, opts Options) (Renderable, bool) {
	trimmed := strings.TrimSpace(rawURL)

	switch Classify(trimmed) {
	case KindYouTube:
		id, ok := YouTubeID(trimmed)
		if !ok {
			return Renderable{}, false
		}
		return Renderable{
			Kind:     KindYouTube,
			Src:      EmbedURL(id, opts),
			VideoID:  id,
			Autoplay: opts.Autoplay,
			Muted:    opts.Mute,
		}, true
	case KindVideo:
		// Browsers usually refuse unmuted autoplay; the flag is passed through as configured.
		return Renderable{Kind: KindVideo, Src: trimmed, Autoplay: opts.Autoplay, Muted: opts.Mute}, true
	case KindImage:
		return Renderable{Kind: KindImage, Src: trimmed}, true
	default:
		return Renderable{}, false
	}
}

// HTML renders the element. class and alt may be empty.
func (r Renderable) HTML(class, alt string) string {
	classAttr := ""
	if class != "" {
		classAttr = ` class="` + template.HTMLEscapeString(class) + `"`
	}

	var sb strings.Builder
	switch r.Kind {
	case KindYouTube:
		sb.WriteString(`<iframe` + classAttr + ` src="` + template.HTMLEscapeString(r.Src) + `"`)
		sb.WriteString(` title="YouTube video" frameborder="0"`)
		sb.WriteString(` allow="autoplay; encrypted-media; picture-in-picture" allowfullscreen></iframe>`)
	case KindVideo:
		sb.WriteString(`<video` + classAttr + ` src="` + template.HTMLEscapeString(r.Src) + `" playsinline loop`)
		if r.Muted {
			sb.WriteString(` muted`)
		}
		if r.Autoplay {
			sb.WriteString(` autoplay`)
		} else {
			sb.WriteString(` controls`)
		}
		sb.WriteString(`></video>`)
	case KindImage:
		sb.WriteString(`<img` + classAttr + ` src="` + template.HTMLEscapeString(r.Src) + `" alt="` + template.HTMLEscapeString(alt) + `" loading="lazy" />`)
	}
	return sb.String()
}

func urlPath(raw string) string {
	if parsed, err := url.Parse(raw); err == nil && parsed.Path != "" {
		return parsed.Path
	}
	if idx := strings.IndexAny(raw, "?#"); idx >= 0 {
		return raw[:idx]
	}
	return raw
}

func flag(value bool) string {
	if value {
		return "1"
	}
	return "0"
}
