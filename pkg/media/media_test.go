package media

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		url  string
		want Kind
	}{
		{"https://youtu.be/abc123", KindYouTube},
		{"https://www.youtube.com/watch?v=abc123", KindYouTube},
		{"photo.png", KindImage},
		{"clip.webm", KindVideo},
		{"/uploads/intro.MP4?v=2", KindVideo},
		{"https://cdn.example.com/audio.ogg#t=10", KindVideo},
		{"", KindNone},
		{"   ", KindNone},
	}

	for _, tc := range cases {
		if got := Classify(tc.url); got != tc.want {
			t.Fatalf("Classify(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestYouTubeID(t *testing.T) {
	cases := map[string]string{
		"https://youtu.be/abc123":                           "abc123",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":       "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=share&v=x_-1": "x_-1",
		"https://www.youtube.com/embed/abc123?start=4":      "abc123",
	}
	for url, want := range cases {
		got, ok := YouTubeID(url)
		if !ok || got != want {
			t.Fatalf("YouTubeID(%q) = %q, %v; want %q", url, got, ok, want)
		}
	}

	if _, ok := YouTubeID("https://www.youtube.com/channel/UC123"); ok {
		t.Fatalf("expected channel URL to have no video id")
	}
}

func TestResolveYouTubeUsesFixedParameterOrder(t *testing.T) {
	r, ok := Resolve("https://youtu.be/abc123", Options{Autoplay: true, Mute: false})
	if !ok {
		t.Fatalf("expected youtube url to resolve")
	}
	want := "https://www.youtube.com/embed/abc123?autoplay=1&mute=0&rel=0&modestbranding=1&playsinline=1"
	if r.Src != want {
		t.Fatalf("unexpected embed url: %s", r.Src)
	}
	if r.VideoID != "abc123" {
		t.Fatalf("unexpected video id: %s", r.VideoID)
	}
}

func TestResolveUnrecognisedYouTubeRendersNothing(t *testing.T) {
	if _, ok := Resolve("https://www.youtube.com/@somechannel", DefaultOptions()); ok {
		t.Fatalf("expected unresolvable youtube url to render nothing")
	}
}

func TestResolveEmptyURL(t *testing.T) {
	if _, ok := Resolve("", DefaultOptions()); ok {
		t.Fatalf("expected empty url to render nothing")
	}
}

func TestRenderableHTML(t *testing.T) {
	video, _ := Resolve("clip.webm", DefaultOptions())
	html := video.HTML("hero__media", "")
	if !strings.Contains(html, "<video") || !strings.Contains(html, " muted") {
		t.Fatalf("expected muted video element, got %s", html)
	}
	if strings.Contains(html, "autoplay") {
		t.Fatalf("autoplay must be off by default, got %s", html)
	}

	image, _ := Resolve("photo.png", DefaultOptions())
	html = image.HTML("", `a "quoted" alt`)
	if !strings.Contains(html, `alt="a &#34;quoted&#34; alt"`) {
		t.Fatalf("expected escaped alt text, got %s", html)
	}
}
