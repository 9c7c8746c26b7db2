package document

import (
	"encoding/json"
	"testing"
)

func TestNormalizeSettings(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Settings
	}{
		{"empty", ``, DefaultSettings()},
		{"malformed", `{"maxWidth": "wide"}`, DefaultSettings()},
		{"partial", `{"padding": 40}`, Settings{MaxWidth: 1200, Padding: 40, BackgroundColor: "#ffffff"}},
		{"clamped", `{"maxWidth": 100, "padding": 900}`, Settings{MaxWidth: 320, Padding: 200, BackgroundColor: "#ffffff"}},
		{"too wide", `{"maxWidth": 9000}`, Settings{MaxWidth: 2400, Padding: 24, BackgroundColor: "#ffffff"}},
		{"bad color", `{"backgroundColor": "red; display:none"}`, DefaultSettings()},
		{"cleared color", `{"backgroundColor": ""}`, Settings{MaxWidth: 1200, Padding: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSettings(json.RawMessage(tt.raw))
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
