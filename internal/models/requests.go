package models

import "encoding/json"

type CreateLandingPageRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Slug  string `json:"slug" binding:"omitempty,slug"`
	Mode  string `json:"mode" binding:"omitempty,oneof=richText template"`
}

type UpdateLandingPageRequest struct {
	Title   *string         `json:"title" binding:"omitempty,max=200"`
	Slug    *string         `json:"slug" binding:"omitempty,slug"`
	Content json.RawMessage `json:"content"`
}

// UpdateSectionRequest carries a shallow patch for one template section.
type UpdateSectionRequest struct {
	Patch json.RawMessage `json:"patch" binding:"required"`
}

type UpdateColorRequest struct {
	Value string `json:"value" binding:"hexcolor_or_empty"`
}

// ListItemRequest carries a shallow patch for one list item.
type ListItemRequest struct {
	Patch json.RawMessage `json:"patch" binding:"required"`
}

type SetMediaRequest struct {
	Key string `json:"key" binding:"required"`
	URL string `json:"url" binding:"media_url"`
}

// MediaOptionsRequest sets the playback options of a media field. Omitted
// options keep their defaults.
type MediaOptionsRequest struct {
	Key      string `json:"key" binding:"required"`
	Autoplay *bool  `json:"autoplay"`
	Mute     *bool  `json:"mute"`
}

// ReorderSectionsRequest moves Moved onto Target's position, or by Offset
// steps (-1 up, +1 down) when Target is empty.
type ReorderSectionsRequest struct {
	Moved  string `json:"moved" binding:"required"`
	Target string `json:"target"`
	Offset int    `json:"offset"`
}

type FloatingButtonRequest struct {
	Enabled bool   `json:"enabled"`
	Section string `json:"section"`
}

// NodeRequest addresses the document. Selection is the child-index path of
// the cursor position; Type names the node kind to insert or to look for.
type NodeRequest struct {
	Selection []int                  `json:"selection"`
	Type      string                 `json:"type"`
	Types     []string               `json:"types"`
	Attrs     map[string]interface{} `json:"attrs"`
}

type SettingsRequest struct {
	Settings json.RawMessage `json:"settings" binding:"required"`
}

type MarkdownImportRequest struct {
	Markdown string `json:"markdown" binding:"required"`
	Replace  bool   `json:"replace"`
}

// NodeResponse reports the outcome of a document mutation.
type NodeResponse struct {
	Applied bool            `json:"applied"`
	Path    []int           `json:"path,omitempty"`
	Content json.RawMessage `json:"content"`
}

// UploadResponse is returned by the upload collaborator.
type UploadResponse struct {
	URL         string  `json:"url"`
	Filename    string  `json:"filename,omitempty"`
	ContentType string  `json:"content_type,omitempty"`
	Size        int64   `json:"size,omitempty"`
	Duration    float64 `json:"duration_seconds,omitempty"`
}
