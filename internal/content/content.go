// Package content holds the persisted content of a landing page. A page is
// either a free-form document or a fixed-slot template; the mode is chosen
// once when the content is decoded and the two shapes are never mixed.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"landing-builder-backend/internal/document"
	"landing-builder-backend/internal/landing"
)

// Mode names the editing mode of a page.
type Mode string

const (
	ModeRichText Mode = "richText"
	ModeTemplate Mode = "template"
)

var (
	ErrWrongMode      = errors.New("operation not available in this content mode")
	ErrInvalidContent = errors.New("invalid content")
	ErrUnknownMode    = errors.New("unknown content mode")
)

// Content is either FreeForm or Template.
type Content interface {
	Mode() Mode
	sealed()
}

// FreeForm is a rich-text page: a document tree and its layout settings.
type FreeForm struct {
	Document *document.Node
	Settings document.Settings
}

// Template is a fixed-slot page. The document and settings are kept so that
// switching an existing page to template mode does not lose its text.
type Template struct {
	Document *document.Node
	Settings document.Settings
	Data     landing.TemplateData
}

func (FreeForm) Mode() Mode { return ModeRichText }
func (Template) Mode() Mode { return ModeTemplate }
func (FreeForm) sealed()    {}
func (Template) sealed()    {}

// ParseMode accepts the mode names used by the API. An empty value is rich text.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case "", ModeRichText:
		return ModeRichText, nil
	case ModeTemplate:
		return ModeTemplate, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

// New returns the content of a new page in the given mode.
func New(mode Mode) Content {
	if mode == ModeTemplate {
		return Template{Document: document.Empty(), Settings: document.DefaultSettings(), Data: landing.Defaults()}
	}
	return FreeForm{Document: document.Empty(), Settings: document.DefaultSettings()}
}

type persisted struct {
	Document     json.RawMessage `json:"document,omitempty"`
	Settings     json.RawMessage `json:"settings,omitempty"`
	TemplateData json.RawMessage `json:"templateData,omitempty"`
}

// Decode reads persisted content. A page is in template mode exactly when
// templateData is present and not null. Every part runs through its
// normalizer, so damaged or outdated fields come back repaired; only data
// that is not a JSON object is an error. Empty input is an empty free-form page.
func Decode(raw []byte) (Content, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return New(ModeRichText), nil
	}

	var p persisted
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	doc := decodeDocument(p.Document)
	settings := document.NormalizeSettings(p.Settings)
	if present(p.TemplateData) {
		return Template{Document: doc, Settings: settings, Data: landing.NormalizeJSON(p.TemplateData)}, nil
	}
	return FreeForm{Document: doc, Settings: settings}, nil
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func decodeDocument(raw json.RawMessage) *document.Node {
	if !present(raw) {
		return document.Empty()
	}
	doc, err := document.Parse(raw)
	if err != nil {
		return document.Empty()
	}
	return doc
}

// Encode serialises content into its persisted shape.
func Encode(c Content) ([]byte, error) {
	var out struct {
		Document     *document.Node        `json:"document"`
		Settings     document.Settings     `json:"settings"`
		TemplateData *landing.TemplateData `json:"templateData,omitempty"`
	}

	switch v := c.(type) {
	case FreeForm:
		out.Document, out.Settings = v.Document, v.Settings
	case Template:
		data := v.Data
		out.Document, out.Settings, out.TemplateData = v.Document, v.Settings, &data
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidContent, c)
	}
	if out.Document == nil {
		out.Document = document.Empty()
	}
	return json.Marshal(out)
}

// AsTemplate returns the template variant or ErrWrongMode.
func AsTemplate(c Content) (Template, error) {
	t, ok := c.(Template)
	if !ok {
		return Template{}, fmt.Errorf("%w: page is not in template mode", ErrWrongMode)
	}
	return t, nil
}

// AsFreeForm returns the free-form variant or ErrWrongMode.
func AsFreeForm(c Content) (FreeForm, error) {
	f, ok := c.(FreeForm)
	if !ok {
		return FreeForm{}, fmt.Errorf("%w: page is not in rich text mode", ErrWrongMode)
	}
	return f, nil
}
