package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"

	"landing-builder-backend/internal/content"
	"landing-builder-backend/internal/document"
	"landing-builder-backend/internal/landing"
	"landing-builder-backend/internal/metrics"
	"landing-builder-backend/internal/models"
	"landing-builder-backend/pkg/logger"
	"landing-builder-backend/pkg/media"
)

// Mutation names reported to metrics.
const (
	OpUpdateSection     = "update_section"
	OpUpdateColor       = "update_color"
	OpAppendItem        = "append_item"
	OpUpdateItem        = "update_item"
	OpRemoveItem        = "remove_item"
	OpSetMedia          = "set_media"
	OpSetMediaOptions   = "set_media_options"
	OpReorderSections   = "reorder_sections"
	OpFloatingButton    = "floating_button"
	OpInsertNode        = "insert_node"
	OpUpdateNodeAttrs   = "update_node_attrs"
	OpDeleteNode        = "delete_node"
	OpConvertColumn     = "convert_single_column"
	OpUpdateSettings    = "update_settings"
	OpImportMarkdown    = "import_markdown"
	OpUploadMediaToSlot = "upload_media"
)

// DocumentEdit is the outcome of a document mutation. Path is set for
// inserts and addresses the new node.
type DocumentEdit struct {
	Page    *models.LandingPage
	Applied bool
	Path    document.Path
}

// editTemplate applies fn to the template data of page id and saves the
// result. Rich-text pages are rejected with content.ErrWrongMode.
func (s *LandingPageService) editTemplate(ctx context.Context, id uint, op string, fn func(landing.TemplateData) (landing.TemplateData, error)) (*models.LandingPage, error) {
	page, current, err := s.load(id)
	if err != nil {
		return nil, err
	}
	tpl, err := content.AsTemplate(current)
	if err != nil {
		metrics.ObserveMutationError(op)
		return nil, err
	}

	data, err := fn(tpl.Data)
	if err != nil {
		metrics.ObserveMutationError(op)
		return nil, err
	}
	tpl.Data = data

	if err := s.store(ctx, page, tpl); err != nil {
		metrics.ObserveMutationError(op)
		return nil, err
	}
	metrics.ObserveMutation(op, true)
	return page, nil
}

// editDocument applies fn to the document of a rich-text page. Nothing is
// saved when fn reports that it did not apply.
func (s *LandingPageService) editDocument(ctx context.Context, id uint, op string, fn func(content.FreeForm) (content.FreeForm, document.Path, bool, error)) (*DocumentEdit, error) {
	page, current, err := s.load(id)
	if err != nil {
		return nil, err
	}
	doc, err := content.AsFreeForm(current)
	if err != nil {
		metrics.ObserveMutationError(op)
		return nil, err
	}

	next, path, applied, err := fn(doc)
	if err != nil {
		metrics.ObserveMutationError(op)
		return nil, err
	}
	metrics.ObserveMutation(op, applied)
	if !applied {
		return &DocumentEdit{Page: page}, nil
	}

	if err := s.store(ctx, page, next); err != nil {
		return nil, err
	}
	return &DocumentEdit{Page: page, Applied: true, Path: path}, nil
}

func (s *LandingPageService) UpdateSection(ctx context.Context, id uint, section landing.SectionKey, patch json.RawMessage) (*models.LandingPage, error) {
	return s.editTemplate(ctx, id, OpUpdateSection, func(d landing.TemplateData) (landing.TemplateData, error) {
		return landing.UpdateSection(d, section, patch)
	})
}

func (s *LandingPageService) UpdateColor(ctx context.Context, id uint, slot landing.ColorSlot, value string) (*models.LandingPage, error) {
	return s.editTemplate(ctx, id, OpUpdateColor, func(d landing.TemplateData) (landing.TemplateData, error) {
		return landing.UpdateColor(d, slot, value)
	})
}

func (s *LandingPageService) AppendItem(ctx context.Context, id uint, section landing.SectionKey, list string) (*models.LandingPage, error) {
	return s.editTemplate(ctx, id, OpAppendItem, func(d landing.TemplateData) (landing.TemplateData, error) {
		return landing.AppendItem(d, section, list)
	})
}

func (s *LandingPageService) UpdateItem(ctx context.Context, id uint, section landing.SectionKey, list string, index int, patch json.RawMessage) (*models.LandingPage, error) {
	return s.editTemplate(ctx, id, OpUpdateItem, func(d landing.TemplateData) (landing.TemplateData, error) {
		if err := checkItemIndex(d, section, list, index); err != nil {
			return d, err
		}
		return landing.UpdateItem(d, section, list, index, patch)
	})
}

func (s *LandingPageService) RemoveItem(ctx context.Context, id uint, section landing.SectionKey, list string, index int) (*models.LandingPage, error) {
	return s.editTemplate(ctx, id, OpRemoveItem, func(d landing.TemplateData) (landing.TemplateData, error) {
		if err := checkItemIndex(d, section, list, index); err != nil {
			return d, err
		}
		return landing.RemoveItem(d, section, list, index)
	})
}

// SetMedia stores url in the media field named by key, given in its string form.
func (s *LandingPageService) SetMedia(ctx context.Context, id uint, key, url string) (*models.LandingPage, error) {
	mediaKey, err := landing.ParseMediaKey(key)
	if err != nil {
		metrics.ObserveMutationError(OpSetMedia)
		return nil, err
	}
	return s.editTemplate(ctx, id, OpSetMedia, func(d landing.TemplateData) (landing.TemplateData, error) {
		if err := checkMediaKey(d, mediaKey); err != nil {
			return d, err
		}
		return landing.SetMedia(d, mediaKey, url)
	})
}

func (s *LandingPageService) SetMediaOptions(ctx context.Context, id uint, key string, opts media.Options) (*models.LandingPage, error) {
	mediaKey, err := landing.ParseMediaKey(key)
	if err != nil {
		metrics.ObserveMutationError(OpSetMediaOptions)
		return nil, err
	}
	return s.editTemplate(ctx, id, OpSetMediaOptions, func(d landing.TemplateData) (landing.TemplateData, error) {
		return landing.SetMediaOptions(d, mediaKey, opts)
	})
}

func (s *LandingPageService) ReorderSections(ctx context.Context, id uint, moved, target landing.SectionKey) (*models.LandingPage, error) {
	return s.editTemplate(ctx, id, OpReorderSections, func(d landing.TemplateData) (landing.TemplateData, error) {
		return landing.ReorderSections(d, moved, target), nil
	})
}

// MoveSection shifts a section by offset positions. Moves past either end are
// ignored.
func (s *LandingPageService) MoveSection(ctx context.Context, id uint, key landing.SectionKey, offset int) (*models.LandingPage, error) {
	return s.editTemplate(ctx, id, OpReorderSections, func(d landing.TemplateData) (landing.TemplateData, error) {
		return landing.MoveSection(d, key, offset), nil
	})
}

func (s *LandingPageService) SetFloatingButton(ctx context.Context, id uint, enabled bool, section landing.SectionKey) (*models.LandingPage, error) {
	return s.editTemplate(ctx, id, OpFloatingButton, func(d landing.TemplateData) (landing.TemplateData, error) {
		return landing.SetFloatingButton(d, enabled, section)
	})
}

// UploadMediaToField uploads file and stores its URL in the media field named
// by key. The page is left untouched when the upload or the save fails.
func (s *LandingPageService) UploadMediaToField(ctx context.Context, id uint, key string, file *multipart.FileHeader) (*models.LandingPage, *models.UploadResponse, error) {
	if s.uploads == nil {
		return nil, nil, fmt.Errorf("%w: upload service is not configured", ErrUploadFailed)
	}
	mediaKey, err := landing.ParseMediaKey(key)
	if err != nil {
		return nil, nil, err
	}

	_, current, err := s.load(id)
	if err != nil {
		return nil, nil, err
	}
	tpl, err := content.AsTemplate(current)
	if err != nil {
		return nil, nil, err
	}
	if err := checkMediaKey(tpl.Data, mediaKey); err != nil {
		return nil, nil, err
	}
	// Reject unknown fields before anything is stored.
	if _, err := landing.SetMedia(tpl.Data, mediaKey, ""); err != nil {
		return nil, nil, err
	}

	uploaded, err := s.uploads.UploadFile(ctx, file)
	if err != nil {
		metrics.ObserveMutationError(OpUploadMediaToSlot)
		return nil, nil, err
	}

	page, err := s.editTemplate(ctx, id, OpUploadMediaToSlot, func(d landing.TemplateData) (landing.TemplateData, error) {
		if err := checkMediaKey(d, mediaKey); err != nil {
			return d, err
		}
		return landing.SetMedia(d, mediaKey, uploaded.URL)
	})
	if err != nil {
		if delErr := s.uploads.Delete(ctx, uploaded.URL); delErr != nil {
			logger.Warn("Failed to remove orphaned upload", map[string]interface{}{
				"url":   uploaded.URL,
				"error": delErr.Error(),
			})
		}
		return nil, nil, err
	}
	return page, uploaded, nil
}

func (s *LandingPageService) InsertNode(ctx context.Context, id uint, sel document.Path, t document.NodeType, attrs document.Attrs) (*DocumentEdit, error) {
	return s.editDocument(ctx, id, OpInsertNode, func(f content.FreeForm) (content.FreeForm, document.Path, bool, error) {
		doc, path, err := document.Insert(f.Document, sel, t, attrs)
		if err != nil {
			return f, nil, false, err
		}
		f.Document = doc
		return f, path, true, nil
	})
}

func (s *LandingPageService) UpdateNodeAttrs(ctx context.Context, id uint, sel document.Path, t document.NodeType, patch document.Attrs) (*DocumentEdit, error) {
	if _, ok := document.Lookup(t); !ok {
		metrics.ObserveMutationError(OpUpdateNodeAttrs)
		return nil, fmt.Errorf("%w: %s", document.ErrUnknownNodeType, t)
	}
	return s.editDocument(ctx, id, OpUpdateNodeAttrs, func(f content.FreeForm) (content.FreeForm, document.Path, bool, error) {
		doc, applied := document.UpdateAttrs(f.Document, sel, t, patch)
		f.Document = doc
		return f, nil, applied, nil
	})
}

func (s *LandingPageService) DeleteNode(ctx context.Context, id uint, sel document.Path, types ...document.NodeType) (*DocumentEdit, error) {
	for _, t := range types {
		if _, ok := document.Lookup(t); !ok {
			metrics.ObserveMutationError(OpDeleteNode)
			return nil, fmt.Errorf("%w: %s", document.ErrUnknownNodeType, t)
		}
	}
	return s.editDocument(ctx, id, OpDeleteNode, func(f content.FreeForm) (content.FreeForm, document.Path, bool, error) {
		doc, applied := document.Delete(f.Document, sel, types...)
		f.Document = doc
		return f, nil, applied, nil
	})
}

func (s *LandingPageService) ConvertToSingleColumn(ctx context.Context, id uint, sel document.Path) (*DocumentEdit, error) {
	return s.editDocument(ctx, id, OpConvertColumn, func(f content.FreeForm) (content.FreeForm, document.Path, bool, error) {
		doc, applied := document.ConvertToSingleColumn(f.Document, sel)
		f.Document = doc
		return f, nil, applied, nil
	})
}

// UpdateSettings replaces the container settings. Out-of-range values are
// clamped and malformed ones fall back to their defaults.
func (s *LandingPageService) UpdateSettings(ctx context.Context, id uint, raw json.RawMessage) (*DocumentEdit, error) {
	return s.editDocument(ctx, id, OpUpdateSettings, func(f content.FreeForm) (content.FreeForm, document.Path, bool, error) {
		f.Settings = document.NormalizeSettings(raw)
		return f, nil, true, nil
	})
}

// ImportMarkdown converts markdown into document blocks. With replace the
// document is swapped out, otherwise the blocks are appended. A document that
// holds only an empty paragraph is always replaced.
func (s *LandingPageService) ImportMarkdown(ctx context.Context, id uint, markdown string, replace bool) (*DocumentEdit, error) {
	imported := document.FromMarkdown([]byte(markdown))
	return s.editDocument(ctx, id, OpImportMarkdown, func(f content.FreeForm) (content.FreeForm, document.Path, bool, error) {
		if replace || isBlank(f.Document) {
			f.Document = imported
			return f, nil, true, nil
		}
		doc := f.Document.Clone()
		doc.Content = append(doc.Content, imported.Content...)
		f.Document = document.Normalize(doc)
		return f, nil, true, nil
	})
}

func isBlank(doc *document.Node) bool {
	if doc == nil || len(doc.Content) == 0 {
		return true
	}
	if len(doc.Content) > 1 {
		return false
	}
	only := doc.Content[0]
	return only.Type == document.TypeParagraph && len(only.Content) == 0
}

// checkItemIndex turns an out-of-range list index into an error before it
// reaches the landing package, which treats it as a programming error.
func checkItemIndex(d landing.TemplateData, section landing.SectionKey, list string, index int) error {
	count, err := landing.ItemCount(d, section, list)
	if err != nil {
		return err
	}
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %s.%s[%d] with %d item(s)", ErrIndexOutOfRange, section, list, index, count)
	}
	return nil
}

func checkMediaKey(d landing.TemplateData, key landing.MediaKey) error {
	if !key.IsItem() {
		return nil
	}
	return checkItemIndex(d, key.Section, key.List, key.Index)
}
