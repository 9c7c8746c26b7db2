package landing

import (
	"strconv"
	"strings"
)

// GalleryImage is one tile of the gallery.
type GalleryImage struct {
	Image   string `json:"image"`
	Caption string `json:"caption"`
}

func (g *GalleryImage) mediaField(field string) *string {
	if field == "image" {
		return &g.Image
	}
	return nil
}

// GallerySection is a grid of images or videos.
type GallerySection struct {
	Visible bool           `json:"visible"`
	Title   string         `json:"title"`
	Images  []GalleryImage `json:"images"`
}

func (s GallerySection) IsVisible() bool { return s.Visible }

func defaultGallery() GallerySection {
	return GallerySection{
		Visible: false,
		Title:   "Moments from past workshops",
		Images:  []GalleryImage{},
	}
}

func galleryDescriptor() *SectionDescriptor {
	get := func(d *TemplateData) *GallerySection { return &d.Gallery }
	return NewSectionBuilder(SectionGallery, get).
		WithName("Gallery").
		WithDescription("Grid of images or videos with captions").
		WithCategory("media").
		WithIcon("images").
		AddBooleanField("visible", false).
		AddStringField("title", defaultGallery().Title).
		WithList(listOf("images", func(d *TemplateData) *[]GalleryImage { return &d.Gallery.Images }, (*GalleryImage).mediaField, "image")).
		WithRenderer(renderGallery).
		MustBuild()
}

func renderGallery(ctx RenderContext, prefix string, page *TemplateData) string {
	gallery := page.Gallery
	cls := func(element string) string { return className(prefix, "gallery-"+element) }

	var sb strings.Builder
	sb.WriteString(`<div class="` + cls("container") + `">`)
	textBlock(&sb, ctx, "h2", cls("title"), gallery.Title)
	sb.WriteString(`<div class="` + cls("grid") + `">`)
	for i, image := range gallery.Images {
		var media strings.Builder
		mediaBlock(&media, page, ItemKey(SectionGallery, "images", i, "image"), cls("media"), image.Caption)
		if media.Len() == 0 {
			continue
		}
		sb.WriteString(`<figure class="` + cls("item") + `" data-index="` + strconv.Itoa(i) + `">`)
		sb.WriteString(media.String())
		textBlock(&sb, ctx, "figcaption", cls("caption"), image.Caption)
		sb.WriteString(`</figure>`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)
	return sb.String()
}
