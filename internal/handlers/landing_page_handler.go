package handlers

import (
	"net/http"

	"landing-builder-backend/internal/document"
	"landing-builder-backend/internal/landing"
	"landing-builder-backend/internal/models"
	"landing-builder-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type LandingPageHandler struct {
	pageService *service.LandingPageService
}

func NewLandingPageHandler(pageService *service.LandingPageService) *LandingPageHandler {
	return &LandingPageHandler{pageService: pageService}
}

func (h *LandingPageHandler) Create(c *gin.Context) {
	var req models.CreateLandingPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pageService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"page": page})
}

func (h *LandingPageHandler) List(c *gin.Context) {
	pages, err := h.pageService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

func (h *LandingPageHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	page, err := h.pageService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// GetBySlug looks a page up by slug whether or not it is published.
func (h *LandingPageHandler) GetBySlug(c *gin.Context) {
	page, err := h.pageService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *LandingPageHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateLandingPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pageService.Save(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *LandingPageHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.pageService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "landing page deleted successfully"})
}

func (h *LandingPageHandler) Publish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	page, err := h.pageService.Publish(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *LandingPageHandler) Unpublish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	page, err := h.pageService.Unpublish(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *LandingPageHandler) Duplicate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	page, err := h.pageService.Duplicate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"page": page})
}

func (h *LandingPageHandler) Preview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	html, err := h.pageService.Preview(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// BuilderConfig describes the sections and node kinds the editor can offer.
func (h *LandingPageHandler) BuilderConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sections":         landing.DefaultRegistry().ListMetadata(),
		"section_order":    landing.CanonicalOrder(),
		"colors":           landing.ColorSlots,
		"floating_sources": landing.FloatingSources,
		"defaults":         landing.Defaults(),
		"nodes":            document.Specs(),
		"insertable":       document.Insertable(),
		"settings":         document.DefaultSettings(),
	})
}

// RenderPublic serves the rendered HTML of a published page.
func (h *LandingPageHandler) RenderPublic(c *gin.Context) {
	html, err := h.pageService.RenderPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// PublicContent serves the content JSON of a published page.
func (h *LandingPageHandler) PublicContent(c *gin.Context) {
	raw, err := h.pageService.PublishedContent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slug": c.Param("slug"), "content": raw})
}
