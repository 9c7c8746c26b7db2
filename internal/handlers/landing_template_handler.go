package handlers

import (
	"net/http"
	"strconv"

	"landing-builder-backend/internal/landing"
	"landing-builder-backend/internal/models"
	"landing-builder-backend/pkg/media"

	"github.com/gin-gonic/gin"
)

func (h *LandingPageHandler) UpdateSection(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pageService.UpdateSection(c.Request.Context(), id, landing.SectionKey(c.Param("section")), req.Patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *LandingPageHandler) UpdateColor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pageService.UpdateColor(c.Request.Context(), id, landing.ColorSlot(c.Param("slot")), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *LandingPageHandler) AppendItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	page, err := h.pageService.AppendItem(c.Request.Context(), id, landing.SectionKey(c.Param("section")), c.Param("list"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"page": page})
}

func (h *LandingPageHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	var req models.ListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pageService.UpdateItem(c.Request.Context(), id, landing.SectionKey(c.Param("section")), c.Param("list"), index, req.Patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *LandingPageHandler) RemoveItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	page, err := h.pageService.RemoveItem(c.Request.Context(), id, landing.SectionKey(c.Param("section")), c.Param("list"), index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *LandingPageHandler) SetMedia(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.SetMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pageService.SetMedia(c.Request.Context(), id, req.Key, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *LandingPageHandler) SetMediaOptions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.MediaOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := media.DefaultOptions()
	if req.Autoplay != nil {
		opts.Autoplay = *req.Autoplay
	}
	if req.Mute != nil {
		opts.Mute = *req.Mute
	}
	page, err := h.pageService.SetMediaOptions(c.Request.Context(), id, req.Key, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *LandingPageHandler) ReorderSections(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.ReorderSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var page *models.LandingPage
	var err error
	switch {
	case req.Target != "":
		page, err = h.pageService.ReorderSections(c.Request.Context(), id, landing.SectionKey(req.Moved), landing.SectionKey(req.Target))
	case req.Offset != 0:
		page, err = h.pageService.MoveSection(c.Request.Context(), id, landing.SectionKey(req.Moved), req.Offset)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "target or offset is required"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *LandingPageHandler) SetFloatingButton(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.FloatingButtonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pageService.SetFloatingButton(c.Request.Context(), id, req.Enabled, landing.SectionKey(req.Section))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// UploadMedia stores a multipart file and points the media field named by
// the "key" form value at it.
func (h *LandingPageHandler) UploadMedia(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	key := c.PostForm("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "media key is required"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	page, upload, err := h.pageService.UploadMediaToField(c.Request.Context(), id, key, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page, "upload": upload, "url": upload.URL})
}

func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
		return 0, false
	}
	return index, true
}
