package handlers

import (
	"net/http"

	"landing-builder-backend/internal/document"
	"landing-builder-backend/internal/models"
	"landing-builder-backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *LandingPageHandler) InsertNode(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.NodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "node type is required"})
		return
	}

	edit, err := h.pageService.InsertNode(c.Request.Context(), id, document.Path(req.Selection), document.NodeType(req.Type), document.Attrs(req.Attrs))
	if err != nil {
		respondError(c, err)
		return
	}

	respondEdit(c, http.StatusCreated, edit)
}

func (h *LandingPageHandler) UpdateNodeAttrs(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.NodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "node type is required"})
		return
	}

	edit, err := h.pageService.UpdateNodeAttrs(c.Request.Context(), id, document.Path(req.Selection), document.NodeType(req.Type), document.Attrs(req.Attrs))
	if err != nil {
		respondError(c, err)
		return
	}

	respondEdit(c, http.StatusOK, edit)
}

func (h *LandingPageHandler) DeleteNode(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.NodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	types := make([]document.NodeType, 0, len(req.Types)+1)
	if req.Type != "" {
		types = append(types, document.NodeType(req.Type))
	}
	for _, t := range req.Types {
		types = append(types, document.NodeType(t))
	}

	edit, err := h.pageService.DeleteNode(c.Request.Context(), id, document.Path(req.Selection), types...)
	if err != nil {
		respondError(c, err)
		return
	}

	respondEdit(c, http.StatusOK, edit)
}

func (h *LandingPageHandler) ConvertToSingleColumn(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.NodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edit, err := h.pageService.ConvertToSingleColumn(c.Request.Context(), id, document.Path(req.Selection))
	if err != nil {
		respondError(c, err)
		return
	}

	respondEdit(c, http.StatusOK, edit)
}

func (h *LandingPageHandler) UpdateSettings(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edit, err := h.pageService.UpdateSettings(c.Request.Context(), id, req.Settings)
	if err != nil {
		respondError(c, err)
		return
	}

	respondEdit(c, http.StatusOK, edit)
}

func (h *LandingPageHandler) ImportMarkdown(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.MarkdownImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edit, err := h.pageService.ImportMarkdown(c.Request.Context(), id, req.Markdown, req.Replace)
	if err != nil {
		respondError(c, err)
		return
	}

	respondEdit(c, http.StatusOK, edit)
}

// respondEdit reports a document mutation. A mutation that matched nothing
// answers 200 with applied set to false.
func respondEdit(c *gin.Context, status int, edit *service.DocumentEdit) {
	if !edit.Applied {
		status = http.StatusOK
	}
	c.JSON(status, models.NodeResponse{
		Applied: edit.Applied,
		Path:    edit.Path,
		Content: []byte(edit.Page.Content),
	})
}
