package course

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type highlightRequest struct {
	Highlight *bool `json:"highlight" binding:"required"`
}

type visibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

func (h *CourseHandler) HighlightSection(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	section, ok := sectionParam(c)
	if !ok {
		return
	}
	var input highlightRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.HighlightSection(c.Request.Context(), c.Param("shortname"), section, *input.Highlight, viewer)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CourseHandler) SetSectionVisibility(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	section, ok := sectionParam(c)
	if !ok {
		return
	}
	var input visibilityRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.SetSectionVisibility(c.Request.Context(), c.Param("shortname"), section, *input.Visible, viewer)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func sectionParam(c *gin.Context) (int, bool) {
	section, err := strconv.Atoi(c.Param("section"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "section must be an integer"})
		return 0, false
	}
	return section, true
}
