package course

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *CourseHandler) TOC(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	toc, err := h.service.CourseTOC(c.Request.Context(), c.Param("shortname"), viewer)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toc)
}

func (h *CourseHandler) TOCChapters(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	chapters, err := h.service.CourseTOCChapters(c.Request.Context(), c.Param("shortname"), viewer)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chapters)
}
