package course

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type completionRequest struct {
	UnavailableSections []int       `json:"unavailable_sections"`
	UnavailableModules  []uuid.UUID `json:"unavailable_modules"`
}

func (h *CourseHandler) Unavailable(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	snapshot, err := h.service.UnavailableElements(c.Request.Context(), c.Param("shortname"), viewer)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *CourseHandler) Completion(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	var input completionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.CourseCompletion(c.Request.Context(), c.Param("shortname"), viewer, input.UnavailableSections, input.UnavailableModules)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
