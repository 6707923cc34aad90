package course

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

func (h *CourseHandler) CourseByShortname(c *gin.Context) {
	course, err := h.service.CourseByShortname(c.Request.Context(), c.Param("shortname"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Card(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	card, err := h.service.CardByShortname(c.Request.Context(), c.Param("shortname"), viewer)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *CourseHandler) Search(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	q := strings.TrimSpace(c.Query("query"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	limit := defaultSearchLimit
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(v, maxSearchLimit)
	}

	cards, err := h.service.SearchCards(c.Request.Context(), q, viewer, limit)
	if err != nil {
		h.log.ErrorErr("Search failed", err, "query", q)
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": cards})
}

func (h *CourseHandler) MyCourses(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	favorites, others, err := h.service.MyCoursesSplitByFavorites(c.Request.Context(), viewer.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"courses":   others,
	})
}
