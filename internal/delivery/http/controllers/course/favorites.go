package course

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *CourseHandler) Favorited(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	favorited, err := h.service.Favorited(c.Request.Context(), c.Param("shortname"), viewer.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

func (h *CourseHandler) Favorite(c *gin.Context) {
	h.setFavorite(c, true)
}

func (h *CourseHandler) Unfavorite(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *CourseHandler) setFavorite(c *gin.Context, favorite bool) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	success, err := h.service.SetFavorite(c.Request.Context(), c.Param("shortname"), favorite, viewer.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": success, "favorited": favorite})
}

func (h *CourseHandler) Favorites(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	favorites, err := h.service.Favorites(c.Request.Context(), viewer.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
