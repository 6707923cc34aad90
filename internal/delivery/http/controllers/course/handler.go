package course

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/delivery/http/controllers/middleware"
	"github.com/zenny/moodle-theme-snap/internal/models"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

type CourseService interface {
	CourseByShortname(ctx context.Context, shortname string) (*models.Course, error)
	CardByShortname(ctx context.Context, shortname string, viewer models.Viewer) (*models.CourseCard, error)
	SearchCards(ctx context.Context, query string, viewer models.Viewer, limit int) ([]models.CourseCard, error)
	Favorited(ctx context.Context, shortname string, userID uuid.UUID) (bool, error)
	SetFavorite(ctx context.Context, shortname string, favorite bool, userID uuid.UUID) (bool, error)
	Favorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	MyCoursesSplitByFavorites(ctx context.Context, userID uuid.UUID) ([]models.Course, []models.Course, error)
	CourseTOC(ctx context.Context, shortname string, viewer models.Viewer) (*models.CourseTOC, error)
	CourseTOCChapters(ctx context.Context, shortname string, viewer models.Viewer) (*models.TOCChapters, error)
	HighlightSection(ctx context.Context, shortname string, section int, highlight bool, viewer models.Viewer) (*models.SectionActionResult, error)
	SetSectionVisibility(ctx context.Context, shortname string, section int, visible bool, viewer models.Viewer) (*models.SectionActionResult, error)
	UnavailableElements(ctx context.Context, shortname string, viewer models.Viewer) (*models.AvailabilitySnapshot, error)
	CourseCompletion(ctx context.Context, shortname string, viewer models.Viewer, prevSections []int, prevModules []uuid.UUID) (*models.CompletionResult, error)
}

type CourseHandler struct {
	log     logger.Log
	service CourseService
}

func NewCourseHandler(log logger.Log, s CourseService) *CourseHandler {
	return &CourseHandler{
		log:     log,
		service: s,
	}
}

func (h *CourseHandler) viewer(c *gin.Context) (models.Viewer, bool) {
	viewer, ok := middleware.ViewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
	}
	return viewer, ok
}

// fail maps service errors onto status codes. Unexpected errors are recorded
// on the context for the logging middleware and hidden from the client.
func (h *CourseHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app_errors.ErrCourseNotFound), errors.Is(err, app_errors.ErrSectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
