package course

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/zenny/moodle-theme-snap/internal/lms/format"
	"github.com/zenny/moodle-theme-snap/internal/models"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

const defaultListLargeThreshold = 10

type courseRepo interface {
	CourseByShortname(ctx context.Context, shortname string) (*models.Course, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type structureRepo interface {
	CourseStructure(ctx context.Context, courseID uuid.UUID) (*models.CourseStructure, error)
	Invalidate(ctx context.Context, courseID uuid.UUID) error
}

type structureMutator interface {
	SetSectionVisible(ctx context.Context, courseID uuid.UUID, section int, visible bool) error
	SetMarker(ctx context.Context, courseID uuid.UUID, section int) error
}

type favoriteRepo interface {
	AddFavorite(ctx context.Context, userID, courseID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, courseID uuid.UUID) error
	IsFavorite(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	FavoritesByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	DeleteUserFavorites(ctx context.Context, userID uuid.UUID) (int64, error)
}

type enrolmentRepo interface {
	EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]models.Course, error)
	CourseContacts(ctx context.Context, courseID uuid.UUID, roles ...string) ([]models.Contact, error)
	CourseRoles(ctx context.Context, courseID, userID uuid.UUID) ([]string, error)
}

type completionRepo interface {
	CompletionStates(ctx context.Context, courseID, userID uuid.UUID) (map[uuid.UUID]int, error)
}

type availabilityEngine interface {
	UnavailableElements(ctx context.Context, structure *models.CourseStructure, userID uuid.UUID) (*models.AvailabilitySnapshot, error)
}

type formatProvider interface {
	Lookup(name string) format.Format
}

type imageRepo interface {
	GetImageURL(ctx context.Context, objectKey string) (string, error)
}

type searchRepo interface {
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
}

type Options struct {
	WWWRoot            string
	ListLargeThreshold int
}

// Deps are the host adapters the service runs on. Images and Search may be
// nil when object storage or the search index is not configured.
type Deps struct {
	Courses      courseRepo
	Structure    structureRepo
	Mutator      structureMutator
	Favorites    favoriteRepo
	Enrolments   enrolmentRepo
	Completion   completionRepo
	Availability availabilityEngine
	Formats      formatProvider
	Images       imageRepo
	Search       searchRepo
}

type CourseService struct {
	log          logger.Log
	opts         Options
	courses      courseRepo
	structure    structureRepo
	mutator      structureMutator
	favorites    favoriteRepo
	enrolments   enrolmentRepo
	completion   completionRepo
	availability availabilityEngine
	formats      formatProvider
	images       imageRepo
	search       searchRepo
}

func NewCourseService(log logger.Log, opts Options, d Deps) *CourseService {
	if opts.ListLargeThreshold <= 0 {
		opts.ListLargeThreshold = defaultListLargeThreshold
	}
	opts.WWWRoot = strings.TrimRight(opts.WWWRoot, "/")

	return &CourseService{
		log:          log,
		opts:         opts,
		courses:      d.Courses,
		structure:    d.Structure,
		mutator:      d.Mutator,
		favorites:    d.Favorites,
		enrolments:   d.Enrolments,
		completion:   d.Completion,
		availability: d.Availability,
		formats:      d.Formats,
		images:       d.Images,
		search:       d.Search,
	}
}

// CourseByShortname resolves a course by its shortname. Unknown shortnames
// fail with app_errors.ErrCourseNotFound.
func (s *CourseService) CourseByShortname(ctx context.Context, shortname string) (*models.Course, error) {
	course, err := s.courses.CourseByShortname(ctx, shortname)
	if err != nil {
		return nil, fmt.Errorf("course %q: %w", shortname, err)
	}
	return course, nil
}

// courseViewer narrows viewer to the roles it holds in course.
func (s *CourseService) courseViewer(ctx context.Context, course *models.Course, viewer models.Viewer) (models.Viewer, error) {
	roles, err := s.enrolments.CourseRoles(ctx, course.ID, viewer.UserID)
	if err != nil {
		return models.Viewer{}, fmt.Errorf("roles in %q: %w", course.Shortname, err)
	}
	return viewer.InCourse(roles), nil
}

func (s *CourseService) courseURL(courseID uuid.UUID, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("id", courseID.String())
	return s.opts.WWWRoot + "/course/view?" + params.Encode()
}

func (s *CourseService) moduleURL(m models.Module) string {
	return fmt.Sprintf("%s/mod/%s/view?id=%s", s.opts.WWWRoot, url.PathEscape(m.ModName), m.ID)
}
