package course

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/lms/availability"
	"github.com/zenny/moodle-theme-snap/internal/lms/format"
	"github.com/zenny/moodle-theme-snap/internal/models"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

// memoryLMS stands in for the host: courses, structure, favorites,
// enrolments and completion state, all in memory.
type memoryLMS struct {
	courses     map[uuid.UUID]*models.Course
	structures  map[uuid.UUID]*models.CourseStructure
	favorites   []models.Favorite
	enrolments  map[uuid.UUID][]uuid.UUID
	contacts    map[uuid.UUID][]models.Contact
	courseRoles map[uuid.UUID]map[uuid.UUID][]string
	completion  map[uuid.UUID]map[uuid.UUID]int
	clock       time.Time
	invalidated int
	markerCalls int
}

func newMemoryLMS() *memoryLMS {
	return &memoryLMS{
		courses:     make(map[uuid.UUID]*models.Course),
		structures:  make(map[uuid.UUID]*models.CourseStructure),
		enrolments:  make(map[uuid.UUID][]uuid.UUID),
		contacts:    make(map[uuid.UUID][]models.Contact),
		courseRoles: make(map[uuid.UUID]map[uuid.UUID][]string),
		completion:  make(map[uuid.UUID]map[uuid.UUID]int),
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryLMS) createCourse(shortname, courseFormat string, numSections int) *models.Course {
	c := &models.Course{
		ID:          uuid.New(),
		Shortname:   shortname,
		Fullname:    "Course " + shortname,
		Format:      courseFormat,
		NumSections: numSections,
		Visible:     true,
	}
	m.courses[c.ID] = c

	structure := &models.CourseStructure{CourseID: c.ID}
	for n := 0; n <= numSections; n++ {
		structure.Sections = append(structure.Sections, models.Section{
			ID:       uuid.New(),
			CourseID: c.ID,
			Number:   n,
			Visible:  true,
		})
	}
	m.structures[c.ID] = structure
	return c
}

func (m *memoryLMS) addModule(course *models.Course, section int, name string, completion int, rule string) models.Module {
	s := m.structures[course.ID]
	mod := models.Module{
		ID:           uuid.New(),
		CourseID:     course.ID,
		Section:      section,
		Position:     len(s.SectionModules(section)),
		ModName:      "page",
		Name:         name,
		Visible:      true,
		Completion:   completion,
		Availability: rule,
	}
	s.Modules = append(s.Modules, mod)
	return mod
}

func (m *memoryLMS) setSectionRule(course *models.Course, section int, rule string) {
	s := m.structures[course.ID]
	for i := range s.Sections {
		if s.Sections[i].Number == section {
			s.Sections[i].Availability = rule
		}
	}
}

func (m *memoryLMS) hideSection(course *models.Course, section int) {
	s := m.structures[course.ID]
	for i := range s.Sections {
		if s.Sections[i].Number == section {
			s.Sections[i].Visible = false
		}
	}
}

func (m *memoryLMS) hideModule(course *models.Course, id uuid.UUID) {
	s := m.structures[course.ID]
	for i := range s.Modules {
		if s.Modules[i].ID == id {
			s.Modules[i].Visible = false
		}
	}
}

func (m *memoryLMS) sectionVisible(course *models.Course, section int) bool {
	sec, _ := m.structures[course.ID].Section(section)
	return sec.Visible
}

func (m *memoryLMS) enrolAs(userID uuid.UUID, course *models.Course, role string) {
	m.enrol(userID, course)
	if m.courseRoles[course.ID] == nil {
		m.courseRoles[course.ID] = make(map[uuid.UUID][]string)
	}
	m.courseRoles[course.ID][userID] = append(m.courseRoles[course.ID][userID], role)
}

func (m *memoryLMS) complete(userID, moduleID uuid.UUID) {
	if m.completion[userID] == nil {
		m.completion[userID] = make(map[uuid.UUID]int)
	}
	m.completion[userID][moduleID] = models.CompletionComplete
}

func (m *memoryLMS) enrol(userID uuid.UUID, courses ...*models.Course) {
	for _, c := range courses {
		m.enrolments[userID] = append(m.enrolments[userID], c.ID)
	}
}

func (m *memoryLMS) CourseByShortname(_ context.Context, shortname string) (*models.Course, error) {
	for _, c := range m.courses {
		if c.Shortname == shortname {
			cp := *c
			return &cp, nil
		}
	}
	return nil, app_errors.ErrCourseNotFound
}

func (m *memoryLMS) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memoryLMS) CourseStructure(_ context.Context, courseID uuid.UUID) (*models.CourseStructure, error) {
	s, ok := m.structures[courseID]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return &models.CourseStructure{
		CourseID: s.CourseID,
		Sections: slices.Clone(s.Sections),
		Modules:  slices.Clone(s.Modules),
	}, nil
}

func (m *memoryLMS) Invalidate(context.Context, uuid.UUID) error {
	m.invalidated++
	return nil
}

func (m *memoryLMS) SetSectionVisible(_ context.Context, courseID uuid.UUID, section int, visible bool) error {
	s := m.structures[courseID]
	for i := range s.Sections {
		if s.Sections[i].Number == section {
			s.Sections[i].Visible = visible
			return nil
		}
	}
	return app_errors.ErrSectionNotFound
}

func (m *memoryLMS) SetMarker(_ context.Context, courseID uuid.UUID, section int) error {
	m.markerCalls++
	m.courses[courseID].Marker = section
	return nil
}

func (m *memoryLMS) AddFavorite(_ context.Context, userID, courseID uuid.UUID) error {
	for _, f := range m.favorites {
		if f.UserID == userID && f.CourseID == courseID {
			return nil
		}
	}
	m.clock = m.clock.Add(time.Second)
	m.favorites = append(m.favorites, models.Favorite{UserID: userID, CourseID: courseID, CreatedAt: m.clock})
	return nil
}

func (m *memoryLMS) RemoveFavorite(_ context.Context, userID, courseID uuid.UUID) error {
	m.favorites = slices.DeleteFunc(m.favorites, func(f models.Favorite) bool {
		return f.UserID == userID && f.CourseID == courseID
	})
	return nil
}

func (m *memoryLMS) IsFavorite(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
	for _, f := range m.favorites {
		if f.UserID == userID && f.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryLMS) FavoritesByUser(_ context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var out []models.Favorite
	for _, f := range m.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryLMS) DeleteUserFavorites(_ context.Context, userID uuid.UUID) (int64, error) {
	before := len(m.favorites)
	m.favorites = slices.DeleteFunc(m.favorites, func(f models.Favorite) bool { return f.UserID == userID })
	return int64(before - len(m.favorites)), nil
}

func (m *memoryLMS) EnrolledCourses(_ context.Context, userID uuid.UUID) ([]models.Course, error) {
	var out []models.Course
	for _, id := range m.enrolments[userID] {
		out = append(out, *m.courses[id])
	}
	return out, nil
}

func (m *memoryLMS) CourseContacts(_ context.Context, courseID uuid.UUID, roles ...string) ([]models.Contact, error) {
	var out []models.Contact
	for _, c := range m.contacts[courseID] {
		if slices.Contains(roles, c.Role) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryLMS) CourseRoles(_ context.Context, courseID, userID uuid.UUID) ([]string, error) {
	return slices.Clone(m.courseRoles[courseID][userID]), nil
}

func (m *memoryLMS) CompletionStates(_ context.Context, _ uuid.UUID, userID uuid.UUID) (map[uuid.UUID]int, error) {
	states := make(map[uuid.UUID]int)
	for k, v := range m.completion[userID] {
		states[k] = v
	}
	return states, nil
}

type fakeImages struct{}

func (fakeImages) GetImageURL(_ context.Context, objectKey string) (string, error) {
	return "https://cdn.example.org/" + objectKey, nil
}

type fakeSearch struct {
	ids []uuid.UUID
}

func (f *fakeSearch) Search(_ context.Context, _ string, size int) ([]uuid.UUID, error) {
	if len(f.ids) > size {
		return f.ids[:size], nil
	}
	return f.ids, nil
}

const testWWWRoot = "https://lms.example.org/"

func newTestService(lms *memoryLMS, search *fakeSearch) *CourseService {
	d := testDeps(lms)
	if search != nil {
		d.Search = search
	}
	return NewCourseService(logger.NewDiscard(), Options{WWWRoot: testWWWRoot}, d)
}

func testDeps(lms *memoryLMS) Deps {
	log := logger.NewDiscard()
	return Deps{
		Courses:      lms,
		Structure:    lms,
		Mutator:      lms,
		Favorites:    lms,
		Enrolments:   lms,
		Completion:   lms,
		Availability: availability.NewEngine(log, lms),
		Formats:      format.NewRegistry(),
		Images:       fakeImages{},
	}
}

func student() models.Viewer {
	return models.Viewer{UserID: uuid.New(), Roles: []string{models.StudentRole}}
}

func admin() models.Viewer {
	return models.Viewer{UserID: uuid.New(), Roles: []string{models.AdminRole}}
}

func shortnames(courses []models.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Shortname)
	}
	return out
}

func seedCourses(lms *memoryLMS, n int) []*models.Course {
	courses := make([]*models.Course, 0, n)
	for i := 0; i < n; i++ {
		courses = append(courses, lms.createCourse(fmt.Sprintf("c%d", i), models.FormatTopics, 1))
	}
	return courses
}
