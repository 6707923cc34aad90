package course

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

// UnavailableElements reports the sections and modules of the course the
// viewer cannot reach yet because of availability conditions.
func (s *CourseService) UnavailableElements(ctx context.Context, shortname string, viewer models.Viewer) (*models.AvailabilitySnapshot, error) {
	course, err := s.CourseByShortname(ctx, shortname)
	if err != nil {
		return nil, err
	}
	structure, err := s.structure.CourseStructure(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	return s.availability.UnavailableElements(ctx, structure, viewer.UserID)
}

// CourseCompletion compares an earlier availability snapshot with the
// current one and renders every section and module that has become
// available since.
func (s *CourseService) CourseCompletion(ctx context.Context, shortname string, viewer models.Viewer, prevSections []int, prevModules []uuid.UUID) (*models.CompletionResult, error) {
	course, err := s.CourseByShortname(ctx, shortname)
	if err != nil {
		return nil, err
	}
	viewer, err = s.courseViewer(ctx, course, viewer)
	if err != nil {
		return nil, err
	}
	structure, err := s.structure.CourseStructure(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	current, err := s.availability.UnavailableElements(ctx, structure, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("course completion %q: %w", shortname, err)
	}

	stillSections := make(map[int]bool, len(current.UnavailableSections))
	for _, n := range current.UnavailableSections {
		stillSections[n] = true
	}
	stillModules := make(map[uuid.UUID]bool, len(current.UnavailableModules))
	for _, id := range current.UnavailableModules {
		stillModules[id] = true
	}

	result := &models.CompletionResult{
		NewlyAvailableSectionHTML: make(map[int]string),
		NewlyAvailableModuleHTML:  make(map[uuid.UUID]string),
	}

	for _, n := range prevSections {
		if stillSections[n] || n > course.NumSections {
			continue
		}
		sec, ok := structure.Section(n)
		if !ok || !viewerSeesSection(sec, viewer) {
			continue
		}
		html, err := s.renderSection(course, structure, sec, stillModules, viewer)
		if err != nil {
			return nil, err
		}
		result.NewlyAvailableSectionHTML[n] = html
	}

	for _, id := range prevModules {
		if stillModules[id] {
			continue
		}
		m, ok := structure.Module(id)
		if !ok || m.Section > course.NumSections || (!m.Visible && !viewer.CanEdit()) {
			continue
		}
		if sec, ok := structure.Section(m.Section); !ok || !viewerSeesSection(sec, viewer) {
			continue
		}
		html, err := s.renderModule(m)
		if err != nil {
			return nil, err
		}
		result.NewlyAvailableModuleHTML[id] = html
	}

	result.TOC, err = s.courseTOC(ctx, course, viewer)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// viewerSeesSection reports whether sec may be shown to viewer at all. Hidden
// sections are never reported as conditionally unavailable, so they have to
// be filtered before anything is rendered.
func viewerSeesSection(sec models.Section, viewer models.Viewer) bool {
	return sec.Visible || viewer.CanEdit()
}
