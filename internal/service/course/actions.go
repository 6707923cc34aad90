package course

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

// HighlightSection marks section as the course's current section, or clears
// the mark when highlight is false. The returned action model describes the
// link that undoes the new state.
func (s *CourseService) HighlightSection(ctx context.Context, shortname string, section int, highlight bool, viewer models.Viewer) (*models.SectionActionResult, error) {
	course, viewer, err := s.editableSection(ctx, shortname, section, viewer)
	if err != nil {
		return nil, err
	}

	switch {
	case highlight && course.Marker != section:
		err = s.mutator.SetMarker(ctx, course.ID, section)
	case !highlight && course.Marker == section:
		err = s.mutator.SetMarker(ctx, course.ID, 0)
	}
	if err != nil {
		s.log.ErrorErr("HighlightSection: failed to set marker", err, "course", shortname, "section", section)
		return nil, err
	}

	course, err = s.courses.CourseByID(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	toc, err := s.courseTOC(ctx, course, viewer)
	if err != nil {
		return nil, err
	}
	return &models.SectionActionResult{
		ActionModel: s.highlightAction(course, section),
		TOC:         toc,
	}, nil
}

// SetSectionVisibility shows or hides a section.
func (s *CourseService) SetSectionVisibility(ctx context.Context, shortname string, section int, visible bool, viewer models.Viewer) (*models.SectionActionResult, error) {
	course, viewer, err := s.editableSection(ctx, shortname, section, viewer)
	if err != nil {
		return nil, err
	}

	// Written unconditionally: the cached structure can lag behind the host rows.
	if err := s.mutator.SetSectionVisible(ctx, course.ID, section, visible); err != nil {
		s.log.ErrorErr("SetSectionVisibility: failed to update section", err, "course", shortname, "section", section)
		return nil, err
	}
	if err := s.structure.Invalidate(ctx, course.ID); err != nil {
		s.log.ErrorErr("SetSectionVisibility: failed to invalidate structure cache", err, "course", shortname)
	}

	structure, err := s.structure.CourseStructure(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	updated, ok := structure.Section(section)
	if !ok {
		return nil, sectionNotFound(shortname, section)
	}

	toc, err := s.courseTOC(ctx, course, viewer)
	if err != nil {
		return nil, err
	}
	return &models.SectionActionResult{
		ActionModel: s.visibilityAction(course, updated),
		TOC:         toc,
	}, nil
}

func (s *CourseService) editableSection(ctx context.Context, shortname string, section int, viewer models.Viewer) (*models.Course, models.Viewer, error) {
	course, err := s.CourseByShortname(ctx, shortname)
	if err != nil {
		return nil, viewer, err
	}
	viewer, err = s.courseViewer(ctx, course, viewer)
	if err != nil {
		return nil, viewer, err
	}
	if !viewer.CanEdit() {
		return nil, viewer, fmt.Errorf("toggle section of %q: %w", shortname, app_errors.ErrForbidden)
	}
	if section == 0 {
		return nil, viewer, fmt.Errorf("section 0 of %q cannot be toggled: %w", shortname, app_errors.ErrInvalidState)
	}
	if section < 0 || section > course.NumSections {
		return nil, viewer, sectionNotFound(shortname, section)
	}

	structure, err := s.structure.CourseStructure(ctx, course.ID)
	if err != nil {
		return nil, viewer, err
	}
	if _, ok := structure.Section(section); !ok {
		return nil, viewer, sectionNotFound(shortname, section)
	}
	return course, viewer, nil
}

func sectionNotFound(shortname string, section int) error {
	return fmt.Errorf("section %d of %q: %w: %w", section, shortname, app_errors.ErrSectionNotFound, app_errors.ErrInvalidState)
}

func (s *CourseService) highlightAction(course *models.Course, section int) models.SectionActionModel {
	term := s.formats.Lookup(course.Format).SectionTerm
	n := strconv.Itoa(section)

	if course.Marker == section {
		return models.SectionActionModel{
			Kind:  models.ActionHighlight,
			Class: "snap-highlight snap-marked",
			Title: "This " + term + " is highlighted as the current " + term,
			URL:   s.courseURL(course.ID, url.Values{"marker": {"0"}}),
		}
	}
	return models.SectionActionModel{
		Kind:  models.ActionHighlight,
		Class: "snap-highlight snap-marker",
		Title: "Highlight this " + term + " as the current " + term,
		URL:   s.courseURL(course.ID, url.Values{"marker": {n}}),
	}
}

func (s *CourseService) visibilityAction(course *models.Course, sec models.Section) models.SectionActionModel {
	term := s.formats.Lookup(course.Format).SectionTerm
	n := strconv.Itoa(sec.Number)

	if !sec.Visible {
		return models.SectionActionModel{
			Kind:  models.ActionVisibility,
			Class: "snap-visibility snap-show",
			Title: "Show " + term,
			URL:   s.courseURL(course.ID, url.Values{"show": {n}}),
		}
	}
	return models.SectionActionModel{
		Kind:  models.ActionVisibility,
		Class: "snap-visibility snap-hide",
		Title: "Hide " + term,
		URL:   s.courseURL(course.ID, url.Values{"hide": {n}}),
	}
}
