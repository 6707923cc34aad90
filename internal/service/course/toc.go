package course

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zenny/moodle-theme-snap/internal/lms/format"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

// CourseTOC builds the table of contents of a course for the viewer. Formats
// without TOC support get an empty TOC with FormatSupportsTOC unset.
func (s *CourseService) CourseTOC(ctx context.Context, shortname string, viewer models.Viewer) (*models.CourseTOC, error) {
	course, err := s.CourseByShortname(ctx, shortname)
	if err != nil {
		return nil, err
	}
	viewer, err = s.courseViewer(ctx, course, viewer)
	if err != nil {
		return nil, err
	}
	return s.courseTOC(ctx, course, viewer)
}

// CourseTOCChapters is CourseTOC without module detail.
func (s *CourseService) CourseTOCChapters(ctx context.Context, shortname string, viewer models.Viewer) (*models.TOCChapters, error) {
	toc, err := s.CourseTOC(ctx, shortname, viewer)
	if err != nil {
		return nil, err
	}
	return &toc.Chapters, nil
}

func (s *CourseService) courseTOC(ctx context.Context, course *models.Course, viewer models.Viewer) (*models.CourseTOC, error) {
	toc := &models.CourseTOC{
		CourseID: course.ID,
		Chapters: models.TOCChapters{Chapters: []models.TOCChapter{}},
		Modules:  []models.TOCModule{},
	}

	f := s.formats.Lookup(course.Format)
	if !f.SupportsTOC {
		return toc, nil
	}
	toc.FormatSupportsTOC = true

	structure, err := s.structure.CourseStructure(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("toc %q: %w", course.Shortname, err)
	}
	snapshot, err := s.availability.UnavailableElements(ctx, structure, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("toc %q: %w", course.Shortname, err)
	}
	states, err := s.completion.CompletionStates(ctx, course.ID, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("toc %q: %w", course.Shortname, err)
	}

	if course.NumSections >= s.opts.ListLargeThreshold {
		toc.Chapters.ListLarge = models.ListLargeClass
	}

	blockedSections := make(map[int]bool, len(snapshot.UnavailableSections))
	for _, n := range snapshot.UnavailableSections {
		blockedSections[n] = true
	}
	blockedModules := make(map[uuid.UUID]bool, len(snapshot.UnavailableModules))
	for _, id := range snapshot.UnavailableModules {
		blockedModules[id] = true
	}

	for _, sec := range structure.Sections {
		if sec.Number > course.NumSections {
			continue
		}
		if !viewerSeesSection(sec, viewer) {
			continue
		}

		chapter := models.TOCChapter{
			Number:    sec.Number,
			Title:     sectionTitle(sec, f),
			URL:       fmt.Sprintf("#section-%d", sec.Number),
			Hidden:    !sec.Visible,
			Current:   course.Marker > 0 && course.Marker == sec.Number,
			Available: !blockedSections[sec.Number],
		}

		for _, m := range structure.SectionModules(sec.Number) {
			if !viewer.CanEdit() && (!m.Visible || blockedModules[m.ID]) {
				continue
			}
			toc.Modules = append(toc.Modules, models.TOCModule{
				ID:      m.ID,
				Name:    m.Name,
				ModName: m.ModName,
				Section: sec.Number,
				URL:     fmt.Sprintf("#section-%d&module-%s", sec.Number, m.ID),
			})

			if m.Completion == models.CompletionTrackingNone || !m.Visible {
				continue
			}
			chapter.Progress.Total++
			if isComplete(states[m.ID]) {
				chapter.Progress.Complete++
			}
		}

		chapter.Classes = chapterClasses(chapter)
		toc.Chapters.Chapters = append(toc.Chapters.Chapters, chapter)
	}

	return toc, nil
}

func sectionTitle(sec models.Section, f format.Format) string {
	if sec.Name != "" {
		return sec.Name
	}
	if sec.Number == 0 {
		return "General"
	}
	term := f.SectionTerm
	if term != "" {
		term = strings.ToUpper(term[:1]) + term[1:]
	}
	return fmt.Sprintf("%s %d", term, sec.Number)
}

func chapterClasses(ch models.TOCChapter) string {
	classes := []string{"chapter"}
	if ch.Current {
		classes = append(classes, "current")
	}
	if ch.Hidden {
		classes = append(classes, "snap-draft")
	}
	if !ch.Available {
		classes = append(classes, "snap-conditional")
	}
	if ch.Progress.Total > 0 && ch.Progress.Complete == ch.Progress.Total {
		classes = append(classes, "snap-complete")
	}
	return strings.Join(classes, " ")
}

func isComplete(state int) bool {
	return state == models.CompletionComplete || state == models.CompletionCompletePass
}
