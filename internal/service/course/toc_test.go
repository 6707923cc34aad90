package course

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

func TestCourseService_CourseTOC_ListLarge(t *testing.T) {
	ctx := context.Background()
	lms := newMemoryLMS()
	large := lms.createCourse("testlistlarge", models.FormatTopics, 10)
	page := lms.addModule(large, 0, "test page", models.CompletionTrackingNone, "")
	lms.createCourse("testlistsmall", models.FormatTopics, 9)
	svc := newTestService(lms, nil)

	toc, err := svc.CourseTOC(ctx, "testlistlarge", student())
	require.NoError(t, err)

	assert.True(t, toc.FormatSupportsTOC)
	assert.Equal(t, large.ID, toc.CourseID)
	assert.Equal(t, models.ListLargeClass, toc.Chapters.ListLarge)
	assert.Len(t, toc.Chapters.Chapters, 11)
	require.Len(t, toc.Modules, 1)
	assert.Equal(t, "#section-0&module-"+page.ID.String(), toc.Modules[0].URL)
	assert.Equal(t, "test page", toc.Modules[0].Name)

	toc, err = svc.CourseTOC(ctx, "testlistsmall", student())
	require.NoError(t, err)
	assert.NotEqual(t, models.ListLargeClass, toc.Chapters.ListLarge)
	assert.Len(t, toc.Chapters.Chapters, 10)
}

func TestCourseService_CourseTOC_FormatWithoutTOC(t *testing.T) {
	lms := newMemoryLMS()
	lms.createCourse("socialcourse", models.FormatSocial, 2)
	svc := newTestService(lms, nil)

	toc, err := svc.CourseTOC(context.Background(), "socialcourse", student())
	require.NoError(t, err)
	assert.False(t, toc.FormatSupportsTOC)
	assert.Empty(t, toc.Chapters.Chapters)
	assert.Empty(t, toc.Modules)
}

func TestCourseService_CourseTOC_UnknownCourse(t *testing.T) {
	svc := newTestService(newMemoryLMS(), nil)
	_, err := svc.CourseTOC(context.Background(), "nope", student())
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestCourseService_CourseTOCChapters(t *testing.T) {
	lms := newMemoryLMS()
	lms.createCourse("testcourse", models.FormatTopics, 2)
	svc := newTestService(lms, nil)

	chapters, err := svc.CourseTOCChapters(context.Background(), "testcourse", student())
	require.NoError(t, err)
	require.Len(t, chapters.Chapters, 3)

	assert.Equal(t, "General", chapters.Chapters[0].Title)
	assert.Equal(t, "#section-0", chapters.Chapters[0].URL)
	assert.Equal(t, "Topic 2", chapters.Chapters[2].Title)
	assert.Equal(t, "chapter", chapters.Chapters[1].Classes)
}

func TestCourseService_CourseTOC_HiddenContent(t *testing.T) {
	ctx := context.Background()
	lms := newMemoryLMS()
	c := lms.createCourse("hidden", models.FormatWeeks, 3)
	lms.structures[c.ID].Sections[2].Visible = false
	lms.structures[c.ID].Sections[1].Name = "Orientation"
	visible := lms.addModule(c, 1, "visible page", models.CompletionTrackingNone, "")
	hidden := lms.addModule(c, 1, "hidden page", models.CompletionTrackingNone, "")
	lms.structures[c.ID].Modules[1].Visible = false
	svc := newTestService(lms, nil)

	toc, err := svc.CourseTOC(ctx, "hidden", student())
	require.NoError(t, err)
	require.Len(t, toc.Chapters.Chapters, 3)
	assert.Equal(t, "Orientation", toc.Chapters.Chapters[1].Title)
	assert.Equal(t, "Week 3", toc.Chapters.Chapters[2].Title)
	require.Len(t, toc.Modules, 1)
	assert.Equal(t, visible.ID, toc.Modules[0].ID)

	toc, err = svc.CourseTOC(ctx, "hidden", admin())
	require.NoError(t, err)
	require.Len(t, toc.Chapters.Chapters, 4)
	assert.True(t, toc.Chapters.Chapters[2].Hidden)
	assert.Equal(t, "chapter snap-draft", toc.Chapters.Chapters[2].Classes)
	require.Len(t, toc.Modules, 2)
	assert.Equal(t, hidden.ID, toc.Modules[1].ID)
}

func TestCourseService_CourseTOC_ProgressAndCurrent(t *testing.T) {
	ctx := context.Background()
	lms := newMemoryLMS()
	c := lms.createCourse("progress", models.FormatTopics, 2)
	c.Marker = 1
	done := lms.addModule(c, 1, "done", models.CompletionTrackingAutomatic, "")
	lms.addModule(c, 1, "todo", models.CompletionTrackingManual, "")
	lms.addModule(c, 1, "untracked", models.CompletionTrackingNone, "")
	svc := newTestService(lms, nil)
	viewer := student()
	lms.complete(viewer.UserID, done.ID)

	toc, err := svc.CourseTOC(ctx, "progress", viewer)
	require.NoError(t, err)

	ch := toc.Chapters.Chapters[1]
	assert.True(t, ch.Current)
	assert.Equal(t, models.TOCProgress{Complete: 1, Total: 2}, ch.Progress)
	assert.Equal(t, "chapter current", ch.Classes)
	assert.False(t, toc.Chapters.Chapters[0].Current)
}
