package course

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

func TestCourseService_CardByShortname(t *testing.T) {
	ctx := context.Background()
	lms := newMemoryLMS()
	courses := seedCourses(lms, 2)
	courses[0].ImageObjectKey = "courses/c0/image.png"
	teacher := models.Contact{UserID: uuid.New(), Fullname: "Ada Teacher", Role: models.EditingTeacherRole}
	lms.contacts[courses[0].ID] = []models.Contact{
		teacher,
		{UserID: uuid.New(), Fullname: "Sam Student", Role: models.StudentRole},
	}
	svc := newTestService(lms, nil)
	viewer := student()

	_, err := svc.SetFavorite(ctx, "c0", true, viewer.UserID)
	require.NoError(t, err)

	card, err := svc.CardByShortname(ctx, "c0", viewer)
	require.NoError(t, err)

	assert.Equal(t, courses[0].ID, card.CourseID)
	assert.Equal(t, "c0", card.Shortname)
	assert.True(t, card.Favorited)
	assert.True(t, card.Published)
	assert.Equal(t, "https://cdn.example.org/courses/c0/image.png", card.ImageURL)
	assert.Equal(t, "https://lms.example.org/course/view?id="+courses[0].ID.String(), card.URL)
	assert.Equal(t, []models.Contact{teacher}, card.Teachers)

	card, err = svc.CardByShortname(ctx, "c1", viewer)
	require.NoError(t, err)
	assert.False(t, card.Favorited)
	assert.Empty(t, card.ImageURL)
	assert.NotNil(t, card.Teachers)

	_, err = svc.CardByShortname(ctx, "missing", viewer)
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestCourseService_SearchCards(t *testing.T) {
	ctx := context.Background()
	lms := newMemoryLMS()
	courses := seedCourses(lms, 3)
	courses[1].Visible = false
	search := &fakeSearch{ids: []uuid.UUID{courses[2].ID, courses[1].ID, uuid.New(), courses[0].ID}}
	svc := newTestService(lms, search)

	cards, err := svc.SearchCards(ctx, "course", student(), 10)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "c2", cards[0].Shortname)
	assert.Equal(t, "c0", cards[1].Shortname)

	cards, err = svc.SearchCards(ctx, "course", admin(), 10)
	require.NoError(t, err)
	assert.Len(t, cards, 3)
}

func TestCourseService_SearchCards_NoIndex(t *testing.T) {
	svc := newTestService(newMemoryLMS(), nil)
	cards, err := svc.SearchCards(context.Background(), "x", student(), 0)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
