package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/zenny/moodle-theme-snap/internal/models"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

type staticCourses struct {
	courses []models.Course
	err     error
}

func (s staticCourses) AllCourses(context.Context) ([]models.Course, error) {
	return s.courses, s.err
}

type recordingIndex struct {
	indexed []models.Course
}

func (r *recordingIndex) IndexAll(_ context.Context, courses []models.Course) error {
	r.indexed = append(r.indexed, courses...)
	return nil
}

func TestReindexCourses(t *testing.T) {
	courses := []models.Course{{ID: uuid.New(), Shortname: "a"}, {ID: uuid.New(), Shortname: "b"}}
	index := &recordingIndex{}

	reindexCourses(context.Background(), logger.NewDiscard(), staticCourses{courses: courses}, index)
	assert.Equal(t, courses, index.indexed)
}

func TestReindexCourses_ListFailure(t *testing.T) {
	index := &recordingIndex{}

	reindexCourses(context.Background(), logger.NewDiscard(), staticCourses{err: assert.AnError}, index)
	assert.Empty(t, index.indexed)
}
