package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestViewer_CanEdit(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  bool
	}{
		{"no roles", nil, false},
		{"student", []string{StudentRole}, false},
		{"non-editing teacher", []string{TeacherRole}, false},
		{"editing teacher", []string{StudentRole, EditingTeacherRole}, true},
		{"admin", []string{AdminRole}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Viewer{UserID: uuid.New(), Roles: tt.roles}.CanEdit())
		})
	}
}

func TestViewer_InCourse(t *testing.T) {
	userID := uuid.New()

	siteTeacher := Viewer{UserID: userID, Roles: []string{EditingTeacherRole}}
	assert.False(t, siteTeacher.InCourse(nil).CanEdit())
	assert.False(t, siteTeacher.InCourse([]string{StudentRole}).CanEdit())

	enrolled := Viewer{UserID: userID, Roles: []string{StudentRole}}.InCourse([]string{EditingTeacherRole})
	assert.True(t, enrolled.CanEdit())
	assert.Equal(t, userID, enrolled.UserID)
	assert.Equal(t, []string{EditingTeacherRole}, enrolled.Roles)

	admin := Viewer{UserID: userID, Roles: []string{AdminRole}}.InCourse([]string{StudentRole, StudentRole})
	assert.True(t, admin.CanEdit())
	assert.Equal(t, []string{AdminRole, StudentRole}, admin.Roles)

	assert.False(t, Viewer{UserID: userID}.InCourse([]string{AdminRole}).CanEdit())
}

func TestCourseStructure_Lookup(t *testing.T) {
	m1, m2 := uuid.New(), uuid.New()
	s := &CourseStructure{
		Sections: []Section{{Number: 0}, {Number: 1, Name: "Intro"}},
		Modules: []Module{
			{ID: m1, Section: 0, Position: 0},
			{ID: m2, Section: 1, Position: 0},
		},
	}

	sec, ok := s.Section(1)
	assert.True(t, ok)
	assert.Equal(t, "Intro", sec.Name)

	_, ok = s.Section(5)
	assert.False(t, ok)

	assert.Len(t, s.SectionModules(1), 1)
	assert.Empty(t, s.SectionModules(3))

	m, ok := s.Module(m2)
	assert.True(t, ok)
	assert.Equal(t, 1, m.Section)
}
