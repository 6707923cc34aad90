package models

import (
	"slices"

	"github.com/google/uuid"
)

const (
	StudentRole        = "student"
	TeacherRole        = "teacher"
	EditingTeacherRole = "editingteacher"
	AdminRole          = "admin"
)

type User struct {
	ID       uuid.UUID
	Username string
	Fullname string
	Email    string
	Roles    []string
}

// Viewer is the user on whose behalf a request is served. Roles hold site
// roles until the viewer is narrowed to a course with InCourse.
type Viewer struct {
	UserID uuid.UUID
	Roles  []string
}

// CanEdit reports whether the viewer may change course structure and see
// hidden sections and modules.
func (v Viewer) CanEdit() bool {
	return slices.Contains(v.Roles, AdminRole) || slices.Contains(v.Roles, EditingTeacherRole)
}

// InCourse returns the viewer as seen inside one course. Site admins keep
// their role everywhere; every other role comes from the course enrolment.
func (v Viewer) InCourse(courseRoles []string) Viewer {
	roles := make([]string, 0, len(courseRoles)+1)
	if slices.Contains(v.Roles, AdminRole) {
		roles = append(roles, AdminRole)
	}
	for _, r := range courseRoles {
		if r != AdminRole && !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	return Viewer{UserID: v.UserID, Roles: roles}
}
