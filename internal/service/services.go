package service

import (
	"github.com/zenny/moodle-theme-snap/internal/service/auth"
	"github.com/zenny/moodle-theme-snap/internal/service/course"
)

type Collection struct {
	*auth.AuthService
	*course.CourseService
}
