package app_errors

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")
var ErrCourseNotFound = errors.New("course not found")
var ErrSectionNotFound = errors.New("section not found")
var ErrInvalidState = errors.New("invalid state")
var ErrForbidden = errors.New("insufficient permissions")
var ErrImageNotFound = errors.New("image not found")
