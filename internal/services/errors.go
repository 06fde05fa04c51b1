package services

import (
	"errors"
	"fmt"
)

// Sentinel errors handlers map to HTTP statuses.
var (
	ErrQuizNotFound   = errors.New("quiz not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrUserNotFound   = errors.New("user not found")

	ErrCourseNotActive   = errors.New("course is not active")
	ErrAlreadyEnrolled   = errors.New("student already enrolled in course")
	ErrNotEnrolled       = errors.New("student not enrolled in course")
	ErrCourseHasStudents = errors.New("course still has enrolled students")

	ErrQuizNotPublished     = errors.New("quiz is not published")
	ErrQuizAlreadyCompleted = errors.New("quiz already completed by student")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBlocked        = errors.New("user account is blocked")

	// AI generation failures. No quiz row exists when any of these surface.
	ErrGenerationEmpty     = errors.New("generation produced no content")
	ErrGenerationMalformed = errors.New("generation produced unparseable content")
	ErrGenerationNoQuests  = errors.New("generation produced no questions")
	ErrGenerationNoSlides  = errors.New("generation produced no sections")
)

// PermissionError reports an authorization failure with the action attempted.
type PermissionError struct {
	UserID   uint
	Action   string
	Resource string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d not allowed to %s %s", e.UserID, e.Action, e.Resource)
}

func NewPermissionError(userID uint, action, resource string) *PermissionError {
	return &PermissionError{UserID: userID, Action: action, Resource: resource}
}
