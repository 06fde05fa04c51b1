package events

import (
	"context"
	"time"
)

// Topic carries every domain event; consumers filter on Event.Type.
const Topic = "neurolearn.events"

// Event types published by this service.
const (
	TypeQuizPublished  = "quiz.published"
	TypeQuizGenerated  = "quiz.generated"
	TypeQuizCompleted  = "quiz.completed"
	TypeCourseEnrolled = "course.enrolled"
	TypeCourseLeft     = "course.left"
)

// Event is the envelope written to the broker.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Source     string      `json:"source"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

const Source = "neurolearn-api"

// QuizPublishedEvent announces a quiz going live with its join code.
type QuizPublishedEvent struct {
	QuizID     uint   `json:"quiz_id"`
	CourseID   *uint  `json:"course_id,omitempty"`
	AccessCode string `json:"access_code"`
}

// QuizGeneratedEvent announces an AI-seeded draft.
type QuizGeneratedEvent struct {
	QuizID        uint `json:"quiz_id"`
	CourseID      uint `json:"course_id"`
	QuestionCount int  `json:"question_count"`
}

// QuizCompletedEvent announces a student's scored completion.
type QuizCompletedEvent struct {
	QuizID    uint    `json:"quiz_id"`
	CourseID  uint    `json:"course_id"`
	StudentID uint    `json:"student_id"`
	Score     float64 `json:"score"`
}

// CourseEnrollmentEvent covers both joining and leaving a course.
type CourseEnrollmentEvent struct {
	CourseID     uint `json:"course_id"`
	StudentID    uint `json:"student_id"`
	StudentCount int  `json:"student_count"`
}

// EventPublisher is the outbound boundary for domain events. Publishing is
// best-effort: callers log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
	Close() error
}
