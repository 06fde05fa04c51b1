package models

import (
	"time"
)

type ProgressStatus string

const (
	ProgressPending   ProgressStatus = "pendiente"
	ProgressCompleted ProgressStatus = "completado"
)

// StudentQuizProgress records one student's completion of one quiz. The
// (user_id, quiz_id) unique index is what makes Submit an insert-if-absent:
// a second completion attempt surfaces as a duplicate-key conflict instead
// of a silent overwrite.
type StudentQuizProgress struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	UserID   uint           `json:"user" gorm:"not null;uniqueIndex:idx_progress_user_quiz"`
	QuizID   uint           `json:"quiz" gorm:"not null;uniqueIndex:idx_progress_user_quiz"`
	CourseID uint           `json:"course" gorm:"not null;index"`
	Status   ProgressStatus `json:"status" gorm:"not null;default:pendiente;size:20"`

	// Score is client-computed on a 0-10 scale; the range is deliberately
	// not enforced here (see the service DTOs).
	Score      *float64   `json:"score,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (StudentQuizProgress) TableName() string {
	return "student_quiz_progress"
}
