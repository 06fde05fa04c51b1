package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
)

type ProgressPostgreSQL struct {
	db *gorm.DB
}

func NewProgressPostgreSQL(db *gorm.DB) repositories.ProgressRepository {
	return &ProgressPostgreSQL{db: db}
}

// CreateIfAbsent inserts the completion row. The (user_id, quiz_id) unique
// index turns a repeat submission into gorm.ErrDuplicatedKey, which callers
// map to a conflict.
func (r *ProgressPostgreSQL) CreateIfAbsent(ctx context.Context, progress *models.StudentQuizProgress) error {
	if err := r.db.WithContext(ctx).Create(progress).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("failed to record quiz completion: %w", err)
	}
	return nil
}

func (r *ProgressPostgreSQL) GetByUserAndQuiz(ctx context.Context, userID, quizID uint) (*models.StudentQuizProgress, error) {
	var progress models.StudentQuizProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &progress, nil
}

func (r *ProgressPostgreSQL) ListByUserAndCourse(ctx context.Context, userID, courseID uint) ([]models.StudentQuizProgress, error) {
	var rows []models.StudentQuizProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list progress for user %d in course %d: %w", userID, courseID, err)
	}
	return rows, nil
}

func (r *ProgressPostgreSQL) ListByQuiz(ctx context.Context, quizID uint) ([]models.StudentQuizProgress, error) {
	var rows []models.StudentQuizProgress
	err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("finished_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list progress for quiz %d: %w", quizID, err)
	}
	return rows, nil
}

// ListCourseResults joins completions with students and quizzes for the
// spreadsheet export.
func (r *ProgressPostgreSQL) ListCourseResults(ctx context.Context, courseID uint) ([]repositories.CourseResultRow, error) {
	var rows []repositories.CourseResultRow
	err := r.db.WithContext(ctx).
		Table("student_quiz_progress AS p").
		Select("u.name AS student_name, u.email AS student_email, q.title AS quiz_title, p.score, p.finished_at").
		Joins("JOIN users u ON u.id = p.user_id").
		Joins("JOIN quizzes q ON q.id = p.quiz_id").
		Where("p.course_id = ? AND p.status = ?", courseID, models.ProgressCompleted).
		Order("u.name ASC, p.finished_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list results for course %d: %w", courseID, err)
	}
	return rows, nil
}

func (r *ProgressPostgreSQL) DeleteByQuiz(ctx context.Context, quizID uint) error {
	err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Delete(&models.StudentQuizProgress{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete progress for quiz %d: %w", quizID, err)
	}
	return nil
}
