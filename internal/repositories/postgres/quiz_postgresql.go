package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/cache"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
)

type QuizPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewQuizPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	if err := r.db.WithContext(ctx).Create(quiz).Error; err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

func (r *QuizPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	cacheKey := fmt.Sprintf("id:%d", id)

	var quiz models.Quiz
	err := r.cacheManager.Quiz.CacheOrExecute(ctx, cacheKey, &quiz, cache.QuizCacheConfig.TTL, func() (interface{}, error) {
		var q models.Quiz
		if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
			return nil, err
		}
		return &q, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get quiz %d: %w", id, err)
	}
	return &quiz, nil
}

// GetByAccessCode resolves a join code to its quiz. Codes are immutable once
// assigned, so lookups go through the code cache.
func (r *QuizPostgreSQL) GetByAccessCode(ctx context.Context, code string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.cacheManager.Code.CacheOrExecute(ctx, code, &quiz, cache.CodeCacheConfig.TTL, func() (interface{}, error) {
		var q models.Quiz
		if err := r.db.WithContext(ctx).Where("access_code = ?", code).First(&q).Error; err != nil {
			return nil, err
		}
		return &q, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get quiz by access code: %w", err)
	}
	return &quiz, nil
}

func (r *QuizPostgreSQL) List(ctx context.Context, filters repositories.QuizFilters) ([]models.Quiz, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Quiz{})

	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filters.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count quizzes: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var quizzes []models.Quiz
	if err := query.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, total, nil
}

func (r *QuizPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes for course %d: %w", courseID, err)
	}
	return quizzes, nil
}

func (r *QuizPostgreSQL) Update(ctx context.Context, quiz *models.Quiz) error {
	if err := r.db.WithContext(ctx).Save(quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("failed to update quiz %d: %w", quiz.ID, err)
	}
	cache.InvalidateQuizCache(ctx, r.cacheManager, quiz.ID, quiz.AccessCode)
	return nil
}

func (r *QuizPostgreSQL) Delete(ctx context.Context, id uint) error {
	// Load the row first: the join-code cache entry outlives the row
	// otherwise and keeps serving the deleted quiz until its TTL expires.
	var quiz models.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return fmt.Errorf("failed to load quiz %d for delete: %w", id, err)
	}

	result := r.db.WithContext(ctx).Delete(&models.Quiz{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete quiz %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateQuizCache(ctx, r.cacheManager, id, quiz.AccessCode)
	return nil
}
