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

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Course, "list:*")
	return nil
}

func (r *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	cacheKey := fmt.Sprintf("id:%d", id)

	var course models.Course
	err := r.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var c models.Course
		if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
			return nil, err
		}
		return &c, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get course %d: %w", id, err)
	}
	return &course, nil
}

func (r *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]models.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, total, nil
}

func (r *CoursePostgreSQL) ListByIDs(ctx context.Context, ids []uint) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}

	var courses []models.Course
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses by ids: %w", err)
	}
	return courses, nil
}

func (r *CoursePostgreSQL) ListByTeacherName(ctx context.Context, teacherName string) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Where("teacher_name = ?", teacherName).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses for teacher: %w", err)
	}
	return courses, nil
}

func (r *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course %d: %w", course.ID, err)
	}
	cache.InvalidateCourseCache(ctx, r.cacheManager, course.ID)
	return nil
}

func (r *CoursePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete course %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateCourseCache(ctx, r.cacheManager, id)
	return nil
}

func (r *CoursePostgreSQL) AddStudent(ctx context.Context, courseID, studentID uint) error {
	enrollment := models.CourseStudent{CourseID: courseID, StudentID: studentID}
	if err := r.db.WithContext(ctx).Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("failed to enroll student %d in course %d: %w", studentID, courseID, err)
	}
	return nil
}

func (r *CoursePostgreSQL) RemoveStudent(ctx context.Context, courseID, studentID uint) error {
	result := r.db.WithContext(ctx).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Delete(&models.CourseStudent{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove student %d from course %d: %w", studentID, courseID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CoursePostgreSQL) IsEnrolled(ctx context.Context, courseID, studentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CourseStudent{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return count > 0, nil
}

func (r *CoursePostgreSQL) CountStudents(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CourseStudent{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count students for course %d: %w", courseID, err)
	}
	return count, nil
}

// SetStudentCount writes the recomputed denormalized counter. Callers run it
// in the same transaction as the enrollment change.
func (r *CoursePostgreSQL) SetStudentCount(ctx context.Context, courseID uint, count int64) error {
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", courseID).
		Update("student_count", count).Error
	if err != nil {
		return fmt.Errorf("failed to set student count for course %d: %w", courseID, err)
	}
	cache.InvalidateCourseCache(ctx, r.cacheManager, courseID)
	return nil
}

// AdjustQuizCount moves the quiz counter by delta inside the caller's
// transaction, flooring at zero.
func (r *CoursePostgreSQL) AdjustQuizCount(ctx context.Context, courseID uint, delta int) error {
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", courseID).
		Update("quiz_count", gorm.Expr("GREATEST(quiz_count + ?, 0)", delta)).Error
	if err != nil {
		return fmt.Errorf("failed to adjust quiz count for course %d: %w", courseID, err)
	}
	cache.InvalidateCourseCache(ctx, r.cacheManager, courseID)
	return nil
}

func (r *CoursePostgreSQL) ListEnrolledCourseIDs(ctx context.Context, studentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.CourseStudent{}).
		Where("student_id = ?", studentID).
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled courses for student %d: %w", studentID, err)
	}
	return ids, nil
}
