package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/cache"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
)

type DashboardPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewDashboardPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.DashboardRepository {
	return &DashboardPostgreSQL{db: db, cacheManager: cacheManager}
}

// GetStats runs the dashboard count queries, short-circuited by the stats
// cache between refreshes.
func (r *DashboardPostgreSQL) GetStats(ctx context.Context) (*repositories.DashboardStats, error) {
	var stats repositories.DashboardStats
	err := r.cacheManager.Stats.CacheOrExecute(ctx, "dashboard", &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		return r.computeStats(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return &stats, nil
}

func (r *DashboardPostgreSQL) computeStats(ctx context.Context) (*repositories.DashboardStats, error) {
	stats := &repositories.DashboardStats{}
	db := r.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, db.Model(&models.User{})},
		{&stats.TotalTeachers, db.Model(&models.User{}).Where("role = ?", models.RoleTeacher)},
		{&stats.TotalStudents, db.Model(&models.User{}).Where("role = ?", models.RoleStudent)},
		{&stats.TotalCourses, db.Model(&models.Course{})},
		{&stats.ActiveCourses, db.Model(&models.Course{}).Where("status = ?", models.CourseActive)},
		{&stats.TotalQuizzes, db.Model(&models.Quiz{})},
		{&stats.PublishedQuizzes, db.Model(&models.Quiz{}).Where("status = ?", models.QuizPublished)},
		{&stats.TotalCompletions, db.Model(&models.StudentQuizProgress{}).Where("status = ?", models.ProgressCompleted)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}
