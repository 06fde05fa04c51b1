package repositories

import (
	"context"
	"time"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
)

// QuizFilters narrows quiz listings.
type QuizFilters struct {
	CourseID *uint
	Status   *models.QuizStatus
	Search   string
	Limit    int
	Offset   int
}

// CourseFilters narrows course listings.
type CourseFilters struct {
	Status *models.CourseStatus
	Search string
	Limit  int
	Offset int
}

// UserFilters narrows user listings.
type UserFilters struct {
	Role   *models.UserRole
	Status *models.UserStatus
	Search string
	Limit  int
	Offset int
}

// DashboardStats aggregates the admin dashboard counters.
type DashboardStats struct {
	TotalUsers       int64 `json:"totalUsuarios"`
	TotalTeachers    int64 `json:"totalDocentes"`
	TotalStudents    int64 `json:"totalEstudiantes"`
	TotalCourses     int64 `json:"totalCursos"`
	ActiveCourses    int64 `json:"cursosActivos"`
	TotalQuizzes     int64 `json:"totalQuizzes"`
	PublishedQuizzes int64 `json:"quizzesPublicados"`
	TotalCompletions int64 `json:"quizzesCompletados"`
}

// CourseResultRow is one student completion joined with its quiz and student,
// as exported to spreadsheets.
type CourseResultRow struct {
	StudentName  string
	StudentEmail string
	QuizTitle    string
	Score        *float64
	FinishedAt   *time.Time
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByAccessCode(ctx context.Context, code string) (*models.Quiz, error)
	List(ctx context.Context, filters QuizFilters) ([]models.Quiz, int64, error)
	ListByCourse(ctx context.Context, courseID uint) ([]models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filters CourseFilters) ([]models.Course, int64, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.Course, error)
	ListByTeacherName(ctx context.Context, teacherName string) ([]models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error

	AddStudent(ctx context.Context, courseID, studentID uint) error
	RemoveStudent(ctx context.Context, courseID, studentID uint) error
	IsEnrolled(ctx context.Context, courseID, studentID uint) (bool, error)
	CountStudents(ctx context.Context, courseID uint) (int64, error)
	SetStudentCount(ctx context.Context, courseID uint, count int64) error
	AdjustQuizCount(ctx context.Context, courseID uint, delta int) error
	ListEnrolledCourseIDs(ctx context.Context, studentID uint) ([]uint, error)
}

type ProgressRepository interface {
	// CreateIfAbsent inserts a completion row; a second completion of the
	// same quiz by the same user surfaces gorm.ErrDuplicatedKey.
	CreateIfAbsent(ctx context.Context, progress *models.StudentQuizProgress) error
	GetByUserAndQuiz(ctx context.Context, userID, quizID uint) (*models.StudentQuizProgress, error)
	ListByUserAndCourse(ctx context.Context, userID, courseID uint) ([]models.StudentQuizProgress, error)
	ListByQuiz(ctx context.Context, quizID uint) ([]models.StudentQuizProgress, error)
	ListCourseResults(ctx context.Context, courseID uint) ([]CourseResultRow, error)
	DeleteByQuiz(ctx context.Context, quizID uint) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filters UserFilters) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type DashboardRepository interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
}
