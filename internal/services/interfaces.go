package services

import (
	"context"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

// AuthResponse is the login/register payload: a signed token plus the
// authenticated user.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"usuario"`
}

// StudentCourseView is a course as seen from the student catalog, flagged
// with the viewer's enrollment.
type StudentCourseView struct {
	models.Course
	AlreadyEnrolled bool `json:"yaInscrito"`
}

// StudentQuizView is a published quiz merged with the viewer's progress.
type StudentQuizView struct {
	models.Quiz
	ProgressStatus models.ProgressStatus `json:"estadoEstudiante"`
	Score          *float64              `json:"score,omitempty"`
}

// ProgressStatusResponse reports one student's standing on one quiz.
// Status defaults to pendiente when no completion row exists.
type ProgressStatusResponse struct {
	QuizID uint                  `json:"quiz"`
	Status models.ProgressStatus `json:"status"`
	Score  *float64              `json:"score,omitempty"`
}

// DeckFile is a rendered presentation ready to stream to the client.
type DeckFile struct {
	Name    string
	Content []byte
}

// ExportFile is a generated spreadsheet ready to stream to the client.
type ExportFile struct {
	Name    string
	Content []byte
}

type AuthService interface {
	Register(ctx context.Context, req *validator.RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *validator.LoginRequest) (*AuthResponse, error)
}

type UserService interface {
	List(ctx context.Context, filters repositories.UserFilters) ([]models.User, int64, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, req *validator.RegisterRequest) (*models.User, error)
	UpdateStatus(ctx context.Context, id uint, status models.UserStatus, actorID uint) (*models.User, error)
	UpdateRole(ctx context.Context, id uint, role models.UserRole, actorID uint) (*models.User, error)
	Delete(ctx context.Context, id uint, actorID uint) error
}

type QuizService interface {
	Create(ctx context.Context, req *validator.QuizCreateRequest) (*models.Quiz, error)
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	List(ctx context.Context, filters repositories.QuizFilters) ([]models.Quiz, int64, error)
	Update(ctx context.Context, id uint, req *validator.QuizUpdateRequest) (*models.Quiz, error)
	Publish(ctx context.Context, id uint) (*models.Quiz, error)
	Delete(ctx context.Context, id uint) error
	JoinByCode(ctx context.Context, code string) (*models.Quiz, error)
}

type ProgressService interface {
	GetStatus(ctx context.Context, userID, quizID uint) (*ProgressStatusResponse, error)
	Submit(ctx context.Context, userID, quizID uint, req *validator.SubmitQuizRequest) (*models.StudentQuizProgress, error)
}

type CourseService interface {
	Create(ctx context.Context, req *validator.CourseCreateRequest) (*models.Course, error)
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filters repositories.CourseFilters) ([]models.Course, int64, error)
	Update(ctx context.Context, id uint, req *validator.CourseUpdateRequest) (*models.Course, error)
	UpdateStatus(ctx context.Context, id uint, status models.CourseStatus) (*models.Course, error)
	Delete(ctx context.Context, id uint) error

	ListByTeacher(ctx context.Context, teacherName string) ([]models.Course, error)

	ListActiveForStudent(ctx context.Context, studentID uint) ([]StudentCourseView, error)
	ListEnrolled(ctx context.Context, studentID uint) ([]models.Course, error)
	ListCourseQuizzesForStudent(ctx context.Context, studentID, courseID uint) ([]StudentQuizView, error)
	Enroll(ctx context.Context, courseID, studentID uint) (*models.Course, error)
	Leave(ctx context.Context, courseID, studentID uint) (*models.Course, error)
}

type GenerationService interface {
	GenerateFromText(ctx context.Context, req *validator.GenerateQuizRequest) (*models.Quiz, error)
}

type SlidesService interface {
	GenerateFromText(ctx context.Context, req *validator.SlidesGenerateRequest) (*DeckFile, error)
	Render(ctx context.Context, req *validator.SlideDeckRequest) (*DeckFile, error)
}

type ExportService interface {
	ExportCourseResults(ctx context.Context, courseID uint) (*ExportFile, error)
}

type DashboardService interface {
	GetStats(ctx context.Context) (*repositories.DashboardStats, error)
}
