package services

import (
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/config"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/events"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

// ServiceManager owns one instance of every service.
type ServiceManager struct {
	Auth       AuthService
	User       UserService
	Quiz       QuizService
	Progress   ProgressService
	Course     CourseService
	Generation GenerationService
	Slides     SlidesService
	Export     ExportService
	Dashboard  DashboardService
}

// ServiceManagerConfig carries the shared dependencies services are built
// from.
type ServiceManagerConfig struct {
	Repo      repositories.Repository
	Validator *validator.Validator
	Chat      ChatCompleter
	Renderer  DeckRenderer
	Publisher events.EventPublisher
	JWTConfig config.JWTConfig
	Logger    utils.Logger
}

func NewServiceManager(cfg ServiceManagerConfig) *ServiceManager {
	return &ServiceManager{
		Auth:       NewAuthService(cfg.Repo, cfg.Validator, cfg.JWTConfig, cfg.Logger),
		User:       NewUserService(cfg.Repo, cfg.Validator, cfg.Logger),
		Quiz:       NewQuizService(cfg.Repo, cfg.Validator, cfg.Publisher, cfg.Logger),
		Progress:   NewProgressService(cfg.Repo, cfg.Validator, cfg.Publisher, cfg.Logger),
		Course:     NewCourseService(cfg.Repo, cfg.Validator, cfg.Publisher, cfg.Logger),
		Generation: NewGenerationService(cfg.Repo, cfg.Validator, cfg.Chat, cfg.Publisher, cfg.Logger),
		Slides:     NewSlidesService(cfg.Validator, cfg.Chat, cfg.Renderer, cfg.Logger),
		Export:     NewExportService(cfg.Repo, cfg.Logger),
		Dashboard:  NewDashboardService(cfg.Repo, cfg.Logger),
	}
}
