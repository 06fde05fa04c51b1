package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/config"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/services"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
)

// HandlerManager wires all handlers onto the router.
type HandlerManager struct {
	auth      *AuthHandler
	user      *UserHandler
	quiz      *QuizHandler
	course    *CourseHandler
	slides    *SlidesHandler
	dashboard *DashboardHandler

	repo      repositories.Repository
	jwtConfig config.JWTConfig
	logger    utils.Logger
}

func NewHandlerManager(sm *services.ServiceManager, repo repositories.Repository, jwtConfig config.JWTConfig, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		auth:      NewAuthHandler(sm.Auth, logger),
		user:      NewUserHandler(sm.User, logger),
		quiz:      NewQuizHandler(sm.Quiz, sm.Progress, sm.Generation, logger),
		course:    NewCourseHandler(sm.Course, sm.Export, logger),
		slides:    NewSlidesHandler(sm.Slides, logger),
		dashboard: NewDashboardHandler(sm.Dashboard, logger),
		repo:      repo,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

// SetupRoutes registers the whole API surface.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.health)

	api := router.Group("/api")

	// Unauthenticated surface: sign-in and the session join flow.
	auth := api.Group("/auth")
	{
		auth.POST("/register", hm.auth.Register)
		auth.POST("/login", hm.auth.Login)
	}
	api.GET("/quizzes/join/:codigo", hm.quiz.JoinByCode)

	authed := api.Group("")
	authed.Use(AuthMiddleware(hm.jwtConfig))

	teacher := authed.Group("")
	teacher.Use(RequireRole(models.RoleTeacher, models.RoleAdmin))
	{
		teacher.POST("/quizzes", hm.quiz.Create)
		teacher.GET("/quizzes/curso/:cursoId", hm.quiz.ListByCourse)
		teacher.PUT("/quizzes/:id", hm.quiz.Update)
		teacher.PATCH("/quizzes/:id/publicar", hm.quiz.Publish)
		teacher.DELETE("/quizzes/:id", hm.quiz.Delete)
		teacher.POST("/quizzes/generar-desde-texto", hm.quiz.GenerateFromText)

		teacher.POST("/ppt/generar", hm.slides.Generate)
		teacher.POST("/ppt/render", hm.slides.Render)
	}

	// Teacher course management is ownership-scoped, so it stays DOCENTE-only;
	// admins use the /cursos surface instead.
	docente := authed.Group("/docente")
	docente.Use(RequireRole(models.RoleTeacher))
	{
		docente.POST("/cursos", hm.course.CreateForTeacher)
		docente.GET("/cursos", hm.course.ListForTeacher)
		docente.GET("/cursos/:id", hm.course.GetForTeacher)
		docente.PUT("/cursos/:id", hm.course.UpdateForTeacher)
		docente.PATCH("/cursos/:id/estado", hm.course.UpdateStatusForTeacher)
		docente.DELETE("/cursos/:id", hm.course.DeleteForTeacher)
		docente.GET("/cursos/:id/resultados/export", hm.course.ExportResults)
	}

	authed.GET("/quizzes/:id", hm.quiz.GetByID)

	student := authed.Group("")
	student.Use(RequireRole(models.RoleStudent))
	{
		student.GET("/quizzes/:id/estado-estudiante", hm.quiz.StudentStatus)
		student.POST("/quizzes/:id/submit", hm.quiz.Submit)

		student.GET("/cursos/estudiante/mis-cursos", hm.course.Catalog)
		student.POST("/cursos/:id/unirse", hm.course.Enroll)
		student.POST("/cursos/:id/salir", hm.course.Leave)
		student.GET("/cursos-estudiante", hm.course.ListEnrolled)
		student.GET("/cursos-estudiante/curso/:id", hm.course.EnrolledDetail)
	}

	admin := authed.Group("")
	admin.Use(RequireRole(models.RoleAdmin))
	{
		admin.GET("/quizzes", hm.quiz.List)
		admin.GET("/admin/dashboard", hm.dashboard.GetStats)

		admin.GET("/users", hm.user.List)
		admin.POST("/users", hm.user.Create)
		admin.GET("/users/dashboard/stats", hm.dashboard.GetStats)
		admin.GET("/users/:id", hm.user.GetByID)
		admin.PATCH("/users/:id/estado", hm.user.UpdateStatus)
		admin.PATCH("/users/:id/rol", hm.user.UpdateRole)
		admin.DELETE("/users/:id", hm.user.Delete)

		admin.POST("/cursos", hm.course.Create)
		admin.GET("/cursos", hm.course.List)
		admin.GET("/cursos/:id", hm.course.GetByID)
		admin.PUT("/cursos/:id", hm.course.Update)
		admin.PATCH("/cursos/:id/estado", hm.course.UpdateStatus)
		admin.DELETE("/cursos/:id", hm.course.Delete)
	}
}

func (hm *HandlerManager) health(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		hm.logger.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
