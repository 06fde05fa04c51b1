package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/services"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

type QuizHandler struct {
	BaseHandler
	quizService       services.QuizService
	progressService   services.ProgressService
	generationService services.GenerationService
}

func NewQuizHandler(quizService services.QuizService, progressService services.ProgressService, generationService services.GenerationService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler:       BaseHandler{logger: logger},
		quizService:       quizService,
		progressService:   progressService,
		generationService: generationService,
	}
}

func (h *QuizHandler) Create(c *gin.Context) {
	var req validator.QuizCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) List(c *gin.Context) {
	filters := repositories.QuizFilters{
		Search: c.Query("search"),
	}
	if curso := c.Query("curso"); curso != "" {
		if id, err := strconv.ParseUint(curso, 10, 32); err == nil {
			courseID := uint(id)
			filters.CourseID = &courseID
		}
	}
	if status := models.QuizStatus(c.Query("estado")); status == models.QuizDraft || status == models.QuizPublished {
		filters.Status = &status
	}

	quizzes, total, err := h.quizService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: quizzes, Total: total})
}

// ListByCourse serves the teacher view of one course's quizzes.
func (h *QuizHandler) ListByCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "cursoId")
	if !ok {
		return
	}

	quizzes, total, err := h.quizService.List(c.Request.Context(), repositories.QuizFilters{CourseID: &courseID})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: quizzes, Total: total})
}

func (h *QuizHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.QuizUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// Publish flips a draft live and returns its join code. Re-publishing is a
// no-op that returns the existing code.
func (h *QuizHandler) Publish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.Publish(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// JoinByCode is the unauthenticated session entry: students resolve a join
// code to its quiz.
func (h *QuizHandler) JoinByCode(c *gin.Context) {
	code := c.Param("codigo")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid codigo parameter"})
		return
	}

	quiz, err := h.quizService.JoinByCode(c.Request.Context(), code)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// GenerateFromText creates an AI-seeded draft quiz from source material.
func (h *QuizHandler) GenerateFromText(c *gin.Context) {
	var req validator.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	quiz, err := h.generationService.GenerateFromText(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// StudentStatus reports the caller's standing on one quiz.
func (h *QuizHandler) StudentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.progressService.GetStatus(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Submit records the caller's completion exactly once; a repeat is rejected.
func (h *QuizHandler) Submit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	progress, err := h.progressService.Submit(c.Request.Context(), currentUserID(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, progress)
}
