package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/services"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
	exportService services.ExportService
}

func NewCourseHandler(courseService services.CourseService, exportService services.ExportService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   BaseHandler{logger: logger},
		courseService: courseService,
		exportService: exportService,
	}
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req validator.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) List(c *gin.Context) {
	filters := repositories.CourseFilters{
		Search: c.Query("search"),
	}
	if status := models.CourseStatus(c.Query("estado")); status == models.CourseActive || status == models.CourseInactive {
		filters.Status = &status
	}

	courses, total, err := h.courseService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: courses, Total: total})
}

func (h *CourseHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.CourseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validator.CourseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	course, err := h.courseService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ownedCourse loads a course and verifies the calling teacher is assigned to
// it. Course-teacher linkage is by display name.
func (h *CourseHandler) ownedCourse(c *gin.Context, id uint) (*models.Course, bool) {
	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return nil, false
	}
	if course.TeacherName != currentUserName(c) {
		h.handleServiceError(c, services.NewPermissionError(currentUserID(c), "manage", "curso"))
		return nil, false
	}
	return course, true
}

// ListForTeacher lists the courses assigned to the calling teacher by name.
func (h *CourseHandler) ListForTeacher(c *gin.Context) {
	courses, err := h.courseService.ListByTeacher(c.Request.Context(), currentUserName(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: courses, Total: int64(len(courses))})
}

// CreateForTeacher creates a course assigned to the caller, regardless of any
// docenteNombre in the payload.
func (h *CourseHandler) CreateForTeacher(c *gin.Context) {
	var req validator.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}
	name := currentUserName(c)
	req.TeacherName = &name

	course, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) GetForTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, ok := h.ownedCourse(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) UpdateForTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.ownedCourse(c, id); !ok {
		return
	}

	var req validator.CourseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}
	// Teachers cannot hand their course to someone else.
	req.TeacherName = nil

	course, err := h.courseService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) UpdateStatusForTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.ownedCourse(c, id); !ok {
		return
	}

	var req validator.CourseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	course, err := h.courseService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) DeleteForTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.ownedCourse(c, id); !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Catalog lists active courses flagged with the calling student's enrollment.
func (h *CourseHandler) Catalog(c *gin.Context) {
	views, err := h.courseService.ListActiveForStudent(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: views, Total: int64(len(views))})
}

// ListEnrolled lists the calling student's courses.
func (h *CourseHandler) ListEnrolled(c *gin.Context) {
	courses, err := h.courseService.ListEnrolled(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: courses, Total: int64(len(courses))})
}

// EnrolledDetail returns one enrolled course together with its published
// quizzes merged with the calling student's progress.
func (h *CourseHandler) EnrolledDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	views, err := h.courseService.ListCourseQuizzesForStudent(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"curso": course, "quizzes": views})
}

func (h *CourseHandler) Enroll(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.Enroll(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Leave(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.Leave(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// ExportResults streams the course results workbook for a course the calling
// teacher owns.
func (h *CourseHandler) ExportResults(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.ownedCourse(c, id); !ok {
		return
	}

	file, err := h.exportService.ExportCourseResults(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.Content)
}
