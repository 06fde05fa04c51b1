package validator

import (
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
)

// Request DTOs keep the wire field names of the existing clients.

type RegisterRequest struct {
	Name     string          `json:"nombre" validate:"required,min=1,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6,max=72"`
	Role     models.UserRole `json:"rol" validate:"omitempty,oneof=ADMIN DOCENTE ESTUDIANTE"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserStatusRequest struct {
	Status models.UserStatus `json:"estado" validate:"required,oneof=Activo Bloqueado"`
}

type UserRoleRequest struct {
	Role models.UserRole `json:"rol" validate:"required,oneof=ADMIN DOCENTE ESTUDIANTE"`
}

type CourseCreateRequest struct {
	Name        string              `json:"nombre" validate:"required,min=1,max=200"`
	Description *string             `json:"descripcion" validate:"omitempty,max=2000"`
	Status      models.CourseStatus `json:"estado" validate:"omitempty,oneof=Activo Inactivo"`
	TeacherName *string             `json:"docenteNombre" validate:"omitempty,max=100"`
}

type CourseUpdateRequest struct {
	Name        *string              `json:"nombre" validate:"omitempty,min=1,max=200"`
	Description *string              `json:"descripcion" validate:"omitempty,max=2000"`
	Status      *models.CourseStatus `json:"estado" validate:"omitempty,oneof=Activo Inactivo"`
	TeacherName *string              `json:"docenteNombre" validate:"omitempty,max=100"`
}

type CourseStatusRequest struct {
	Status models.CourseStatus `json:"estado" validate:"required,oneof=Activo Inactivo"`
}

type QuizCreateRequest struct {
	Title    string `json:"titulo" validate:"required,min=1,max=200"`
	CourseID uint   `json:"curso" validate:"required"`
}

type QuizUpdateRequest struct {
	Title     *string               `json:"titulo" validate:"omitempty,min=1,max=200"`
	Questions []models.QuizQuestion `json:"preguntas" validate:"omitempty,dive"`
}

type GenerateQuizRequest struct {
	Title         string `json:"titulo" validate:"required,min=1,max=200"`
	CourseID      uint   `json:"cursoId" validate:"required"`
	Text          string `json:"texto" validate:"required"`
	QuestionCount int    `json:"numPreguntas" validate:"omitempty,min=1,max=20"`
}

// SubmitQuizRequest carries the client-computed score. Presence is required;
// the 0-10 range is intentionally not checked server-side.
type SubmitQuizRequest struct {
	CourseID uint     `json:"courseId" validate:"required"`
	Score    *float64 `json:"score" validate:"required"`
}

type SlideSectionRequest struct {
	Title   string   `json:"titulo" validate:"required,max=200"`
	Bullets []string `json:"bullets" validate:"omitempty,dive,max=500"`
}

type SlideStyleRequest struct {
	Mode        string `json:"modo" validate:"omitempty,oneof=automatico manual"`
	Font        string `json:"fuente" validate:"omitempty,max=50"`
	Conclusions bool   `json:"conclusiones"`
	Slides      *int   `json:"slides" validate:"omitempty,min=1,max=30"`
}

type SlidesGenerateRequest struct {
	Title string             `json:"titulo" validate:"required,min=1,max=200"`
	Text  string             `json:"texto" validate:"required"`
	Style *SlideStyleRequest `json:"estilo"`
}

type SlideDeckRequest struct {
	Title    string                `json:"tituloPresentacion" validate:"required,min=1,max=200"`
	Sections []SlideSectionRequest `json:"secciones" validate:"required,min=1,dive"`
	Style    *SlideStyleRequest    `json:"estilo"`
}
