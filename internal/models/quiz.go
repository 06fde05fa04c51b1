package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuizStatus string

const (
	QuizDraft     QuizStatus = "Borrador"
	QuizPublished QuizStatus = "Publicado"
)

// QuizQuestion is owned exclusively by its quiz and stored inline as JSONB,
// preserving authoring order.
type QuizQuestion struct {
	Statement    string   `json:"enunciado" validate:"required,min=1,max=2000"`
	Options      []string `json:"opciones" validate:"required,min=2,dive,max=500"`
	CorrectIndex int      `json:"indiceCorrecta" validate:"min=0"`
	TimeSeconds  *int     `json:"tiempoSegundos,omitempty" validate:"omitempty,min=5,max=600"`
	Points       *int     `json:"puntos,omitempty" validate:"omitempty,min=0,max=10000"`
}

const (
	DefaultQuestionSeconds = 30
	DefaultQuestionPoints  = 1000
)

type Quiz struct {
	ID        uint                              `json:"id" gorm:"primaryKey"`
	Title     string                            `json:"titulo" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	CourseID  *uint                             `json:"curso" gorm:"index"`
	Questions datatypes.JSONSlice[QuizQuestion] `json:"preguntas" gorm:"type:jsonb"`
	Status    QuizStatus                        `json:"estado" gorm:"not null;default:Borrador;size:20;index" validate:"omitempty,oneof=Borrador Publicado"`

	// Assigned once, at first publish. Nullable so the unique index only
	// applies to published quizzes.
	AccessCode *string `json:"codigoAcceso,omitempty" gorm:"uniqueIndex;size:6"`

	CreatedAt time.Time `json:"creadoEn"`
	UpdatedAt time.Time `json:"-"`

	Course *Course `json:"-" gorm:"foreignKey:CourseID"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (q *Quiz) IsPublished() bool {
	return q.Status == QuizPublished && q.AccessCode != nil
}
