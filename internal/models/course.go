package models

import (
	"time"
)

type CourseStatus string

const (
	CourseActive   CourseStatus = "Activo"
	CourseInactive CourseStatus = "Inactivo"
)

const UnassignedTeacher = "Sin asignar"

type Course struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"nombre" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string      `json:"descripcion,omitempty" gorm:"type:text" validate:"omitempty,max=2000"`
	Status      CourseStatus `json:"estado" gorm:"not null;default:Activo;size:20;index" validate:"omitempty,oneof=Activo Inactivo"`
	TeacherName string       `json:"docenteNombre" gorm:"not null;default:Sin asignar;size:100"`

	// Denormalized counters. StudentCount is recomputed from the enrollment
	// table inside every enrollment transaction; QuizCount moves ±1 inside
	// the quiz create/delete transaction.
	StudentCount int `json:"totalEstudiantes" gorm:"not null;default:0"`
	QuizCount    int `json:"totalQuizzes" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"creadoEn"`
	UpdatedAt time.Time `json:"-"`

	Students []CourseStudent `json:"-" gorm:"foreignKey:CourseID"`
}

// CourseStudent is one row of the enrollment set.
type CourseStudent struct {
	CourseID  uint      `json:"course_id" gorm:"primaryKey;autoIncrement:false"`
	StudentID uint      `json:"student_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"enrolled_at"`
}

func (Course) TableName() string {
	return "courses"
}

func (CourseStudent) TableName() string {
	return "course_students"
}
