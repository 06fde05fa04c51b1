package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "DOCENTE"
	RoleStudent UserRole = "ESTUDIANTE"
)

type UserStatus string

const (
	UserActive  UserStatus = "Activo"
	UserBlocked UserStatus = "Bloqueado"
)

type User struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	Name     string     `json:"nombre" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email    string     `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Password string     `json:"-" gorm:"not null;size:255"`
	Role     UserRole   `json:"rol" gorm:"not null;default:ESTUDIANTE;size:20" validate:"omitempty,oneof=ADMIN DOCENTE ESTUDIANTE"`
	Status   UserStatus `json:"estado" gorm:"not null;default:Activo;size:20;index" validate:"omitempty,oneof=Activo Bloqueado"`

	CreatedAt time.Time      `json:"fechaRegistro"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserBlocked
}
