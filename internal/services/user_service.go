package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    utils.Logger
}

func NewUserService(repo repositories.Repository, v *validator.Validator, logger utils.Logger) UserService {
	return &userService{
		repo:      repo,
		validator: v,
		logger:    logger,
	}
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) ([]models.User, int64, error) {
	return s.repo.User().List(ctx, filters)
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create is the admin path: unlike self-registration it can assign any role.
func (s *userService) Create(ctx context.Context, req *validator.RegisterRequest) (*models.User, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
		Status:   models.UserActive,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("user created by admin", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// UpdateStatus blocks or reactivates an account. Admins cannot block
// themselves.
func (s *userService) UpdateStatus(ctx context.Context, id uint, status models.UserStatus, actorID uint) (*models.User, error) {
	if id == actorID {
		return nil, NewPermissionError(actorID, "change status of", "own account")
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user status updated", "user_id", id, "status", status)
	return user, nil
}

// UpdateRole reassigns a role. Admins cannot demote themselves.
func (s *userService) UpdateRole(ctx context.Context, id uint, role models.UserRole, actorID uint) (*models.User, error) {
	if id == actorID {
		return nil, NewPermissionError(actorID, "change role of", "own account")
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user role updated", "user_id", id, "role", role)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint, actorID uint) error {
	if id == actorID {
		return NewPermissionError(actorID, "delete", "own account")
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
