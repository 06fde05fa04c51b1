package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/events"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

type progressService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewProgressService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher, logger utils.Logger) ProgressService {
	return &progressService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

// GetStatus reports a student's standing on a quiz. A missing row is not an
// error: it means pendiente.
func (s *progressService) GetStatus(ctx context.Context, userID, quizID uint) (*ProgressStatusResponse, error) {
	progress, err := s.repo.Progress().GetByUserAndQuiz(ctx, userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ProgressStatusResponse{QuizID: quizID, Status: models.ProgressPending}, nil
		}
		return nil, err
	}

	return &ProgressStatusResponse{
		QuizID: quizID,
		Status: progress.Status,
		Score:  progress.Score,
	}, nil
}

// Submit records a completion exactly once. The insert is conditional on the
// (user, quiz) unique index: a repeat attempt comes back as a conflict and
// the stored score never changes.
func (s *progressService) Submit(ctx context.Context, userID, quizID uint, req *validator.SubmitQuizRequest) (*models.StudentQuizProgress, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished() {
		return nil, ErrQuizNotPublished
	}

	courseID := req.CourseID
	if quiz.CourseID != nil {
		courseID = *quiz.CourseID
	}

	now := time.Now()
	progress := &models.StudentQuizProgress{
		UserID:     userID,
		QuizID:     quizID,
		CourseID:   courseID,
		Status:     models.ProgressCompleted,
		Score:      req.Score,
		FinishedAt: &now,
	}

	if err := s.repo.Progress().CreateIfAbsent(ctx, progress); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrQuizAlreadyCompleted
		}
		return nil, err
	}

	s.publishEvent(ctx, events.TypeQuizCompleted, events.QuizCompletedEvent{
		QuizID:    quizID,
		CourseID:  courseID,
		StudentID: userID,
		Score:     *req.Score,
	})

	s.logger.Info("quiz completed", "quiz_id", quizID, "user_id", userID, "score", *req.Score)
	return progress, nil
}

func (s *progressService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("failed to publish event", "type", eventType, "error", err)
	}
}
