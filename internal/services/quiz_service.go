package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/events"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

type quizService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewQuizService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher, logger utils.Logger) QuizService {
	return &quizService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

// Create inserts a draft quiz and bumps the course quiz counter in the same
// transaction, so the counter can never drift from the quiz set.
func (s *quizService) Create(ctx context.Context, req *validator.QuizCreateRequest) (*models.Quiz, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	quiz := &models.Quiz{
		Title:    req.Title,
		CourseID: &req.CourseID,
		Status:   models.QuizDraft,
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if _, err := tx.Course().GetByID(ctx, req.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		if err := tx.Quiz().Create(ctx, quiz); err != nil {
			return err
		}
		return tx.Course().AdjustQuizCount(ctx, req.CourseID, 1)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quiz created", "quiz_id", quiz.ID, "course_id", req.CourseID)
	return quiz, nil
}

func (s *quizService) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *quizService) List(ctx context.Context, filters repositories.QuizFilters) ([]models.Quiz, int64, error) {
	return s.repo.Quiz().List(ctx, filters)
}

// Update applies a title or question edit. Edits stay allowed after publish:
// live sessions read the current question set.
func (s *quizService) Update(ctx context.Context, id uint, req *validator.QuizUpdateRequest) (*models.Quiz, error) {
	if errs := s.validator.GetBusinessValidator().ValidateQuizUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	quiz, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Questions != nil {
		quiz.Questions = normalizeQuestions(req.Questions)
	}

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Publish flips a quiz to Publicado and assigns its join code. Publishing an
// already-published quiz returns it unchanged, keeping the code stable.
// Uniqueness comes from the database index; a duplicate generated code is
// retried with a fresh one.
func (s *quizService) Publish(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz.IsPublished() {
		return quiz, nil
	}

	// A draft may publish with an empty question set; questions can be
	// added while the quiz is live.
	quiz.Status = models.QuizPublished
	for attempt := 1; ; attempt++ {
		code := GenerateAccessCode()
		quiz.AccessCode = &code

		err = s.repo.Quiz().Update(ctx, quiz)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		if attempt >= maxAccessCodeAttempts {
			return nil, fmt.Errorf("failed to assign unique access code after %d attempts: %w", attempt, err)
		}
		s.logger.Warn("access code collision, retrying", "quiz_id", id, "attempt", attempt)
	}

	s.publishEvent(ctx, events.TypeQuizPublished, events.QuizPublishedEvent{
		QuizID:     quiz.ID,
		CourseID:   quiz.CourseID,
		AccessCode: *quiz.AccessCode,
	})

	s.logger.Info("quiz published", "quiz_id", quiz.ID, "access_code", *quiz.AccessCode)
	return quiz, nil
}

// Delete removes the quiz, its progress rows and its slot in the course
// counter atomically.
func (s *quizService) Delete(ctx context.Context, id uint) error {
	return s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		quiz, err := tx.Quiz().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuizNotFound
			}
			return err
		}

		if err := tx.Progress().DeleteByQuiz(ctx, id); err != nil {
			return err
		}
		if err := tx.Quiz().Delete(ctx, id); err != nil {
			return err
		}
		if quiz.CourseID != nil {
			return tx.Course().AdjustQuizCount(ctx, *quiz.CourseID, -1)
		}
		return nil
	})
}

// JoinByCode resolves a join code for a student entering a session.
func (s *quizService) JoinByCode(ctx context.Context, code string) (*models.Quiz, error) {
	code = strings.TrimSpace(code)

	quiz, err := s.repo.Quiz().GetByAccessCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished() {
		return nil, ErrQuizNotPublished
	}
	return quiz, nil
}

func (s *quizService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("failed to publish event", "type", eventType, "error", err)
	}
}

// normalizeQuestions fills per-question defaults for timing and scoring.
func normalizeQuestions(questions []models.QuizQuestion) []models.QuizQuestion {
	out := make([]models.QuizQuestion, len(questions))
	for i, q := range questions {
		if q.TimeSeconds == nil {
			secs := models.DefaultQuestionSeconds
			q.TimeSeconds = &secs
		}
		if q.Points == nil {
			pts := models.DefaultQuestionPoints
			q.Points = &pts
		}
		out[i] = q
	}
	return out
}
