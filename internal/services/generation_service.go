package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/ai"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/events"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

const (
	defaultGeneratedQuestions = 5
	maxSourceTextChars        = 5000
)

// ChatCompleter is the model boundary, satisfied by *ai.Client and mocked in
// tests.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, messages []ai.ChatMessage, temperature float64) (string, error)
}

type generationService struct {
	repo      repositories.Repository
	validator *validator.Validator
	chat      ChatCompleter
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewGenerationService(repo repositories.Repository, v *validator.Validator, chat ChatCompleter, publisher events.EventPublisher, logger utils.Logger) GenerationService {
	return &generationService{
		repo:      repo,
		validator: v,
		chat:      chat,
		publisher: publisher,
		logger:    logger,
	}
}

type generatedQuestions struct {
	Questions []models.QuizQuestion `json:"preguntas"`
}

// GenerateFromText asks the model for multiple-choice questions over the
// given source text and stores them as a new draft quiz. Any generation
// failure leaves no quiz behind.
func (s *generationService) GenerateFromText(ctx context.Context, req *validator.GenerateQuizRequest) (*models.Quiz, error) {
	if errs := s.validator.GetBusinessValidator().ValidateGenerateRequest(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Course().GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	count := req.QuestionCount
	if count <= 0 {
		count = defaultGeneratedQuestions
	}

	text := truncateSourceText(req.Text, maxSourceTextChars)

	content, err := s.chat.ChatCompletion(ctx, buildQuizPrompt(text, count), 0.7)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrGenerationEmpty
	}

	var parsed generatedQuestions
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		s.logger.Warn("model returned unparseable quiz content", "error", err)
		return nil, ErrGenerationMalformed
	}

	questions := sanitizeGeneratedQuestions(parsed.Questions)
	if len(questions) == 0 {
		return nil, ErrGenerationNoQuests
	}

	quiz := &models.Quiz{
		Title:     req.Title,
		CourseID:  &req.CourseID,
		Questions: normalizeQuestions(questions),
		Status:    models.QuizDraft,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Quiz().Create(ctx, quiz); err != nil {
			return err
		}
		return tx.Course().AdjustQuizCount(ctx, req.CourseID, 1)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeQuizGenerated, events.QuizGeneratedEvent{
		QuizID:        quiz.ID,
		CourseID:      req.CourseID,
		QuestionCount: len(quiz.Questions),
	})

	s.logger.Info("quiz generated", "quiz_id", quiz.ID, "questions", len(quiz.Questions))
	return quiz, nil
}

func buildQuizPrompt(text string, count int) []ai.ChatMessage {
	system := "Eres un asistente educativo que crea cuestionarios de opción múltiple. " +
		"Respondes únicamente con JSON válido, sin texto adicional."

	user := fmt.Sprintf(`Genera exactamente %d preguntas de opción múltiple basadas en el siguiente texto.
Cada pregunta debe tener 4 opciones y una sola respuesta correcta.

Responde con este formato JSON:
{"preguntas": [{"enunciado": "...", "opciones": ["...", "...", "...", "..."], "indiceCorrecta": 0}]}

Texto:
%s`, count, text)

	return []ai.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

// truncateSourceText caps the prompt source at max bytes, backing up so the
// cut never splits a multibyte rune.
func truncateSourceText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// sanitizeGeneratedQuestions drops questions the model got structurally
// wrong rather than failing the whole batch.
func sanitizeGeneratedQuestions(questions []models.QuizQuestion) []models.QuizQuestion {
	out := make([]models.QuizQuestion, 0, len(questions))
	for _, q := range questions {
		if strings.TrimSpace(q.Statement) == "" || len(q.Options) < 2 {
			continue
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func (s *generationService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("failed to publish event", "type", eventType, "error", err)
	}
}
