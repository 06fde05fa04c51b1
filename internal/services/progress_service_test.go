package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/events"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

func newProgressServiceForTest(repo *mockRepository) (ProgressService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher()
	return NewProgressService(repo, testValidator(), publisher, testLogger()), publisher
}

func addPublishedQuiz(repo *mockRepository, courseID uint) *models.Quiz {
	code := "QRS345"
	return repo.addQuiz(&models.Quiz{
		Title:      "Unidad 1",
		CourseID:   &courseID,
		Questions:  testQuestions(),
		Status:     models.QuizPublished,
		AccessCode: &code,
	})
}

func TestGetStatusDefaultsToPending(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newProgressServiceForTest(repo)

	status, err := svc.GetStatus(context.Background(), 7, 42)
	if err != nil {
		t.Fatalf("GetStatus returned error: %v", err)
	}
	if status.Status != models.ProgressPending {
		t.Errorf("expected pendiente for unseen quiz, got %q", status.Status)
	}
	if status.Score != nil {
		t.Errorf("expected no score, got %v", *status.Score)
	}
}

func TestSubmitRecordsCompletion(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia"})
	quiz := addPublishedQuiz(repo, course.ID)
	svc, publisher := newProgressServiceForTest(repo)

	score := 9.5
	progress, err := svc.Submit(context.Background(), 7, quiz.ID, &validator.SubmitQuizRequest{
		CourseID: course.ID,
		Score:    &score,
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if progress.Status != models.ProgressCompleted {
		t.Errorf("expected completado, got %q", progress.Status)
	}
	if progress.FinishedAt == nil {
		t.Error("expected FinishedAt to be set")
	}

	status, _ := svc.GetStatus(context.Background(), 7, quiz.ID)
	if status.Status != models.ProgressCompleted || status.Score == nil || *status.Score != 9.5 {
		t.Errorf("expected completado with score 9.5, got %+v", status)
	}

	evts := publisher.GetPublishedEvents()
	if len(evts) != 1 || evts[0].Type != events.TypeQuizCompleted {
		t.Errorf("expected one %s event, got %+v", events.TypeQuizCompleted, evts)
	}
}

func TestSubmitTwiceKeepsFirstScore(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia"})
	quiz := addPublishedQuiz(repo, course.ID)
	svc, _ := newProgressServiceForTest(repo)

	first := 6.0
	if _, err := svc.Submit(context.Background(), 7, quiz.ID, &validator.SubmitQuizRequest{CourseID: course.ID, Score: &first}); err != nil {
		t.Fatalf("first Submit returned error: %v", err)
	}

	second := 10.0
	_, err := svc.Submit(context.Background(), 7, quiz.ID, &validator.SubmitQuizRequest{CourseID: course.ID, Score: &second})
	if !errors.Is(err, ErrQuizAlreadyCompleted) {
		t.Fatalf("expected ErrQuizAlreadyCompleted, got %v", err)
	}

	status, _ := svc.GetStatus(context.Background(), 7, quiz.ID)
	if status.Score == nil || *status.Score != 6.0 {
		t.Errorf("expected first score 6.0 to be kept, got %v", status.Score)
	}
}

func TestSubmitRequiresPublishedQuiz(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia"})
	draft := repo.addQuiz(&models.Quiz{Title: "Borrador", CourseID: &course.ID, Status: models.QuizDraft})
	svc, _ := newProgressServiceForTest(repo)

	score := 5.0
	_, err := svc.Submit(context.Background(), 7, draft.ID, &validator.SubmitQuizRequest{CourseID: course.ID, Score: &score})
	if !errors.Is(err, ErrQuizNotPublished) {
		t.Fatalf("expected ErrQuizNotPublished, got %v", err)
	}
}

func TestSubmitRequiresScorePresence(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia"})
	quiz := addPublishedQuiz(repo, course.ID)
	svc, _ := newProgressServiceForTest(repo)

	_, err := svc.Submit(context.Background(), 7, quiz.ID, &validator.SubmitQuizRequest{CourseID: course.ID})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors for missing score, got %v", err)
	}
}

func TestSubmitOutOfRangeScoreIsAccepted(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia"})
	quiz := addPublishedQuiz(repo, course.ID)
	svc, _ := newProgressServiceForTest(repo)

	// Scores outside 0-10 are stored as sent; clients own the scale.
	score := 250.0
	progress, err := svc.Submit(context.Background(), 7, quiz.ID, &validator.SubmitQuizRequest{CourseID: course.ID, Score: &score})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if *progress.Score != 250.0 {
		t.Errorf("expected score stored verbatim, got %v", *progress.Score)
	}
}
