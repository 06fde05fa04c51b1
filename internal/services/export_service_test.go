package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
)

func TestExportCourseResults(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia Universal"})
	quiz := repo.addQuiz(&models.Quiz{Title: "Unidad 1", CourseID: &course.ID, Status: models.QuizPublished})

	_ = repo.User().Create(context.Background(), &models.User{
		Name: "Ana", Email: "ana@example.com", Password: "x", Role: models.RoleStudent, Status: models.UserActive,
	})

	score := 8.5
	finished := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	_ = repo.Progress().CreateIfAbsent(context.Background(), &models.StudentQuizProgress{
		UserID: 1, QuizID: quiz.ID, CourseID: course.ID,
		Status: models.ProgressCompleted, Score: &score, FinishedAt: &finished,
	})

	svc := NewExportService(repo, testLogger())
	file, err := svc.ExportCourseResults(context.Background(), course.ID)
	if err != nil {
		t.Fatalf("ExportCourseResults returned error: %v", err)
	}
	if file.Name != "resultados_Historia_Universal.xlsx" {
		t.Errorf("unexpected file name %q", file.Name)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	if err != nil {
		t.Fatalf("exported content is not a readable workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(resultsSheet)
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d rows", len(rows))
	}
	if rows[0][0] != "Estudiante" || rows[0][3] != "Puntaje" {
		t.Errorf("unexpected header row %v", rows[0])
	}
	if rows[1][0] != "Ana" || rows[1][2] != "Unidad 1" {
		t.Errorf("unexpected data row %v", rows[1])
	}
}

func TestExportUnknownCourse(t *testing.T) {
	repo := newMockRepository()
	svc := NewExportService(repo, testLogger())

	if _, err := svc.ExportCourseResults(context.Background(), 42); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestExportEmptyCourseProducesHeaderOnly(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Vacío"})
	svc := NewExportService(repo, testLogger())

	file, err := svc.ExportCourseResults(context.Background(), course.ID)
	if err != nil {
		t.Fatalf("ExportCourseResults returned error: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	if err != nil {
		t.Fatalf("exported content is not a readable workbook: %v", err)
	}
	defer wb.Close()

	rows, _ := wb.GetRows(resultsSheet)
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}
