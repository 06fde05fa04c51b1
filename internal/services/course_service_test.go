package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/events"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

func newCourseServiceForTest(repo *mockRepository) (CourseService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher()
	return NewCourseService(repo, testValidator(), publisher, testLogger()), publisher
}

func TestCourseCreateDefaults(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newCourseServiceForTest(repo)

	course, err := svc.Create(context.Background(), &validator.CourseCreateRequest{Name: "Historia"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if course.Status != models.CourseActive {
		t.Errorf("expected Activo by default, got %q", course.Status)
	}
	if course.TeacherName != models.UnassignedTeacher {
		t.Errorf("expected %q by default, got %q", models.UnassignedTeacher, course.TeacherName)
	}
	if course.StudentCount != 0 || course.QuizCount != 0 {
		t.Errorf("expected zeroed counters, got %d/%d", course.StudentCount, course.QuizCount)
	}
}

func TestEnrollRecomputesStudentCount(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia", Status: models.CourseActive})
	svc, publisher := newCourseServiceForTest(repo)

	enrolled, err := svc.Enroll(context.Background(), course.ID, 7)
	if err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if enrolled.StudentCount != 1 {
		t.Errorf("expected student count 1, got %d", enrolled.StudentCount)
	}

	if _, err := svc.Enroll(context.Background(), course.ID, 8); err != nil {
		t.Fatalf("second Enroll returned error: %v", err)
	}
	updated, _ := repo.Course().GetByID(context.Background(), course.ID)
	if updated.StudentCount != 2 {
		t.Errorf("expected student count 2, got %d", updated.StudentCount)
	}

	evts := publisher.GetPublishedEvents()
	if len(evts) != 2 || evts[0].Type != events.TypeCourseEnrolled {
		t.Errorf("expected two %s events, got %+v", events.TypeCourseEnrolled, evts)
	}
}

func TestEnrollTwiceConflicts(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia", Status: models.CourseActive})
	svc, _ := newCourseServiceForTest(repo)

	if _, err := svc.Enroll(context.Background(), course.ID, 7); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if _, err := svc.Enroll(context.Background(), course.ID, 7); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}

	updated, _ := repo.Course().GetByID(context.Background(), course.ID)
	if updated.StudentCount != 1 {
		t.Errorf("failed enroll must not move the counter, got %d", updated.StudentCount)
	}
}

func TestEnrollRejectsInactiveCourse(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia", Status: models.CourseInactive})
	svc, _ := newCourseServiceForTest(repo)

	if _, err := svc.Enroll(context.Background(), course.ID, 7); !errors.Is(err, ErrCourseNotActive) {
		t.Fatalf("expected ErrCourseNotActive, got %v", err)
	}
}

func TestLeaveRecomputesStudentCount(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia", Status: models.CourseActive})
	svc, _ := newCourseServiceForTest(repo)

	_, _ = svc.Enroll(context.Background(), course.ID, 7)
	_, _ = svc.Enroll(context.Background(), course.ID, 8)

	left, err := svc.Leave(context.Background(), course.ID, 7)
	if err != nil {
		t.Fatalf("Leave returned error: %v", err)
	}
	if left.StudentCount != 1 {
		t.Errorf("expected student count 1 after leave, got %d", left.StudentCount)
	}

	if _, err := svc.Leave(context.Background(), course.ID, 99); !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("expected ErrNotEnrolled for unknown student, got %v", err)
	}
}

func TestCourseDeleteGuardedByEnrollment(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia", Status: models.CourseActive})
	svc, _ := newCourseServiceForTest(repo)

	_, _ = svc.Enroll(context.Background(), course.ID, 7)

	if err := svc.Delete(context.Background(), course.ID); !errors.Is(err, ErrCourseHasStudents) {
		t.Fatalf("expected ErrCourseHasStudents, got %v", err)
	}

	_, _ = svc.Leave(context.Background(), course.ID, 7)
	if err := svc.Delete(context.Background(), course.ID); err != nil {
		t.Fatalf("Delete after last leave returned error: %v", err)
	}
}

func TestListActiveForStudentFlagsEnrollment(t *testing.T) {
	repo := newMockRepository()
	enrolledCourse := repo.addCourse(&models.Course{Name: "Historia", Status: models.CourseActive})
	repo.addCourse(&models.Course{Name: "Química", Status: models.CourseActive})
	repo.addCourse(&models.Course{Name: "Archivado", Status: models.CourseInactive})
	svc, _ := newCourseServiceForTest(repo)

	_, _ = svc.Enroll(context.Background(), enrolledCourse.ID, 7)

	views, err := svc.ListActiveForStudent(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListActiveForStudent returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 active courses, got %d", len(views))
	}
	for _, v := range views {
		want := v.ID == enrolledCourse.ID
		if v.AlreadyEnrolled != want {
			t.Errorf("course %q: expected yaInscrito=%v, got %v", v.Name, want, v.AlreadyEnrolled)
		}
	}
}

func TestListCourseQuizzesForStudentMergesProgress(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia", Status: models.CourseActive})
	done := addPublishedQuiz(repo, course.ID)
	pendingCode := "TUV678"
	repo.addQuiz(&models.Quiz{
		Title: "Pendiente", CourseID: &course.ID,
		Questions: testQuestions(), Status: models.QuizPublished, AccessCode: &pendingCode,
	})
	repo.addQuiz(&models.Quiz{Title: "Borrador", CourseID: &course.ID, Status: models.QuizDraft})

	svc, _ := newCourseServiceForTest(repo)
	_, _ = svc.Enroll(context.Background(), course.ID, 7)

	score := 7.5
	progressSvc, _ := newProgressServiceForTest(repo)
	if _, err := progressSvc.Submit(context.Background(), 7, done.ID, &validator.SubmitQuizRequest{CourseID: course.ID, Score: &score}); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	views, err := svc.ListCourseQuizzesForStudent(context.Background(), 7, course.ID)
	if err != nil {
		t.Fatalf("ListCourseQuizzesForStudent returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("drafts must be hidden from students, got %d quizzes", len(views))
	}
	for _, v := range views {
		if v.ID == done.ID {
			if v.ProgressStatus != models.ProgressCompleted || v.Score == nil || *v.Score != 7.5 {
				t.Errorf("expected completado 7.5 for quiz %d, got %q %v", v.ID, v.ProgressStatus, v.Score)
			}
		} else if v.ProgressStatus != models.ProgressPending {
			t.Errorf("expected pendiente for quiz %d, got %q", v.ID, v.ProgressStatus)
		}
	}
}

func TestListCourseQuizzesRequiresEnrollment(t *testing.T) {
	repo := newMockRepository()
	course := repo.addCourse(&models.Course{Name: "Historia", Status: models.CourseActive})
	svc, _ := newCourseServiceForTest(repo)

	if _, err := svc.ListCourseQuizzesForStudent(context.Background(), 7, course.ID); !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}
}
