package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/events"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewCourseService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher, logger utils.Logger) CourseService {
	return &courseService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *courseService) Create(ctx context.Context, req *validator.CourseCreateRequest) (*models.Course, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	course := &models.Course{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.CourseActive,
		TeacherName: models.UnassignedTeacher,
	}
	if req.Status != "" {
		course.Status = req.Status
	}
	if req.TeacherName != nil && *req.TeacherName != "" {
		course.TeacherName = *req.TeacherName
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created", "course_id", course.ID, "name", course.Name)
	return course, nil
}

func (s *courseService) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters) ([]models.Course, int64, error) {
	return s.repo.Course().List(ctx, filters)
}

func (s *courseService) Update(ctx context.Context, id uint, req *validator.CourseUpdateRequest) (*models.Course, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Status != nil {
		course.Status = *req.Status
	}
	if req.TeacherName != nil {
		if *req.TeacherName == "" {
			course.TeacherName = models.UnassignedTeacher
		} else {
			course.TeacherName = *req.TeacherName
		}
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) UpdateStatus(ctx context.Context, id uint, status models.CourseStatus) (*models.Course, error) {
	course, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Status = status
	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete refuses to remove a course that still has enrolled students.
func (s *courseService) Delete(ctx context.Context, id uint) error {
	return s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if _, err := tx.Course().GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		count, err := tx.Course().CountStudents(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCourseHasStudents
		}

		return tx.Course().Delete(ctx, id)
	})
}

func (s *courseService) ListByTeacher(ctx context.Context, teacherName string) ([]models.Course, error) {
	return s.repo.Course().ListByTeacherName(ctx, teacherName)
}

// ListActiveForStudent returns the enrollable catalog, flagging the courses
// the student already joined.
func (s *courseService) ListActiveForStudent(ctx context.Context, studentID uint) ([]StudentCourseView, error) {
	active := models.CourseActive
	courses, _, err := s.repo.Course().List(ctx, repositories.CourseFilters{Status: &active})
	if err != nil {
		return nil, err
	}

	enrolledIDs, err := s.repo.Course().ListEnrolledCourseIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	enrolled := make(map[uint]bool, len(enrolledIDs))
	for _, id := range enrolledIDs {
		enrolled[id] = true
	}

	views := make([]StudentCourseView, len(courses))
	for i, c := range courses {
		views[i] = StudentCourseView{Course: c, AlreadyEnrolled: enrolled[c.ID]}
	}
	return views, nil
}

func (s *courseService) ListEnrolled(ctx context.Context, studentID uint) ([]models.Course, error) {
	ids, err := s.repo.Course().ListEnrolledCourseIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.repo.Course().ListByIDs(ctx, ids)
}

// ListCourseQuizzesForStudent returns the published quizzes of one enrolled
// course, each merged with the student's progress.
func (s *courseService) ListCourseQuizzesForStudent(ctx context.Context, studentID, courseID uint) ([]StudentQuizView, error) {
	if _, err := s.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	isEnrolled, err := s.repo.Course().IsEnrolled(ctx, courseID, studentID)
	if err != nil {
		return nil, err
	}
	if !isEnrolled {
		return nil, ErrNotEnrolled
	}

	quizzes, err := s.repo.Quiz().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.repo.Progress().ListByUserAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	byQuiz := make(map[uint]*models.StudentQuizProgress, len(progress))
	for i := range progress {
		byQuiz[progress[i].QuizID] = &progress[i]
	}

	views := make([]StudentQuizView, 0, len(quizzes))
	for _, q := range quizzes {
		if !q.IsPublished() {
			continue
		}
		view := StudentQuizView{Quiz: q, ProgressStatus: models.ProgressPending}
		if p, ok := byQuiz[q.ID]; ok {
			view.ProgressStatus = p.Status
			view.Score = p.Score
		}
		views = append(views, view)
	}
	return views, nil
}

// Enroll adds the student and recomputes the denormalized student counter
// from the enrollment table, all in one transaction.
func (s *courseService) Enroll(ctx context.Context, courseID, studentID uint) (*models.Course, error) {
	var course *models.Course

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		course, err = tx.Course().GetByID(ctx, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		if course.Status != models.CourseActive {
			return ErrCourseNotActive
		}

		if err := tx.Course().AddStudent(ctx, courseID, studentID); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyEnrolled
			}
			return err
		}

		count, err := tx.Course().CountStudents(ctx, courseID)
		if err != nil {
			return err
		}
		course.StudentCount = int(count)
		return tx.Course().SetStudentCount(ctx, courseID, count)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeCourseEnrolled, events.CourseEnrollmentEvent{
		CourseID:     courseID,
		StudentID:    studentID,
		StudentCount: course.StudentCount,
	})

	s.logger.Info("student enrolled", "course_id", courseID, "student_id", studentID)
	return course, nil
}

// Leave removes the student and recomputes the counter the same way Enroll
// does.
func (s *courseService) Leave(ctx context.Context, courseID, studentID uint) (*models.Course, error) {
	var course *models.Course

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		course, err = tx.Course().GetByID(ctx, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		if err := tx.Course().RemoveStudent(ctx, courseID, studentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotEnrolled
			}
			return err
		}

		count, err := tx.Course().CountStudents(ctx, courseID)
		if err != nil {
			return err
		}
		course.StudentCount = int(count)
		return tx.Course().SetStudentCount(ctx, courseID, count)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeCourseLeft, events.CourseEnrollmentEvent{
		CourseID:     courseID,
		StudentID:    studentID,
		StudentCount: course.StudentCount,
	})

	s.logger.Info("student left course", "course_id", courseID, "student_id", studentID)
	return course, nil
}

func (s *courseService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("failed to publish event", "type", eventType, "error", err)
	}
}
