package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/models"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testValidator() *validator.Validator {
	return validator.New()
}

// mockRepository is an in-memory repositories.Repository. Unique indexes are
// simulated so duplicate-key paths behave like PostgreSQL with error
// translation on.
type mockRepository struct {
	mu sync.Mutex

	quizzes     map[uint]*models.Quiz
	courses     map[uint]*models.Course
	enrollments map[[2]uint]bool
	progress    map[[2]uint]*models.StudentQuizProgress
	users       map[uint]*models.User

	nextQuizID     uint
	nextCourseID   uint
	nextProgressID uint
	nextUserID     uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		quizzes:     make(map[uint]*models.Quiz),
		courses:     make(map[uint]*models.Course),
		enrollments: make(map[[2]uint]bool),
		progress:    make(map[[2]uint]*models.StudentQuizProgress),
		users:       make(map[uint]*models.User),
	}
}

func (m *mockRepository) Quiz() repositories.QuizRepository           { return (*mockQuizRepo)(m) }
func (m *mockRepository) Course() repositories.CourseRepository       { return (*mockCourseRepo)(m) }
func (m *mockRepository) Progress() repositories.ProgressRepository   { return (*mockProgressRepo)(m) }
func (m *mockRepository) User() repositories.UserRepository           { return (*mockUserRepo)(m) }
func (m *mockRepository) Dashboard() repositories.DashboardRepository { return (*mockDashboardRepo)(m) }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

func (m *mockRepository) addCourse(course *models.Course) *models.Course {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCourseID++
	course.ID = m.nextCourseID
	if course.Status == "" {
		course.Status = models.CourseActive
	}
	m.courses[course.ID] = course
	return course
}

func (m *mockRepository) addQuiz(quiz *models.Quiz) *models.Quiz {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextQuizID++
	quiz.ID = m.nextQuizID
	m.quizzes[quiz.ID] = quiz
	return quiz
}

func (m *mockRepository) codeTaken(code string, exceptQuizID uint) bool {
	for id, q := range m.quizzes {
		if id != exceptQuizID && q.AccessCode != nil && *q.AccessCode == code {
			return true
		}
	}
	return false
}

type mockQuizRepo mockRepository

func (m *mockQuizRepo) Create(ctx context.Context, quiz *models.Quiz) error {
	(*mockRepository)(m).addQuiz(quiz)
	return nil
}

func (m *mockQuizRepo) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	quiz, ok := m.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *quiz
	return &copied, nil
}

func (m *mockQuizRepo) GetByAccessCode(ctx context.Context, code string) (*models.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.quizzes {
		if q.AccessCode != nil && *q.AccessCode == code {
			copied := *q
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockQuizRepo) List(ctx context.Context, filters repositories.QuizFilters) ([]models.Quiz, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Quiz
	for _, q := range m.quizzes {
		if filters.CourseID != nil && (q.CourseID == nil || *q.CourseID != *filters.CourseID) {
			continue
		}
		if filters.Status != nil && q.Status != *filters.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

func (m *mockQuizRepo) ListByCourse(ctx context.Context, courseID uint) ([]models.Quiz, error) {
	quizzes, _, err := m.List(ctx, repositories.QuizFilters{CourseID: &courseID})
	return quizzes, err
}

func (m *mockQuizRepo) Update(ctx context.Context, quiz *models.Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[quiz.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if quiz.AccessCode != nil && (*mockRepository)(m).codeTaken(*quiz.AccessCode, quiz.ID) {
		return gorm.ErrDuplicatedKey
	}
	copied := *quiz
	m.quizzes[quiz.ID] = &copied
	return nil
}

func (m *mockQuizRepo) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.quizzes, id)
	return nil
}

type mockCourseRepo mockRepository

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	(*mockRepository)(m).addCourse(course)
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	course, ok := m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *course
	return &copied, nil
}

func (m *mockCourseRepo) List(ctx context.Context, filters repositories.CourseFilters) ([]models.Course, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Course
	for _, c := range m.courses {
		if filters.Status != nil && c.Status != *filters.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (m *mockCourseRepo) ListByIDs(ctx context.Context, ids []uint) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Course
	for _, id := range ids {
		if c, ok := m.courses[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) ListByTeacherName(ctx context.Context, teacherName string) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Course
	for _, c := range m.courses {
		if c.TeacherName == teacherName {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *course
	m.courses[course.ID] = &copied
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) AddStudent(ctx context.Context, courseID, studentID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uint{courseID, studentID}
	if m.enrollments[key] {
		return gorm.ErrDuplicatedKey
	}
	m.enrollments[key] = true
	return nil
}

func (m *mockCourseRepo) RemoveStudent(ctx context.Context, courseID, studentID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uint{courseID, studentID}
	if !m.enrollments[key] {
		return gorm.ErrRecordNotFound
	}
	delete(m.enrollments, key)
	return nil
}

func (m *mockCourseRepo) IsEnrolled(ctx context.Context, courseID, studentID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enrollments[[2]uint{courseID, studentID}], nil
}

func (m *mockCourseRepo) CountStudents(ctx context.Context, courseID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for key := range m.enrollments {
		if key[0] == courseID {
			count++
		}
	}
	return count, nil
}

func (m *mockCourseRepo) SetStudentCount(ctx context.Context, courseID uint, count int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	course, ok := m.courses[courseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	course.StudentCount = int(count)
	return nil
}

func (m *mockCourseRepo) AdjustQuizCount(ctx context.Context, courseID uint, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	course, ok := m.courses[courseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	course.QuizCount += delta
	if course.QuizCount < 0 {
		course.QuizCount = 0
	}
	return nil
}

func (m *mockCourseRepo) ListEnrolledCourseIDs(ctx context.Context, studentID uint) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uint
	for key := range m.enrollments {
		if key[1] == studentID {
			ids = append(ids, key[0])
		}
	}
	return ids, nil
}

type mockProgressRepo mockRepository

func (m *mockProgressRepo) CreateIfAbsent(ctx context.Context, progress *models.StudentQuizProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uint{progress.UserID, progress.QuizID}
	if _, ok := m.progress[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.nextProgressID++
	progress.ID = m.nextProgressID
	copied := *progress
	m.progress[key] = &copied
	return nil
}

func (m *mockProgressRepo) GetByUserAndQuiz(ctx context.Context, userID, quizID uint) (*models.StudentQuizProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.progress[[2]uint{userID, quizID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockProgressRepo) ListByUserAndCourse(ctx context.Context, userID, courseID uint) ([]models.StudentQuizProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.StudentQuizProgress
	for key, p := range m.progress {
		if key[0] == userID && p.CourseID == courseID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProgressRepo) ListByQuiz(ctx context.Context, quizID uint) ([]models.StudentQuizProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.StudentQuizProgress
	for key, p := range m.progress {
		if key[1] == quizID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProgressRepo) ListCourseResults(ctx context.Context, courseID uint) ([]repositories.CourseResultRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repositories.CourseResultRow
	for _, p := range m.progress {
		if p.CourseID != courseID || p.Status != models.ProgressCompleted {
			continue
		}
		row := repositories.CourseResultRow{Score: p.Score, FinishedAt: p.FinishedAt}
		if u, ok := m.users[p.UserID]; ok {
			row.StudentName = u.Name
			row.StudentEmail = u.Email
		}
		if q, ok := m.quizzes[p.QuizID]; ok {
			row.QuizTitle = q.Title
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *mockProgressRepo) DeleteByQuiz(ctx context.Context, quizID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.progress {
		if key[1] == quizID {
			delete(m.progress, key)
		}
	}
	return nil
}

type mockUserRepo mockRepository

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextUserID++
	user.ID = m.nextUserID
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		if filters.Status != nil && u.Status != *filters.Status {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

type mockDashboardRepo mockRepository

func (m *mockDashboardRepo) GetStats(ctx context.Context) (*repositories.DashboardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &repositories.DashboardStats{
		TotalUsers:   int64(len(m.users)),
		TotalCourses: int64(len(m.courses)),
		TotalQuizzes: int64(len(m.quizzes)),
	}
	for _, u := range m.users {
		switch u.Role {
		case models.RoleTeacher:
			stats.TotalTeachers++
		case models.RoleStudent:
			stats.TotalStudents++
		}
	}
	for _, c := range m.courses {
		if c.Status == models.CourseActive {
			stats.ActiveCourses++
		}
	}
	for _, q := range m.quizzes {
		if q.Status == models.QuizPublished {
			stats.PublishedQuizzes++
		}
	}
	for _, p := range m.progress {
		if p.Status == models.ProgressCompleted {
			stats.TotalCompletions++
		}
	}
	return stats, nil
}
