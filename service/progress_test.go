package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
)

type mockProgressRepo struct {
	enrollments map[string]*domain.Enrollment // studentUUID+courseUUID
	progress    map[int][]domain.LessonProgress
	attempts    map[int][]domain.QuizAttempt
	nextID      int
}

func newMockProgressRepo() *mockProgressRepo {
	return &mockProgressRepo{
		enrollments: map[string]*domain.Enrollment{},
		progress:    map[int][]domain.LessonProgress{},
		attempts:    map[int][]domain.QuizAttempt{},
	}
}

func enrollKey(studentUUID, courseUUID string) string {
	return studentUUID + "|" + courseUUID
}

func (m *mockProgressRepo) CreateEnrollment(_ context.Context, e *domain.Enrollment) error {
	key := enrollKey(e.StudentUUID, e.CourseUUID)
	if _, ok := m.enrollments[key]; ok {
		return domain.ErrConflict
	}
	m.nextID++
	e.ID = m.nextID
	m.enrollments[key] = e
	return nil
}

func (m *mockProgressRepo) GetEnrollment(_ context.Context, studentUUID, courseUUID string) (*domain.Enrollment, error) {
	e, ok := m.enrollments[enrollKey(studentUUID, courseUUID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockProgressRepo) ListEnrollments(_ context.Context, studentUUID string) ([]domain.Enrollment, error) {
	var out []domain.Enrollment
	for _, e := range m.enrollments {
		if e.StudentUUID == studentUUID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockProgressRepo) MarkLessonComplete(_ context.Context, p *domain.LessonProgress) error {
	for _, existing := range m.progress[p.EnrollmentID] {
		if existing.LessonID == p.LessonID {
			return nil // idempotent
		}
	}
	m.progress[p.EnrollmentID] = append(m.progress[p.EnrollmentID], *p)
	return nil
}

func (m *mockProgressRepo) ListLessonProgress(_ context.Context, enrollmentID int) ([]domain.LessonProgress, error) {
	return m.progress[enrollmentID], nil
}

func (m *mockProgressRepo) CreateQuizAttempt(_ context.Context, a *domain.QuizAttempt) error {
	m.attempts[a.EnrollmentID] = append(m.attempts[a.EnrollmentID], *a)
	return nil
}

func (m *mockProgressRepo) ListQuizAttempts(_ context.Context, enrollmentID int) ([]domain.QuizAttempt, error) {
	return m.attempts[enrollmentID], nil
}

func (m *mockProgressRepo) CountEnrollments(_ context.Context) (int64, error) {
	return int64(len(m.enrollments)), nil
}

func newProgressFixture(t *testing.T) (domain.ProgressUseCase, *mockCourseRepo, *mockProgressRepo, *domain.Course) {
	t.Helper()

	courses := newMockCourseRepo()
	progresses := newMockProgressRepo()
	svc := NewProgressService(progresses, courses)

	course := &domain.Course{
		Title:    "Algebra I",
		Status:   domain.CoursePublished,
		Approval: domain.ApprovalApproved,
	}
	if err := courses.CreateCourse(context.Background(), course); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	course.TutorUUID = "tutor-1"
	return svc, courses, progresses, course
}

func TestEnroll(t *testing.T) {
	svc, courses, _, course := newProgressFixture(t)
	ctx := context.Background()

	if err := svc.Enroll(ctx, "student-1", course.UUID); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := svc.Enroll(ctx, "student-1", course.UUID); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("double enroll err = %v, want ErrConflict", err)
	}

	// Draft and unapproved courses look nonexistent to students.
	draft := &domain.Course{Title: "Draft", Status: domain.CourseDraft, Approval: domain.ApprovalApproved}
	_ = courses.CreateCourse(ctx, draft)
	if err := svc.Enroll(ctx, "student-1", draft.UUID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("draft enroll err = %v, want ErrNotFound", err)
	}

	unapproved := &domain.Course{Title: "Unapproved", Status: domain.CoursePublished, Approval: domain.ApprovalPending}
	_ = courses.CreateCourse(ctx, unapproved)
	if err := svc.Enroll(ctx, "student-1", unapproved.UUID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unapproved enroll err = %v, want ErrNotFound", err)
	}
}

func TestCompleteLesson(t *testing.T) {
	svc, courses, progresses, course := newProgressFixture(t)
	ctx := context.Background()

	lesson := &domain.Lesson{CourseUUID: course.UUID, Title: "Intro"}
	_ = courses.AddLesson(ctx, lesson)

	other := &domain.Course{Title: "Other", Status: domain.CoursePublished, Approval: domain.ApprovalApproved}
	_ = courses.CreateCourse(ctx, other)
	foreignLesson := &domain.Lesson{CourseUUID: other.UUID, Title: "Elsewhere"}
	_ = courses.AddLesson(ctx, foreignLesson)

	// Must be enrolled first.
	if err := svc.CompleteLesson(ctx, "student-1", course.UUID, lesson.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unenrolled err = %v, want ErrNotFound", err)
	}

	if err := svc.Enroll(ctx, "student-1", course.UUID); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := svc.CompleteLesson(ctx, "student-1", course.UUID, lesson.ID); err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	// Completing twice is a no-op, not an error.
	if err := svc.CompleteLesson(ctx, "student-1", course.UUID, lesson.ID); err != nil {
		t.Fatalf("repeat CompleteLesson: %v", err)
	}

	enrollment, _ := progresses.GetEnrollment(ctx, "student-1", course.UUID)
	done, _ := progresses.ListLessonProgress(ctx, enrollment.ID)
	if len(done) != 1 {
		t.Errorf("lesson progress rows = %d, want 1", len(done))
	}

	// A lesson from a different course is rejected even when enrolled here.
	if err := svc.CompleteLesson(ctx, "student-1", course.UUID, foreignLesson.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign lesson err = %v, want ErrNotFound", err)
	}
}

func TestSubmitQuizScoring(t *testing.T) {
	svc, courses, _, course := newProgressFixture(t)
	ctx := context.Background()

	quiz := &domain.Quiz{
		CourseUUID: course.UUID,
		Title:      "Checkpoint",
		Questions: []domain.QuizQuestion{
			{Prompt: "2+2?", Options: []string{"3", "4"}, CorrectIndex: 1, Points: 2},
			{Prompt: "3*3?", Options: []string{"9", "6"}, CorrectIndex: 0, Points: 3},
			{Prompt: "10/2?", Options: []string{"4", "5"}, CorrectIndex: 1, Points: 1},
		},
	}
	_ = courses.AddQuiz(ctx, quiz)

	if err := svc.Enroll(ctx, "student-1", course.UUID); err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	// Two of three correct: 2 + 0 + 1 points.
	attempt, err := svc.SubmitQuiz(ctx, "student-1", course.UUID, quiz.ID, []int{1, 1, 1})
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if attempt.Score != 3 {
		t.Errorf("score = %d, want 3", attempt.Score)
	}
	if attempt.MaxScore != 6 {
		t.Errorf("max score = %d, want 6", attempt.MaxScore)
	}

	if _, err := svc.SubmitQuiz(ctx, "student-1", course.UUID, quiz.ID, []int{1}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("short answers err = %v, want ErrValidation", err)
	}
	if _, err := svc.SubmitQuiz(ctx, "student-2", course.UUID, quiz.ID, []int{1, 0, 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unenrolled submit err = %v, want ErrNotFound", err)
	}
}

func TestCourseSummary(t *testing.T) {
	svc, courses, _, course := newProgressFixture(t)
	ctx := context.Background()

	lessonA := &domain.Lesson{CourseUUID: course.UUID, Title: "A"}
	lessonB := &domain.Lesson{CourseUUID: course.UUID, Title: "B"}
	_ = courses.AddLesson(ctx, lessonA)
	_ = courses.AddLesson(ctx, lessonB)

	quiz := &domain.Quiz{
		CourseUUID: course.UUID,
		Title:      "Checkpoint",
		Questions: []domain.QuizQuestion{
			{Prompt: "2+2?", Options: []string{"3", "4"}, CorrectIndex: 1, Points: 5},
		},
	}
	_ = courses.AddQuiz(ctx, quiz)

	if err := svc.Enroll(ctx, "student-1", course.UUID); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := svc.CompleteLesson(ctx, "student-1", course.UUID, lessonA.ID); err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}

	// Fail first, pass on retry; the summary takes the best attempt.
	if _, err := svc.SubmitQuiz(ctx, "student-1", course.UUID, quiz.ID, []int{0}); err != nil {
		t.Fatalf("SubmitQuiz attempt 1: %v", err)
	}
	if _, err := svc.SubmitQuiz(ctx, "student-1", course.UUID, quiz.ID, []int{1}); err != nil {
		t.Fatalf("SubmitQuiz attempt 2: %v", err)
	}

	summary, err := svc.CourseSummary(ctx, "student-1", course.UUID)
	if err != nil {
		t.Fatalf("CourseSummary: %v", err)
	}
	if summary.LessonsTotal != 2 || summary.LessonsDone != 1 {
		t.Errorf("lessons = %d/%d, want 1/2", summary.LessonsDone, summary.LessonsTotal)
	}
	if summary.PercentComplete != 50 {
		t.Errorf("percent = %v, want 50", summary.PercentComplete)
	}
	if summary.QuizScore != 5 || summary.QuizMaxScore != 5 {
		t.Errorf("quiz = %d/%d, want 5/5", summary.QuizScore, summary.QuizMaxScore)
	}
}
