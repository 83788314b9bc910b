package service

import (
	"context"
	"fmt"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
)

type progressService struct {
	progressRepo domain.ProgressRepository
	courseRepo   domain.CourseRepository
}

func NewProgressService(progressRepo domain.ProgressRepository, courseRepo domain.CourseRepository) domain.ProgressUseCase {
	return &progressService{progressRepo: progressRepo, courseRepo: courseRepo}
}

func (s *progressService) Enroll(ctx context.Context, studentUUID, courseUUID string) error {
	course, err := s.courseRepo.GetCourseByUUID(ctx, courseUUID)
	if err != nil {
		return err
	}
	if course.Status != domain.CoursePublished || course.Approval != domain.ApprovalApproved {
		return domain.ErrNotFound
	}

	if _, err := s.progressRepo.GetEnrollment(ctx, studentUUID, courseUUID); err == nil {
		return fmt.Errorf("%w: already enrolled", domain.ErrConflict)
	}

	return s.progressRepo.CreateEnrollment(ctx, &domain.Enrollment{
		StudentUUID: studentUUID,
		CourseUUID:  courseUUID,
	})
}

func (s *progressService) ListMyEnrollments(ctx context.Context, studentUUID string) ([]domain.Enrollment, error) {
	return s.progressRepo.ListEnrollments(ctx, studentUUID)
}

// ownEnrollment resolves the caller's enrollment; a student acting on a course
// they never enrolled in gets ErrNotFound.
func (s *progressService) ownEnrollment(ctx context.Context, studentUUID, courseUUID string) (*domain.Enrollment, error) {
	return s.progressRepo.GetEnrollment(ctx, studentUUID, courseUUID)
}

func (s *progressService) CompleteLesson(ctx context.Context, studentUUID, courseUUID string, lessonID int) error {
	enrollment, err := s.ownEnrollment(ctx, studentUUID, courseUUID)
	if err != nil {
		return err
	}

	lesson, err := s.courseRepo.GetLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	if lesson.CourseUUID != courseUUID {
		return domain.ErrNotFound
	}

	return s.progressRepo.MarkLessonComplete(ctx, &domain.LessonProgress{
		EnrollmentID: enrollment.ID,
		LessonID:     lessonID,
	})
}

func (s *progressService) SubmitQuiz(ctx context.Context, studentUUID, courseUUID string, quizID int, answers []int) (*domain.QuizAttempt, error) {
	enrollment, err := s.ownEnrollment(ctx, studentUUID, courseUUID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.courseRepo.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.CourseUUID != courseUUID {
		return nil, domain.ErrNotFound
	}
	if len(answers) != len(quiz.Questions) {
		return nil, fmt.Errorf("%w: expected %d answers, got %d",
			domain.ErrValidation, len(quiz.Questions), len(answers))
	}

	score, maxScore := 0, 0
	for i, question := range quiz.Questions {
		maxScore += question.Points
		if answers[i] == question.CorrectIndex {
			score += question.Points
		}
	}

	attempt := &domain.QuizAttempt{
		EnrollmentID: enrollment.ID,
		QuizID:       quizID,
		Score:        score,
		MaxScore:     maxScore,
	}
	if err := s.progressRepo.CreateQuizAttempt(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *progressService) CourseSummary(ctx context.Context, studentUUID, courseUUID string) (*domain.ProgressSummary, error) {
	enrollment, err := s.ownEnrollment(ctx, studentUUID, courseUUID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetCourseByUUID(ctx, courseUUID)
	if err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.ListLessonProgress(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.progressRepo.ListQuizAttempts(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}

	// Best score per quiz counts towards the summary.
	bestScore := map[int]int{}
	maxByQuiz := map[int]int{}
	for _, a := range attempts {
		if a.Score > bestScore[a.QuizID] {
			bestScore[a.QuizID] = a.Score
		}
		maxByQuiz[a.QuizID] = a.MaxScore
	}

	summary := &domain.ProgressSummary{
		CourseUUID:   courseUUID,
		LessonsTotal: len(course.Lessons),
		LessonsDone:  len(progress),
	}
	if summary.LessonsTotal > 0 {
		summary.PercentComplete = float64(summary.LessonsDone) / float64(summary.LessonsTotal) * 100
	}
	for quizID, score := range bestScore {
		summary.QuizScore += score
		summary.QuizMaxScore += maxByQuiz[quizID]
	}
	return summary, nil
}
