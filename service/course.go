package service

import (
	"context"
	"fmt"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
)

type courseService struct {
	courseRepo domain.CourseRepository
}

func NewCourseService(courseRepo domain.CourseRepository) domain.CourseUseCase {
	return &courseService{courseRepo: courseRepo}
}

// ownedCourse fetches a course and checks ownership. Non-owners get
// ErrNotFound so the resource's existence is not leaked.
func (s *courseService) ownedCourse(ctx context.Context, tutorUUID, courseUUID string) (*domain.Course, error) {
	course, err := s.courseRepo.GetCourseByUUID(ctx, courseUUID)
	if err != nil {
		return nil, err
	}
	if course.TutorUUID != tutorUUID {
		return nil, domain.ErrNotFound
	}
	return course, nil
}

func (s *courseService) CreateCourse(ctx context.Context, tutorUUID string, course *domain.Course) error {
	course.TutorUUID = tutorUUID
	course.Status = domain.CourseDraft
	course.Approval = domain.ApprovalPending
	return s.courseRepo.CreateCourse(ctx, course)
}

func (s *courseService) GetOwnCourse(ctx context.Context, tutorUUID, courseUUID string) (*domain.Course, error) {
	return s.ownedCourse(ctx, tutorUUID, courseUUID)
}

func (s *courseService) ListOwnCourses(ctx context.Context, tutorUUID string) ([]domain.Course, error) {
	return s.courseRepo.ListCoursesByTutor(ctx, tutorUUID)
}

func (s *courseService) UpdateCourse(ctx context.Context, tutorUUID string, course *domain.Course) error {
	existing, err := s.ownedCourse(ctx, tutorUUID, course.UUID)
	if err != nil {
		return err
	}

	existing.Title = course.Title
	existing.Description = course.Description
	existing.Category = course.Category
	existing.Price = course.Price
	existing.InstitutionUUID = course.InstitutionUUID
	return s.courseRepo.UpdateCourse(ctx, existing)
}

func (s *courseService) DeleteCourse(ctx context.Context, tutorUUID, courseUUID string) error {
	if _, err := s.ownedCourse(ctx, tutorUUID, courseUUID); err != nil {
		return err
	}
	return s.courseRepo.DeleteCourse(ctx, courseUUID)
}

func (s *courseService) PublishCourse(ctx context.Context, tutorUUID, courseUUID string) error {
	course, err := s.ownedCourse(ctx, tutorUUID, courseUUID)
	if err != nil {
		return err
	}
	if course.Approval != domain.ApprovalApproved {
		return fmt.Errorf("%w: course is not approved yet", domain.ErrValidation)
	}
	course.Status = domain.CoursePublished
	return s.courseRepo.UpdateCourse(ctx, course)
}

func (s *courseService) AddLesson(ctx context.Context, tutorUUID string, lesson *domain.Lesson) error {
	if _, err := s.ownedCourse(ctx, tutorUUID, lesson.CourseUUID); err != nil {
		return err
	}
	return s.courseRepo.AddLesson(ctx, lesson)
}

func (s *courseService) UpdateLesson(ctx context.Context, tutorUUID string, lesson *domain.Lesson) error {
	existing, err := s.courseRepo.GetLesson(ctx, lesson.ID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(ctx, tutorUUID, existing.CourseUUID); err != nil {
		return err
	}

	existing.Title = lesson.Title
	existing.ContentURL = lesson.ContentURL
	existing.Position = lesson.Position
	existing.DurationMin = lesson.DurationMin
	return s.courseRepo.UpdateLesson(ctx, existing)
}

func (s *courseService) DeleteLesson(ctx context.Context, tutorUUID string, lessonID int) error {
	lesson, err := s.courseRepo.GetLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(ctx, tutorUUID, lesson.CourseUUID); err != nil {
		return err
	}
	return s.courseRepo.DeleteLesson(ctx, lessonID)
}

func (s *courseService) AddQuiz(ctx context.Context, tutorUUID string, quiz *domain.Quiz) error {
	if _, err := s.ownedCourse(ctx, tutorUUID, quiz.CourseUUID); err != nil {
		return err
	}
	if len(quiz.Questions) == 0 {
		return fmt.Errorf("%w: quiz needs at least one question", domain.ErrValidation)
	}
	for _, q := range quiz.Questions {
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("%w: correct_index out of range", domain.ErrValidation)
		}
	}
	return s.courseRepo.AddQuiz(ctx, quiz)
}

func (s *courseService) DeleteQuiz(ctx context.Context, tutorUUID string, quizID int) error {
	quiz, err := s.courseRepo.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(ctx, tutorUUID, quiz.CourseUUID); err != nil {
		return err
	}
	return s.courseRepo.DeleteQuiz(ctx, quizID)
}

func (s *courseService) CourseEnrollmentCount(ctx context.Context, tutorUUID, courseUUID string) (int64, error) {
	if _, err := s.ownedCourse(ctx, tutorUUID, courseUUID); err != nil {
		return 0, err
	}
	return s.courseRepo.CountEnrollments(ctx, courseUUID)
}

func (s *courseService) ListPublishedCourses(ctx context.Context, category string) ([]domain.Course, error) {
	return s.courseRepo.ListPublishedCourses(ctx, category)
}

func (s *courseService) ListInstitutionCourses(ctx context.Context, institutionUUID string) ([]domain.Course, error) {
	return s.courseRepo.ListCoursesByInstitution(ctx, institutionUUID)
}

func (s *courseService) ListInstitutionTutors(ctx context.Context, institutionUUID string) ([]domain.User, error) {
	return s.courseRepo.ListTutorsByInstitution(ctx, institutionUUID)
}

func (s *courseService) ReviewCourse(ctx context.Context, institutionUUID, courseUUID, decision string) error {
	if decision != domain.ApprovalApproved && decision != domain.ApprovalRejected {
		return fmt.Errorf("%w: decision must be approved or rejected", domain.ErrValidation)
	}

	course, err := s.courseRepo.GetCourseByUUID(ctx, courseUUID)
	if err != nil {
		return err
	}
	if course.InstitutionUUID == nil || *course.InstitutionUUID != institutionUUID {
		return domain.ErrNotFound
	}

	course.Approval = decision
	return s.courseRepo.UpdateCourse(ctx, course)
}
