package repository

import (
	"context"
	"errors"

	"github.com/sadeeshasathsara/nexa-sub000/domain"

	"gorm.io/gorm"
)

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) domain.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) CreateCourse(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) GetCourseByUUID(ctx context.Context, uuid string) (*domain.Course, error) {
	var course domain.Course
	if err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("lessons.position ASC") }).
		Preload("Quizzes.Questions").
		First(&course, "uuid = ? AND deleted_at IS NULL", uuid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) ListCoursesByTutor(ctx context.Context, tutorUUID string) ([]domain.Course, error) {
	var courses []domain.Course
	if err := r.db.WithContext(ctx).
		Where("tutor_uuid = ? AND deleted_at IS NULL", tutorUUID).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) ListPublishedCourses(ctx context.Context, category string) ([]domain.Course, error) {
	q := r.db.WithContext(ctx).
		Where("status = ? AND approval = ? AND deleted_at IS NULL",
			domain.CoursePublished, domain.ApprovalApproved)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var courses []domain.Course
	if err := q.Preload("Tutor").Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) ListCoursesByInstitution(ctx context.Context, institutionUUID string) ([]domain.Course, error) {
	var courses []domain.Course
	if err := r.db.WithContext(ctx).
		Where("institution_uuid = ? AND deleted_at IS NULL", institutionUUID).
		Preload("Tutor").
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) ListTutorsByInstitution(ctx context.Context, institutionUUID string) ([]domain.User, error) {
	var tutors []domain.User
	if err := r.db.WithContext(ctx).
		Distinct("users.*").
		Joins("JOIN courses ON courses.tutor_uuid = users.uuid").
		Where("courses.institution_uuid = ? AND courses.deleted_at IS NULL AND users.deleted_at IS NULL", institutionUUID).
		Preload("TutorProfile").
		Order("users.name ASC").
		Find(&tutors).Error; err != nil {
		return nil, err
	}
	return tutors, nil
}

func (r *courseRepository) UpdateCourse(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) DeleteCourse(ctx context.Context, uuid string) error {
	res := r.db.WithContext(ctx).Model(&domain.Course{}).
		Where("uuid = ? AND deleted_at IS NULL", uuid).
		Update("deleted_at", gorm.Expr("NOW()"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *courseRepository) AddLesson(ctx context.Context, lesson *domain.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *courseRepository) GetLesson(ctx context.Context, id int) (*domain.Lesson, error) {
	var lesson domain.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

func (r *courseRepository) UpdateLesson(ctx context.Context, lesson *domain.Lesson) error {
	return r.db.WithContext(ctx).Save(lesson).Error
}

func (r *courseRepository) DeleteLesson(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&domain.Lesson{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *courseRepository) AddQuiz(ctx context.Context, quiz *domain.Quiz) error {
	// Questions ride along via the association.
	return r.db.WithContext(ctx).Create(quiz).Error
}

func (r *courseRepository) GetQuiz(ctx context.Context, id int) (*domain.Quiz, error) {
	var quiz domain.Quiz
	if err := r.db.WithContext(ctx).
		Preload("Questions").
		First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *courseRepository) DeleteQuiz(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&domain.Quiz{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *courseRepository) CountEnrollments(ctx context.Context, courseUUID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("course_uuid = ?", courseUUID).
		Count(&count).Error
	return count, err
}
