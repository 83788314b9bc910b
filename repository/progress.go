package repository

import (
	"context"
	"errors"

	"github.com/sadeeshasathsara/nexa-sub000/domain"

	"gorm.io/gorm"
)

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) domain.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) CreateEnrollment(ctx context.Context, e *domain.Enrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *progressRepository) GetEnrollment(ctx context.Context, studentUUID, courseUUID string) (*domain.Enrollment, error) {
	var e domain.Enrollment
	if err := r.db.WithContext(ctx).
		First(&e, "student_uuid = ? AND course_uuid = ?", studentUUID, courseUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *progressRepository) ListEnrollments(ctx context.Context, studentUUID string) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	if err := r.db.WithContext(ctx).
		Where("student_uuid = ?", studentUUID).
		Preload("Course").
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *progressRepository) MarkLessonComplete(ctx context.Context, p *domain.LessonProgress) error {
	// Idempotent: completing the same lesson twice is a no-op.
	return r.db.WithContext(ctx).
		Where("enrollment_id = ? AND lesson_id = ?", p.EnrollmentID, p.LessonID).
		FirstOrCreate(p).Error
}

func (r *progressRepository) ListLessonProgress(ctx context.Context, enrollmentID int) ([]domain.LessonProgress, error) {
	var progress []domain.LessonProgress
	if err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Find(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *progressRepository) CreateQuizAttempt(ctx context.Context, a *domain.QuizAttempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *progressRepository) ListQuizAttempts(ctx context.Context, enrollmentID int) ([]domain.QuizAttempt, error) {
	var attempts []domain.QuizAttempt
	if err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Order("submitted_at ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *progressRepository) CountEnrollments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).Count(&count).Error
	return count, err
}
