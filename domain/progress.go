package domain

import (
	"context"
	"time"
)

type Enrollment struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	StudentUUID string    `gorm:"type:uuid;not null;uniqueIndex:idx_enroll_student_course" json:"student_uuid"`
	CourseUUID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_enroll_student_course" json:"course_uuid"`
	EnrolledAt  time.Time `gorm:"autoCreateTime" json:"enrolled_at"`

	Course *Course `gorm:"foreignKey:CourseUUID;references:UUID" json:"course,omitempty"`
}

type LessonProgress struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	EnrollmentID int       `gorm:"not null;uniqueIndex:idx_progress_enroll_lesson" json:"enrollment_id"`
	LessonID     int       `gorm:"not null;uniqueIndex:idx_progress_enroll_lesson" json:"lesson_id"`
	CompletedAt  time.Time `gorm:"autoCreateTime" json:"completed_at"`
}

type QuizAttempt struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	EnrollmentID int       `gorm:"not null;index" json:"enrollment_id"`
	QuizID       int       `gorm:"not null;index" json:"quiz_id"`
	Score        int       `gorm:"not null" json:"score"`
	MaxScore     int       `gorm:"not null" json:"max_score"`
	SubmittedAt  time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}

// ProgressSummary aggregates a student's standing in one course.
type ProgressSummary struct {
	CourseUUID      string  `json:"course_uuid"`
	LessonsTotal    int     `json:"lessons_total"`
	LessonsDone     int     `json:"lessons_done"`
	PercentComplete float64 `json:"percent_complete"`
	QuizScore       int     `json:"quiz_score"`
	QuizMaxScore    int     `json:"quiz_max_score"`
}

type ProgressRepository interface {
	CreateEnrollment(ctx context.Context, e *Enrollment) error
	GetEnrollment(ctx context.Context, studentUUID, courseUUID string) (*Enrollment, error)
	ListEnrollments(ctx context.Context, studentUUID string) ([]Enrollment, error)

	MarkLessonComplete(ctx context.Context, p *LessonProgress) error
	ListLessonProgress(ctx context.Context, enrollmentID int) ([]LessonProgress, error)

	CreateQuizAttempt(ctx context.Context, a *QuizAttempt) error
	ListQuizAttempts(ctx context.Context, enrollmentID int) ([]QuizAttempt, error)

	CountEnrollments(ctx context.Context) (int64, error)
}

type ProgressUseCase interface {
	Enroll(ctx context.Context, studentUUID, courseUUID string) error
	ListMyEnrollments(ctx context.Context, studentUUID string) ([]Enrollment, error)
	CompleteLesson(ctx context.Context, studentUUID, courseUUID string, lessonID int) error
	SubmitQuiz(ctx context.Context, studentUUID, courseUUID string, quizID int, answers []int) (*QuizAttempt, error)
	CourseSummary(ctx context.Context, studentUUID, courseUUID string) (*ProgressSummary, error)
}
