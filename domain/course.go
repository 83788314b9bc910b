package domain

import (
	"context"
	"time"
)

const (
	CourseDraft     = "draft"
	CoursePublished = "published"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type Course struct {
	UUID            string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"uuid"`
	TutorUUID       string  `gorm:"type:uuid;not null;index" json:"tutor_uuid"`
	InstitutionUUID *string `gorm:"type:uuid;index" json:"institution_uuid,omitempty"`
	Title           string  `gorm:"not null;size:150" json:"title"`
	Description     string  `gorm:"type:text" json:"description"`
	Category        string  `gorm:"size:50;index" json:"category"`
	Price           float64 `gorm:"not null;default:0" json:"price"`
	Status          string  `gorm:"size:20;not null;default:'draft'" json:"status"`     // draft | published
	Approval        string  `gorm:"size:20;not null;default:'pending'" json:"approval"` // pending | approved | rejected

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`

	Tutor   *User    `gorm:"foreignKey:TutorUUID;references:UUID" json:"tutor,omitempty"`
	Lessons []Lesson `gorm:"foreignKey:CourseUUID;constraint:OnDelete:CASCADE;" json:"lessons,omitempty"`
	Quizzes []Quiz   `gorm:"foreignKey:CourseUUID;constraint:OnDelete:CASCADE;" json:"quizzes,omitempty"`
}

type Lesson struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	CourseUUID  string    `gorm:"type:uuid;not null;index" json:"course_uuid"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	Title       string    `gorm:"not null;size:150" json:"title"`
	ContentURL  string    `gorm:"type:text" json:"content_url"`
	DurationMin int       `gorm:"not null;default:0" json:"duration_min"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Quiz struct {
	ID         int            `gorm:"primaryKey" json:"id"`
	CourseUUID string         `gorm:"type:uuid;not null;index" json:"course_uuid"`
	Title      string         `gorm:"not null;size:150" json:"title"`
	Questions  []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE;" json:"questions,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

type QuizQuestion struct {
	ID           int      `gorm:"primaryKey" json:"id"`
	QuizID       int      `gorm:"not null;index" json:"quiz_id"`
	Prompt       string   `gorm:"type:text;not null" json:"prompt"`
	Options      []string `gorm:"serializer:json;type:jsonb" json:"options"`
	CorrectIndex int      `gorm:"not null" json:"-"` // never leaked to students
	Points       int      `gorm:"not null;default:1" json:"points"`
}

type CourseRepository interface {
	CreateCourse(ctx context.Context, course *Course) error
	GetCourseByUUID(ctx context.Context, uuid string) (*Course, error)
	ListCoursesByTutor(ctx context.Context, tutorUUID string) ([]Course, error)
	ListPublishedCourses(ctx context.Context, category string) ([]Course, error)
	ListCoursesByInstitution(ctx context.Context, institutionUUID string) ([]Course, error)
	ListTutorsByInstitution(ctx context.Context, institutionUUID string) ([]User, error)
	UpdateCourse(ctx context.Context, course *Course) error
	DeleteCourse(ctx context.Context, uuid string) error

	AddLesson(ctx context.Context, lesson *Lesson) error
	GetLesson(ctx context.Context, id int) (*Lesson, error)
	UpdateLesson(ctx context.Context, lesson *Lesson) error
	DeleteLesson(ctx context.Context, id int) error

	AddQuiz(ctx context.Context, quiz *Quiz) error
	GetQuiz(ctx context.Context, id int) (*Quiz, error)
	DeleteQuiz(ctx context.Context, id int) error

	CountEnrollments(ctx context.Context, courseUUID string) (int64, error)
}

type CourseUseCase interface {
	// Tutor-scoped; every mutation checks the caller owns the course and
	// reports ErrNotFound otherwise.
	CreateCourse(ctx context.Context, tutorUUID string, course *Course) error
	GetOwnCourse(ctx context.Context, tutorUUID, courseUUID string) (*Course, error)
	ListOwnCourses(ctx context.Context, tutorUUID string) ([]Course, error)
	UpdateCourse(ctx context.Context, tutorUUID string, course *Course) error
	DeleteCourse(ctx context.Context, tutorUUID, courseUUID string) error
	PublishCourse(ctx context.Context, tutorUUID, courseUUID string) error

	AddLesson(ctx context.Context, tutorUUID string, lesson *Lesson) error
	UpdateLesson(ctx context.Context, tutorUUID string, lesson *Lesson) error
	DeleteLesson(ctx context.Context, tutorUUID string, lessonID int) error

	AddQuiz(ctx context.Context, tutorUUID string, quiz *Quiz) error
	DeleteQuiz(ctx context.Context, tutorUUID string, quizID int) error

	CourseEnrollmentCount(ctx context.Context, tutorUUID, courseUUID string) (int64, error)

	// Public catalog.
	ListPublishedCourses(ctx context.Context, category string) ([]Course, error)

	// Institution-scoped approval.
	ListInstitutionCourses(ctx context.Context, institutionUUID string) ([]Course, error)
	ListInstitutionTutors(ctx context.Context, institutionUUID string) ([]User, error)
	ReviewCourse(ctx context.Context, institutionUUID, courseUUID, decision string) error
}
