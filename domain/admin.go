package domain

import "context"

// Analytics is the admin dashboard snapshot.
type Analytics struct {
	UsersByRole    map[string]int64 `json:"users_by_role"`
	UsersByStatus  map[string]int64 `json:"users_by_status"`
	CourseCount    int64            `json:"course_count"`
	Enrollments    int64            `json:"enrollments"`
	DonationCount  int64            `json:"donation_count"`
	DonationAmount float64          `json:"donation_amount"`
}

type AdminUseCase interface {
	ListUsers(ctx context.Context, role, status string) ([]User, error)
	GetUser(ctx context.Context, uuid string) (*User, error)
	ApproveUser(ctx context.Context, uuid string) error
	RejectUser(ctx context.Context, uuid string) error
	SuspendUser(ctx context.Context, uuid string) error
	ReactivateUser(ctx context.Context, uuid string) error
	DeleteUser(ctx context.Context, uuid string) error

	Analytics(ctx context.Context) (*Analytics, error)
	UserReportCSV(ctx context.Context) ([]byte, error)
}

type AdminRepository interface {
	CountUsersByRole(ctx context.Context) (map[string]int64, error)
	CountUsersByStatus(ctx context.Context) (map[string]int64, error)
	CountCourses(ctx context.Context) (int64, error)
}
