package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
)

type adminService struct {
	adminRepo    domain.AdminRepository
	userRepo     domain.UserRepository
	progressRepo domain.ProgressRepository
	donationRepo domain.DonationRepository
}

func NewAdminService(
	adminRepo domain.AdminRepository,
	userRepo domain.UserRepository,
	progressRepo domain.ProgressRepository,
	donationRepo domain.DonationRepository,
) domain.AdminUseCase {
	return &adminService{
		adminRepo:    adminRepo,
		userRepo:     userRepo,
		progressRepo: progressRepo,
		donationRepo: donationRepo,
	}
}

func (s *adminService) ListUsers(ctx context.Context, role, status string) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx, role, status)
}

func (s *adminService) GetUser(ctx context.Context, uuid string) (*domain.User, error) {
	return s.userRepo.GetUserByUUID(ctx, uuid)
}

func (s *adminService) setStatus(ctx context.Context, uuid, from, to string) error {
	user, err := s.userRepo.GetUserByUUID(ctx, uuid)
	if err != nil {
		return err
	}
	if from != "" && user.Status != from {
		return fmt.Errorf("%w: account is %s, not %s", domain.ErrValidation, user.Status, from)
	}
	user.Status = to
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *adminService) ApproveUser(ctx context.Context, uuid string) error {
	user, err := s.userRepo.GetUserByUUID(ctx, uuid)
	if err != nil {
		return err
	}
	if user.Status != domain.StatusPending {
		return fmt.Errorf("%w: account is %s, not pending", domain.ErrValidation, user.Status)
	}

	now := time.Now()
	user.Status = domain.StatusActive
	if user.TutorProfile != nil {
		user.TutorProfile.VerifiedAt = &now
	}
	if user.InstitutionProfile != nil {
		user.InstitutionProfile.VerifiedAt = &now
	}
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *adminService) RejectUser(ctx context.Context, uuid string) error {
	return s.setStatus(ctx, uuid, domain.StatusPending, domain.StatusRejected)
}

func (s *adminService) SuspendUser(ctx context.Context, uuid string) error {
	return s.setStatus(ctx, uuid, domain.StatusActive, domain.StatusSuspended)
}

func (s *adminService) ReactivateUser(ctx context.Context, uuid string) error {
	return s.setStatus(ctx, uuid, domain.StatusSuspended, domain.StatusActive)
}

func (s *adminService) DeleteUser(ctx context.Context, uuid string) error {
	return s.userRepo.DeleteUser(ctx, uuid)
}

func (s *adminService) Analytics(ctx context.Context) (*domain.Analytics, error) {
	byRole, err := s.adminRepo.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.adminRepo.CountUsersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.adminRepo.CountCourses(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.progressRepo.CountEnrollments(ctx)
	if err != nil {
		return nil, err
	}
	donationCount, donationSum, err := s.donationRepo.DonationTotals(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Analytics{
		UsersByRole:    byRole,
		UsersByStatus:  byStatus,
		CourseCount:    courses,
		Enrollments:    enrollments,
		DonationCount:  donationCount,
		DonationAmount: donationSum,
	}, nil
}

func (s *adminService) UserReportCSV(ctx context.Context) ([]byte, error) {
	users, err := s.userRepo.ListUsers(ctx, "", "")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"uuid", "name", "email", "role", "status", "created_at"})
	for _, u := range users {
		_ = w.Write([]string{
			u.UUID, u.Name, u.Email, u.Role, u.Status,
			u.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
