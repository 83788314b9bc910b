package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
	adminSessionTTL = 8 * time.Hour
	resetTokenTTL   = time.Hour
)

type authService struct {
	userRepo    domain.UserRepository
	otpRepo     domain.OTPRepository
	sessionRepo domain.SessionRepository
	mailer      utils.Mailer

	accessToken  *utils.JWTManager
	refreshToken *utils.JWTManager
}

func NewAuthService(
	userRepo domain.UserRepository,
	otpRepo domain.OTPRepository,
	sessionRepo domain.SessionRepository,
	mailer utils.Mailer,
	secret string,
) domain.AuthUseCase {
	return &authService{
		userRepo:     userRepo,
		otpRepo:      otpRepo,
		sessionRepo:  sessionRepo,
		mailer:       mailer,
		accessToken:  utils.NewJWTManager(secret, accessTokenTTL),
		refreshToken: utils.NewJWTManager(secret, refreshTokenTTL),
	}
}

func (s *authService) Register(ctx context.Context, in domain.RegisterInput) error {
	if !domain.ValidRegistrationRole(in.Role) {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
	}

	email := utils.NormalizeEmail(in.Email)
	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	// Self-service roles register immediately and must prove the mailbox
	// first; tutor and institution accounts go through admin review instead.
	if in.Role == domain.RoleStudent || in.Role == domain.RoleDonor {
		verified, err := s.otpRepo.ConsumeVerified(ctx, email)
		if err != nil {
			return err
		}
		if !verified {
			return fmt.Errorf("%w: email not verified", domain.ErrValidation)
		}
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return err
	}

	user := &domain.User{
		Name:     utils.NormalizeName(in.Name),
		Email:    email,
		Password: hashed,
		Role:     in.Role,
		Status:   domain.InitialStatus(in.Role),
	}
	switch in.Role {
	case domain.RoleTutor:
		user.TutorProfile = &domain.TutorProfile{Bio: in.Bio}
	case domain.RoleInstitution:
		user.InstitutionProfile = &domain.InstitutionProfile{Website: in.Website}
	}

	return s.userRepo.CreateUser(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.AuthTokens, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, domain.ErrUnauthorized
	}
	switch user.Status {
	case domain.StatusActive:
	case domain.StatusPending:
		return nil, fmt.Errorf("%w: account awaiting approval", domain.ErrForbidden)
	default:
		return nil, fmt.Errorf("%w: account is %s", domain.ErrForbidden, user.Status)
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (*domain.AuthTokens, error) {
	accessToken, err := s.accessToken.GenerateToken(user.UUID, user.Email, user.Role, user.Name)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refreshToken.GenerateToken(user.UUID, user.Email, user.Role, user.Name)
	if err != nil {
		return nil, err
	}
	return &domain.AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error) {
	claims, err := s.refreshToken.VerifyToken(refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	// The account must still exist and be active.
	user, err := s.userRepo.GetUserByUUID(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != domain.StatusActive {
		return nil, domain.ErrUnauthorized
	}

	return s.issueTokens(user)
}

func (s *authService) AdminLogin(ctx context.Context, email, password, clientIP, userAgent string) (string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	if user.Role != domain.RoleAdmin || !utils.CheckPassword(user.Password, password) {
		return "", domain.ErrUnauthorized
	}
	if user.Status != domain.StatusActive {
		return "", domain.ErrUnauthorized
	}

	sess := &domain.Session{
		ID:        uuid.NewString(),
		UserUUID:  user.UUID,
		ClientIP:  clientIP,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.CreateSession(ctx, sess, adminSessionTTL); err != nil {
		return "", err
	}
	return sess.ID, nil
}

func (s *authService) AdminLogout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.DeleteSession(ctx, sessionID)
}

func (s *authService) SendOTP(ctx context.Context, email, clientIP string) error {
	email = utils.NormalizeEmail(email)

	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	codeHash, err := utils.HashPassword(code)
	if err != nil {
		return err
	}

	if err := s.otpRepo.IssueOTP(ctx, email, codeHash, clientIP); err != nil {
		return err
	}

	subject := "Your NEXA verification code"
	body := fmt.Sprintf("Your verification code is: %s (valid for %d minutes)",
		code, int(domain.OTPFreshness.Minutes()))
	if err := s.mailer.Send(email, subject, body); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	// The plaintext code lives only in the email.
	return nil
}

func (s *authService) ValidateOTP(ctx context.Context, email, code string) error {
	email = utils.NormalizeEmail(email)

	record, err := s.otpRepo.GetOTP(ctx, email)
	if err != nil {
		return err
	}
	if time.Since(record.CreatedAt) > domain.OTPFreshness {
		return domain.ErrOTPExpired
	}
	if !utils.CheckPassword(record.CodeHash, code) {
		return domain.ErrOTPMismatch
	}

	// One-time use; success opens the registration window.
	if err := s.otpRepo.DeleteOTP(ctx, email); err != nil {
		return err
	}
	return s.otpRepo.MarkVerified(ctx, email)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the email is registered.
		log.Debug().Str("email", email).Msg("forgot-password for unknown email")
		return nil
	}

	token := uuid.NewString()
	expires := time.Now().Add(resetTokenTTL)
	user.ResetToken = &token
	user.ResetExpires = &expires
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?email=%s&token=%s",
		os.Getenv("FRONTEND_URL"), email, token)
	subject := "Reset your NEXA password"
	body := fmt.Sprintf("Use the link below to reset your password (valid for 1 hour):\n\n%s", resetURL)
	return s.mailer.Send(email, subject, body)
}

func (s *authService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return domain.ErrUnauthorized
	}
	if user.ResetToken == nil || user.ResetExpires == nil {
		return domain.ErrUnauthorized
	}
	if *user.ResetToken != token || time.Now().After(*user.ResetExpires) {
		return domain.ErrUnauthorized
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// Exactly one reset per token.
	user.Password = hashed
	user.ResetToken = nil
	user.ResetExpires = nil
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *authService) ChangePassword(ctx context.Context, userUUID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.Password, oldPassword) {
		return fmt.Errorf("%w: old password mismatch", domain.ErrUnauthorized)
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *authService) Me(ctx context.Context, userUUID string) (*domain.User, error) {
	return s.userRepo.GetUserByUUID(ctx, userUUID)
}

func (s *authService) GetAccessTokenManager() *utils.JWTManager {
	return s.accessToken
}

func (s *authService) GetRefreshTokenManager() *utils.JWTManager {
	return s.refreshToken
}
