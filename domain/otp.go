package domain

import (
	"context"
	"time"
)

const (
	// OTPMaxPerWindow caps issuance per email inside one OTPWindow.
	OTPMaxPerWindow = 5
	OTPWindow       = time.Hour
	// OTPFreshness is how long an issued code stays valid.
	OTPFreshness = 5 * time.Minute
	// OTPVerifiedTTL is how long a successful validation opens the
	// registration window for that email.
	OTPVerifiedTTL = 15 * time.Minute
)

// OTPRecord is the live one-time-passcode state for an email. The plaintext
// code is never stored, only its bcrypt hash.
type OTPRecord struct {
	CodeHash  string
	Count     int
	CreatedAt time.Time
	ClientIP  string
}

type OTPRepository interface {
	// IssueOTP atomically increments the request counter and stores the new
	// code hash. Returns ErrOTPRateLimited once the counter hits
	// OTPMaxPerWindow within the window.
	IssueOTP(ctx context.Context, email, codeHash, clientIP string) error
	GetOTP(ctx context.Context, email string) (*OTPRecord, error)
	DeleteOTP(ctx context.Context, email string) error

	// MarkVerified opens a registration window for the email after a
	// successful validation; ConsumeVerified closes it.
	MarkVerified(ctx context.Context, email string) error
	ConsumeVerified(ctx context.Context, email string) (bool, error)
}
