package domain

import (
	"context"
	"time"
)

const (
	RoleStudent     = "student"
	RoleTutor       = "tutor"
	RoleInstitution = "institution"
	RoleDonor       = "donor"
	RoleAdmin       = "admin"

	StatusPending   = "pending"
	StatusActive    = "active"
	StatusRejected  = "rejected"
	StatusSuspended = "suspended"
)

// ValidRegistrationRole reports whether role is one a caller may self-register
// with. Admin accounts are only seeded or created by other admins.
func ValidRegistrationRole(role string) bool {
	switch role {
	case RoleStudent, RoleTutor, RoleInstitution, RoleDonor:
		return true
	}
	return false
}

// InitialStatus returns the lifecycle status a fresh account starts in.
// Tutors and institutions wait for admin approval.
func InitialStatus(role string) string {
	switch role {
	case RoleTutor, RoleInstitution:
		return StatusPending
	default:
		return StatusActive
	}
}

type User struct {
	UUID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"uuid"`
	Name     string `gorm:"not null;size:100" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null" json:"role"`                    // student | tutor | institution | donor | admin
	Status   string `gorm:"not null;default:'active'" json:"status"` // pending | active | rejected | suspended

	ResetToken   *string    `gorm:"index" json:"-"`
	ResetExpires *time.Time `json:"-"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`

	TutorProfile       *TutorProfile       `gorm:"foreignKey:UserUUID" json:"tutor_profile,omitempty"`
	InstitutionProfile *InstitutionProfile `gorm:"foreignKey:UserUUID" json:"institution_profile,omitempty"`
}

type TutorProfile struct {
	UserUUID   string     `gorm:"primaryKey;type:uuid;constraint:OnDelete:CASCADE;" json:"user_uuid"`
	Bio        string     `gorm:"type:text" json:"bio"`
	Expertise  string     `gorm:"size:100" json:"expertise"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

type InstitutionProfile struct {
	UserUUID    string     `gorm:"primaryKey;type:uuid;constraint:OnDelete:CASCADE;" json:"user_uuid"`
	Description string     `gorm:"type:text" json:"description"`
	Website     string     `gorm:"size:200" json:"website"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUUID(ctx context.Context, uuid string) (*User, error)
	ListUsers(ctx context.Context, role, status string) ([]User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, uuid string) error
}
