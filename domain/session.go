package domain

import (
	"context"
	"time"
)

// Session is a server-side admin session record. It stays valid only while
// unexpired and while the referenced account still exists and is active.
type Session struct {
	ID        string    `json:"id"`
	UserUUID  string    `json:"user_uuid"`
	ClientIP  string    `json:"client_ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionRepository interface {
	CreateSession(ctx context.Context, sess *Session, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
}
