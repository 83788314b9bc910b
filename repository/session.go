package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/sadeeshasathsara/nexa-sub000/domain"

	"github.com/redis/go-redis/v9"
)

type sessionRedisRepository struct {
	client *redis.Client
}

func NewSessionRedisRepository(client *redis.Client) domain.SessionRepository {
	return &sessionRedisRepository{client: client}
}

func sessionKey(id string) string {
	return "sess:" + id
}

func (r *sessionRedisRepository) CreateSession(ctx context.Context, sess *domain.Session, ttl time.Duration) error {
	key := sessionKey(sess.ID)
	data := map[string]string{
		"user_uuid":  sess.UserUUID,
		"client_ip":  sess.ClientIP,
		"user_agent": sess.UserAgent,
		"created_at": strconv.FormatInt(sess.CreatedAt.Unix(), 10),
	}
	if err := r.client.HSet(ctx, key, data).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, ttl).Err()
}

func (r *sessionRedisRepository) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	vals, err := r.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, domain.ErrNotFound
	}

	createdAt, _ := strconv.ParseInt(vals["created_at"], 10, 64)
	return &domain.Session{
		ID:        id,
		UserUUID:  vals["user_uuid"],
		ClientIP:  vals["client_ip"],
		UserAgent: vals["user_agent"],
		CreatedAt: time.Unix(createdAt, 0),
	}, nil
}

func (r *sessionRedisRepository) DeleteSession(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}
