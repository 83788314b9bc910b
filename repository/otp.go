package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/sadeeshasathsara/nexa-sub000/domain"

	"github.com/redis/go-redis/v9"
)

type otpRedisRepository struct {
	client *redis.Client
}

func NewOTPRedisRepository(client *redis.Client) domain.OTPRepository {
	return &otpRedisRepository{client: client}
}

func otpKey(email string) string {
	return "otp:" + email
}

// issueScript upserts the OTP record in one round trip so concurrent sends
// serialize on the counter. Each successful issue restamps the TTL, so the
// record expires one window after the latest send, not the first.
var issueScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local ttl = tonumber(ARGV[2])
local hash = ARGV[3]
local now = ARGV[4]
local ip = ARGV[5]

local count = tonumber(redis.call('HGET', key, 'count') or '0')
if count >= limit then
	return -1
end

redis.call('HSET', key, 'code_hash', hash, 'created_at', now, 'client_ip', ip)
local new_count = redis.call('HINCRBY', key, 'count', 1)
redis.call('EXPIRE', key, ttl)
return new_count
`)

func (r *otpRedisRepository) IssueOTP(ctx context.Context, email, codeHash, clientIP string) error {
	res, err := issueScript.Run(ctx, r.client, []string{otpKey(email)},
		domain.OTPMaxPerWindow,
		int(domain.OTPWindow.Seconds()),
		codeHash,
		time.Now().Unix(),
		clientIP,
	).Int64()
	if err != nil {
		return err
	}
	if res < 0 {
		return domain.ErrOTPRateLimited
	}
	return nil
}

func (r *otpRedisRepository) GetOTP(ctx context.Context, email string) (*domain.OTPRecord, error) {
	vals, err := r.client.HGetAll(ctx, otpKey(email)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, domain.ErrOTPNotFound
	}

	count, _ := strconv.Atoi(vals["count"])
	createdAt, _ := strconv.ParseInt(vals["created_at"], 10, 64)

	return &domain.OTPRecord{
		CodeHash:  vals["code_hash"],
		Count:     count,
		CreatedAt: time.Unix(createdAt, 0),
		ClientIP:  vals["client_ip"],
	}, nil
}

func (r *otpRedisRepository) DeleteOTP(ctx context.Context, email string) error {
	return r.client.Del(ctx, otpKey(email)).Err()
}

func otpVerifiedKey(email string) string {
	return "otpok:" + email
}

func (r *otpRedisRepository) MarkVerified(ctx context.Context, email string) error {
	return r.client.Set(ctx, otpVerifiedKey(email), "1", domain.OTPVerifiedTTL).Err()
}

func (r *otpRedisRepository) ConsumeVerified(ctx context.Context, email string) (bool, error) {
	res, err := r.client.GetDel(ctx, otpVerifiedKey(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res != "", nil
}
