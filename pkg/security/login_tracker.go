package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-portfolio-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for failed-login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before block
	AttemptWindow time.Duration // window for counting attempts
	BlockDuration time.Duration // how long to block after max attempts
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed login attempts per email and per IP and
// enforces temporary blocks. Backed by Redis; when Redis is unavailable it
// fails open so login keeps working (bcrypt remains the gate).
type LoginTracker struct {
	config LoginTrackerConfig
	logger *SecurityLogger
}

// NewLoginTracker creates a login tracker with the given config
func NewLoginTracker(config LoginTrackerConfig) *LoginTracker {
	return &LoginTracker{
		config: config,
		logger: DefaultLogger(),
	}
}

// Redis key patterns
const (
	failLoginEmailPrefix    = "fail:login:email:"
	failLoginIPPrefix       = "fail:login:ip:"
	blockedLoginEmailPrefix = "blocked:login:email:"
	blockedLoginIPPrefix    = "blocked:login:ip:"
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// IsBlocked reports whether the given email or IP is currently blocked.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	client := redis.Client()
	if client == nil {
		return false, nil
	}

	emailKey := blockedLoginEmailPrefix + email
	exists, err := client.Exists(ctx, emailKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check email block: %w", err)
	}
	if exists > 0 {
		return true, nil
	}

	if ip != "" {
		ipKey := blockedLoginIPPrefix + ip
		exists, err := client.Exists(ctx, ipKey).Result()
		if err != nil {
			return false, fmt.Errorf("failed to check IP block: %w", err)
		}
		if exists > 0 {
			return true, nil
		}
	}

	return false, nil
}

// RecordFailedAttempt records a failed login and returns whether the subject
// crossed the block threshold, along with the current attempt count.
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error) {
	client := redis.Client()
	if client == nil {
		return false, 0, errors.New("redis not available for login tracking")
	}

	ttlSeconds := int(lt.config.AttemptWindow.Seconds())

	emailKey := failLoginEmailPrefix + email
	emailCount, err := lt.atomicIncrement(ctx, client, emailKey, ttlSeconds)
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment email counter: %w", err)
	}

	if ip != "" {
		ipKey := failLoginIPPrefix + ip
		if _, err := lt.atomicIncrement(ctx, client, ipKey, ttlSeconds); err != nil {
			return false, emailCount, fmt.Errorf("failed to increment IP counter: %w", err)
		}
	}

	lt.logger.LogEvent(SecurityEvent{
		Event:     EventLoginFailed,
		Subject:   MaskEmail(email),
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Details:   map[string]interface{}{"attempts": emailCount},
	})

	if emailCount >= lt.config.MaxAttempts {
		if err := lt.block(ctx, client, email, ip); err != nil {
			return true, emailCount, err
		}
		lt.logger.LogEvent(SecurityEvent{
			Event:     EventLoginBlocked,
			Subject:   MaskEmail(email),
			IP:        ip,
			RequestID: requestID,
			Details:   map[string]interface{}{"block_minutes": lt.config.BlockDuration.Minutes()},
		})
		return true, emailCount, nil
	}

	return false, emailCount, nil
}

// Reset clears the failure counters after a successful login.
func (lt *LoginTracker) Reset(ctx context.Context, email, ip string) error {
	client := redis.Client()
	if client == nil {
		return nil
	}
	keys := []string{failLoginEmailPrefix + email}
	if ip != "" {
		keys = append(keys, failLoginIPPrefix+ip)
	}
	return client.Del(ctx, keys...).Err()
}

func (lt *LoginTracker) block(ctx context.Context, client *goredis.Client, email, ip string) error {
	if err := client.Set(ctx, blockedLoginEmailPrefix+email, 1, lt.config.BlockDuration).Err(); err != nil {
		return fmt.Errorf("failed to set email block: %w", err)
	}
	if ip != "" {
		if err := client.Set(ctx, blockedLoginIPPrefix+ip, 1, lt.config.BlockDuration).Err(); err != nil {
			return fmt.Errorf("failed to set IP block: %w", err)
		}
	}
	return nil
}

func (lt *LoginTracker) atomicIncrement(ctx context.Context, client *goredis.Client, key string, ttlSeconds int) (int, error) {
	result, err := client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected result type from redis: %T", result)
	}
	return int(count), nil
}
