package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotAcquired = errors.New("patient lock not acquired")

const patientLockKeyPrefix = "lock:patient:"

// PatientLocker serializes admission writes for one patient across instances
type PatientLocker interface {
	WithPatientLock(ctx context.Context, patientID string, fn func(ctx context.Context) error) error
}

type redisPatientLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPatientLocker creates a locker backed by one Redis key per patient.
// The key expires after ttl so a crashed holder never blocks the patient forever.
func NewRedisPatientLocker(client *redis.Client, ttl time.Duration) PatientLocker {
	return &redisPatientLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisPatientLocker) WithPatientLock(ctx context.Context, patientID string, fn func(ctx context.Context) error) error {
	key := patientLockKeyPrefix + patientID
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire patient lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		// ctx may already be cancelled, unlock with a fresh one
		releaseCtx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer cancel()
		_ = l.release(releaseCtx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisPatientLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release patient lock: %w", err)
	}
	return nil
}
