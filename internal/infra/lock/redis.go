package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "car-rental:lock:"

// releaseScript удаляет ключ только если он все еще принадлежит владельцу токена
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// RedisLocker распределенный лок на SET NX PX для нескольких инстансов сервиса
type RedisLocker struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
	waitTimeout   time.Duration
	logger        Logger
}

func NewRedisLocker(client *redis.Client, ttl, retryInterval, waitTimeout time.Duration, logger Logger) *RedisLocker {
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		retryInterval: retryInterval,
		waitTimeout:   waitTimeout,
		logger:        logger,
	}
}

// Lock пытается взять лок, повторяя попытки каждые retryInterval, пока не истечет waitTimeout
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	deadline := time.NewTimer(l.waitTimeout)
	defer deadline.Stop()

	for {
		acquired, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: SetNX key=%s: %v", ErrLockBackend, redisKey, err)
		}
		if acquired {
			return l.unlockFunc(redisKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: key=%s: %v", ErrLockTimeout, redisKey, ctx.Err())
		case <-deadline.C:
			return nil, fmt.Errorf("%w: key=%s: waited %s", ErrLockTimeout, redisKey, l.waitTimeout)
		case <-time.After(l.retryInterval):
		}
	}
}

func (l *RedisLocker) unlockFunc(redisKey, token string) func() {
	return func() {
		// Отдельный контекст: лок нужно снять даже если контекст запроса уже отменен
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
			l.logger.Warn("lock: failed to release key=%s: %v", redisKey, err)
		}
	}
}
