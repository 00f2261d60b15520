package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jimlawless/whereami"
	"github.com/kraftory/go-backend/internal/cfg"
	"github.com/kraftory/go-backend/pkg/clients"
	"github.com/kraftory/go-backend/pkg/e"
)

// SecurityRepo хранит одноразовые CSRF-токены и счётчики rate limit в Redis.
// TTL задаётся конфигурацией, истёкшие записи Redis удаляет сам.
type SecurityRepo struct {
	client *clients.RedisClient
	cfg    *cfg.SecurityCfg
}

func NewSecurityRepo(client *clients.RedisClient, cfg *cfg.SecurityCfg) *SecurityRepo {
	return &SecurityRepo{
		client: client,
		cfg:    cfg,
	}
}

// IssueCSRFToken генерирует токен и сохраняет его с TTL.
func (r *SecurityRepo) IssueCSRFToken(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}
	token := hex.EncodeToString(buf)

	if err := r.client.Client.Set(ctx, r.csrfKey(token), "1", r.cfg.CSRFTokenTTL).Err(); err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return token, nil
}

// ConsumeCSRFToken атомарно забирает токен. GETDEL гарантирует
// одноразовость: повторная отправка того же токена отклоняется.
func (r *SecurityRepo) ConsumeCSRFToken(ctx context.Context, token string) error {
	if token == "" {
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidCSRFToken)
	}

	if err := r.client.Client.GetDel(ctx, r.csrfKey(token)).Err(); err != nil {
		if errors.Is(err, goredis.Nil) {
			return e.Wrap(whereami.WhereAmI(), e.ErrInvalidCSRFToken)
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// CountAttempt инкрементирует счётчик фиксированного окна и возвращает
// текущее значение. TTL выставляется только на первом обращении окна.
func (r *SecurityRepo) CountAttempt(ctx context.Context, key string) (int64, error) {
	redisKey := r.rateKey(key)

	count, err := r.client.Client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	if count == 1 {
		if err := r.client.Client.Expire(ctx, redisKey, r.cfg.RateLimitWindow).Err(); err != nil {
			return 0, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return count, nil
}

func (r *SecurityRepo) csrfKey(token string) string {
	return fmt.Sprintf("csrf:%s", token)
}

func (r *SecurityRepo) rateKey(key string) string {
	return fmt.Sprintf("ratelimit:%s", key)
}
