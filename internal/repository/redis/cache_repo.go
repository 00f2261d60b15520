package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jimlawless/whereami"
	"github.com/kraftory/go-backend/internal/cfg"
	"github.com/kraftory/go-backend/internal/domain"
	"github.com/kraftory/go-backend/internal/repository/redis/converter"
	"github.com/kraftory/go-backend/pkg/clients"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/logger"
)

// CacheRepo кэширует карточки товаров в Redis (cache-aside).
// Кэш — ускорение, не источник истины: ошибки Redis логируются
// и не ломают путь чтения из PostgreSQL.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProduct возвращает товар из кэша. Промах — (nil, nil).
func (r *CacheRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	data, err := r.client.Client.Get(ctx, r.productKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil // cache miss
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.ProductRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := r.client.Client.Del(context.Background(), r.productKey(id)).Err(); err != nil {
			r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil // повреждённая запись = промах
	}

	if model.ID != id {
		r.logger.Warnf("Cache ID mismatch: key_id: %s, model_id: %s", id, model.ID)
		if err := r.client.Client.Del(context.Background(), r.productKey(id)).Err(); err != nil {
			r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	return r.conv.ToEntity(&model), nil
}

// SetProduct кэширует товар с TTL из конфигурации.
func (r *CacheRepo) SetProduct(ctx context.Context, product *domain.Product) error {
	model := r.conv.ToRedisModel(product)

	data, err := json.Marshal(model)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := r.client.Client.Set(ctx, r.productKey(model.ID), data, r.cfg.ProductTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteProducts инвалидирует кэш товаров по ID.
func (r *CacheRepo) DeleteProducts(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.productKey(id)
	}

	if err := r.client.Client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// productKey возвращает Redis-ключ для одного товара
func (r *CacheRepo) productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
