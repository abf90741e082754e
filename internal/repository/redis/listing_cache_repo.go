package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/resale-backend/internal/cfg"
	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/resale-backend/pkg/clients"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// ListingCacheRepo кэширует успешные результаты импорта по продавцу.
type ListingCacheRepo struct {
	client *clients.RedisClient
	conv   converter.ListingConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewListingCacheRepo(client *clients.RedisClient, conv converter.ListingConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *ListingCacheRepo {
	return &ListingCacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetListings возвращает объявления продавца из кэша. Битая запись удаляется и считается промахом.
func (c *ListingCacheRepo) GetListings(ctx context.Context, memberID string) ([]domain.Listing, bool, error) {
	key := listingsKey(memberID)

	data, err := c.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, false, nil // cache miss
		}
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.ListingsRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		c.drop(key)
		return nil, false, nil
	}

	if model.MemberID != memberID {
		c.logger.Warnf("Cache member mismatch: key_member: %s, model_member: %s", memberID, model.MemberID)
		c.drop(key)
		return nil, false, nil
	}

	return c.conv.ToDomain(&model), true, nil
}

// SetListings кэширует объявления на ListingTTL.
func (c *ListingCacheRepo) SetListings(ctx context.Context, memberID string, listings []domain.Listing) error {
	data, err := json.Marshal(c.conv.ToRedisModel(memberID, listings))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, listingsKey(memberID), data, c.cfg.ListingTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *ListingCacheRepo) drop(key string) {
	if err := c.client.Client.Del(context.Background(), key).Err(); err != nil {
		c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// listingsKey возвращает Redis-ключ для объявлений одного продавца
func listingsKey(memberID string) string {
	return fmt.Sprintf("vinted:listings:%s", memberID)
}
