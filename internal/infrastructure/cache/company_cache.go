package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fleet/backend/internal/domain/identity"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const companyKeyPrefix = "webhook:company:"

// CompanyCache is a read-through Redis cache in front of the company
// repository's api-key lookup. Every webhook delivery performs this
// lookup, so it is the hottest query in the system.
//
// The cache degrades gracefully: any Redis failure falls through to the
// repository, and a nil client disables caching entirely.
type CompanyCache struct {
	repo   identity.CompanyRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCompanyCache creates a company cache decorator. A nil client turns
// the decorator into a plain pass-through.
func NewCompanyCache(repo identity.CompanyRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CompanyCache {
	return &CompanyCache{
		repo:   repo,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// FindByAPIKey resolves a company from its webhook API key, serving from
// Redis when possible. Suspended companies are cached too; the service
// layer decides what an inactive principal means.
func (c *CompanyCache) FindByAPIKey(ctx context.Context, apiKey string) (*identity.Company, error) {
	if c.client == nil {
		return c.repo.FindByAPIKey(ctx, apiKey)
	}

	key := companyKeyPrefix + apiKey
	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var company identity.Company
		if err := json.Unmarshal([]byte(raw), &company); err == nil {
			return &company, nil
		}
		// Cached garbage: drop it and fall through to the repository
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("company cache read failed", zap.Error(err))
	}

	company, err := c.repo.FindByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(company); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("company cache write failed", zap.Error(err))
		}
	}
	return company, nil
}

// Invalidate drops a cached entry, e.g. after an API key rotation
func (c *CompanyCache) Invalidate(ctx context.Context, apiKey string) {
	if c.client == nil || apiKey == "" {
		return
	}
	if err := c.client.Del(ctx, companyKeyPrefix+apiKey).Err(); err != nil {
		c.logger.Warn("company cache invalidation failed", zap.Error(err))
	}
}
