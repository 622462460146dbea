package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/autowms/internal/config"
	"github.com/andresuchdata/autowms/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	recommendationKeyPrefix = "replenishment:recommendations"
	recommendationScanBatch = 100
)

// RecommendationCache caches recommendation listings keyed by the requested
// SKU set. Entries are invalidated wholesale whenever a scan mutates the
// ledger, so a hit is never older than the last applied scan plus TTL.
type RecommendationCache interface {
	Get(ctx context.Context, skus []string) ([]domain.Recommendation, bool, error)
	Set(ctx context.Context, skus []string, recs []domain.Recommendation) error
	InvalidateAll(ctx context.Context) error
}

type redisRecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopRecommendationCache struct{}

// NewRecommendationCache builds a redis-backed cache, or a noop cache when
// caching is disabled.
func NewRecommendationCache(cfg config.CacheConfig) (RecommendationCache, error) {
	if !cfg.Enabled {
		return &noopRecommendationCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisRecommendationCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// NewNoopRecommendationCache returns a cache that never hits.
func NewNoopRecommendationCache() RecommendationCache {
	return &noopRecommendationCache{}
}

func (c *redisRecommendationCache) Get(ctx context.Context, skus []string) ([]domain.Recommendation, bool, error) {
	key := buildRecommendationKey(skus)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal(payload, &recs); err != nil {
		return nil, false, fmt.Errorf("decode recommendation cache: %w", err)
	}

	return recs, true, nil
}

func (c *redisRecommendationCache) Set(ctx context.Context, skus []string, recs []domain.Recommendation) error {
	key := buildRecommendationKey(skus)
	payload, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encode recommendation cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisRecommendationCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, recommendationKeyPrefix, recommendationScanBatch)
}

func (n *noopRecommendationCache) Get(ctx context.Context, skus []string) ([]domain.Recommendation, bool, error) {
	return nil, false, nil
}

func (n *noopRecommendationCache) Set(ctx context.Context, skus []string, recs []domain.Recommendation) error {
	return nil
}

func (n *noopRecommendationCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRecommendationKey(skus []string) string {
	if len(skus) == 0 {
		return recommendationKeyPrefix + ":all"
	}

	normalized := make([]string, 0, len(skus))
	for _, sku := range skus {
		sku = strings.TrimSpace(sku)
		if sku == "" {
			continue
		}
		normalized = append(normalized, strings.ToUpper(sku))
	}
	if len(normalized) == 0 {
		return recommendationKeyPrefix + ":all"
	}

	sort.Strings(normalized)
	sum := sha1.Sum([]byte(strings.Join(normalized, ",")))
	return fmt.Sprintf("%s:%s", recommendationKeyPrefix, hex.EncodeToString(sum[:]))
}
