package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"rentease/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Payment statistics caching
	GetPaymentStats(ctx context.Context, ownerID uuid.UUID) (*models.PaymentStats, error)
	SetPaymentStats(ctx context.Context, ownerID uuid.UUID, stats *models.PaymentStats, ttl time.Duration) error
	InvalidatePaymentStats(ctx context.Context, ownerID uuid.UUID) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both host:port and redis:// URLs.
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func paymentStatsKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("rentease:payment_stats:%s", ownerID.String())
}

func (r *redisCacheService) GetPaymentStats(ctx context.Context, ownerID uuid.UUID) (*models.PaymentStats, error) {
	data, err := r.client.Get(ctx, paymentStatsKey(ownerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stats models.PaymentStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetPaymentStats(ctx context.Context, ownerID uuid.UUID, stats *models.PaymentStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, paymentStatsKey(ownerID), data, ttl).Err()
}

func (r *redisCacheService) InvalidatePaymentStats(ctx context.Context, ownerID uuid.UUID) error {
	return r.client.Del(ctx, paymentStatsKey(ownerID)).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
