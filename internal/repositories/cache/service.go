package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salonpay/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get decodes the cached value into dest. A missing key is reported as
// found == false with a nil error.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Payment settings caching
func (s *CacheService) CacheSettings(ctx context.Context, settings *models.PaymentSettings) error {
	if settings == nil {
		return errors.New("cannot cache nil payment settings")
	}
	return s.Set(ctx, s.GenerateKey("settings", "business", settings.BusinessID), settings)
}

// GetSettings returns nil, nil on a cache miss.
func (s *CacheService) GetSettings(ctx context.Context, businessID uuid.UUID) (*models.PaymentSettings, error) {
	var settings models.PaymentSettings
	found, err := s.Get(ctx, s.GenerateKey("settings", "business", businessID), &settings)
	if err != nil || !found {
		return nil, err
	}
	return &settings, nil
}

func (s *CacheService) InvalidateSettings(ctx context.Context, businessID uuid.UUID) error {
	return s.Delete(ctx, s.GenerateKey("settings", "business", businessID))
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
