package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// RedisCache Redis 快取後端，多實例部署時共享生成結果
type RedisCache struct {
	client *redis.Client
	config *config.Config
}

// NewRedisCache 創建 Redis 快取後端
func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取快取值
func (c *RedisCache) Get(ctx context.Context, prompt, imageData string) (string, error) {
	value, err := c.client.Get(ctx, c.generateKey(prompt, imageData)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return value, nil
}

// Set 設置快取值
func (c *RedisCache) Set(ctx context.Context, prompt, imageData, value string) error {
	if err := c.client.Set(ctx, c.generateKey(prompt, imageData), value, c.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// generateKey 生成快取鍵，鍵材料做雜湊避免把 prompt 與圖片內容存進鍵名
func (c *RedisCache) generateKey(prompt, imageData string) string {
	sum := sha256.Sum256([]byte(prompt + "\x00" + imageData))
	return fmt.Sprintf("ai:response:%s", hex.EncodeToString(sum[:]))
}
