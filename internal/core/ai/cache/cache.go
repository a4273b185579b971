package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
)

// ErrCacheMiss 查無快取條目
var ErrCacheMiss = errors.New("cache miss")

// Cache 生成回應快取後端
// 以 prompt 與圖片資料為鍵，值為生成服務回傳的文字內容
type Cache interface {
	Get(ctx context.Context, prompt, imageData string) (string, error)
	Set(ctx context.Context, prompt, imageData, value string) error
	Close() error
}

// New 依設定選擇快取後端；快取停用時回傳 nil
func New(cfg *config.Config) (Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisCache(cfg)
	case "memory":
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}
