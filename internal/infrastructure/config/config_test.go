package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey(""))
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "AIza...wxyz", MaskAPIKey("AIzaSomethingLongerwxyz"))
}

func validTestConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Gemini: GeminiConfig{
			TextModel:   "gemini-2.5-flash",
			VisionModel: "gemini-2.5-flash",
			ImageModel:  "gemini-2.5-flash-image",
		},
		Cache: CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         100,
			TTL:             time.Hour,
			CleanupInterval: time.Minute,
		},
		Queue: QueueConfig{Workers: 4, MaxSize: 100},
	}
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))

	cfg := validTestConfig()
	cfg.Server.Port = 0
	assert.Error(t, validateConfig(cfg))

	cfg = validTestConfig()
	cfg.Gemini.ImageModel = ""
	assert.Error(t, validateConfig(cfg))

	cfg = validTestConfig()
	cfg.Cache.Backend = "memcached"
	assert.Error(t, validateConfig(cfg))

	cfg = validTestConfig()
	cfg.Queue.Workers = 0
	assert.Error(t, validateConfig(cfg))

	// 快取停用時不檢查快取細項
	cfg = validTestConfig()
	cfg.Cache = CacheConfig{Enabled: false}
	assert.NoError(t, validateConfig(cfg))
}
