package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Malkan-Shaheen/pure-chef/internal/api"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai/cache"
	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}

	// 初始化日誌
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Println("Failed to init logger:", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("啟動應用",
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.Server.Port),
		zap.String("api_key", config.MaskAPIKey(cfg.Gemini.APIKey)),
	)

	// 初始化快取後端
	cacheBackend, err := cache.New(cfg)
	if err != nil {
		common.LogFatal("快取初始化失敗", zap.Error(err))
	}
	if cacheBackend != nil {
		defer cacheBackend.Close()
	}

	// 組裝路由
	router := api.NewRouter(cfg, cacheBackend)
	defer router.Queue.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動 HTTP 伺服器
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("伺服器啟動失敗", zap.Error(err))
		}
	}()

	// 等待關閉信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("伺服器關閉逾時", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
