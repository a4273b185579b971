package api

import (
	"time"

	chefhandlers "github.com/Malkan-Shaheen/pure-chef/internal/api/handlers/chef"
	"github.com/Malkan-Shaheen/pure-chef/internal/api/handlers/health"
	"github.com/Malkan-Shaheen/pure-chef/internal/api/middleware"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai/cache"
	"github.com/Malkan-Shaheen/pure-chef/internal/core/ai/queue"
	chefcore "github.com/Malkan-Shaheen/pure-chef/internal/core/chef"
	imagecore "github.com/Malkan-Shaheen/pure-chef/internal/core/image"
	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

// Router HTTP 路由與其持有的後台資源
type Router struct {
	Engine *gin.Engine
	Queue  *queue.Manager
}

// NewRouter 組裝服務與路由
func NewRouter(cfg *config.Config, cacheBackend cache.Cache) *Router {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 服務組裝
	aiService := ai.NewService(cfg, cacheBackend)
	ingredientService := chefcore.NewIngredientService(cfg, aiService)
	recipeService := chefcore.NewRecipeService(cfg, aiService)
	recipeImageService := chefcore.NewImageService(cfg, aiService)
	imageService := imagecore.NewService(cfg)
	queueManager := queue.NewManager(cfg, recipeImageService)

	// 端點組裝
	ingredientHandler := chefhandlers.NewIngredientHandler(ingredientService, imageService)
	recipeHandler := chefhandlers.NewRecipeHandler(recipeService)
	imageHandler := chefhandlers.NewImageHandler(recipeImageService, queueManager)

	var cacheStats health.StatsProvider
	if sp, ok := cacheBackend.(health.StatsProvider); ok {
		cacheStats = sp
	}
	healthHandler := health.NewHandler(cfg, cacheStats, queueManager)

	engine := gin.New()
	engine.Use(requestid.New())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery())
	// base64 編碼膨脹約 4/3，再留一點 JSON 結構空間
	engine.Use(middleware.BodySizeLimit(cfg.Image.MaxSizeBytes * 2))
	engine.Use(middleware.RateLimit(cfg))
	engine.Use(middleware.Deduplication(cfg.DedupWindow))

	engine.GET("/health", healthHandler.Check)
	engine.GET("/health/live", healthHandler.Live)
	engine.GET("/health/ready", healthHandler.Ready)

	v1 := engine.Group("/api/v1/chef")
	{
		v1.POST("/ingredients/extract", ingredientHandler.Extract)
		v1.POST("/recipes/generate", recipeHandler.Generate)
		v1.POST("/recipes/illustrate", imageHandler.Illustrate)
		v1.POST("/recipes/illustrate/batch", imageHandler.IllustrateBatch)
	}

	return &Router{
		Engine: engine,
		Queue:  queueManager,
	}
}
