package router

import (
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/cache"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/config"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/handler"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/infra"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/middleware"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/service"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine plus the
// services the background workers need.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, aiCB *infra.CircuitBreaker) (*gin.Engine, service.RecommendationService) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	aiClient := infra.NewAIClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)
	reportCache := cache.NewRedisReportCache(rdb)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	financeRepo := repository.NewFinanceRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	recommendationRepo := repository.NewRecommendationRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	hppSvc := service.NewHPPService(recipeRepo)
	inventorySvc := service.NewInventorySyncService(ingredientRepo, movementRepo, userRepo, dispatcher)
	financeSyncSvc := service.NewFinanceSyncService(financeRepo)
	ingredientSvc := service.NewIngredientService(ingredientRepo, movementRepo, hppSvc)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, ingredientRepo, supplierRepo,
		inventorySvc, financeSyncSvc, hppSvc, reportCache)
	recipeSvc := service.NewRecipeService(recipeRepo, ingredientRepo, recommendationRepo, hppSvc)
	orderSvc := service.NewOrderService(orderRepo, recipeRepo, inventorySvc, financeSyncSvc, reportCache)
	financeSvc := service.NewFinanceService(financeRepo)
	reportSvc := service.NewReportService(orderRepo, financeRepo, reportCache, cfg)
	aiSvc := service.NewAIService(aiClient, aiCB, ingredientRepo)
	settingsSvc := service.NewSettingsService(settingRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	recommendationSvc := service.NewRecommendationService(recommendationRepo, recipeRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	ingredientsH := handler.NewIngredientsHandler(ingredientSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	recipesH := handler.NewRecipesHandler(recipeSvc, aiSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	financeH := handler.NewFinanceHandler(financeSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	recommendationsH := handler.NewRecommendationsHandler(recommendationSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", middleware.AuthRateLimiter(), authH.Register)
		auth.POST("/login", middleware.AuthRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	api := r.Group("/api", middleware.JWTAuth(cfg.JWTSecret))
	{
		ingredients := api.Group("/ingredients")
		{
			ingredients.POST("", ingredientsH.Create)
			ingredients.GET("", ingredientsH.List)
			ingredients.GET("/movements", ingredientsH.Movements)
			ingredients.GET("/:id", ingredientsH.Get)
			ingredients.PUT("/:id", ingredientsH.Update)
			ingredients.DELETE("/:id", ingredientsH.Delete)
		}

		purchases := api.Group("/ingredient-purchases")
		{
			purchases.POST("", purchasesH.Create)
			purchases.GET("", purchasesH.List)
			purchases.GET("/:id", purchasesH.Get)
			purchases.PUT("/:id", purchasesH.Update)
			purchases.DELETE("/:id", purchasesH.Delete)
		}

		recipes := api.Group("/recipes")
		{
			recipes.POST("", recipesH.Create)
			recipes.GET("", recipesH.List)
			recipes.POST("/generate", recipesH.Generate)
			recipes.GET("/:id", recipesH.Get)
			recipes.PUT("/:id", recipesH.Update)
			recipes.DELETE("/:id", recipesH.Delete)
		}
		// Alias kept for clients that use the generic AI route
		api.POST("/ai/generate-recipe", recipesH.Generate)

		orders := api.Group("/orders")
		{
			orders.POST("", ordersH.Create)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.Get)
			orders.PATCH("/:id/status", ordersH.UpdateStatus)
		}

		finance := api.Group("/financial-records")
		{
			finance.POST("", financeH.Create)
			finance.GET("", financeH.List)
			finance.DELETE("/:id", financeH.Delete)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/profit", reportsH.Profit)
			reports.GET("/profit/export", reportsH.ProfitExport)
		}

		api.GET("/suppliers", suppliersH.List)

		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("", recommendationsH.List)
			recommendations.PATCH("/:id/implement", recommendationsH.Implement)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/:key", settingsH.Get)
			settings.PUT("/:key", settingsH.Update)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, recommendationSvc
}
