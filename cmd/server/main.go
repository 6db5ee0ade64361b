package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/mealplan/backend/internal/application/identity"
	mealplanapp "github.com/mealplan/backend/internal/application/mealplan"
	recipesapp "github.com/mealplan/backend/internal/application/recipes"
	shoppingapp "github.com/mealplan/backend/internal/application/shopping"
	"github.com/mealplan/backend/internal/domain/shopping"
	"github.com/mealplan/backend/internal/infrastructure/auth"
	"github.com/mealplan/backend/internal/infrastructure/config"
	"github.com/mealplan/backend/internal/infrastructure/logger"
	"github.com/mealplan/backend/internal/infrastructure/mealgen"
	"github.com/mealplan/backend/internal/infrastructure/persistence"
	"github.com/mealplan/backend/internal/interfaces/http/handler"
	"github.com/mealplan/backend/internal/interfaces/http/middleware"
	"github.com/mealplan/backend/internal/interfaces/http/router"
)

//	@title			Meal Planner API
//	@version		1.0
//	@description	Meal planning backend: recipes, weekly plans, shopping lists and pantry tracking.

//	@contact.name	API Support
//	@contact.url	https://github.com/mealplan/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting meal planner backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// SQL statements log through zap at the configured level
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist: Redis when reachable, in-memory otherwise.
	// The in-memory fallback does not survive restarts or scale past one instance.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		log.Info("Redis token blacklist connected")
	}

	// Repositories share the one GORM handle
	userRepo := persistence.NewGormUserRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeRepository(db.DB)
	ratingRepo := persistence.NewGormRecipeRatingRepository(db.DB)
	planRepo := persistence.NewGormMealPlanRepository(db.DB)
	mealTypeRepo := persistence.NewGormMealTypeRepository(db.DB)
	listRepo := persistence.NewGormShoppingListRepository(db.DB)
	pantryRepo := persistence.NewGormPantryItemRepository(db.DB)
	categoryRepo := persistence.NewGormIngredientCategoryRepository(db.DB)
	shoppingTxScope := persistence.NewGormShoppingTransactionScope(db.DB)

	// Meal data producer: deterministic templates or an LLM backend
	var producer mealgen.Producer
	switch cfg.MealGen.Producer {
	case "llm":
		llmClient, err := mealgen.NewLLMClient(cfg.MealGen)
		if err != nil {
			log.Fatal("Failed to initialize LLM meal producer", zap.Error(err))
		}
		producer = llmClient
		log.Info("Meal generation backend: llm", zap.String("model", cfg.MealGen.Model))
	default:
		producer = mealgen.NewTemplatePlanner()
		log.Info("Meal generation backend: template")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	recipeService := recipesapp.NewRecipeService(recipeRepo, ratingRepo, log)
	planService := mealplanapp.NewMealPlanService(planRepo, mealTypeRepo, recipeRepo, log)
	generationService := mealplanapp.NewGenerationService(producer, planRepo, mealTypeRepo, recipeRepo, log)
	aggregator := shopping.NewAggregationService()
	listService := shoppingapp.NewShoppingListService(listRepo, pantryRepo, planRepo, aggregator, shoppingTxScope, log)
	pantryService := shoppingapp.NewPantryService(pantryRepo, cfg.Pantry, log)
	categoryService := shoppingapp.NewCategoryService(categoryRepo, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	planHandler := handler.NewMealPlanHandler(planService, generationService)
	listHandler := handler.NewShoppingListHandler(listService)
	pantryHandler := handler.NewPantryHandler(pantryService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	systemHandler := handler.NewSystemHandler()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := newEngine(cfg, log)

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Identity domain - public credential routes with a tighter rate limit
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authLimiter))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)

	// Identity domain - session routes requiring authentication
	sessionRoutes := router.NewDomainGroup("session", "/auth")
	sessionRoutes.POST("/logout", authHandler.Logout)
	sessionRoutes.GET("/me", authHandler.GetCurrentUser)

	// Recipes domain
	recipeRoutes := router.NewDomainGroup("recipes", "/recipes")
	recipeRoutes.POST("", recipeHandler.Create)
	recipeRoutes.GET("", recipeHandler.List)
	recipeRoutes.GET("/:id", recipeHandler.Get)
	recipeRoutes.PUT("/:id", recipeHandler.Update)
	recipeRoutes.DELETE("/:id", recipeHandler.Delete)
	recipeRoutes.POST("/:id/ratings", recipeHandler.Rate)
	recipeRoutes.POST("/:id/adjust-portions", recipeHandler.AdjustPortions)

	// Meal plan domain
	planRoutes := router.NewDomainGroup("meal-plans", "/meal-plans")
	planRoutes.POST("", planHandler.Create)
	planRoutes.POST("/weekly", planHandler.CreateWeekly)
	planRoutes.POST("/generate", planHandler.Generate)
	planRoutes.GET("", planHandler.List)
	planRoutes.GET("/:id", planHandler.Get)
	planRoutes.PUT("/:id", planHandler.Update)
	planRoutes.DELETE("/:id", planHandler.Delete)
	planRoutes.POST("/:id/meals", planHandler.AddMeal)
	planRoutes.DELETE("/:id/meals/:mealId", planHandler.RemoveMeal)
	planRoutes.GET("/:id/nutrition", planHandler.NutritionSummary)

	// Meal type reference data
	mealTypeRoutes := router.NewDomainGroup("meal-types", "/meal-types")
	mealTypeRoutes.GET("", planHandler.MealTypes)

	// Shopping list domain
	listRoutes := router.NewDomainGroup("shopping-lists", "/shopping-lists")
	listRoutes.POST("", listHandler.Create)
	listRoutes.GET("", listHandler.List)
	listRoutes.GET("/:id", listHandler.Get)
	listRoutes.PUT("/:id", listHandler.Update)
	listRoutes.DELETE("/:id", listHandler.Delete)
	listRoutes.POST("/:id/generate", listHandler.Generate)
	listRoutes.POST("/:id/regenerate", listHandler.Regenerate)
	listRoutes.POST("/:id/items/:itemId/toggle", listHandler.ToggleItem)
	listRoutes.POST("/:id/purchase-all", listHandler.MarkAllPurchased)
	listRoutes.POST("/:id/add-to-pantry", listHandler.AddPurchasedToPantry)

	// Pantry domain
	pantryRoutes := router.NewDomainGroup("pantry", "/pantry")
	pantryRoutes.POST("", pantryHandler.Create)
	pantryRoutes.GET("", pantryHandler.List)
	pantryRoutes.GET("/expiring-soon", pantryHandler.ExpiringSoon)
	pantryRoutes.GET("/low-stock", pantryHandler.LowStock)
	pantryRoutes.GET("/:id", pantryHandler.Get)
	pantryRoutes.PUT("/:id", pantryHandler.Update)
	pantryRoutes.DELETE("/:id", pantryHandler.Delete)

	// Ingredient categories
	categoryRoutes := router.NewDomainGroup("categories", "/categories")
	categoryRoutes.GET("", categoryHandler.List)
	categoryRoutes.POST("", categoryHandler.Create)

	// System routes with swagger-documented handlers
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(sessionRoutes).
		Register(recipeRoutes).
		Register(planRoutes).
		Register(mealTypeRoutes).
		Register(listRoutes).
		Register(pantryRoutes).
		Register(categoryRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Unauthenticated ping for load balancer checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	serve(engine, cfg, log)
}

// newEngine builds the gin engine with the shared middleware stack. Order
// matters: the request ID must exist before anything logs, and recovery must
// wrap the request logger.
func newEngine(cfg *config.Config, log *zap.Logger) *gin.Engine {
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	return engine
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests for up to 30 seconds.
func serve(engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		body := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			body["pool"] = stats
		}
		c.JSON(http.StatusOK, body)
	}
}
