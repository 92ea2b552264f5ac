package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/formpulse/formpulse/config"
	"github.com/formpulse/formpulse/database"
	_ "github.com/formpulse/formpulse/docs" // Swagger docs - auto-generated
	authctrl "github.com/formpulse/formpulse/internal/controller/auth"
	formctrl "github.com/formpulse/formpulse/internal/controller/form"
	publicctrl "github.com/formpulse/formpulse/internal/controller/public"
	"github.com/formpulse/formpulse/internal/logger"
	"github.com/formpulse/formpulse/internal/middleware"
	"github.com/formpulse/formpulse/internal/model"
	"github.com/formpulse/formpulse/internal/ratelimit"
	"github.com/formpulse/formpulse/internal/repository"
	"github.com/formpulse/formpulse/internal/service"
)

// @title FormPulse API
// @version 1.0
// @description Feedback form builder with anonymous response collection and response analytics.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewSubmissionLimiter,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewFormRepository,
			repository.NewResponseRepository,
		),

		fx.Provide(
			func(userRepo repository.UserRepository, cfg *config.Config) service.AuthService {
				return service.NewAuthService(userRepo, cfg.JWTSecret)
			},
			service.NewFormService,
			service.NewResponseService,
			service.NewSubmissionService,
			service.NewExportService,
		),

		fx.Provide(
			authctrl.NewAuthController,
			formctrl.NewFormController,
			publicctrl.NewPublicController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// NewSubmissionLimiter picks the throttle backend from config. Redis shares
// counters across instances; memory is the single-process default.
func NewSubmissionLimiter(cfg *config.Config) ratelimit.Limiter {
	if cfg.RateLimit.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
		})
		log.Info().Str("addr", cfg.RateLimit.RedisAddr).Msg("Using Redis submission rate limiter")
		return ratelimit.NewRedisLimiter(ratelimit.SubmissionConfig, client)
	}
	return ratelimit.NewMemoryLimiter(ratelimit.SubmissionConfig)
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	limiter ratelimit.Limiter,
	authController *authctrl.AuthController,
	formController *formctrl.FormController,
	publicController *publicctrl.PublicController,
) {
	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)

		forms := apiV1.Group("/forms", middleware.RequireAuth(cfg.JWTSecret))
		forms.POST("", formController.CreateForm)
		forms.GET("", formController.ListForms)
		forms.GET("/:id", formController.GetForm)
		forms.PUT("/:id", formController.UpdateForm)
		forms.PUT("/:id/status", formController.UpdateStatus)
		forms.DELETE("/:id", formController.DeleteForm)
		forms.GET("/:id/responses", formController.GetResponses)
		forms.GET("/:id/export", formController.ExportResponses)

		publicGroup := apiV1.Group("/public/forms")
		publicGroup.GET("/:public_url", publicController.GetForm)
		publicGroup.POST("/:public_url/submit", middleware.SubmissionRateLimit(limiter), publicController.Submit)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("FormPulse API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Form{},
		&model.Question{},
		&model.Response{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
