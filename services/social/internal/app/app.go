package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fun123/pkg/cache"
	"fun123/pkg/config"
	"fun123/pkg/database"
	"fun123/pkg/jwt"
	"fun123/pkg/logger"
	"fun123/pkg/middleware"
	"fun123/pkg/queue"
	"fun123/pkg/s3"
	socialHTTP "fun123/services/social/internal/controller/http"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/repo/persistent"
	"fun123/services/social/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fun123/services/social/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithConfig(cfg.LogLevel, cfg.LogFormat)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without cache and rate limits)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v (avatar uploads disabled)", err)
		s3Client = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without mail)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret, jwt.WithTTL(time.Duration(cfg.TokenTTLSeconds)*time.Second))

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	roleRepo := persistent.NewRoleRepository(a.db)
	followRepo := persistent.NewFollowRepository(a.db)
	catalogRepo := persistent.NewCatalogRepository(a.db)
	markRepo := persistent.NewMarkRepository(a.db)

	// Optional collaborators stay nil interfaces when their client is missing
	var avatarStore usecase.AvatarStore
	if a.s3Client != nil {
		avatarStore = a.s3Client
	}
	var mailer usecase.Mailer
	if a.queueClient != nil {
		mailer = a.queueClient
	}

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, roleRepo, a.jwtService, avatarStore, mailer, a.cfg, a.log)
	followUseCase := usecase.NewFollowUseCase(userRepo, followRepo, a.cfg.FollowersPerPage, a.log)
	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo, a.log)
	markUseCase := usecase.NewMarkUseCase(markRepo, catalogRepo, a.redisClient, a.log)
	roleUseCase := usecase.NewRoleUseCase(roleRepo, userRepo, a.cfg.AdminEmail, a.log)

	// Initialize HTTP handlers
	authHandler := socialHTTP.NewAuthHandler(authUseCase, followUseCase)
	followHandler := socialHTTP.NewFollowHandler(followUseCase)
	catalogHandler := socialHTTP.NewCatalogHandler(catalogUseCase, markUseCase)
	roleHandler := socialHTTP.NewRoleHandler(roleUseCase)

	if a.cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SecureTransport())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		protected.Use(socialHTTP.CallerMiddleware(authUseCase))
		if a.redisClient != nil {
			protected.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitPerMinute, time.Minute))
		}
		{
			protected.GET("/me", authHandler.Me)
			protected.PUT("/me", authHandler.UpdateMe)
			protected.POST("/me/avatar", authHandler.UploadAvatar)
			protected.GET("/users/:id", authHandler.GetUser)

			protected.POST("/tokens", authHandler.IssueAPIToken)
			protected.POST("/tokens/consume", authHandler.ConsumeToken)
			protected.POST("/confirm", authHandler.RequestConfirmation)
			protected.POST("/email", authHandler.RequestEmailChange)
			protected.PUT("/password", authHandler.ResetPassword)
			protected.POST("/password/change", authHandler.RequestPasswordChange)
			protected.POST("/password/reset", authHandler.RequestPasswordReset)

			protected.GET("/users/:id/follow", followHandler.Status)
			protected.POST("/users/:id/follow", socialHTTP.RequirePermission(entity.PermissionFollow), followHandler.Follow)
			protected.DELETE("/users/:id/follow", socialHTTP.RequirePermission(entity.PermissionFollow), followHandler.Unfollow)
			protected.GET("/users/:id/followers", followHandler.Followers)
			protected.GET("/users/:id/following", followHandler.Following)
			protected.GET("/users/:id/marks/:kind", catalogHandler.Marked)

			protected.GET("/catalog/:kind", catalogHandler.List)
			protected.GET("/catalog/:kind/:id", catalogHandler.Get)
			protected.GET("/catalog/:kind/:id/cast", catalogHandler.Cast)
			protected.GET("/catalog/:kind/:id/mark", catalogHandler.MarkStatus)
			protected.POST("/catalog/:kind/:id/mark", socialHTTP.RequirePermission(entity.PermissionMark), catalogHandler.Mark)
			protected.GET("/actors/:id", catalogHandler.GetActor)

			manage := protected.Group("")
			manage.Use(socialHTTP.RequirePermission(entity.PermissionManage))
			{
				manage.POST("/catalog/:kind", catalogHandler.Create)
				manage.POST("/catalog/:kind/:id/cast", catalogHandler.AddToCast)
				manage.POST("/actors", catalogHandler.CreateActor)
			}

			admin := protected.Group("/admin")
			admin.Use(socialHTTP.RequirePermission(entity.PermissionAdmin))
			{
				admin.GET("/roles", roleHandler.ListRoles)
			}
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Social service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down social service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("Social service exited")
	return nil
}
