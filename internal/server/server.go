package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"blinkfit/internal/config"
	"blinkfit/internal/handler"
	adminHandler "blinkfit/internal/handler/admin"
	authHandler "blinkfit/internal/handler/auth"
	blogHandler "blinkfit/internal/handler/blog"
	contactHandler "blinkfit/internal/handler/contact"
	newsletterHandler "blinkfit/internal/handler/newsletter"
	"blinkfit/internal/model/auth"
	"blinkfit/internal/pkg/cache"
	"blinkfit/internal/pkg/mail"
	"blinkfit/internal/pkg/mongodb"
	"blinkfit/internal/pkg/ratelimit"
	authRepo "blinkfit/internal/repository/auth"
	blogRepo "blinkfit/internal/repository/blog"
	contactRepo "blinkfit/internal/repository/contact"
	"blinkfit/internal/server/middleware"
	"blinkfit/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache

	authService       *service.AuthService
	blogService       *service.BlogService
	contactService    *service.ContactService
	newsletterService *service.NewsletterService
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// MongoDB是业务数据的唯一存储，起不来就不启动
	mongoClient, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	// Redis可选：缓存和限流退化到进程内实现
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	db := mongoClient.Database()
	userRepo := authRepo.NewUserRepo(db)
	refreshTokenRepo := authRepo.NewRefreshTokenRepo(db)
	blogRepository := blogRepo.NewBlogRepo(db)
	contactRepository := contactRepo.NewContactRepo(db)

	mailer := mail.New(&cfg.Mail)

	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
		authService: service.NewAuthService(
			userRepo,
			refreshTokenRepo,
			jwtSecret,
			cfg.Auth.AccessTokenExpiry,
			cfg.Auth.RefreshTokenExpiry,
		),
		blogService:       service.NewBlogService(blogRepository, redisCache),
		contactService:    service.NewContactService(contactRepository, mailer),
		newsletterService: service.NewNewsletterService(userRepo, mailer),
	}

	srv.setupRoutes()

	return srv, nil
}

// contactLimiter 联系表单限流器
// 有Redis时跨实例共享计数，否则退化到进程内固定窗口
func (s *Server) contactLimiter() ratelimit.Limiter {
	max := s.cfg.RateLimit.ContactMax
	window := s.cfg.RateLimit.ContactWindow

	if s.redis != nil {
		return ratelimit.NewRedisLimiter(s.redis.Client(), "ratelimit:contact:", max, window)
	}
	return ratelimit.NewMemoryLimiter(max, window)
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHdl := handler.NewHealthHandler(s.mongo, s.redis)
	s.engine.GET("/health", healthHdl.Health)
	s.engine.GET("/ready", healthHdl.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHdl := authHandler.NewHandler(s.authService)
	blogHdl := blogHandler.NewHandler(s.blogService)
	contactHdl := contactHandler.NewHandler(s.contactService)
	newsletterHdl := newsletterHandler.NewHandler(s.newsletterService)
	adminHdl := adminHandler.NewHandler(s.authService, s.blogService, s.contactService)

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		// 认证接口（公开）
		v1.POST("/auth/register/doctor", authHdl.Register)
		v1.POST("/auth/login", authHdl.Login)
		v1.POST("/auth/admin/login", authHdl.AdminLogin)
		v1.POST("/auth/refresh", authHdl.Refresh)

		// 文章接口（公开）
		v1.GET("/blogs", blogHdl.List)
		v1.GET("/blogs/:slug", blogHdl.Get)
		v1.POST("/blogs/:slug/like", blogHdl.Like)

		// 联系表单（公开，按IP限流）
		v1.POST("/contact", middleware.RateLimit(s.contactLimiter()), contactHdl.Submit)

		// 邮件订阅（公开）
		v1.POST("/newsletter/subscribe", newsletterHdl.Subscribe)
		v1.POST("/newsletter/unsubscribe", newsletterHdl.Unsubscribe)

		// 需要登录的接口
		authed := v1.Group("")
		authed.Use(middleware.Auth(s.authService))
		{
			authed.POST("/auth/logout", authHdl.Logout)
			authed.GET("/auth/me", authHdl.GetMe)
		}

		// 内容作者接口（医生/管理员）
		authoring := v1.Group("")
		authoring.Use(middleware.Auth(s.authService), middleware.RequireRoles(auth.RoleDoctor, auth.RoleAdmin))
		{
			authoring.GET("/blogs/mine", blogHdl.ListMine)
			authoring.POST("/blogs", blogHdl.Create)
			authoring.PUT("/blogs/:id", blogHdl.Update)
			authoring.DELETE("/blogs/:id", blogHdl.Delete)
			authoring.PATCH("/blogs/:id/publish", blogHdl.SetPublished)
		}

		// 管理后台接口
		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(s.authService), middleware.RequireRoles(auth.RoleAdmin))
		{
			admin.GET("/blogs", adminHdl.ListBlogs)
			admin.GET("/doctors", adminHdl.ListDoctors)
			admin.PUT("/doctors/:id/verify", adminHdl.VerifyDoctor)
			admin.PUT("/doctors/:id/unverify", adminHdl.UnverifyDoctor)
			admin.DELETE("/doctors/:id", adminHdl.DeleteDoctor)
			admin.GET("/contacts", adminHdl.ListContacts)
			admin.PATCH("/contacts/:id", adminHdl.UpdateContact)
			admin.GET("/stats", adminHdl.Stats)
		}
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if err := s.mongo.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
