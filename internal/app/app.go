package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wealth_builder_backend/internal/config"
	"wealth_builder_backend/internal/controller"
	"wealth_builder_backend/internal/middleware"
	"wealth_builder_backend/internal/repository"
	"wealth_builder_backend/internal/service"
	"wealth_builder_backend/internal/util"
	"wealth_builder_backend/pkg/database"
	"wealth_builder_backend/pkg/logger"
	"wealth_builder_backend/pkg/monitoring"
	"wealth_builder_backend/pkg/security"
	"wealth_builder_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	limiters        *limiters
	cors            *security.CORSPolicy
	shutdownHooks   []func(context.Context) error
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	learningPath *repository.LearningPathRepository
	progress     *repository.ProgressRepository
	investment   *repository.InvestmentRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	storage    *service.StorageService
	content    *service.ContentService
	learning   *service.LearningService
	progress   *service.ProgressService
	investment *service.InvestmentService
}

type controllers struct {
	auth       *controller.AuthController
	learning   *controller.LearningController
	user       *controller.UserController
	investment *controller.InvestmentController
	health     *controller.HealthController
}

// limiters 对应三类限流：通用接口、认证接口、测验提交
type limiters struct {
	api  *security.RateLimiter
	auth *security.RateLimiter
	quiz *security.RateLimiter
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置文件变更后调用，只更新可热加载的部分
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		learningPath: repository.NewLearningPathRepository(db),
		progress:     repository.NewProgressRepository(db),
		investment:   repository.NewInvestmentRepository(),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	loc, err := cfg.Progress.Location()
	if err != nil {
		return nil, err
	}

	s := &services{}
	s.storage = service.NewStorageService(cfg)
	s.content = service.NewContentService(repos.learningPath, rdb, time.Duration(cfg.Redis.CacheTTLMinutes)*time.Minute)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.learning = service.NewLearningService(s.content, repos.progress, s.storage)
	s.progress = service.NewProgressService(repos.progress, s.content, service.NewProgressAggregator(loc))
	s.investment = service.NewInvestmentService(repos.investment)
	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		learning:   controller.NewLearningController(s.learning),
		user:       controller.NewUserController(s.user, s.progress),
		investment: controller.NewInvestmentController(s.investment),
		health:     controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) initLimiters(cfg *config.Config) *limiters {
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute

	l := &limiters{
		api:  security.NewRateLimiter(cfg.RateLimit.MaxRequests, window, "Too many requests from this IP, please try again later."),
		auth: security.NewRateLimiter(cfg.RateLimit.AuthMaxRequests, window, "Too many authentication attempts, please try again after 15 minutes."),
		quiz: security.NewRateLimiter(cfg.RateLimit.QuizMaxRequests, time.Minute, "Too many quiz submissions, please slow down."),
	}
	l.auth.SkipSuccessful = true
	l.quiz.Key = security.UserOrIPKey

	a.RegisterConfigCallback(func(c *config.Config) {
		w := time.Duration(c.RateLimit.WindowMinutes) * time.Minute
		l.api.SetLimit(c.RateLimit.MaxRequests, w)
		l.auth.SetLimit(c.RateLimit.AuthMaxRequests, w)
		l.quiz.SetLimit(c.RateLimit.QuizMaxRequests, time.Minute)
		logger.Log.Info("Rate limits reloaded")
	})
	a.shutdownHooks = append(a.shutdownHooks, func(context.Context) error {
		l.api.Close()
		l.auth.Close()
		l.quiz.Close()
		return nil
	})
	return l
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.cors = security.NewCORSPolicy(cfg.CORS.AllowedOrigins)
	a.RegisterConfigCallback(func(c *config.Config) {
		a.cors.SetOrigins(c.CORS.AllowedOrigins)
		logger.Log.Info("CORS origins reloaded", zap.Strings("origins", c.CORS.AllowedOrigins))
	})

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(a.cors.Middleware())
	router.Use(security.Secure())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return nil, err
	}

	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			return nil, err
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	// redis 仅用于内容缓存，不可用时降级为直接读库
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, content cache disabled", zap.Error(err))
	} else {
		app.Redis = rdb
		app.shutdownHooks = append(app.shutdownHooks, func(context.Context) error { return rdb.Close() })
	}

	repos := app.initRepositories(db)
	svcs, err := app.initServices(repos, cfg, app.Redis)
	if err != nil {
		return nil, err
	}
	app.services = svcs
	ctrls := app.initControllers(svcs)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("wealth-builder", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.shutdownHooks = append(app.shutdownHooks, tp.Shutdown)
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.limiters = app.initLimiters(cfg)
	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app, nil
}

// Reseed 重新写入内置学习内容并清除内容缓存
func (a *App) Reseed(ctx context.Context) error {
	if err := database.SeedContent(ctx, a.DB, true); err != nil {
		return err
	}
	if a.services != nil {
		return a.services.content.Invalidate(ctx)
	}
	return nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(ctx)

	logger.Log.Info("Server exiting")
}

// Close 释放限流器、redis 和追踪等资源
func (a *App) Close(ctx context.Context) {
	for i := len(a.shutdownHooks) - 1; i >= 0; i-- {
		if err := a.shutdownHooks[i](ctx); err != nil {
			logger.Log.Error("Shutdown hook failed", zap.Error(err))
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
