package app

import (
	"context"
	"cyberar_admin_backend/internal/config"
	"cyberar_admin_backend/internal/controller"
	"cyberar_admin_backend/internal/repository"
	"cyberar_admin_backend/internal/service"
	"cyberar_admin_backend/internal/util"
	"cyberar_admin_backend/pkg/configwatcher"
	"cyberar_admin_backend/pkg/database"
	"cyberar_admin_backend/pkg/logger"
	"cyberar_admin_backend/pkg/monitoring"
	"cyberar_admin_backend/pkg/security"
	"cyberar_admin_backend/pkg/tracing"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Store           repository.DocumentStore
	Redis           *redis.Client
	closers         []func(context.Context) error
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	module      *repository.ModuleRepository
	assessment  *repository.AssessmentRepository
	record      *repository.RecordRepository
	collections *repository.CollectionRepository
}

type services struct {
	dashboard *service.DashboardService
}

type controllers struct {
	dashboard *controller.DashboardController
	admin     *controller.AdminController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) onClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

// initStore opens the configured backend and wraps it with retries and
// instrumentation.
func (a *App) initStore(cfg *config.Config) (repository.DocumentStore, error) {
	var backend repository.DocumentStore

	switch cfg.Store.Type {
	case util.StoreMongo:
		client, err := database.InitMongo(&cfg.Mongo)
		if err != nil {
			return nil, err
		}
		a.onClose(client.Disconnect)
		backend = repository.NewMongoStore(client.Database(cfg.Mongo.Database))
	case util.StoreMySQL:
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == "debug")
		if err != nil {
			return nil, err
		}
		a.onClose(func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
		backend = repository.NewSQLStore(db)
	case util.StoreMemory:
		mem := repository.NewMemoryStore()
		if cfg.Store.SeedFile != "" {
			if err := mem.LoadFixture(cfg.Store.SeedFile); err != nil {
				return nil, err
			}
		}
		backend = mem
	default:
		return nil, fmt.Errorf("unsupported store type %q", cfg.Store.Type)
	}

	policy := repository.RetryPolicy{
		MaxAttempts:    cfg.Retry.MaxAttempts,
		InitialBackoff: cfg.Retry.InitialBackoff,
		MaxBackoff:     cfg.Retry.MaxBackoff,
	}
	return repository.NewRetryingStore(repository.NewInstrumentedStore(backend), policy), nil
}

func (a *App) initRepositories(store repository.DocumentStore) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(store),
		module:      repository.NewModuleRepository(store),
		assessment:  repository.NewAssessmentRepository(store),
		record:      repository.NewRecordRepository(store),
		collections: repository.NewCollectionRepository(store),
	}
}

func (a *App) initServices(repos *repositories) *services {
	return &services{
		dashboard: service.NewDashboardService(repos.user, repos.module, repos.assessment, repos.record),
	}
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		dashboard: controller.NewDashboardController(s.dashboard),
		admin:     controller.NewAdminController(repos.collections),
		health:    controller.NewHealthController(a.Store, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if a.Redis != nil {
		router.Use(security.RedisRateLimiter(a.Redis, cfg.RateLimit.MaxRequests, window))
	} else {
		limiterCtx, stopLimiter := context.WithCancel(context.Background())
		a.onClose(func(context.Context) error {
			stopLimiter()
			return nil
		})
		router.Use(security.RateLimiter(limiterCtx, cfg.RateLimit.MaxRequests, window))
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{Config: cfg}
	app.RegisterConfigCallback(logger.SetLevel)

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(context.Background(), &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		app.Redis = rdb
		app.onClose(func(context.Context) error { return rdb.Close() })
	}

	store, err := app.initStore(cfg)
	if err != nil {
		app.Close(context.Background())
		return nil, fmt.Errorf("init %s store: %w", cfg.Store.Type, err)
	}
	app.Store = store

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			app.Close(context.Background())
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.onClose(tp.Shutdown)
	}

	repos := app.initRepositories(store)
	services := app.initServices(repos)
	controllers := app.initControllers(services, repos)

	// 监控初始化
	monitoring.Init()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app, nil
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if a.Config.File != "" {
		go func() {
			if err := configwatcher.WatchConfig(watchCtx, a.Config.File, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen", zap.Error(err))
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

// Close releases backends in reverse order of acquisition.
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Log.Warn("Shutdown step failed", zap.Error(err))
		}
	}
	a.closers = nil
}
