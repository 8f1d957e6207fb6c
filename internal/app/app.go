package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitness_tracker_backend/internal/config"
	"fitness_tracker_backend/internal/controller"
	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/internal/service"
	"fitness_tracker_backend/pkg/database"
	"fitness_tracker_backend/pkg/logger"
	"fitness_tracker_backend/pkg/monitoring"
	"fitness_tracker_backend/pkg/security"
	"fitness_tracker_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	bgCancel context.CancelFunc
}

type repositories struct {
	user         *repository.UserRepository
	routine      *repository.RoutineRepository
	workout      *repository.WorkoutRepository
	session      *repository.WorkoutSessionRepository
	exercise     *repository.ExerciseRepository
	record       *repository.ExerciseRecordRepository
	personalBest *repository.PersonalBestRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	user     *service.UserService
	routine  *service.RoutineService
	workout  *service.WorkoutService
	record   *service.RecordService
	exercise *service.ExerciseService
	streak   *service.StreakService
	backfill *service.BackfillService
	reminder *service.ReminderService
	stats    *service.StatsService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	routine  *controller.RoutineController
	workout  *controller.WorkoutController
	record   *controller.RecordController
	exercise *controller.ExerciseController
	stats    *controller.StatsController
	admin    *controller.AdminController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		routine:      repository.NewRoutineRepository(db),
		workout:      repository.NewWorkoutRepository(db),
		session:      repository.NewWorkoutSessionRepository(db),
		exercise:     repository.NewExerciseRepository(db),
		record:       repository.NewExerciseRecordRepository(db),
		personalBest: repository.NewPersonalBestRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)

	scheduler := service.NewRoutineScheduler()
	s.streak = service.NewStreakService(repos.user, repos.routine, scheduler)

	tracker := service.NewPersonalBestTracker(repos.personalBest)
	s.record = service.NewRecordService(repos.record, repos.exercise, tracker)
	s.backfill = service.NewBackfillService(repos.user, repos.record, repos.personalBest, tracker)

	s.user = service.NewUserService(repos.user, s.streak)
	s.routine = service.NewRoutineService(repos.routine, repos.workout, repos.user)
	s.workout = service.NewWorkoutService(repos.workout, repos.session, repos.exercise, s.streak)
	s.exercise = service.NewExerciseService(repos.exercise, repos.personalBest)
	s.reminder = service.NewReminderService(repos.user, s.streak, rdb, cfg.Streak.CheckHour)
	s.stats = service.NewStatsService(repos.user, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, s.user),
		user:     controller.NewUserController(s.user, s.storage),
		routine:  controller.NewRoutineController(s.routine),
		workout:  controller.NewWorkoutController(s.workout),
		record:   controller.NewRecordController(s.record),
		exercise: controller.NewExerciseController(s.exercise),
		stats:    controller.NewStatsController(s.stats),
		admin:    controller.NewAdminController(s.backfill, s.streak),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 启动时自愈回填 + 按小时的连续打卡衰减扫描
func (a *App) startBackgroundTasks(s *services) {
	ctx, cancel := context.WithCancel(context.Background())
	a.bgCancel = cancel

	if !a.Config.Streak.SkipStartupBackfill {
		go s.backfill.RunStartup()
	}

	go s.reminder.Run(ctx)
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("fitness-tracker", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, os.ModePerm)
		}
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	if !cfg.MigrateOnly {
		app.startBackgroundTasks(services)
	}

	return app
}

// ApplyConfig 配置热更新, 只接管运行期可调的项
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.Streak = cfg.Streak
	if a.services != nil && a.services.reminder != nil {
		a.services.reminder.CheckHour = cfg.Streak.CheckHour
	}
	logger.Log.Info("config reloaded", zap.Int("streakCheckHour", cfg.Streak.CheckHour))
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.bgCancel != nil {
		a.bgCancel()
	}

	// 关闭服务
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
