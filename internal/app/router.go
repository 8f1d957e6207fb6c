package app

import (
	"fitness_tracker_backend/docs"
	"fitness_tracker_backend/internal/config"
	"fitness_tracker_backend/internal/middleware"
	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerMemberRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerMemberRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)
	rg.GET("/user/streak", c.user.GetStreak)

	// 训练计划
	rg.POST("/routines", c.routine.CreateRoutine)
	rg.GET("/routines", c.routine.ListRoutines)
	rg.GET("/routines/:routineId", c.routine.GetRoutine)
	rg.PUT("/routines/:routineId", c.routine.UpdateRoutine)
	rg.DELETE("/routines/:routineId", c.routine.DeleteRoutine)
	rg.POST("/routines/:routineId/activate", c.routine.ActivateRoutine)
	rg.POST("/routines/deactivate", c.routine.DeactivateRoutine)

	// 训练与打卡
	rg.POST("/workouts", c.workout.CreateWorkout)
	rg.GET("/workouts", c.workout.ListWorkouts)
	rg.GET("/workouts/sessions", c.workout.ListSessions)
	rg.GET("/workouts/:workoutId", c.workout.GetWorkout)
	rg.POST("/workouts/:workoutId/complete", c.workout.CompleteWorkout)

	// 训练记录与成就
	rg.POST("/records", c.record.CreateRecord)
	rg.POST("/records/batch", c.record.CreateRecords)
	rg.GET("/records", c.record.ListRecords)
	rg.GET("/records/:recordId", c.record.GetRecord)

	// 动作库与个人最佳
	rg.GET("/exercises", c.exercise.SearchExercises)
	rg.GET("/exercises/personal-bests", c.exercise.ListPersonalBests)
	rg.GET("/exercises/:exerciseId", c.exercise.GetExercise)
	rg.GET("/exercises/:exerciseId/personal-best", c.exercise.GetPersonalBest)

	// 统计
	rg.GET("/stats/leaderboard", c.stats.GetStreakLeaderboard)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/backfill", c.admin.RunBackfill)
		admin.POST("/backfill/:userId", c.admin.RunUserBackfill)
		admin.POST("/users/:userId/freezes", c.admin.GrantFreezes)
	}
}
