package controller

import (
	"errors"
	"strconv"

	"fitness_tracker_backend/internal/service"
	"fitness_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WorkoutController struct {
	WorkoutService *service.WorkoutService
}

func NewWorkoutController(workoutService *service.WorkoutService) *WorkoutController {
	return &WorkoutController{WorkoutService: workoutService}
}

// @Summary 创建训练日内容
// @Tags 训练
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param workout body service.WorkoutRequest true "训练内容"
// @Success 201 {object} util.Response
// @Router /workouts [post]
func (c *WorkoutController) CreateWorkout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.WorkoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	workout, err := c.WorkoutService.CreateWorkout(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, workout)
}

// @Summary 训练列表
// @Tags 训练
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /workouts [get]
func (c *WorkoutController) ListWorkouts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	workouts, err := c.WorkoutService.ListWorkouts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, workouts)
}

// @Summary 训练详情
// @Tags 训练
// @Produce json
// @Security ApiKeyAuth
// @Param workoutId path int true "训练ID"
// @Success 200 {object} util.Response
// @Router /workouts/{workoutId} [get]
func (c *WorkoutController) GetWorkout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	workoutID, err := strconv.Atoi(ctx.Param("workoutId"))
	if err != nil || workoutID <= 0 {
		util.BadRequest(ctx, "Invalid workout ID")
		return
	}

	workout, err2 := c.WorkoutService.GetWorkout(claims.UserID, uint(workoutID))
	if err2 != nil {
		if errors.Is(err2, util.ErrWorkoutNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err2)
		return
	}
	util.Success(ctx, workout)
}

// @Summary 完成训练
// @Description 记录一次打卡并推进连续打卡状态机
// @Tags 训练
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param workoutId path int true "训练ID"
// @Param session body service.CompleteWorkoutRequest false "打卡信息"
// @Success 200 {object} util.Response
// @Router /workouts/{workoutId}/complete [post]
func (c *WorkoutController) CompleteWorkout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	workoutID, err := strconv.Atoi(ctx.Param("workoutId"))
	if err != nil || workoutID <= 0 {
		util.BadRequest(ctx, "Invalid workout ID")
		return
	}

	var req service.CompleteWorkoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.WorkoutService.CompleteWorkout(claims.UserID, uint(workoutID), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrWorkoutNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrUserNotFound):
			util.Unauthorized(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// @Summary 打卡历史
// @Tags 训练
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "数量上限"
// @Success 200 {object} util.Response
// @Router /workouts/sessions [get]
func (c *WorkoutController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	sessions, err := c.WorkoutService.ListSessions(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}
