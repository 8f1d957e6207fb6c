package controller

import (
	"errors"
	"strconv"

	"fitness_tracker_backend/internal/service"
	"fitness_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
}

func NewExerciseController(exerciseService *service.ExerciseService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService}
}

// @Summary 动作库检索
// @Tags 动作库
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "关键字"
// @Param muscleGroup query string false "目标肌群"
// @Param limit query int false "数量上限"
// @Success 200 {object} util.Response
// @Router /exercises [get]
func (c *ExerciseController) SearchExercises(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	exercises, err := c.ExerciseService.Search(ctx.Query("q"), ctx.Query("muscleGroup"), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exercises)
}

// @Summary 动作详情
// @Tags 动作库
// @Produce json
// @Security ApiKeyAuth
// @Param exerciseId path int true "动作ID"
// @Success 200 {object} util.Response
// @Router /exercises/{exerciseId} [get]
func (c *ExerciseController) GetExercise(ctx *gin.Context) {
	exerciseID, err := strconv.Atoi(ctx.Param("exerciseId"))
	if err != nil || exerciseID <= 0 {
		util.BadRequest(ctx, "Invalid exercise ID")
		return
	}

	exercise, err2 := c.ExerciseService.GetExercise(uint(exerciseID))
	if err2 != nil {
		if errors.Is(err2, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err2)
		return
	}
	util.Success(ctx, exercise)
}

// @Summary 个人最佳列表
// @Tags 动作库
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /exercises/personal-bests [get]
func (c *ExerciseController) ListPersonalBests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	bests, err := c.ExerciseService.ListPersonalBests(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, bests)
}

// @Summary 单个动作的个人最佳
// @Tags 动作库
// @Produce json
// @Security ApiKeyAuth
// @Param exerciseId path int true "动作ID"
// @Success 200 {object} util.Response
// @Router /exercises/{exerciseId}/personal-best [get]
func (c *ExerciseController) GetPersonalBest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	exerciseID, err := strconv.Atoi(ctx.Param("exerciseId"))
	if err != nil || exerciseID <= 0 {
		util.BadRequest(ctx, "Invalid exercise ID")
		return
	}

	best, err2 := c.ExerciseService.GetPersonalBest(claims.UserID, uint(exerciseID))
	if err2 != nil {
		if errors.Is(err2, util.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err2)
		return
	}
	util.Success(ctx, best)
}
