package controller

import (
	"errors"
	"strconv"

	"fitness_tracker_backend/internal/service"
	"fitness_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoutineController struct {
	RoutineService *service.RoutineService
}

func NewRoutineController(routineService *service.RoutineService) *RoutineController {
	return &RoutineController{RoutineService: routineService}
}

func routineIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param("routineId"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "Invalid routine ID")
		return 0, false
	}
	return uint(id), true
}

func (c *RoutineController) handleRoutineError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrRoutineNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrRoutineNameTaken):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrWorkoutNotFound):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 创建训练计划
// @Tags 训练计划
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param routine body service.RoutineRequest true "计划信息"
// @Success 201 {object} util.Response
// @Router /routines [post]
func (c *RoutineController) CreateRoutine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.RoutineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	routine, err := c.RoutineService.CreateRoutine(claims.UserID, req)
	if err != nil {
		c.handleRoutineError(ctx, err)
		return
	}
	util.Created(ctx, routine)
}

// @Summary 计划列表
// @Tags 训练计划
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /routines [get]
func (c *RoutineController) ListRoutines(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	routines, err := c.RoutineService.ListRoutines(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, routines)
}

// @Summary 计划详情
// @Tags 训练计划
// @Produce json
// @Security ApiKeyAuth
// @Param routineId path int true "计划ID"
// @Success 200 {object} util.Response
// @Router /routines/{routineId} [get]
func (c *RoutineController) GetRoutine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	routineID, ok := routineIDParam(ctx)
	if !ok {
		return
	}

	routine, err := c.RoutineService.GetRoutine(claims.UserID, routineID)
	if err != nil {
		c.handleRoutineError(ctx, err)
		return
	}
	util.Success(ctx, routine)
}

// @Summary 更新计划
// @Tags 训练计划
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param routineId path int true "计划ID"
// @Param routine body service.RoutineRequest true "计划信息"
// @Success 200 {object} util.Response
// @Router /routines/{routineId} [put]
func (c *RoutineController) UpdateRoutine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	routineID, ok := routineIDParam(ctx)
	if !ok {
		return
	}

	var req service.RoutineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	routine, err := c.RoutineService.UpdateRoutine(claims.UserID, routineID, req)
	if err != nil {
		c.handleRoutineError(ctx, err)
		return
	}
	util.Success(ctx, routine)
}

// @Summary 激活计划
// @Description 把计划设为当前激活, 只更新 User 上的指针字段
// @Tags 训练计划
// @Produce json
// @Security ApiKeyAuth
// @Param routineId path int true "计划ID"
// @Success 200 {object} util.Response
// @Router /routines/{routineId}/activate [post]
func (c *RoutineController) ActivateRoutine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	routineID, ok := routineIDParam(ctx)
	if !ok {
		return
	}

	if err := c.RoutineService.ActivateRoutine(claims.UserID, routineID); err != nil {
		c.handleRoutineError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Routine activated"})
}

// @Summary 停用当前计划
// @Tags 训练计划
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /routines/deactivate [post]
func (c *RoutineController) DeactivateRoutine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.RoutineService.DeactivateRoutine(claims.UserID); err != nil {
		c.handleRoutineError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Routine deactivated"})
}

// @Summary 删除计划
// @Tags 训练计划
// @Produce json
// @Security ApiKeyAuth
// @Param routineId path int true "计划ID"
// @Success 200 {object} util.Response
// @Router /routines/{routineId} [delete]
func (c *RoutineController) DeleteRoutine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	routineID, ok := routineIDParam(ctx)
	if !ok {
		return
	}

	if err := c.RoutineService.DeleteRoutine(claims.UserID, routineID); err != nil {
		c.handleRoutineError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Routine deleted"})
}
