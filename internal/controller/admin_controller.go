package controller

import (
	"errors"
	"strconv"

	"fitness_tracker_backend/internal/service"
	"fitness_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	BackfillService *service.BackfillService
	StreakService   *service.StreakService
}

func NewAdminController(backfillService *service.BackfillService, streakService *service.StreakService) *AdminController {
	return &AdminController{
		BackfillService: backfillService,
		StreakService:   streakService,
	}
}

// @Summary 全量成就回填
// @Description 重放所有用户的历史记录, 修复成就标注与个人最佳
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /admin/backfill [post]
func (c *AdminController) RunBackfill(ctx *gin.Context) {
	result, err := c.BackfillService.BackfillAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 单用户成就回填
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /admin/backfill/{userId} [post]
func (c *AdminController) RunUserBackfill(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil || userID <= 0 {
		util.BadRequest(ctx, "Invalid user ID")
		return
	}

	result, err2 := c.BackfillService.BackfillUser(uint(userID))
	if err2 != nil {
		if errors.Is(err2, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err2)
		return
	}
	util.Success(ctx, result)
}

type grantFreezesRequest struct {
	Count int `json:"count" binding:"required,min=1,max=10"`
}

// @Summary 发放冻结卡
// @Description 给用户增加连续打卡冻结次数
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户ID"
// @Param grant body grantFreezesRequest true "发放数量"
// @Success 200 {object} util.Response
// @Router /admin/users/{userId}/freezes [post]
func (c *AdminController) GrantFreezes(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil || userID <= 0 {
		util.BadRequest(ctx, "Invalid user ID")
		return
	}

	var req grantFreezesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err2 := c.StreakService.AddFreezes(uint(userID), req.Count)
	if err2 != nil {
		if errors.Is(err2, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err2)
		return
	}
	util.Success(ctx, gin.H{
		"userId":            user.ID,
		"streakFreezeCount": user.Streak.StreakFreezeCount,
	})
}
