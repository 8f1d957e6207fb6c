package controller

import (
	"strconv"

	"fitness_tracker_backend/internal/service"
	"fitness_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// @Summary 连续打卡排行榜
// @Description 按最长连续打卡天数排序, 结果带 Redis 短缓存
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "数量上限"
// @Success 200 {object} util.Response
// @Router /stats/leaderboard [get]
func (c *StatsController) GetStreakLeaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	entries, err := c.StatsService.GetStreakLeaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
