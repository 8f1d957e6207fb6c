package controller

import (
	"errors"
	"strconv"

	"fitness_tracker_backend/internal/service"
	"fitness_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecordController struct {
	RecordService *service.RecordService
}

func NewRecordController(recordService *service.RecordService) *RecordController {
	return &RecordController{RecordService: recordService}
}

// @Summary 提交训练记录
// @Description 提交一组动作记录, 自动评估 1RM/容量成就
// @Tags 训练记录
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param record body service.RecordRequest true "记录内容"
// @Success 201 {object} util.Response
// @Router /records [post]
func (c *RecordController) CreateRecord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.RecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.RecordService.CreateRecord(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, record)
}

// @Summary 批量提交训练记录
// @Tags 训练记录
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param records body []service.RecordRequest true "记录列表"
// @Success 201 {object} util.Response
// @Router /records/batch [post]
func (c *RecordController) CreateRecords(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var reqs []service.RecordRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(reqs) == 0 {
		util.BadRequest(ctx, "Empty record list")
		return
	}

	records, err := c.RecordService.CreateRecords(claims.UserID, reqs)
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, records)
}

// @Summary 记录详情
// @Tags 训练记录
// @Produce json
// @Security ApiKeyAuth
// @Param recordId path int true "记录ID"
// @Success 200 {object} util.Response
// @Router /records/{recordId} [get]
func (c *RecordController) GetRecord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	recordID, err := strconv.Atoi(ctx.Param("recordId"))
	if err != nil || recordID <= 0 {
		util.BadRequest(ctx, "Invalid record ID")
		return
	}

	record, err2 := c.RecordService.GetRecord(claims.UserID, uint(recordID))
	if err2 != nil {
		if errors.Is(err2, util.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err2)
		return
	}
	util.Success(ctx, record)
}

// @Summary 记录列表
// @Tags 训练记录
// @Produce json
// @Security ApiKeyAuth
// @Param exerciseId query int false "按动作过滤"
// @Success 200 {object} util.Response
// @Router /records [get]
func (c *RecordController) ListRecords(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	exerciseID, _ := strconv.Atoi(ctx.DefaultQuery("exerciseId", "0"))
	if exerciseID < 0 {
		exerciseID = 0
	}

	records, err := c.RecordService.ListRecords(claims.UserID, uint(exerciseID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}
