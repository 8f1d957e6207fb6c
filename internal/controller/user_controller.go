package controller

import (
	"errors"
	"fmt"
	"path/filepath"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/service"
	"fitness_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
}

func NewUserController(userService *service.UserService, storageService *service.StorageService) *UserController {
	return &UserController{UserService: userService, StorageService: storageService}
}

// @Summary 更新资料
// @Description 更新昵称、时区
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param profile body service.ProfileUpdateRequest true "资料"
// @Success 200 {object} util.Response
// @Router /user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, user)
}

// @Summary 上传头像
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param avatar formData file true "头像文件"
// @Success 200 {object} util.Response
// @Router /user/avatar/upload [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, header, err := ctx.Request.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "missing avatar file")
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("avatars/%d/%s%s", claims.UserID, model.GenerateUUID(), filepath.Ext(header.Filename))
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.UserService.UpdateAvatar(claims.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// @Summary 连续打卡状态
// @Description 读取前先做惰性衰减结算
// @Tags 打卡
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /user/streak [get]
func (c *UserController) GetStreak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	info, err := c.UserService.GetStreak(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, info)
}
