package controller

import (
	"errors"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/service"
	"fitness_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService) *AuthController {
	return &AuthController{AuthService: authService, UserService: userService}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Timezone string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary 注册
// @Description 创建新用户, 连续打卡状态以零值初始化
// @Tags 认证
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "注册信息"
// @Success 201 {object} util.Response
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Timezone: timezone,
		Role:     model.RoleMember,
	}
	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// @Summary 登录
// @Description 换取 JWT
// @Tags 认证
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "登录信息"
// @Success 200 {object} util.Response
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// @Summary 当前用户
// @Description 获取当前登录用户的资料
// @Tags 认证
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
