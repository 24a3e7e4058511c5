package controller

import (
	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/service"
	"wealth_builder_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// RegisterRequest 注册请求
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	LiteracyLevel string `json:"literacyLevel" binding:"required,oneof=beginner intermediate advanced"`
	PrimaryGoal   string `json:"primaryGoal" binding:"required,oneof=start_business invest_stocks p2p_lending general_literacy"`
}

// LoginRequest 登录请求
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary 注册新用户
// @Description 使用邮箱、密码、理财知识水平和学习目标注册，成功后返回令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response{data=service.AuthResult} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Failure 429 {object} util.Response "请求过于频繁"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	res, err := c.AuthService.Register(ctx.Request.Context(), service.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		LiteracyLevel: model.LiteracyLevel(req.LiteracyLevel),
		PrimaryGoal:   model.PrimaryGoal(req.PrimaryGoal),
	})
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, res)
}

// Login godoc
// @Summary 用户登录
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=service.AuthResult} "登录成功"
// @Failure 400 {object} util.Response "邮箱或密码错误"
// @Failure 429 {object} util.Response "请求过于频繁"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	res, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, res)
}
