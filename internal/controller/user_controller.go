package controller

import (
	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/service"
	"wealth_builder_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService     *service.UserService
	ProgressService *service.ProgressService
}

func NewUserController(userService *service.UserService, progressService *service.ProgressService) *UserController {
	return &UserController{
		UserService:     userService,
		ProgressService: progressService,
	}
}

// UpdateProfileRequest 资料更新，字段均可选
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	LiteracyLevel   *string `json:"literacyLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	PrimaryGoal     *string `json:"primaryGoal" binding:"omitempty,oneof=start_business invest_stocks p2p_lending general_literacy"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword" binding:"omitempty,min=6"`
}

// GetProfile godoc
// @Summary 获取个人资料
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserProfile}
// @Failure 401 {object} util.Response "未认证"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/user/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.GetProfile(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Description 修改知识水平、学习目标；修改密码需提供当前密码
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateProfileRequest true "资料"
// @Success 200 {object} util.Response{data=model.UserProfile}
// @Failure 400 {object} util.Response "参数错误或当前密码错误"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	in := service.ProfileUpdate{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}
	if req.LiteracyLevel != nil {
		level := model.LiteracyLevel(*req.LiteracyLevel)
		in.LiteracyLevel = &level
	}
	if req.PrimaryGoal != nil {
		goal := model.PrimaryGoal(*req.PrimaryGoal)
		in.PrimaryGoal = &goal
	}

	profile, err := c.UserService.UpdateProfile(ctx.Request.Context(), claims.UserID, in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// GetProgress godoc
// @Summary 获取学习进度与统计
// @Description 返回进度记录、测验记录、完成模块数、平均分、连续学习天数和总体进度
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserProgressOverview}
// @Failure 401 {object} util.Response "未认证"
// @Failure 503 {object} util.Response "依赖服务不可用"
// @Router /api/user/progress [get]
func (c *UserController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.ProgressService.GetUserProgress(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}
