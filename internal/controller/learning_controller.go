package controller

import (
	"wealth_builder_backend/internal/service"
	"wealth_builder_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	LearningService *service.LearningService
}

func NewLearningController(learningService *service.LearningService) *LearningController {
	return &LearningController{LearningService: learningService}
}

// SubmitQuizRequest 测验提交
// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	ModuleID string   `json:"moduleId" binding:"required"`
	Answers  []string `json:"answers" binding:"required"`
}

// SubmitProgressRequest 进度更新，completed 缺省为 false
// swagger:model SubmitProgressRequest
type SubmitProgressRequest struct {
	ModuleID  string `json:"moduleId" binding:"required"`
	Completed *bool  `json:"completed"`
}

// GetPaths godoc
// @Summary 获取学习路径列表
// @Description 返回所有学习路径及按顺序排列的模块摘要
// @Tags 学习
// @Produce json
// @Success 200 {object} util.Response{data=[]model.LearningPathSummary}
// @Router /api/learning/paths [get]
func (c *LearningController) GetPaths(ctx *gin.Context) {
	paths, err := c.LearningService.ListPaths(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, paths)
}

// GetModule godoc
// @Summary 获取模块详情
// @Description 返回模块内容、所属路径和测验题目
// @Tags 学习
// @Produce json
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/learning/modules/{id} [get]
func (c *LearningController) GetModule(ctx *gin.Context) {
	module, err := c.LearningService.GetModule(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// SubmitQuiz godoc
// @Summary 提交测验
// @Description 按位置比对答案评分，得分不低于 80 视为通过并标记模块完成
// @Tags 学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitQuizRequest true "测验答案"
// @Success 200 {object} util.Response{data=service.QuizResult}
// @Failure 400 {object} util.Response "参数错误或模块没有测验"
// @Failure 401 {object} util.Response "未认证"
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/learning/quiz [post]
func (c *LearningController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.LearningService.SubmitQuiz(ctx.Request.Context(), claims.UserID, req.ModuleID, req.Answers)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// SubmitProgress godoc
// @Summary 更新模块进度
// @Tags 学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitProgressRequest true "进度"
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Failure 400 {object} util.Response "参数错误"
// @Failure 401 {object} util.Response "未认证"
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/learning/progress [post]
func (c *LearningController) SubmitProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitProgressRequest
	if !bindJSON(ctx, &req) {
		return
	}

	completed := req.Completed != nil && *req.Completed
	progress, err := c.LearningService.SubmitProgress(ctx.Request.Context(), claims.UserID, req.ModuleID, completed)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
