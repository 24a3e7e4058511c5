package controller

import (
	"wealth_builder_backend/internal/service"
	"wealth_builder_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InvestmentController struct {
	InvestmentService *service.InvestmentService
}

func NewInvestmentController(investmentService *service.InvestmentService) *InvestmentController {
	return &InvestmentController{InvestmentService: investmentService}
}

// List godoc
// @Summary 投资机会列表
// @Tags 投资
// @Produce json
// @Success 200 {object} util.Response{data=[]service.InvestmentView}
// @Router /api/investments [get]
func (c *InvestmentController) List(ctx *gin.Context) {
	items, err := c.InvestmentService.List(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// Get godoc
// @Summary 投资机会详情
// @Tags 投资
// @Produce json
// @Param id path string true "投资机会ID"
// @Success 200 {object} util.Response{data=service.InvestmentView}
// @Failure 404 {object} util.Response "投资机会不存在"
// @Router /api/investments/{id} [get]
func (c *InvestmentController) Get(ctx *gin.Context) {
	item, err := c.InvestmentService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, item)
}
