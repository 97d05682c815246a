package controller

import (
	"online_exam_backend/internal/service"
	"online_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradingConfigurationController struct {
	GradingService *service.GradingConfigurationService
}

func NewGradingConfigurationController(gradingService *service.GradingConfigurationService) *GradingConfigurationController {
	return &GradingConfigurationController{GradingService: gradingService}
}

// GetActive godoc
// @Summary 当前生效的评分配置
// @Tags 评分配置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.GradingConfiguration}
// @Router /api/grading-configurations/active [get]
func (c *GradingConfigurationController) GetActive(ctx *gin.Context) {
	cfg, err := c.GradingService.GetActive()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, cfg)
}

// List godoc
// @Summary 评分配置列表
// @Description 仅管理员
// @Tags 评分配置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.GradingConfiguration}
// @Failure 403 {object} util.Response
// @Router /api/grading-configurations [get]
func (c *GradingConfigurationController) List(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	cfgs, err := c.GradingService.List(p)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, cfgs)
}

// Get godoc
// @Summary 查看评分配置
// @Tags 评分配置
// @Produce json
// @Security BearerAuth
// @Param id path int true "配置ID"
// @Success 200 {object} util.Response{data=model.GradingConfiguration}
// @Failure 404 {object} util.Response
// @Router /api/grading-configurations/{id} [get]
func (c *GradingConfigurationController) Get(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	cfg, err := c.GradingService.GetByID(p, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, cfg)
}

// Create godoc
// @Summary 创建评分配置
// @Description 新配置默认不生效，需显式激活
// @Tags 评分配置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.GradingConfigurationRequest true "配置内容"
// @Success 201 {object} util.Response{data=model.GradingConfiguration}
// @Failure 403 {object} util.Response
// @Router /api/grading-configurations [post]
func (c *GradingConfigurationController) Create(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var req service.GradingConfigurationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cfg, err := c.GradingService.Create(p, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, cfg)
}

// Update godoc
// @Summary 更新评分配置
// @Description 整体替换配置内容与等级带，历史成绩不重算
// @Tags 评分配置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "配置ID"
// @Param body body service.GradingConfigurationRequest true "配置内容"
// @Success 200 {object} util.Response{data=model.GradingConfiguration}
// @Failure 403 {object} util.Response
// @Router /api/grading-configurations/{id} [put]
func (c *GradingConfigurationController) Update(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.GradingConfigurationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cfg, err := c.GradingService.Update(p, id, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, cfg)
}

// Activate godoc
// @Summary 激活评分配置
// @Description 同一时刻仅一份配置生效；历史成绩不重算
// @Tags 评分配置
// @Produce json
// @Security BearerAuth
// @Param id path int true "配置ID"
// @Success 200 {object} util.Response{data=model.GradingConfiguration}
// @Failure 403 {object} util.Response
// @Router /api/grading-configurations/{id}/activate [post]
func (c *GradingConfigurationController) Activate(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	cfg, err := c.GradingService.Activate(p, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, cfg)
}

// Delete godoc
// @Summary 删除评分配置
// @Description 生效中的配置不可删除
// @Tags 评分配置
// @Produce json
// @Security BearerAuth
// @Param id path int true "配置ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "配置生效中"
// @Failure 403 {object} util.Response
// @Router /api/grading-configurations/{id} [delete]
func (c *GradingConfigurationController) Delete(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.GradingService.Delete(p, id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
