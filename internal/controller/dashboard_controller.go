package controller

import (
	"online_exam_backend/internal/service"
	"online_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// StudentDashboard godoc
// @Summary 学生首页
// @Description 选课数、待考与可考考试、近期成绩与平均分
// @Tags 看板
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.StudentDashboard}
// @Failure 403 {object} util.Response
// @Router /api/dashboard/student [get]
func (c *DashboardController) StudentDashboard(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	dashboard, err := c.DashboardService.GetStudentDashboard(p)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// TeacherDashboard godoc
// @Summary 教师首页
// @Description 名下课程、考试统计与待评分数量
// @Tags 看板
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.TeacherDashboard}
// @Failure 403 {object} util.Response
// @Router /api/dashboard/teacher [get]
func (c *DashboardController) TeacherDashboard(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	dashboard, err := c.DashboardService.GetTeacherDashboard(p)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
