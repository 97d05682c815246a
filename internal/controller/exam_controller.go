package controller

import (
	"online_exam_backend/internal/service"
	"online_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// CreateExam godoc
// @Summary 创建考试
// @Description 在课程下创建考试，新考试默认未发布
// @Tags 考试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "课程ID"
// @Param body body service.ExamRequest true "考试信息"
// @Success 201 {object} util.Response{data=model.Exam}
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId}/exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		return
	}

	var req service.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.CreateExam(p, courseID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// ListExams godoc
// @Summary 考试列表
// @Description 管理员看全部，教师看名下课程的，学生看已选课程中已发布的
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Exam}
// @Router /api/exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	exams, err := c.ExamService.ListExams(p)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// ListExamsByCourse godoc
// @Summary 课程下的考试
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Exam}
// @Failure 403 {object} util.Response
// @Router /api/courses/{courseId}/exams [get]
func (c *ExamController) ListExamsByCourse(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		return
	}

	exams, err := c.ExamService.ListExamsByCourse(p, courseID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// ListUpcomingExams godoc
// @Summary 未开考的考试
// @Description 学生已选课程中已发布且未开始的考试
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Exam}
// @Router /api/exams/upcoming [get]
func (c *ExamController) ListUpcomingExams(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	exams, err := c.ExamService.ListUpcomingExams(p)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// ListAvailableExams godoc
// @Summary 可作答的考试
// @Description 在答题窗口内且尚未提交的考试
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Exam}
// @Router /api/exams/available [get]
func (c *ExamController) ListAvailableExams(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	exams, err := c.ExamService.ListAvailableExams(p)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// GetExam godoc
// @Summary 查看考试
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 404 {object} util.Response
// @Router /api/exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	exam, err := c.ExamService.GetExamByID(p, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// GetExamForTaking godoc
// @Summary 答题视图
// @Description 连同题目返回；学生视图会抹去选项的正确标记
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 403 {object} util.Response
// @Router /api/exams/{id}/take [get]
func (c *ExamController) GetExamForTaking(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	exam, err := c.ExamService.GetExamForTaking(p, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// UpdateExam godoc
// @Summary 更新考试
// @Tags 考试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "考试ID"
// @Param body body service.ExamRequest true "考试信息"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 403 {object} util.Response
// @Router /api/exams/{id} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.UpdateExam(p, id, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// PublishExam godoc
// @Summary 发布考试
// @Description 要求至少包含一道题目
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response "没有题目"
// @Failure 403 {object} util.Response
// @Router /api/exams/{id}/publish [post]
func (c *ExamController) PublishExam(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	exam, err := c.ExamService.PublishExam(p, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// UnpublishExam godoc
// @Summary 撤回发布
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 403 {object} util.Response
// @Router /api/exams/{id}/publish [delete]
func (c *ExamController) UnpublishExam(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	exam, err := c.ExamService.UnpublishExam(p, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// DeleteExam godoc
// @Summary 删除考试
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/exams/{id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ExamService.DeleteExam(p, id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// GetExamStats godoc
// @Summary 考试成绩统计
// @Description 已判分提交的平均/最高/最低分与通过人数
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response{data=service.ExamStats}
// @Failure 403 {object} util.Response
// @Router /api/exams/{id}/stats [get]
func (c *ExamController) GetExamStats(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	stats, err := c.ExamService.GetExamStats(p, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
