package controller

import (
	"online_exam_backend/internal/service"
	"online_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
	AnswerService     *service.AnswerService
	DashboardService  *service.DashboardService
}

func NewSubmissionController(
	submissionService *service.SubmissionService,
	answerService *service.AnswerService,
	dashboardService *service.DashboardService,
) *SubmissionController {
	return &SubmissionController{
		SubmissionService: submissionService,
		AnswerService:     answerService,
		DashboardService:  dashboardService,
	}
}

// SubmitExam godoc
// @Summary 交卷
// @Description 校验答题窗口、选课关系与答卷完整性后落库并自动判分
// @Tags 提交
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SubmissionRequest true "答卷"
// @Success 201 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response "答卷不合法或重复提交"
// @Failure 403 {object} util.Response "未选课"
// @Router /api/submissions [post]
func (c *SubmissionController) SubmitExam(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var req service.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.SubmitExam(p, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	c.DashboardService.InvalidateExamStats(ctx.Request.Context(), submission.ExamID)
	util.Created(ctx, submission)
}

// GetMySubmissions godoc
// @Summary 我的提交
// @Tags 提交
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/submissions/mine [get]
func (c *SubmissionController) GetMySubmissions(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	submissions, err := c.SubmissionService.GetMySubmissions(p)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// GetSubmissionsByExam godoc
// @Summary 考试的全部提交
// @Description 仅归属教师或管理员
// @Tags 提交
// @Produce json
// @Security BearerAuth
// @Param examId path int true "考试ID"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Failure 403 {object} util.Response
// @Router /api/exams/{examId}/submissions [get]
func (c *SubmissionController) GetSubmissionsByExam(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	examID, ok := pathID(ctx, "examId")
	if !ok {
		return
	}

	submissions, err := c.SubmissionService.GetSubmissionsByExam(p, examID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// GetSubmission godoc
// @Summary 查看提交
// @Description 本人、归属教师或管理员
// @Tags 提交
// @Produce json
// @Security BearerAuth
// @Param id path int true "提交ID"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 404 {object} util.Response
// @Router /api/submissions/{id} [get]
func (c *SubmissionController) GetSubmission(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	submission, err := c.SubmissionService.GetSubmissionByID(p, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// GetSubmissionResults godoc
// @Summary 查看成绩
// @Tags 提交
// @Produce json
// @Security BearerAuth
// @Param id path int true "提交ID"
// @Success 200 {object} util.Response{data=service.SubmissionResults}
// @Failure 404 {object} util.Response
// @Router /api/submissions/{id}/results [get]
func (c *SubmissionController) GetSubmissionResults(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	results, err := c.SubmissionService.GetSubmissionResults(p, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// GradeRequest 人工评分入参
type GradeRequest struct {
	TotalScore float64 `json:"totalScore" binding:"required"`
}

// GradeSubmission godoc
// @Summary 人工评分
// @Description 归属教师或管理员，分数范围 [0, 考试满分]
// @Tags 提交
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "提交ID"
// @Param body body GradeRequest true "总分"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response "分数超出范围"
// @Failure 403 {object} util.Response
// @Router /api/submissions/{id}/grade [post]
func (c *SubmissionController) GradeSubmission(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.GradeSubmission(p, id, req.TotalScore)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	c.DashboardService.InvalidateExamStats(ctx.Request.Context(), submission.ExamID)
	util.Success(ctx, submission)
}

// ListAnswers godoc
// @Summary 提交的答案明细
// @Tags 提交
// @Produce json
// @Security BearerAuth
// @Param id path int true "提交ID"
// @Success 200 {object} util.Response{data=[]model.Answer}
// @Failure 403 {object} util.Response
// @Router /api/submissions/{id}/answers [get]
func (c *SubmissionController) ListAnswers(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	answers, err := c.AnswerService.ListBySubmission(p, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, answers)
}

// UpdateAnswer godoc
// @Summary 修改答案
// @Description 仅提交者本人，且提交尚未判分
// @Tags 提交
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "答案ID"
// @Param body body service.AnswerRequest true "新作答"
// @Success 200 {object} util.Response{data=model.Answer}
// @Failure 400 {object} util.Response "已判分锁定"
// @Failure 403 {object} util.Response
// @Router /api/answers/{id} [put]
func (c *SubmissionController) UpdateAnswer(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.AnswerService.UpdateAnswer(p, id, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}
