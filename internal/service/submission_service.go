package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"online_exam_backend/internal/model"
	"online_exam_backend/internal/repository"
	"online_exam_backend/internal/util"
	"online_exam_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type SubmissionService struct {
	SubmissionRepo *repository.SubmissionRepository
	AnswerRepo     *repository.AnswerRepository
	ScoreRepo      *repository.ScoreRepository
	ExamRepo       *repository.ExamRepository
	CourseRepo     *repository.CourseRepository
	GradingRepo    *repository.GradingConfigurationRepository
	DB             *gorm.DB
}

func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	answerRepo *repository.AnswerRepository,
	scoreRepo *repository.ScoreRepository,
	examRepo *repository.ExamRepository,
	courseRepo *repository.CourseRepository,
	gradingRepo *repository.GradingConfigurationRepository,
	db *gorm.DB,
) *SubmissionService {
	return &SubmissionService{
		SubmissionRepo: submissionRepo,
		AnswerRepo:     answerRepo,
		ScoreRepo:      scoreRepo,
		ExamRepo:       examRepo,
		CourseRepo:     courseRepo,
		GradingRepo:    gradingRepo,
		DB:             db,
	}
}

// SubmitExam 学生交卷。校验、落库、自动判分在同一事务内完成，
// 任一步失败整体回滚，不会留下部分答案。
func (s *SubmissionService) SubmitExam(p Principal, req SubmissionRequest) (*model.Submission, error) {
	if p.Role != model.Student {
		return nil, util.ForbiddenError("only students can submit exams")
	}

	exam, err := s.ExamRepo.FindByIDWithQuestions(req.ExamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("exam", req.ExamID)
		}
		return nil, err
	}

	if err := validateSubmissionWindow(exam, time.Now()); err != nil {
		return nil, err
	}

	enrolled, err := s.CourseRepo.IsEnrolled(exam.CourseID, p.ID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ForbiddenError("you are not enrolled in this course")
	}

	if err := validateAnswers(exam.Questions, req.Answers); err != nil {
		return nil, err
	}

	gradingCfg := s.activeGradingConfig()

	var submission *model.Submission
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		exists, err := s.SubmissionRepo.ExistsByStudentAndExam(tx, p.ID, exam.ID)
		if err != nil {
			return err
		}
		if exists {
			return util.ValidationError("you have already submitted this exam")
		}

		submission = &model.Submission{
			SubmittedAt: time.Now(),
			StudentID:   p.ID,
			ExamID:      exam.ID,
			Status:      model.SubmissionSubmitted,
		}
		if err := s.SubmissionRepo.Create(tx, submission); err != nil {
			return translateDuplicateSubmission(err)
		}

		answers, err := s.createAnswers(tx, submission, exam, req.Answers)
		if err != nil {
			return err
		}
		submission.Answers = answers

		result := AutoGrade(exam.Questions, answers)
		total := result.TotalScore
		submission.TotalScore = &total

		score := DeriveScore(result.TotalScore, exam.TotalMarks(), gradingCfg, nil)
		score.SubmissionID = submission.ID
		if !result.FullyGraded {
			// 含主观题，总分未定，先挂起
			score.Status = model.ScoreIncomplete
		}
		if err := s.ScoreRepo.Save(tx, &score); err != nil {
			return err
		}
		submission.Score = &score

		if result.FullyGraded {
			submission.Graded = true
			submission.Status = model.SubmissionGraded
		}
		if err := s.SubmissionRepo.Update(tx, submission); err != nil {
			return err
		}

		if result.FullyGraded {
			monitoring.SubmissionsGraded.WithLabelValues("auto").Inc()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return submission, nil
}

func (s *SubmissionService) createAnswers(tx *gorm.DB, submission *model.Submission, exam *model.Exam, requests []AnswerRequest) ([]model.Answer, error) {
	optionByID := make(map[uint]model.Option)
	for _, q := range exam.Questions {
		for _, o := range q.Options {
			optionByID[o.ID] = o
		}
	}

	answers := make([]model.Answer, 0, len(requests))
	for _, req := range requests {
		answer := model.Answer{
			TextAnswer:   req.TextAnswer,
			SubmissionID: submission.ID,
			QuestionID:   req.QuestionID,
		}
		for _, id := range req.SelectedOptionIDs {
			answer.SelectedOptions = append(answer.SelectedOptions, optionByID[id])
		}
		if err := s.AnswerRepo.Create(tx, &answer); err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

// GradeSubmission 人工评分。仅归属教师或管理员，分数范围 [0, 考试满分]。
func (s *SubmissionService) GradeSubmission(p Principal, submissionID uint, totalScore float64) (*model.Submission, error) {
	submission, err := s.findSubmission(submissionID)
	if err != nil {
		return nil, err
	}

	if !CanGradeSubmission(p, submission) {
		return nil, util.ForbiddenError("you don't have permission to grade this submission")
	}

	exam, err := s.ExamRepo.FindByIDWithQuestions(submission.ExamID)
	if err != nil {
		return nil, err
	}

	totalMarks := exam.TotalMarks()
	if totalScore < 0 || totalScore > totalMarks {
		return nil, util.ValidationError(fmt.Sprintf("score must be between 0 and %g", totalMarks))
	}

	gradingCfg := s.activeGradingConfig()

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		gradedBy := p.ID
		score := DeriveScore(totalScore, totalMarks, gradingCfg, &gradedBy)
		score.SubmissionID = submission.ID

		// 已有成绩则覆盖，保留行ID与业务编号
		if existing, err := s.ScoreRepo.FindBySubmission(tx, submission.ID); err == nil {
			score.ID = existing.ID
			score.Reference = existing.Reference
			score.CreatedAt = existing.CreatedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := s.ScoreRepo.Save(tx, &score); err != nil {
			return err
		}

		submission.TotalScore = &totalScore
		submission.Graded = true
		submission.Status = model.SubmissionGraded
		submission.Score = &score
		return s.SubmissionRepo.Update(tx, submission)
	})
	if err != nil {
		return nil, err
	}

	monitoring.SubmissionsGraded.WithLabelValues("manual").Inc()
	return submission, nil
}

// GetSubmissionByID 先查存在性，再查权限
func (s *SubmissionService) GetSubmissionByID(p Principal, id uint) (*model.Submission, error) {
	submission, err := s.findSubmission(id)
	if err != nil {
		return nil, err
	}
	if !CanViewSubmission(p, submission) {
		return nil, util.ForbiddenError("you don't have permission to view this submission")
	}
	return submission, nil
}

func (s *SubmissionService) GetSubmissionsByExam(p Principal, examID uint) ([]model.Submission, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("exam", examID)
		}
		return nil, err
	}
	if !CanManageExam(p, exam) {
		return nil, util.ForbiddenError("you don't have permission to view submissions")
	}
	return s.SubmissionRepo.FindByExam(examID)
}

func (s *SubmissionService) GetMySubmissions(p Principal) ([]model.Submission, error) {
	return s.SubmissionRepo.FindByStudent(p.ID)
}

// SubmissionResults 对外的成绩视图
type SubmissionResults struct {
	SubmissionID    uint              `json:"submissionId"`
	ExamTitle       string            `json:"examTitle"`
	Graded          bool              `json:"graded"`
	TotalScore      *float64          `json:"totalScore,omitempty"`
	PercentageScore *float64          `json:"percentageScore,omitempty"`
	Reading         string            `json:"reading,omitempty"`
	Status          model.ScoreStatus `json:"status,omitempty"`
}

func (s *SubmissionService) GetSubmissionResults(p Principal, id uint) (*SubmissionResults, error) {
	submission, err := s.GetSubmissionByID(p, id)
	if err != nil {
		return nil, err
	}

	results := &SubmissionResults{
		SubmissionID: submission.ID,
		Graded:       submission.Graded,
		TotalScore:   submission.TotalScore,
	}
	if submission.Exam != nil {
		results.ExamTitle = submission.Exam.Title
	}
	if submission.Score != nil {
		results.PercentageScore = &submission.Score.PercentageScore
		results.Reading = submission.Score.Reading
		results.Status = submission.Score.Status
	}
	return results, nil
}

func (s *SubmissionService) findSubmission(id uint) (*model.Submission, error) {
	submission, err := s.SubmissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("submission", id)
		}
		return nil, err
	}
	return submission, nil
}

// activeGradingConfig 生效评分配置缺失时返回 nil，成绩只算百分比不落带
func (s *SubmissionService) activeGradingConfig() *model.GradingConfiguration {
	cfg, err := s.GradingRepo.FindActive()
	if err != nil {
		return nil
	}
	return cfg
}

// 并发重复提交时唯一索引报错，对外统一为校验错误
func translateDuplicateSubmission(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
		return util.ValidationError("you have already submitted this exam")
	}
	return err
}
