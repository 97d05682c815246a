package service

import (
	"errors"

	"online_exam_backend/internal/model"
	"online_exam_backend/internal/repository"
	"online_exam_backend/internal/util"

	"gorm.io/gorm"
)

type AnswerService struct {
	AnswerRepo     *repository.AnswerRepository
	SubmissionRepo *repository.SubmissionRepository
	QuestionRepo   *repository.QuestionRepository
	ExamRepo       *repository.ExamRepository
	ScoreRepo      *repository.ScoreRepository
	GradingRepo    *repository.GradingConfigurationRepository
	DB             *gorm.DB
}

func NewAnswerService(
	answerRepo *repository.AnswerRepository,
	submissionRepo *repository.SubmissionRepository,
	questionRepo *repository.QuestionRepository,
	examRepo *repository.ExamRepository,
	scoreRepo *repository.ScoreRepository,
	gradingRepo *repository.GradingConfigurationRepository,
	db *gorm.DB,
) *AnswerService {
	return &AnswerService{
		AnswerRepo:     answerRepo,
		SubmissionRepo: submissionRepo,
		QuestionRepo:   questionRepo,
		ExamRepo:       examRepo,
		ScoreRepo:      scoreRepo,
		GradingRepo:    gradingRepo,
		DB:             db,
	}
}

// ListBySubmission 查看某次提交的答案明细，权限同查看提交
func (s *AnswerService) ListBySubmission(p Principal, submissionID uint) ([]model.Answer, error) {
	submission, err := s.findSubmission(submissionID)
	if err != nil {
		return nil, err
	}
	if !CanViewSubmission(p, submission) {
		return nil, util.ForbiddenError("you don't have permission to view these answers")
	}
	return s.AnswerRepo.FindBySubmission(submissionID)
}

// answerUpdateGuard 改答前置校验：仅提交者本人，且提交未判分（判分后锁定）
func answerUpdateGuard(p Principal, answer *model.Answer) error {
	if !CanModifyAnswer(p, answer) {
		return util.ForbiddenError("you don't have permission to modify this answer")
	}
	if answer.Submission != nil && answer.Submission.Graded {
		return util.ValidationError("answers cannot be modified after grading")
	}
	return nil
}

// UpdateAnswer 修改单题作答。修改后按新作答重新形态校验，
// 并在同一事务内重算整卷客观分，避免提交总分停留在旧作答上。
func (s *AnswerService) UpdateAnswer(p Principal, answerID uint, req AnswerRequest) (*model.Answer, error) {
	answer, err := s.AnswerRepo.FindByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("answer", answerID)
		}
		return nil, err
	}

	if err := answerUpdateGuard(p, answer); err != nil {
		return nil, err
	}

	question := answer.Question
	if question == nil {
		q, err := s.QuestionRepo.FindByID(answer.QuestionID)
		if err != nil {
			return nil, err
		}
		question = q
	}

	shape := AnswerRequest{
		QuestionID:        answer.QuestionID,
		TextAnswer:        req.TextAnswer,
		SelectedOptionIDs: req.SelectedOptionIDs,
	}
	if err := validateAnswerShape(question, shape); err != nil {
		return nil, err
	}

	optionByID := make(map[uint]model.Option, len(question.Options))
	for _, o := range question.Options {
		optionByID[o.ID] = o
	}
	selected := make([]model.Option, 0, len(req.SelectedOptionIDs))
	for _, id := range req.SelectedOptionIDs {
		selected = append(selected, optionByID[id])
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		answer.TextAnswer = req.TextAnswer
		if err := s.AnswerRepo.ReplaceSelectedOptions(tx, answer, selected); err != nil {
			return err
		}
		answer.SelectedOptions = selected
		if err := s.AnswerRepo.Update(tx, answer); err != nil {
			return err
		}
		return s.regrade(tx, answer)
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

// regrade 按当前全部作答重算客观题总分，刷新提交与成绩记录。
// 走到这里的提交必然未判分（判分后改答被拦截），成绩保持挂起状态。
func (s *AnswerService) regrade(tx *gorm.DB, answer *model.Answer) error {
	submission := answer.Submission
	if submission == nil {
		found, err := s.findSubmission(answer.SubmissionID)
		if err != nil {
			return err
		}
		submission = found
	}

	exam, err := s.ExamRepo.FindByIDWithQuestions(submission.ExamID)
	if err != nil {
		return err
	}

	answers, err := s.AnswerRepo.FindBySubmissionTx(tx, submission.ID)
	if err != nil {
		return err
	}

	result := AutoGrade(exam.Questions, answers)
	total := result.TotalScore
	submission.TotalScore = &total
	if err := s.SubmissionRepo.Update(tx, submission); err != nil {
		return err
	}

	score := DeriveScore(result.TotalScore, exam.TotalMarks(), s.activeGradingConfig(), nil)
	score.SubmissionID = submission.ID
	if !result.FullyGraded {
		score.Status = model.ScoreIncomplete
	}
	if existing, err := s.ScoreRepo.FindBySubmission(tx, submission.ID); err == nil {
		score.ID = existing.ID
		score.Reference = existing.Reference
		score.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.ScoreRepo.Save(tx, &score)
}

func (s *AnswerService) findSubmission(id uint) (*model.Submission, error) {
	submission, err := s.SubmissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("submission", id)
		}
		return nil, err
	}
	return submission, nil
}

func (s *AnswerService) activeGradingConfig() *model.GradingConfiguration {
	cfg, err := s.GradingRepo.FindActive()
	if err != nil {
		return nil
	}
	return cfg
}
