package service

import (
	"errors"
	"fmt"

	"online_exam_backend/internal/model"
	"online_exam_backend/internal/repository"
	"online_exam_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	ExamRepo     *repository.ExamRepository
	DB           *gorm.DB
}

func NewQuestionService(questionRepo *repository.QuestionRepository, examRepo *repository.ExamRepository, db *gorm.DB) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo, ExamRepo: examRepo, DB: db}
}

// OptionRequest 题目选项入参
type OptionRequest struct {
	Content string `json:"content" binding:"required"`
	Correct bool   `json:"correct"`
}

// QuestionRequest 创建/更新题目入参
type QuestionRequest struct {
	Content      string             `json:"content" binding:"required"`
	Marks        int                `json:"marks" binding:"required"`
	QuestionType model.QuestionType `json:"questionType" binding:"required"`
	Options      []OptionRequest    `json:"options"`
}

// validateQuestionOptions 按题型约束选项结构：
//   - 多选：至少1个选项，至少1个正确
//   - 单选：至少1个选项，恰好1个正确
//   - 判断：恰好2个选项，恰好1个正确
//   - 主观题：选项可有可无，入库时忽略
func validateQuestionOptions(qt model.QuestionType, options []OptionRequest) error {
	correct := 0
	for _, o := range options {
		if o.Correct {
			correct++
		}
	}

	switch qt {
	case model.MultipleChoice, model.MultipleResponse:
		if len(options) == 0 {
			return util.ValidationError("multiple choice questions require at least one option")
		}
		if correct < 1 {
			return util.ValidationError("multiple choice questions require at least one correct option")
		}
	case model.SingleChoice:
		if len(options) == 0 {
			return util.ValidationError("single choice questions require at least one option")
		}
		if correct != 1 {
			return util.ValidationError("single choice questions require exactly one correct option")
		}
	case model.TrueFalse:
		if len(options) != 2 {
			return util.ValidationError("true/false questions require exactly two options")
		}
		if correct != 1 {
			return util.ValidationError("true/false questions require exactly one correct option")
		}
	case model.ShortAnswer, model.Essay, model.Matching, model.FillInBlank:
		// 主观题按自由文本判分，附带的选项直接丢弃
	default:
		return util.ValidationError(fmt.Sprintf("unknown question type: %s", qt))
	}
	return nil
}

// buildOptions 构造入库选项，主观题忽略附带选项
func buildOptions(qt model.QuestionType, requests []OptionRequest) []model.Option {
	if qt.IsFreeText() {
		return nil
	}
	options := make([]model.Option, 0, len(requests))
	for _, o := range requests {
		options = append(options, model.Option{Content: o.Content, Correct: o.Correct})
	}
	return options
}

func (s *QuestionService) validateMarks(marks int) error {
	if marks <= 0 {
		return util.ValidationError("question marks must be positive")
	}
	return nil
}

// AddQuestion 向考试添加题目，仅归属教师或管理员
func (s *QuestionService) AddQuestion(p Principal, examID uint, req QuestionRequest) (*model.Question, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("exam", examID)
		}
		return nil, err
	}
	if !CanManageExam(p, exam) {
		return nil, util.ForbiddenError("you don't have permission to modify this exam")
	}

	if err := s.validateMarks(req.Marks); err != nil {
		return nil, err
	}
	if err := validateQuestionOptions(req.QuestionType, req.Options); err != nil {
		return nil, err
	}

	question := &model.Question{
		Content:      req.Content,
		Marks:        req.Marks,
		QuestionType: req.QuestionType,
		ExamID:       exam.ID,
		Options:      buildOptions(req.QuestionType, req.Options),
	}

	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) GetQuestionByID(p Principal, id uint) (*model.Question, error) {
	question, err := s.findQuestion(id)
	if err != nil {
		return nil, err
	}
	if question.Exam != nil && !CanManageExam(p, question.Exam) {
		// 学生不能在考试接口之外直接读题（题目包含正确答案标记）
		return nil, util.ForbiddenError("you don't have permission to view this question")
	}
	return question, nil
}

func (s *QuestionService) GetQuestionsByExam(p Principal, examID uint) ([]model.Question, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("exam", examID)
		}
		return nil, err
	}
	if !CanManageExam(p, exam) {
		return nil, util.ForbiddenError("you don't have permission to view these questions")
	}
	return s.QuestionRepo.FindByExam(examID)
}

// UpdateQuestion 整体更新题目与选项
func (s *QuestionService) UpdateQuestion(p Principal, id uint, req QuestionRequest) (*model.Question, error) {
	question, err := s.findQuestion(id)
	if err != nil {
		return nil, err
	}
	if question.Exam == nil || !CanManageExam(p, question.Exam) {
		return nil, util.ForbiddenError("you don't have permission to modify this question")
	}

	if err := s.validateMarks(req.Marks); err != nil {
		return nil, err
	}
	if err := validateQuestionOptions(req.QuestionType, req.Options); err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		question.Content = req.Content
		question.Marks = req.Marks
		question.QuestionType = req.QuestionType
		question.Options = nil
		if err := tx.Save(question).Error; err != nil {
			return err
		}

		options := buildOptions(req.QuestionType, req.Options)
		if err := s.QuestionRepo.ReplaceOptions(tx, question.ID, options); err != nil {
			return err
		}
		question.Options = options
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) DeleteQuestion(p Principal, id uint) error {
	question, err := s.findQuestion(id)
	if err != nil {
		return err
	}
	if question.Exam == nil || !CanManageExam(p, question.Exam) {
		return util.ForbiddenError("you don't have permission to delete this question")
	}
	return s.QuestionRepo.Delete(id)
}

func (s *QuestionService) findQuestion(id uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("question", id)
		}
		return nil, err
	}
	return question, nil
}
