package service

import (
	"fmt"
	"strings"
	"time"

	"online_exam_backend/internal/model"
	"online_exam_backend/internal/util"
)

// AnswerRequest 单题作答
type AnswerRequest struct {
	QuestionID        uint   `json:"questionId" binding:"required"`
	TextAnswer        string `json:"textAnswer"`
	SelectedOptionIDs []uint `json:"selectedOptionIds"`
}

// SubmissionRequest 整卷提交
type SubmissionRequest struct {
	ExamID  uint            `json:"examId" binding:"required"`
	Answers []AnswerRequest `json:"answers" binding:"required"`
}

// validateSubmissionWindow 发布状态与答题窗口。窗口两端均为闭区间：
// 恰在 startTime 或 endTime 的瞬间提交有效。
func validateSubmissionWindow(exam *model.Exam, now time.Time) error {
	if !exam.Published {
		return util.ValidationError("cannot submit to an unpublished exam")
	}
	if now.Before(exam.StartTime) || now.After(exam.EndTime) {
		return util.ValidationError("exam is not currently available for submission")
	}
	return nil
}

// validateAnswers 整卷结构校验：
//  1. 作答的题目ID集合与考试题目ID集合完全一致（不缺题、无多余、不重复）
//  2. 按题型校验答案形态：主观题要求非空文本；多选至少一项；单选/判断恰一项
//  3. 所选选项必须属于对应题目
func validateAnswers(questions []model.Question, answers []AnswerRequest) error {
	questionMap := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		questionMap[questions[i].ID] = &questions[i]
	}

	answered := make(map[uint]bool, len(answers))
	for _, a := range answers {
		if answered[a.QuestionID] {
			return util.ValidationError(fmt.Sprintf("duplicate answer for question %d", a.QuestionID))
		}
		answered[a.QuestionID] = true
	}

	if len(answered) != len(questionMap) {
		return util.ValidationError("all questions must be answered")
	}
	for id := range answered {
		if _, ok := questionMap[id]; !ok {
			return util.ValidationError("all questions must be answered")
		}
	}

	for _, a := range answers {
		q := questionMap[a.QuestionID]
		if err := validateAnswerShape(q, a); err != nil {
			return err
		}
	}
	return nil
}

func validateAnswerShape(q *model.Question, a AnswerRequest) error {
	switch q.QuestionType {
	case model.MultipleChoice, model.MultipleResponse:
		if len(a.SelectedOptionIDs) == 0 {
			return util.ValidationError("multiple choice questions require at least one selected option")
		}
		return validateOptionMembership(q, a.SelectedOptionIDs)
	case model.SingleChoice, model.TrueFalse:
		if len(a.SelectedOptionIDs) != 1 {
			return util.ValidationError("single choice and true/false questions require exactly one selected option")
		}
		return validateOptionMembership(q, a.SelectedOptionIDs)
	default:
		// essay / short_answer / matching / fill_in_blank 走自由文本
		if strings.TrimSpace(a.TextAnswer) == "" {
			return util.ValidationError(fmt.Sprintf("%s questions require a text answer", q.QuestionType))
		}
		return nil
	}
}

func validateOptionMembership(q *model.Question, selectedIDs []uint) error {
	valid := make(map[uint]bool, len(q.Options))
	for _, o := range q.Options {
		valid[o.ID] = true
	}
	for _, id := range selectedIDs {
		if !valid[id] {
			return util.ValidationError("selected options must belong to the question")
		}
	}
	return nil
}
