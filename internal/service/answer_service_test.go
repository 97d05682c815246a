package service

import (
	"errors"
	"testing"

	"online_exam_backend/internal/model"
	"online_exam_backend/internal/util"
)

func TestAnswerUpdateGuard(t *testing.T) {
	owner := Principal{ID: 7, Role: model.Student}
	other := Principal{ID: 8, Role: model.Student}

	answerOf := func(studentID uint, graded bool) *model.Answer {
		return &model.Answer{
			Submission: &model.Submission{StudentID: studentID, Graded: graded},
		}
	}

	tests := []struct {
		name    string
		p       Principal
		answer  *model.Answer
		wantErr error
	}{
		{"owner before grading", owner, answerOf(7, false), nil},
		{"owner after grading", owner, answerOf(7, true), util.ErrValidation},
		{"other student", other, answerOf(7, false), util.ErrForbidden},
		{"other student after grading", other, answerOf(7, true), util.ErrForbidden},
		{"missing submission", owner, &model.Answer{}, util.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := answerUpdateGuard(tt.p, tt.answer)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("answerUpdateGuard() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("answerUpdateGuard() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegradeTotalsFollowEditedAnswers(t *testing.T) {
	questions := []model.Question{*objectiveQuestion(model.SingleChoice, 5, 2)}

	before := AutoGrade(questions, []model.Answer{*answerWith(3)})
	if before.TotalScore != 0 {
		t.Fatalf("TotalScore before edit = %v, want 0", before.TotalScore)
	}

	// 改答为正确选项后重算，总分跟随新作答
	after := AutoGrade(questions, []model.Answer{*answerWith(2)})
	if after.TotalScore != 5 {
		t.Errorf("TotalScore after edit = %v, want 5", after.TotalScore)
	}

	score := DeriveScore(after.TotalScore, 5, nil, nil)
	if score.PercentageScore != 100 {
		t.Errorf("PercentageScore = %v, want 100", score.PercentageScore)
	}
}
