package service

import (
	"testing"

	"online_exam_backend/internal/model"
)

func objectiveQuestion(t model.QuestionType, marks int, correct ...uint) *model.Question {
	q := &model.Question{
		BaseModel:    model.BaseModel{ID: 1},
		Marks:        marks,
		QuestionType: t,
	}
	correctSet := make(map[uint]bool)
	for _, id := range correct {
		correctSet[id] = true
	}
	for id := uint(1); id <= 4; id++ {
		q.Options = append(q.Options, model.Option{
			BaseModel: model.BaseModel{ID: id},
			Correct:   correctSet[id],
		})
	}
	return q
}

func answerWith(selected ...uint) *model.Answer {
	a := &model.Answer{QuestionID: 1}
	for _, id := range selected {
		a.SelectedOptions = append(a.SelectedOptions, model.Option{BaseModel: model.BaseModel{ID: id}})
	}
	return a
}

func TestScoreAnswerSingleChoice(t *testing.T) {
	tests := []struct {
		name     string
		correct  []uint
		selected []uint
		want     float64
	}{
		{"correct option selected", []uint{2}, []uint{2}, 5},
		{"wrong option selected", []uint{2}, []uint{3}, 0},
		{"extra option selected", []uint{2}, []uint{2, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := objectiveQuestion(model.SingleChoice, 5, tt.correct...)
			got := ScoreAnswer(q, answerWith(tt.selected...))
			if got != tt.want {
				t.Errorf("ScoreAnswer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreAnswerTrueFalse(t *testing.T) {
	q := objectiveQuestion(model.TrueFalse, 2, 1)

	if got := ScoreAnswer(q, answerWith(1)); got != 2 {
		t.Errorf("correct answer: got %v, want 2", got)
	}
	if got := ScoreAnswer(q, answerWith(2)); got != 0 {
		t.Errorf("wrong answer: got %v, want 0", got)
	}
}

func TestScoreAnswerMultipleChoicePartialCredit(t *testing.T) {
	// 正确选项 {1,2}，满分10
	tests := []struct {
		name     string
		selected []uint
		want     float64
	}{
		{"all correct", []uint{1, 2}, 10},
		{"half correct", []uint{1}, 5},                  // TP=1 FN=1 -> 1/2
		{"one correct one wrong", []uint{1, 3}, 3},      // TP=1 FP=1 FN=1 -> 1/3 -> round(3.33)=3
		{"all wrong", []uint{3, 4}, 0},                  // TP=0
		{"correct plus one wrong", []uint{1, 2, 3}, 7},  // TP=2 FP=1 -> 2/3 -> round(6.67)=7
		{"rounds half up", []uint{2}, 5},                // 0.5*10 = 5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := objectiveQuestion(model.MultipleChoice, 10, 1, 2)
			got := ScoreAnswer(q, answerWith(tt.selected...))
			if got != tt.want {
				t.Errorf("ScoreAnswer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreAnswerFreeTextNeverAutoGrades(t *testing.T) {
	for _, qt := range []model.QuestionType{model.Essay, model.ShortAnswer, model.Matching, model.FillInBlank} {
		q := &model.Question{BaseModel: model.BaseModel{ID: 1}, Marks: 10, QuestionType: qt}
		a := &model.Answer{QuestionID: 1, TextAnswer: "a thorough response"}
		if got := ScoreAnswer(q, a); got != 0 {
			t.Errorf("%s: got %v, want 0", qt, got)
		}
	}
}

func TestAutoGrade(t *testing.T) {
	sc := objectiveQuestion(model.SingleChoice, 5, 2)
	sc.ID = 1
	tf := objectiveQuestion(model.TrueFalse, 5, 1)
	tf.ID = 2
	for i := range tf.Options {
		tf.Options[i].ID += 10
	}
	essay := &model.Question{BaseModel: model.BaseModel{ID: 3}, Marks: 10, QuestionType: model.Essay}

	scAnswer := model.Answer{QuestionID: 1, SelectedOptions: []model.Option{{BaseModel: model.BaseModel{ID: 2}}}}
	tfAnswer := model.Answer{QuestionID: 2, SelectedOptions: []model.Option{{BaseModel: model.BaseModel{ID: 11}}}}
	essayAnswer := model.Answer{QuestionID: 3, TextAnswer: "discussion"}

	t.Run("objective only exam is fully graded", func(t *testing.T) {
		result := AutoGrade([]model.Question{*sc, *tf}, []model.Answer{scAnswer, tfAnswer})
		if result.TotalScore != 10 {
			t.Errorf("TotalScore = %v, want 10", result.TotalScore)
		}
		if !result.FullyGraded {
			t.Error("FullyGraded = false, want true")
		}
	})

	t.Run("exam with essay stays ungraded", func(t *testing.T) {
		result := AutoGrade([]model.Question{*sc, *essay}, []model.Answer{scAnswer, essayAnswer})
		if result.TotalScore != 5 {
			t.Errorf("TotalScore = %v, want 5", result.TotalScore)
		}
		if result.FullyGraded {
			t.Error("FullyGraded = true, want false")
		}
	})
}

func defaultBands() *model.GradingConfiguration {
	return &model.GradingConfiguration{
		PassingScore: 60,
		Active:       true,
		GradeLevels: []model.GradeLevel{
			{GradeName: "Excellent", MinScore: 90, MaxScore: 100, GradePoint: 4.0},
			{GradeName: "Very Good", MinScore: 80, MaxScore: 90, GradePoint: 3.5},
			{GradeName: "Good", MinScore: 70, MaxScore: 80, GradePoint: 3.0},
			{GradeName: "Satisfactory", MinScore: 60, MaxScore: 70, GradePoint: 2.5},
			{GradeName: "Marginal", MinScore: 50, MaxScore: 60, GradePoint: 2.0},
			{GradeName: "Unsatisfactory", MinScore: 0, MaxScore: 50, GradePoint: 0},
		},
	}
}

func TestDeriveScore(t *testing.T) {
	cfg := defaultBands()

	tests := []struct {
		name        string
		total       float64
		marks       float64
		wantPercent float64
		wantReading string
		wantStatus  model.ScoreStatus
	}{
		{"very good pass", 85, 100, 85, "Very Good", model.ScorePass},
		{"unsatisfactory fail", 45, 100, 45, "Unsatisfactory", model.ScoreFail},
		{"boundary pass", 60, 100, 60, "Satisfactory", model.ScorePass},
		{"just below pass", 59, 100, 59, "Marginal", model.ScoreFail},
		{"full marks scale up", 10, 10, 100, "Excellent", model.ScorePass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := DeriveScore(tt.total, tt.marks, cfg, nil)
			if score.PercentageScore != tt.wantPercent {
				t.Errorf("PercentageScore = %v, want %v", score.PercentageScore, tt.wantPercent)
			}
			if score.Reading != tt.wantReading {
				t.Errorf("Reading = %q, want %q", score.Reading, tt.wantReading)
			}
			if score.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", score.Status, tt.wantStatus)
			}
		})
	}

	t.Run("no config stays pending", func(t *testing.T) {
		score := DeriveScore(50, 100, nil, nil)
		if score.Status != model.ScorePending {
			t.Errorf("Status = %v, want pending", score.Status)
		}
		if score.PercentageScore != 50 {
			t.Errorf("PercentageScore = %v, want 50", score.PercentageScore)
		}
	})

	t.Run("zero total marks stays pending", func(t *testing.T) {
		score := DeriveScore(0, 0, cfg, nil)
		if score.Status != model.ScorePending {
			t.Errorf("Status = %v, want pending", score.Status)
		}
	})

	t.Run("records grader", func(t *testing.T) {
		grader := uint(7)
		score := DeriveScore(80, 100, cfg, &grader)
		if score.GradedByID == nil || *score.GradedByID != 7 {
			t.Errorf("GradedByID = %v, want 7", score.GradedByID)
		}
	})

	t.Run("reference is unique per score", func(t *testing.T) {
		a := DeriveScore(80, 100, cfg, nil)
		b := DeriveScore(80, 100, cfg, nil)
		if a.Reference == "" || a.Reference == b.Reference {
			t.Errorf("references must be non-empty and distinct, got %q and %q", a.Reference, b.Reference)
		}
	})
}
