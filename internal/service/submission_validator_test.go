package service

import (
	"testing"
	"time"

	"online_exam_backend/internal/model"
)

func windowExam(published bool, start, end time.Time) *model.Exam {
	return &model.Exam{Published: published, StartTime: start, EndTime: end}
}

func TestValidateSubmissionWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		published bool
		now       time.Time
		wantErr   bool
	}{
		{"inside window", true, start.Add(30 * time.Minute), false},
		{"exactly at start", true, start, false},
		{"exactly at end", true, end, false},
		{"before start", true, start.Add(-time.Second), true},
		{"after end", true, end.Add(time.Second), true},
		{"unpublished", false, start.Add(30 * time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSubmissionWindow(windowExam(tt.published, start, end), tt.now)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSubmissionWindow() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func examQuestions() []model.Question {
	return []model.Question{
		{
			BaseModel:    model.BaseModel{ID: 1},
			Marks:        5,
			QuestionType: model.SingleChoice,
			Options: []model.Option{
				{BaseModel: model.BaseModel{ID: 11}, Correct: true},
				{BaseModel: model.BaseModel{ID: 12}},
			},
		},
		{
			BaseModel:    model.BaseModel{ID: 2},
			Marks:        10,
			QuestionType: model.MultipleChoice,
			Options: []model.Option{
				{BaseModel: model.BaseModel{ID: 21}, Correct: true},
				{BaseModel: model.BaseModel{ID: 22}, Correct: true},
				{BaseModel: model.BaseModel{ID: 23}},
			},
		},
		{
			BaseModel:    model.BaseModel{ID: 3},
			Marks:        10,
			QuestionType: model.Essay,
		},
	}
}

func TestValidateAnswersCompleteness(t *testing.T) {
	questions := examQuestions()

	full := func() []AnswerRequest {
		return []AnswerRequest{
			{QuestionID: 1, SelectedOptionIDs: []uint{11}},
			{QuestionID: 2, SelectedOptionIDs: []uint{21, 22}},
			{QuestionID: 3, TextAnswer: "my essay"},
		}
	}

	tests := []struct {
		name    string
		answers []AnswerRequest
		wantErr bool
	}{
		{"all questions answered", full(), false},
		{"missing question", full()[:2], true},
		{"unknown question", append(full()[:2], AnswerRequest{QuestionID: 99, TextAnswer: "x"}), true},
		{"duplicate answer", append(full(), AnswerRequest{QuestionID: 1, SelectedOptionIDs: []uint{12}}), true},
		{"no answers", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAnswers(questions, tt.answers)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAnswers() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAnswerShape(t *testing.T) {
	questions := examQuestions()
	sc := &questions[0]
	mc := &questions[1]
	essay := &questions[2]

	tests := []struct {
		name    string
		q       *model.Question
		answer  AnswerRequest
		wantErr bool
	}{
		{"single choice one option", sc, AnswerRequest{QuestionID: 1, SelectedOptionIDs: []uint{11}}, false},
		{"single choice no options", sc, AnswerRequest{QuestionID: 1}, true},
		{"single choice two options", sc, AnswerRequest{QuestionID: 1, SelectedOptionIDs: []uint{11, 12}}, true},
		{"single choice foreign option", sc, AnswerRequest{QuestionID: 1, SelectedOptionIDs: []uint{21}}, true},
		{"multiple choice one option", mc, AnswerRequest{QuestionID: 2, SelectedOptionIDs: []uint{21}}, false},
		{"multiple choice several options", mc, AnswerRequest{QuestionID: 2, SelectedOptionIDs: []uint{21, 23}}, false},
		{"multiple choice no options", mc, AnswerRequest{QuestionID: 2}, true},
		{"multiple choice foreign option", mc, AnswerRequest{QuestionID: 2, SelectedOptionIDs: []uint{21, 99}}, true},
		{"essay with text", essay, AnswerRequest{QuestionID: 3, TextAnswer: "content"}, false},
		{"essay blank text", essay, AnswerRequest{QuestionID: 3, TextAnswer: "   "}, true},
		{"essay empty text", essay, AnswerRequest{QuestionID: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAnswerShape(tt.q, tt.answer)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAnswerShape() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
