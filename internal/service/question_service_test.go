package service

import (
	"testing"

	"online_exam_backend/internal/model"
)

func options(correct ...bool) []OptionRequest {
	var opts []OptionRequest
	for i, c := range correct {
		opts = append(opts, OptionRequest{Content: string(rune('A' + i)), Correct: c})
	}
	return opts
}

func TestValidateQuestionOptions(t *testing.T) {
	tests := []struct {
		name    string
		qt      model.QuestionType
		options []OptionRequest
		wantErr bool
	}{
		{"multiple choice valid", model.MultipleChoice, options(true, false, true), false},
		{"multiple choice zero correct", model.MultipleChoice, options(false, false, false), true},
		{"multiple choice single option", model.MultipleChoice, options(true), false},
		{"multiple choice no options", model.MultipleChoice, nil, true},
		{"multiple choice all correct", model.MultipleChoice, options(true, true), false},

		{"single choice valid", model.SingleChoice, options(true, false, false), false},
		{"single choice two correct", model.SingleChoice, options(true, true, false), true},
		{"single choice zero correct", model.SingleChoice, options(false, false), true},
		{"single choice single option", model.SingleChoice, options(true), false},
		{"single choice no options", model.SingleChoice, nil, true},

		{"true false valid", model.TrueFalse, options(true, false), false},
		{"true false three options", model.TrueFalse, options(true, false, false), true},
		{"true false two correct", model.TrueFalse, options(true, true), true},
		{"true false one option", model.TrueFalse, options(true), true},

		{"essay without options", model.Essay, nil, false},
		{"essay with options", model.Essay, options(true, false), false},
		{"short answer without options", model.ShortAnswer, nil, false},
		{"fill in blank with options", model.FillInBlank, options(false), false},

		{"unknown type", model.QuestionType("riddle"), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuestionOptions(tt.qt, tt.options)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateQuestionOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildOptionsDropsFreeTextOptions(t *testing.T) {
	tests := []struct {
		name string
		qt   model.QuestionType
		in   []OptionRequest
		want int
	}{
		{"essay options dropped", model.Essay, options(true, false), 0},
		{"short answer options dropped", model.ShortAnswer, options(false), 0},
		{"multiple choice options kept", model.MultipleChoice, options(true, false, false), 3},
		{"true false options kept", model.TrueFalse, options(true, false), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildOptions(tt.qt, tt.in); len(got) != tt.want {
				t.Errorf("buildOptions() kept %d options, want %d", len(got), tt.want)
			}
		})
	}
}
