package service

import (
	"errors"
	"testing"

	"online_exam_backend/internal/util"

	"gorm.io/gorm"
)

func TestTranslateDuplicateSubmission(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantValidation bool
	}{
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm duplicated key", errors.Join(errors.New("insert failed"), gorm.ErrDuplicatedKey), true},
		{"mysql duplicate entry message", errors.New("Error 1062 (23000): Duplicate entry '7-3' for key 'idx_student_exam'"), true},
		{"unrelated error", errors.New("connection reset by peer"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateDuplicateSubmission(tt.err)
			if tt.wantValidation {
				if !errors.Is(got, util.ErrValidation) {
					t.Errorf("translateDuplicateSubmission() = %v, want validation error", got)
				}
				return
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("translateDuplicateSubmission() = %v, want original error %v", got, tt.err)
			}
		})
	}

	if got := translateDuplicateSubmission(nil); got != nil {
		t.Errorf("translateDuplicateSubmission(nil) = %v, want nil", got)
	}
}
