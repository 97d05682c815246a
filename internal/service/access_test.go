package service

import (
	"testing"

	"online_exam_backend/internal/model"
)

var (
	admin        = Principal{ID: 1, Role: model.Admin}
	ownerTeacher = Principal{ID: 2, Role: model.Teacher}
	otherTeacher = Principal{ID: 3, Role: model.Teacher}
	student      = Principal{ID: 4, Role: model.Student}
	otherStudent = Principal{ID: 5, Role: model.Student}
)

func ownedCourse() *model.Course {
	return &model.Course{BaseModel: model.BaseModel{ID: 10}, TeacherID: ownerTeacher.ID}
}

func ownedExam(published bool) *model.Exam {
	return &model.Exam{
		BaseModel: model.BaseModel{ID: 20},
		Published: published,
		CourseID:  10,
		Course:    ownedCourse(),
	}
}

func studentSubmission() *model.Submission {
	return &model.Submission{
		BaseModel: model.BaseModel{ID: 30},
		StudentID: student.ID,
		ExamID:    20,
		Exam:      ownedExam(true),
	}
}

func TestCanManageCourse(t *testing.T) {
	course := ownedCourse()

	tests := []struct {
		name string
		p    Principal
		want bool
	}{
		{"admin", admin, true},
		{"owning teacher", ownerTeacher, true},
		{"other teacher", otherTeacher, false},
		{"student", student, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageCourse(tt.p, course); got != tt.want {
				t.Errorf("CanManageCourse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanManageExam(t *testing.T) {
	exam := ownedExam(false)

	tests := []struct {
		name string
		p    Principal
		want bool
	}{
		{"admin", admin, true},
		{"owning teacher", ownerTeacher, true},
		{"other teacher cannot publish", otherTeacher, false},
		{"student", student, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageExam(tt.p, exam); got != tt.want {
				t.Errorf("CanManageExam() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("missing course ownership chain denies teacher", func(t *testing.T) {
		bare := &model.Exam{BaseModel: model.BaseModel{ID: 21}}
		if CanManageExam(ownerTeacher, bare) {
			t.Error("teacher allowed without loaded course")
		}
		if !CanManageExam(admin, bare) {
			t.Error("admin denied")
		}
	})
}

func TestCanViewExam(t *testing.T) {
	tests := []struct {
		name      string
		p         Principal
		published bool
		enrolled  bool
		want      bool
	}{
		{"enrolled student published exam", student, true, true, true},
		{"enrolled student unpublished exam", student, false, true, false},
		{"unenrolled student published exam", student, true, false, false},
		{"owning teacher unpublished exam", ownerTeacher, false, false, true},
		{"other teacher", otherTeacher, true, false, false},
		{"admin", admin, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewExam(tt.p, ownedExam(tt.published), tt.enrolled); got != tt.want {
				t.Errorf("CanViewExam() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewSubmission(t *testing.T) {
	submission := studentSubmission()

	tests := []struct {
		name string
		p    Principal
		want bool
	}{
		{"submitting student", student, true},
		{"other student", otherStudent, false},
		{"owning teacher", ownerTeacher, true},
		{"other teacher", otherTeacher, false},
		{"admin", admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewSubmission(tt.p, submission); got != tt.want {
				t.Errorf("CanViewSubmission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanGradeSubmission(t *testing.T) {
	submission := studentSubmission()

	tests := []struct {
		name string
		p    Principal
		want bool
	}{
		{"owning teacher", ownerTeacher, true},
		{"other teacher", otherTeacher, false},
		{"submitting student", student, false},
		{"admin", admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanGradeSubmission(tt.p, submission); got != tt.want {
				t.Errorf("CanGradeSubmission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanModifyAnswer(t *testing.T) {
	answer := &model.Answer{
		BaseModel:  model.BaseModel{ID: 40},
		Submission: studentSubmission(),
	}

	tests := []struct {
		name string
		p    Principal
		want bool
	}{
		{"submitting student", student, true},
		{"other student", otherStudent, false},
		{"owning teacher", ownerTeacher, false},
		{"admin", admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModifyAnswer(tt.p, answer); got != tt.want {
				t.Errorf("CanModifyAnswer() = %v, want %v", got, tt.want)
			}
		})
	}
}
