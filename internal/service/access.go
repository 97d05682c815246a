package service

import (
	"online_exam_backend/internal/model"
	"online_exam_backend/internal/util"
)

// Principal 当前请求主体，由边界层从JWT取出后显式传入各服务，
// 核心逻辑不读任何全局安全上下文。
type Principal struct {
	ID    uint
	Email string
	Role  model.UserRole
}

func PrincipalFromClaims(claims *util.Claims) Principal {
	return Principal{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	}
}

func (p Principal) IsAdmin() bool {
	return p.Role == model.Admin
}

// 访问控制判定全部是纯函数：角色 + 归属链 -> 允许/拒绝。
// 调用方需传入已加载归属链的实体（exam.Course、submission.Exam.Course 等）。

// CanManageCourse 课程写权限：管理员或课程归属教师
func CanManageCourse(p Principal, course *model.Course) bool {
	return p.IsAdmin() || course.TeacherID == p.ID
}

// CanViewCourse 课程读权限：管理员、归属教师、已选课学生
func CanViewCourse(p Principal, course *model.Course, enrolled bool) bool {
	if p.IsAdmin() || course.TeacherID == p.ID {
		return true
	}
	return enrolled
}

// CanManageExam 考试写权限随课程归属走
func CanManageExam(p Principal, exam *model.Exam) bool {
	if p.IsAdmin() {
		return true
	}
	return exam.Course != nil && exam.Course.TeacherID == p.ID
}

// CanViewExam 考试读权限：管理员、归属教师，学生要求已发布且已选课
func CanViewExam(p Principal, exam *model.Exam, enrolled bool) bool {
	if CanManageExam(p, exam) {
		return true
	}
	return exam.Published && enrolled
}

// CanViewSubmission 本人、归属教师或管理员
func CanViewSubmission(p Principal, submission *model.Submission) bool {
	if p.IsAdmin() || submission.StudentID == p.ID {
		return true
	}
	return submission.Exam != nil && submission.Exam.Course != nil &&
		submission.Exam.Course.TeacherID == p.ID
}

// CanGradeSubmission 归属教师或管理员
func CanGradeSubmission(p Principal, submission *model.Submission) bool {
	if p.IsAdmin() {
		return true
	}
	return submission.Exam != nil && submission.Exam.Course != nil &&
		submission.Exam.Course.TeacherID == p.ID
}

// CanModifyAnswer 仅提交者本人
func CanModifyAnswer(p Principal, answer *model.Answer) bool {
	return answer.Submission != nil && answer.Submission.StudentID == p.ID
}
