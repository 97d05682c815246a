package model

import "time"

type SubmissionStatus string

const (
	SubmissionPending     SubmissionStatus = "pending"
	SubmissionSubmitted   SubmissionStatus = "submitted"
	SubmissionGraded      SubmissionStatus = "graded"
	SubmissionUnderReview SubmissionStatus = "under_review"
	SubmissionDisputed    SubmissionStatus = "disputed"
)

// swagger:model Submission
type Submission struct {
	BaseModel
	SubmittedAt time.Time        `json:"submittedAt"`
	Graded      bool             `gorm:"default:false" json:"graded"`
	TotalScore  *float64         `json:"totalScore,omitempty"`
	Status      SubmissionStatus `gorm:"size:20;default:'pending'" json:"status"`

	// (student_id, exam_id) 唯一索引兜底并发重复提交
	StudentID uint  `gorm:"index;uniqueIndex:uk_student_exam;type:bigint unsigned" json:"studentId"`
	Student   *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	ExamID    uint  `gorm:"index;uniqueIndex:uk_student_exam;type:bigint unsigned" json:"examId"`
	Exam      *Exam `gorm:"foreignKey:ExamID" json:"exam,omitempty"`

	Answers []Answer `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
	Score   *Score   `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"score,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
