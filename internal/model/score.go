package model

import "time"

type ScoreStatus string

const (
	ScorePass       ScoreStatus = "pass"
	ScoreFail       ScoreStatus = "fail"
	ScoreIncomplete ScoreStatus = "incomplete"
	ScorePending    ScoreStatus = "pending"
	ScoreDisputed   ScoreStatus = "disputed"
)

// Score 一次提交的判分结果，与提交一对一，由判分引擎或人工评分写入
// swagger:model Score
type Score struct {
	BaseModel
	Reference       string      `gorm:"size:36;unique" json:"reference"`
	TotalScore      float64     `gorm:"not null" json:"totalScore"`
	PercentageScore float64     `json:"percentageScore"`
	Reading         string      `gorm:"size:50" json:"reading"`
	GradePoint      float64     `json:"gradePoint"`
	Status          ScoreStatus `gorm:"size:20;default:'pending'" json:"status"`

	SubmissionID uint        `gorm:"uniqueIndex;type:bigint unsigned" json:"submissionId"`
	Submission   *Submission `gorm:"foreignKey:SubmissionID" json:"submission,omitempty"`

	GradedAt   time.Time `json:"gradedAt"`
	GradedByID *uint     `gorm:"type:bigint unsigned" json:"gradedById,omitempty"`
	GradedBy   *User     `gorm:"foreignKey:GradedByID" json:"gradedBy,omitempty"`
}

func (Score) TableName() string {
	return "scores"
}
