package model

// swagger:model Answer
type Answer struct {
	BaseModel
	TextAnswer string `gorm:"type:text" json:"textAnswer,omitempty"`

	SubmissionID uint        `gorm:"index;type:bigint unsigned" json:"submissionId"`
	Submission   *Submission `gorm:"foreignKey:SubmissionID" json:"submission,omitempty"`
	QuestionID   uint        `gorm:"index;type:bigint unsigned" json:"questionId"`
	Question     *Question   `gorm:"foreignKey:QuestionID" json:"question,omitempty"`

	SelectedOptions []Option `gorm:"many2many:answer_options;" json:"selectedOptions,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}

// SelectedOptionIDs 已选选项ID集合
func (a *Answer) SelectedOptionIDs() map[uint]bool {
	ids := make(map[uint]bool)
	for _, o := range a.SelectedOptions {
		ids[o.ID] = true
	}
	return ids
}
