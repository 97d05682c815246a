package model

// swagger:model Option
type Option struct {
	BaseModel
	Content string `gorm:"type:text;not null" json:"content"`
	Correct bool   `gorm:"default:false" json:"correct"`

	QuestionID uint `gorm:"index;type:bigint unsigned" json:"questionId"`
}

func (Option) TableName() string {
	return "options"
}
