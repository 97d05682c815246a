package model

type QuestionType string

const (
	MultipleChoice   QuestionType = "multiple_choice"   // 多选，按命中率给部分分
	MultipleResponse QuestionType = "multiple_response" // 同多选，保留旧数据的类型名
	SingleChoice     QuestionType = "single_choice"
	TrueFalse        QuestionType = "true_false"
	ShortAnswer      QuestionType = "short_answer"
	Essay            QuestionType = "essay"
	Matching         QuestionType = "matching"
	FillInBlank      QuestionType = "fill_in_blank"
)

// IsObjective 是否可机器判分（依据选项即可判对错）
func (t QuestionType) IsObjective() bool {
	switch t {
	case MultipleChoice, MultipleResponse, SingleChoice, TrueFalse:
		return true
	}
	return false
}

// IsFreeText 是否自由文本作答
func (t QuestionType) IsFreeText() bool {
	return !t.IsObjective()
}

// swagger:model Question
type Question struct {
	BaseModel
	Content      string       `gorm:"type:text;not null" json:"content"`
	Marks        int          `gorm:"not null" json:"marks"`
	QuestionType QuestionType `gorm:"size:50;not null" json:"questionType"`

	ExamID uint  `gorm:"index;type:bigint unsigned" json:"examId"`
	Exam   *Exam `gorm:"foreignKey:ExamID" json:"exam,omitempty"`

	Options []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectOptionIDs 正确选项ID集合
func (q *Question) CorrectOptionIDs() map[uint]bool {
	ids := make(map[uint]bool)
	for _, o := range q.Options {
		if o.Correct {
			ids[o.ID] = true
		}
	}
	return ids
}
