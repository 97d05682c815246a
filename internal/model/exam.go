package model

import "time"

// swagger:model Exam
type Exam struct {
	BaseModel
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `gorm:"default:0" json:"durationMinutes"`
	Published       bool      `gorm:"default:false" json:"published"`

	CourseID uint    `gorm:"index;type:bigint unsigned" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	Questions []Question `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// TotalMarks 考试总分，等于全部题目分值之和
func (e *Exam) TotalMarks() float64 {
	var total float64
	for _, q := range e.Questions {
		total += float64(q.Marks)
	}
	return total
}
