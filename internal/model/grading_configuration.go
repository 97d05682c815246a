package model

// GradingConfiguration 评分配置，按百分比分数落带；全局仅一份生效
// swagger:model GradingConfiguration
type GradingConfiguration struct {
	BaseModel
	Name         string  `gorm:"size:100;not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	PassingScore float64 `gorm:"not null" json:"passingScore"` // 及格线（百分比）
	Active       bool    `gorm:"default:false" json:"active"`

	GradeLevels []GradeLevel `gorm:"foreignKey:GradingConfigurationID;constraint:OnDelete:CASCADE" json:"gradeLevels,omitempty"`
}

func (GradingConfiguration) TableName() string {
	return "grading_configurations"
}

// LevelFor 返回百分比分数命中的等级，未命中返回 nil。
// 等级带为左闭右开区间，相邻带共享边界不留缝隙；最高带的上界取闭区间，满分可落带。
func (c *GradingConfiguration) LevelFor(percentage float64) *GradeLevel {
	var top *GradeLevel
	for i := range c.GradeLevels {
		l := &c.GradeLevels[i]
		if top == nil || l.MaxScore > top.MaxScore {
			top = l
		}
		if percentage >= l.MinScore && percentage < l.MaxScore {
			return l
		}
	}
	if top != nil && percentage == top.MaxScore {
		return top
	}
	return nil
}

// swagger:model GradeLevel
type GradeLevel struct {
	BaseModel
	GradingConfigurationID uint    `gorm:"index;type:bigint unsigned" json:"gradingConfigurationId"`
	GradeName              string  `gorm:"size:50;not null" json:"gradeName"`
	MinScore               float64 `gorm:"not null" json:"minScore"`
	MaxScore               float64 `gorm:"not null" json:"maxScore"`
	GradePoint             float64 `json:"gradePoint"`
	Description            string  `gorm:"size:255" json:"description"`
}

func (GradeLevel) TableName() string {
	return "grade_levels"
}
