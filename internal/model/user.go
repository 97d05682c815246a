package model

import "time"

type UserRole string

const (
	Student  UserRole = "student"
	Teacher  UserRole = "teacher"
	Admin    UserRole = "admin"
	Reviewer UserRole = "reviewer"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('student','teacher','admin','reviewer');default:'student'" json:"role"`

	// 按角色可选的扩展字段（取代继承层次，角色不同留空即可）
	StudentNumber string `gorm:"size:50" json:"studentNumber,omitempty"`
	FacultyID     string `gorm:"size:50" json:"facultyId,omitempty"`
	ReviewerID    string `gorm:"size:50" json:"reviewerId,omitempty"`

	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
