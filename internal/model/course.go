package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Code        string `gorm:"size:50;unique" json:"code"`
	Credits     int    `gorm:"default:0" json:"credits"`

	TeacherID uint   `gorm:"index;type:bigint unsigned" json:"teacherId"`
	Teacher   *User  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Students  []User `gorm:"many2many:course_students;" json:"students,omitempty"`

	// 课程删除时级联删除所属考试
	Exams []Exam `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"exams,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseStudent 选课关联表，单独建模以便原子地增删关联行
type CourseStudent struct {
	CourseID  uint `gorm:"primaryKey;type:bigint unsigned" json:"courseId"`
	StudentID uint `gorm:"primaryKey;column:user_id;type:bigint unsigned" json:"studentId"`
}

func (CourseStudent) TableName() string {
	return "course_students"
}
