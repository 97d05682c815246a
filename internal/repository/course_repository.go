package repository

import (
	"online_exam_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Teacher").Preload("Students").First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Teacher").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByTeacher(teacherID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("teacher_id = ?", teacherID).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByStudent(studentID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Joins("JOIN course_students cs ON cs.course_id = courses.id").
		Where("cs.user_id = ?", studentID).
		Preload("Teacher").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// Delete 级联删除课程及其考试（考试下的题目/选项由外键级联）
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseStudent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Exam{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}

// Enroll 选课。直接写关联表，主键冲突说明已选过。
func (r *CourseRepository) Enroll(courseID, studentID uint) error {
	return r.DB.Create(&model.CourseStudent{CourseID: courseID, StudentID: studentID}).Error
}

func (r *CourseRepository) Unenroll(courseID, studentID uint) error {
	return r.DB.
		Where("course_id = ? AND user_id = ?", courseID, studentID).
		Delete(&model.CourseStudent{}).Error
}

func (r *CourseRepository) IsEnrolled(courseID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CourseStudent{}).
		Where("course_id = ? AND user_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) FindStudents(courseID uint) ([]model.User, error) {
	var students []model.User
	err := r.DB.
		Joins("JOIN course_students cs ON cs.user_id = users.id").
		Where("cs.course_id = ?", courseID).
		Find(&students).Error
	return students, err
}
