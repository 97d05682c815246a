package repository

import (
	"time"

	"online_exam_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

// FindByID 带课程归属链加载，权限判断需要 exam.Course.TeacherID
func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Preload("Course").First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// FindByIDWithQuestions 连同题目与选项一起加载，供校验和判分使用
func (r *ExamRepository) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.
		Preload("Course").
		Preload("Questions").
		Preload("Questions.Options").
		First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) FindAll() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Preload("Course").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) FindByCourse(courseID uint, publishedOnly bool) ([]model.Exam, error) {
	q := r.DB.Where("course_id = ?", courseID)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	var exams []model.Exam
	err := q.Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) FindByTeacher(teacherID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.
		Joins("JOIN courses ON courses.id = exams.course_id").
		Where("courses.teacher_id = ?", teacherID).
		Preload("Course").
		Find(&exams).Error
	return exams, err
}

// FindUpcomingForStudent 已发布、未开考、学生已选课
func (r *ExamRepository) FindUpcomingForStudent(studentID uint, now time.Time) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.
		Joins("JOIN course_students cs ON cs.course_id = exams.course_id").
		Where("cs.user_id = ? AND exams.published = ? AND exams.start_time > ?", studentID, true, now).
		Preload("Course").
		Find(&exams).Error
	return exams, err
}

// FindAvailableForStudent 已发布、在答题窗口内、学生已选课且尚未提交
func (r *ExamRepository) FindAvailableForStudent(studentID uint, now time.Time) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.
		Joins("JOIN course_students cs ON cs.course_id = exams.course_id").
		Where("cs.user_id = ? AND exams.published = ?", studentID, true).
		Where("exams.start_time <= ? AND exams.end_time >= ?", now, now).
		Where("exams.id NOT IN (?)",
			r.DB.Model(&model.Submission{}).Select("exam_id").Where("student_id = ?", studentID)).
		Preload("Course").
		Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) CountQuestions(examID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("exam_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("exam_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Exam{}, id).Error
	})
}
