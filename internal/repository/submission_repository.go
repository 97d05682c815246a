package repository

import (
	"online_exam_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(tx *gorm.DB, submission *model.Submission) error {
	return tx.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.
		Preload("Student").
		Preload("Exam").
		Preload("Exam.Course").
		Preload("Answers").
		Preload("Answers.SelectedOptions").
		Preload("Score").
		First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) FindByStudent(studentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.
		Where("student_id = ?", studentID).
		Preload("Exam").
		Preload("Exam.Course").
		Preload("Score").
		Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) FindByExam(examID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.
		Where("exam_id = ?", examID).
		Preload("Student").
		Preload("Score").
		Find(&submissions).Error
	return submissions, err
}

// ExistsByStudentAndExam 唯一性预检查；并发兜底靠 (student_id, exam_id) 唯一索引
func (r *SubmissionRepository) ExistsByStudentAndExam(tx *gorm.DB, studentID, examID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.Submission{}).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Count(&count).Error
	return count > 0, err
}

func (r *SubmissionRepository) Update(tx *gorm.DB, submission *model.Submission) error {
	return tx.Save(submission).Error
}

func (r *SubmissionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var answerIDs []uint
		if err := tx.Model(&model.Answer{}).Where("submission_id = ?", id).Pluck("id", &answerIDs).Error; err != nil {
			return err
		}
		if len(answerIDs) > 0 {
			if err := tx.Exec("DELETE FROM answer_options WHERE answer_id IN ?", answerIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("submission_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("submission_id = ?", id).Delete(&model.Score{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Submission{}, id).Error
	})
}
