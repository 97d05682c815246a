package repository

import (
	"online_exam_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Create(tx *gorm.DB, answer *model.Answer) error {
	return tx.Create(answer).Error
}

func (r *AnswerRepository) FindByID(id uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.DB.
		Preload("Submission").
		Preload("Question").
		Preload("Question.Options").
		Preload("SelectedOptions").
		First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) FindBySubmission(submissionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.
		Where("submission_id = ?", submissionID).
		Preload("Question").
		Preload("SelectedOptions").
		Find(&answers).Error
	return answers, err
}

// FindBySubmissionTx 事务内读取整卷答案，供改答后重算总分
func (r *AnswerRepository) FindBySubmissionTx(tx *gorm.DB, submissionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := tx.
		Where("submission_id = ?", submissionID).
		Preload("SelectedOptions").
		Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) Update(tx *gorm.DB, answer *model.Answer) error {
	return tx.Save(answer).Error
}

// ReplaceSelectedOptions 重建答案与选项的关联
func (r *AnswerRepository) ReplaceSelectedOptions(tx *gorm.DB, answer *model.Answer, options []model.Option) error {
	return tx.Model(answer).Association("SelectedOptions").Replace(options)
}
