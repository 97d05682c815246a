package repository

import (
	"online_exam_backend/internal/model"

	"gorm.io/gorm"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) FindBySubmission(tx *gorm.DB, submissionID uint) (*model.Score, error) {
	var score model.Score
	err := tx.Where("submission_id = ?", submissionID).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// Save 覆盖写：一次提交只有一条成绩记录
func (r *ScoreRepository) Save(tx *gorm.DB, score *model.Score) error {
	return tx.Save(score).Error
}
