package repository

import (
	"online_exam_backend/internal/model"

	"gorm.io/gorm"
)

type GradingConfigurationRepository struct {
	DB *gorm.DB
}

func NewGradingConfigurationRepository(db *gorm.DB) *GradingConfigurationRepository {
	return &GradingConfigurationRepository{DB: db}
}

// FindActive 当前生效的评分配置，连同等级带
func (r *GradingConfigurationRepository) FindActive() (*model.GradingConfiguration, error) {
	var cfg model.GradingConfiguration
	err := r.DB.Where("active = ?", true).Preload("GradeLevels").First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *GradingConfigurationRepository) FindByID(id uint) (*model.GradingConfiguration, error) {
	var cfg model.GradingConfiguration
	err := r.DB.Preload("GradeLevels").First(&cfg, id).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *GradingConfigurationRepository) FindAll() ([]model.GradingConfiguration, error) {
	var cfgs []model.GradingConfiguration
	err := r.DB.Preload("GradeLevels").Find(&cfgs).Error
	return cfgs, err
}

func (r *GradingConfigurationRepository) Create(cfg *model.GradingConfiguration) error {
	return r.DB.Create(cfg).Error
}

func (r *GradingConfigurationRepository) Update(cfg *model.GradingConfiguration) error {
	return r.DB.Save(cfg).Error
}

// ReplaceLevels 整体替换配置的等级带
func (r *GradingConfigurationRepository) ReplaceLevels(configID uint, levels []model.GradeLevel) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("grading_configuration_id = ?", configID).Delete(&model.GradeLevel{}).Error; err != nil {
			return err
		}
		if len(levels) == 0 {
			return nil
		}
		return tx.Create(&levels).Error
	})
}

// Activate 切换生效配置，同一时刻只保留一份
func (r *GradingConfigurationRepository) Activate(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.GradingConfiguration{}).Where("active = ?", true).Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.GradingConfiguration{}).Where("id = ?", id).Update("active", true).Error
	})
}

func (r *GradingConfigurationRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("grading_configuration_id = ?", id).Delete(&model.GradeLevel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.GradingConfiguration{}, id).Error
	})
}
