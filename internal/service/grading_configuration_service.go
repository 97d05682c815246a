package service

import (
	"errors"

	"online_exam_backend/internal/model"
	"online_exam_backend/internal/repository"
	"online_exam_backend/internal/util"

	"gorm.io/gorm"
)

type GradingConfigurationService struct {
	GradingRepo *repository.GradingConfigurationRepository
}

func NewGradingConfigurationService(gradingRepo *repository.GradingConfigurationRepository) *GradingConfigurationService {
	return &GradingConfigurationService{GradingRepo: gradingRepo}
}

// GradeLevelRequest 等级带入参
type GradeLevelRequest struct {
	GradeName   string  `json:"gradeName" binding:"required"`
	MinScore    float64 `json:"minScore"`
	MaxScore    float64 `json:"maxScore" binding:"required"`
	GradePoint  float64 `json:"gradePoint"`
	Description string  `json:"description"`
}

// GradingConfigurationRequest 评分配置入参
type GradingConfigurationRequest struct {
	Name         string              `json:"name" binding:"required"`
	Description  string              `json:"description"`
	PassingScore float64             `json:"passingScore" binding:"required"`
	GradeLevels  []GradeLevelRequest `json:"gradeLevels" binding:"required"`
}

// validateGradingConfiguration 等级带必须非空且区间合法
func validateGradingConfiguration(req GradingConfigurationRequest) error {
	if req.PassingScore < 0 || req.PassingScore > 100 {
		return util.ValidationError("passing score must be between 0 and 100")
	}
	if len(req.GradeLevels) == 0 {
		return util.ValidationError("at least one grade level is required")
	}
	for _, l := range req.GradeLevels {
		if l.MinScore < 0 || l.MaxScore > 100 || l.MinScore > l.MaxScore {
			return util.ValidationError("grade level score range is invalid")
		}
	}
	return nil
}

func (s *GradingConfigurationService) GetActive() (*model.GradingConfiguration, error) {
	cfg, err := s.GradingRepo.FindActive()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ValidationError("no active grading configuration")
		}
		return nil, err
	}
	return cfg, nil
}

func (s *GradingConfigurationService) List(p Principal) ([]model.GradingConfiguration, error) {
	if !p.IsAdmin() {
		return nil, util.ForbiddenError("only administrators can manage grading configurations")
	}
	return s.GradingRepo.FindAll()
}

func (s *GradingConfigurationService) GetByID(p Principal, id uint) (*model.GradingConfiguration, error) {
	if !p.IsAdmin() {
		return nil, util.ForbiddenError("only administrators can manage grading configurations")
	}
	return s.findConfiguration(id)
}

func (s *GradingConfigurationService) Create(p Principal, req GradingConfigurationRequest) (*model.GradingConfiguration, error) {
	if !p.IsAdmin() {
		return nil, util.ForbiddenError("only administrators can manage grading configurations")
	}
	if err := validateGradingConfiguration(req); err != nil {
		return nil, err
	}

	cfg := &model.GradingConfiguration{
		Name:         req.Name,
		Description:  req.Description,
		PassingScore: req.PassingScore,
		Active:       false,
	}
	for _, l := range req.GradeLevels {
		cfg.GradeLevels = append(cfg.GradeLevels, model.GradeLevel{
			GradeName:   l.GradeName,
			MinScore:    l.MinScore,
			MaxScore:    l.MaxScore,
			GradePoint:  l.GradePoint,
			Description: l.Description,
		})
	}
	if err := s.GradingRepo.Create(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Update 整体替换配置内容与等级带。历史成绩不重算。
func (s *GradingConfigurationService) Update(p Principal, id uint, req GradingConfigurationRequest) (*model.GradingConfiguration, error) {
	if !p.IsAdmin() {
		return nil, util.ForbiddenError("only administrators can manage grading configurations")
	}
	if err := validateGradingConfiguration(req); err != nil {
		return nil, err
	}

	cfg, err := s.findConfiguration(id)
	if err != nil {
		return nil, err
	}

	cfg.Name = req.Name
	cfg.Description = req.Description
	cfg.PassingScore = req.PassingScore
	cfg.GradeLevels = nil
	if err := s.GradingRepo.Update(cfg); err != nil {
		return nil, err
	}

	levels := make([]model.GradeLevel, 0, len(req.GradeLevels))
	for _, l := range req.GradeLevels {
		levels = append(levels, model.GradeLevel{
			GradingConfigurationID: cfg.ID,
			GradeName:              l.GradeName,
			MinScore:               l.MinScore,
			MaxScore:               l.MaxScore,
			GradePoint:             l.GradePoint,
			Description:            l.Description,
		})
	}
	if err := s.GradingRepo.ReplaceLevels(cfg.ID, levels); err != nil {
		return nil, err
	}
	cfg.GradeLevels = levels
	return cfg, nil
}

// Activate 切换生效配置。新提交按新配置落带，历史成绩不重算。
func (s *GradingConfigurationService) Activate(p Principal, id uint) (*model.GradingConfiguration, error) {
	if !p.IsAdmin() {
		return nil, util.ForbiddenError("only administrators can manage grading configurations")
	}
	if _, err := s.findConfiguration(id); err != nil {
		return nil, err
	}
	if err := s.GradingRepo.Activate(id); err != nil {
		return nil, err
	}
	return s.findConfiguration(id)
}

func (s *GradingConfigurationService) Delete(p Principal, id uint) error {
	if !p.IsAdmin() {
		return util.ForbiddenError("only administrators can manage grading configurations")
	}
	cfg, err := s.findConfiguration(id)
	if err != nil {
		return err
	}
	if cfg.Active {
		return util.ValidationError("cannot delete the active grading configuration")
	}
	return s.GradingRepo.Delete(id)
}

func (s *GradingConfigurationService) findConfiguration(id uint) (*model.GradingConfiguration, error) {
	cfg, err := s.GradingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("grading configuration", id)
		}
		return nil, err
	}
	return cfg, nil
}
