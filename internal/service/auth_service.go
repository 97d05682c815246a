package service

import (
	"errors"

	"online_exam_backend/internal/config"
	"online_exam_backend/internal/model"
	"online_exam_backend/internal/repository"
	"online_exam_backend/internal/util"
	"online_exam_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Config   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{UserRepo: userRepo, Config: cfg}
}

// RegisterRequest 注册入参。角色缺省为学生，自助注册只允许学生和教师角色，
// 管理员账号由迁移播种或既有管理员创建。
type RegisterRequest struct {
	Name          string         `json:"name" binding:"required"`
	Email         string         `json:"email" binding:"required,email"`
	Password      string         `json:"password" binding:"required,min=6"`
	Role          model.UserRole `json:"role"`
	StudentNumber string         `json:"studentNumber"`
	FacultyID     string         `json:"facultyId"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录返回体
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	if req.Role == "" {
		req.Role = model.Student
	}
	if req.Role != model.Student && req.Role != model.Teacher {
		return nil, util.ValidationError("role must be student or teacher")
	}

	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ConflictError("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:          req.Name,
		Email:         req.Email,
		Password:      string(hashed),
		Role:          req.Role,
		StudentNumber: req.StudentNumber,
		FacultyID:     req.FacultyID,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Log.Info("User registered", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	return user, nil
}

// Login 密码校验失败和账号不存在返回同一错误，不暴露账号存在性
func (s *AuthService) Login(req LoginRequest) (*LoginResponse, error) {
	user, err := s.UserRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUnauthorized
		}
		return nil, err
	}

	if user.Disabled {
		return nil, util.ForbiddenError("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrUnauthorized
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("Failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return &LoginResponse{Token: token, User: user}, nil
}
