package service

import (
	"errors"

	"online_exam_backend/internal/model"
	"online_exam_backend/internal/repository"
	"online_exam_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// UserUpdateRequest 管理员更新用户入参，零值字段不更新
type UserUpdateRequest struct {
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Password      string         `json:"password"`
	Role          model.UserRole `json:"role"`
	StudentNumber string         `json:"studentNumber"`
	FacultyID     string         `json:"facultyId"`
	ReviewerID    string         `json:"reviewerId"`
	Disabled      *bool          `json:"disabled"`
}

// GetProfile 本人资料
func (s *UserService) GetProfile(p Principal) (*model.User, error) {
	return s.findUser(p.ID)
}

func (s *UserService) ListUsers(p Principal) ([]model.User, error) {
	if !p.IsAdmin() {
		return nil, util.ForbiddenError("only administrators can list users")
	}
	return s.UserRepo.FindAll()
}

func (s *UserService) GetUserByID(p Principal, id uint) (*model.User, error) {
	if !p.IsAdmin() && p.ID != id {
		return nil, util.ForbiddenError("you don't have permission to view this user")
	}
	return s.findUser(id)
}

// UpdateUser 管理员更新任意用户；普通用户只能改自己的名字和密码
func (s *UserService) UpdateUser(p Principal, id uint, req UserUpdateRequest) (*model.User, error) {
	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if !p.IsAdmin() {
		if p.ID != id {
			return nil, util.ForbiddenError("you don't have permission to modify this user")
		}
		// 非管理员不可改角色、邮箱或禁用状态
		req.Role = ""
		req.Email = ""
		req.Disabled = nil
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if req.Role != "" {
		switch req.Role {
		case model.Student, model.Teacher, model.Admin, model.Reviewer:
			user.Role = req.Role
		default:
			return nil, util.ValidationError("invalid role")
		}
	}
	if req.StudentNumber != "" {
		user.StudentNumber = req.StudentNumber
	}
	if req.FacultyID != "" {
		user.FacultyID = req.FacultyID
	}
	if req.ReviewerID != "" {
		user.ReviewerID = req.ReviewerID
	}
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser 管理员删除用户。名下还有课程或提交记录时拒绝，
// 保留成绩与归属链的完整性。
func (s *UserService) DeleteUser(p Principal, id uint) error {
	if !p.IsAdmin() {
		return util.ForbiddenError("only administrators can delete users")
	}
	if p.ID == id {
		return util.ValidationError("you cannot delete your own account")
	}

	if _, err := s.findUser(id); err != nil {
		return err
	}

	courses, err := s.UserRepo.CountOwnedCourses(id)
	if err != nil {
		return err
	}
	if courses > 0 {
		return util.ConflictError("user owns courses and cannot be deleted")
	}

	submissions, err := s.UserRepo.CountSubmissions(id)
	if err != nil {
		return err
	}
	if submissions > 0 {
		return util.ConflictError("user has exam submissions and cannot be deleted")
	}

	return s.UserRepo.Delete(id)
}

func (s *UserService) findUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("user", id)
		}
		return nil, err
	}
	return user, nil
}
