package repository

import (
	"online_exam_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.DB.Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.DB.Delete(&model.User{}, id).Error
}

// CountOwnedCourses 教师名下课程数，用于删除前的引用检查
func (r *UserRepository) CountOwnedCourses(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("teacher_id = ?", userID).Count(&count).Error
	return count, err
}

// CountSubmissions 学生名下提交数，用于删除前的引用检查
func (r *UserRepository) CountSubmissions(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).Where("student_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", gorm.Expr("CURRENT_TIMESTAMP(3)")).
		Error
}
