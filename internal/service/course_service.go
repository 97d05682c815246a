package service

import (
	"errors"
	"strings"

	"online_exam_backend/internal/model"
	"online_exam_backend/internal/repository"
	"online_exam_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, userRepo *repository.UserRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo, UserRepo: userRepo}
}

// CourseRequest 创建/更新课程入参
type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Code        string `json:"code" binding:"required"`
	Credits     int    `json:"credits"`
}

// CreateCourse 教师建课归属自己；管理员可用 teacherID 指定归属教师
func (s *CourseService) CreateCourse(p Principal, req CourseRequest, teacherID uint) (*model.Course, error) {
	if p.Role != model.Teacher && p.Role != model.Admin {
		return nil, util.ForbiddenError("only teachers can create courses")
	}

	ownerID := p.ID
	if p.IsAdmin() && teacherID != 0 {
		owner, err := s.UserRepo.FindByID(teacherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundError("user", teacherID)
			}
			return nil, err
		}
		if owner.Role != model.Teacher {
			return nil, util.ValidationError("course owner must have the teacher role")
		}
		ownerID = owner.ID
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Code:        req.Code,
		Credits:     req.Credits,
		TeacherID:   ownerID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return nil, util.ConflictError("course code already exists")
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourseByID(p Principal, id uint) (*model.Course, error) {
	course, err := s.findCourse(id)
	if err != nil {
		return nil, err
	}

	enrolled := false
	if p.Role == model.Student {
		enrolled, err = s.CourseRepo.IsEnrolled(id, p.ID)
		if err != nil {
			return nil, err
		}
	}
	if !CanViewCourse(p, course, enrolled) {
		return nil, util.ForbiddenError("you don't have permission to view this course")
	}
	return course, nil
}

// ListCourses 管理员全量，教师看名下，学生看已选
func (s *CourseService) ListCourses(p Principal) ([]model.Course, error) {
	switch p.Role {
	case model.Admin:
		return s.CourseRepo.FindAll()
	case model.Teacher:
		return s.CourseRepo.FindByTeacher(p.ID)
	default:
		return s.CourseRepo.FindByStudent(p.ID)
	}
}

// BrowseCourses 全部课程目录，学生选课前浏览用
func (s *CourseService) BrowseCourses() ([]model.Course, error) {
	return s.CourseRepo.FindAll()
}

func (s *CourseService) UpdateCourse(p Principal, id uint, req CourseRequest) (*model.Course, error) {
	course, err := s.findCourse(id)
	if err != nil {
		return nil, err
	}
	if !CanManageCourse(p, course) {
		return nil, util.ForbiddenError("you don't have permission to modify this course")
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Code = req.Code
	course.Credits = req.Credits
	if err := s.CourseRepo.Update(course); err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return nil, util.ConflictError("course code already exists")
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(p Principal, id uint) error {
	course, err := s.findCourse(id)
	if err != nil {
		return err
	}
	if !CanManageCourse(p, course) {
		return util.ForbiddenError("you don't have permission to delete this course")
	}
	return s.CourseRepo.Delete(id)
}

// Enroll 学生选课。重复选课直接返回成功，选课是幂等操作。
func (s *CourseService) Enroll(p Principal, courseID uint) error {
	if p.Role != model.Student {
		return util.ForbiddenError("only students can enroll in courses")
	}
	if _, err := s.findCourse(courseID); err != nil {
		return err
	}

	enrolled, err := s.CourseRepo.IsEnrolled(courseID, p.ID)
	if err != nil {
		return err
	}
	if enrolled {
		return nil
	}

	if err := s.CourseRepo.Enroll(courseID, p.ID); err != nil {
		// 并发重复选课撞主键也视为成功
		if strings.Contains(err.Error(), "Duplicate entry") {
			return nil
		}
		return err
	}
	return nil
}

func (s *CourseService) Unenroll(p Principal, courseID uint) error {
	if p.Role != model.Student {
		return util.ForbiddenError("only students can unenroll from courses")
	}
	if _, err := s.findCourse(courseID); err != nil {
		return err
	}
	return s.CourseRepo.Unenroll(courseID, p.ID)
}

// GetStudents 课程的选课学生名单，仅归属教师或管理员
func (s *CourseService) GetStudents(p Principal, courseID uint) ([]model.User, error) {
	course, err := s.findCourse(courseID)
	if err != nil {
		return nil, err
	}
	if !CanManageCourse(p, course) {
		return nil, util.ForbiddenError("you don't have permission to view enrolled students")
	}
	return s.CourseRepo.FindStudents(courseID)
}

func (s *CourseService) findCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course", id)
		}
		return nil, err
	}
	return course, nil
}
