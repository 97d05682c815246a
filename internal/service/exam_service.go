package service

import (
	"errors"
	"time"

	"online_exam_backend/internal/model"
	"online_exam_backend/internal/repository"
	"online_exam_backend/internal/util"

	"gorm.io/gorm"
)

type ExamService struct {
	ExamRepo       *repository.ExamRepository
	CourseRepo     *repository.CourseRepository
	SubmissionRepo *repository.SubmissionRepository
}

func NewExamService(examRepo *repository.ExamRepository, courseRepo *repository.CourseRepository, submissionRepo *repository.SubmissionRepository) *ExamService {
	return &ExamService{ExamRepo: examRepo, CourseRepo: courseRepo, SubmissionRepo: submissionRepo}
}

// ExamRequest 创建/更新考试入参
type ExamRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"startTime" binding:"required"`
	EndTime         time.Time `json:"endTime" binding:"required"`
	DurationMinutes int       `json:"durationMinutes"`
}

func validateExamTimes(start, end time.Time) error {
	if !end.After(start) {
		return util.ValidationError("exam end time must be after start time")
	}
	return nil
}

// CreateExam 在课程下创建考试，新考试始终是未发布状态
func (s *ExamService) CreateExam(p Principal, courseID uint, req ExamRequest) (*model.Exam, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course", courseID)
		}
		return nil, err
	}
	if !CanManageCourse(p, course) {
		return nil, util.ForbiddenError("you don't have permission to create exams in this course")
	}
	if err := validateExamTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: req.DurationMinutes,
		Published:       false,
		CourseID:        course.ID,
	}
	if err := s.ExamRepo.Create(exam); err != nil {
		return nil, err
	}
	exam.Course = course
	return exam, nil
}

func (s *ExamService) GetExamByID(p Principal, id uint) (*model.Exam, error) {
	exam, err := s.findExam(id)
	if err != nil {
		return nil, err
	}
	enrolled := false
	if p.Role == model.Student {
		enrolled, err = s.CourseRepo.IsEnrolled(exam.CourseID, p.ID)
		if err != nil {
			return nil, err
		}
	}
	if !CanViewExam(p, exam, enrolled) {
		return nil, util.ForbiddenError("you don't have permission to view this exam")
	}
	return exam, nil
}

// GetExamForTaking 学生答题视图：校验可见性后连题目一起返回，
// 并抹去选项上的正确标记，避免把答案发给考生。
func (s *ExamService) GetExamForTaking(p Principal, id uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("exam", id)
		}
		return nil, err
	}

	enrolled := false
	if p.Role == model.Student {
		enrolled, err = s.CourseRepo.IsEnrolled(exam.CourseID, p.ID)
		if err != nil {
			return nil, err
		}
	}
	if !CanViewExam(p, exam, enrolled) {
		return nil, util.ForbiddenError("you don't have permission to view this exam")
	}

	if p.Role == model.Student {
		for qi := range exam.Questions {
			for oi := range exam.Questions[qi].Options {
				exam.Questions[qi].Options[oi].Correct = false
			}
		}
	}
	return exam, nil
}

// ListExams 角色视角的考试列表：管理员全量，教师看名下课程的，学生看已选课程中已发布的
func (s *ExamService) ListExams(p Principal) ([]model.Exam, error) {
	switch p.Role {
	case model.Admin:
		return s.ExamRepo.FindAll()
	case model.Teacher:
		return s.ExamRepo.FindByTeacher(p.ID)
	default:
		courses, err := s.CourseRepo.FindByStudent(p.ID)
		if err != nil {
			return nil, err
		}
		var exams []model.Exam
		for _, c := range courses {
			courseExams, err := s.ExamRepo.FindByCourse(c.ID, true)
			if err != nil {
				return nil, err
			}
			exams = append(exams, courseExams...)
		}
		return exams, nil
	}
}

func (s *ExamService) ListExamsByCourse(p Principal, courseID uint) ([]model.Exam, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course", courseID)
		}
		return nil, err
	}

	if CanManageCourse(p, course) {
		return s.ExamRepo.FindByCourse(courseID, false)
	}

	enrolled, err := s.CourseRepo.IsEnrolled(courseID, p.ID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ForbiddenError("you don't have permission to view exams in this course")
	}
	return s.ExamRepo.FindByCourse(courseID, true)
}

// ListUpcomingExams 学生的未开考考试
func (s *ExamService) ListUpcomingExams(p Principal) ([]model.Exam, error) {
	return s.ExamRepo.FindUpcomingForStudent(p.ID, time.Now())
}

// ListAvailableExams 学生当前可作答且尚未提交的考试
func (s *ExamService) ListAvailableExams(p Principal) ([]model.Exam, error) {
	return s.ExamRepo.FindAvailableForStudent(p.ID, time.Now())
}

func (s *ExamService) UpdateExam(p Principal, id uint, req ExamRequest) (*model.Exam, error) {
	exam, err := s.findExam(id)
	if err != nil {
		return nil, err
	}
	if !CanManageExam(p, exam) {
		return nil, util.ForbiddenError("you don't have permission to modify this exam")
	}
	if err := validateExamTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	exam.Title = req.Title
	exam.Description = req.Description
	exam.StartTime = req.StartTime
	exam.EndTime = req.EndTime
	exam.DurationMinutes = req.DurationMinutes
	if err := s.ExamRepo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// PublishExam 发布考试，要求至少有一道题目
func (s *ExamService) PublishExam(p Principal, id uint) (*model.Exam, error) {
	exam, err := s.findExam(id)
	if err != nil {
		return nil, err
	}
	if !CanManageExam(p, exam) {
		return nil, util.ForbiddenError("you don't have permission to publish this exam")
	}

	count, err := s.ExamRepo.CountQuestions(id)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, util.ValidationError("cannot publish an exam with no questions")
	}

	exam.Published = true
	if err := s.ExamRepo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// UnpublishExam 撤回发布，已提交的答卷不受影响
func (s *ExamService) UnpublishExam(p Principal, id uint) (*model.Exam, error) {
	exam, err := s.findExam(id)
	if err != nil {
		return nil, err
	}
	if !CanManageExam(p, exam) {
		return nil, util.ForbiddenError("you don't have permission to unpublish this exam")
	}

	exam.Published = false
	if err := s.ExamRepo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) DeleteExam(p Principal, id uint) error {
	exam, err := s.findExam(id)
	if err != nil {
		return err
	}
	if !CanManageExam(p, exam) {
		return util.ForbiddenError("you don't have permission to delete this exam")
	}
	return s.ExamRepo.Delete(id)
}

// ExamStats 单场考试的成绩统计，分数均为百分比口径
type ExamStats struct {
	ExamID          uint    `json:"examId"`
	SubmissionCount int     `json:"submissionCount"`
	GradedCount     int     `json:"gradedCount"`
	AverageScore    float64 `json:"averageScore"`
	HighestScore    float64 `json:"highestScore"`
	LowestScore     float64 `json:"lowestScore"`
	PassCount       int     `json:"passCount"`
	FailCount       int     `json:"failCount"`
	PassRate        float64 `json:"passRate"`
}

// GetExamStats 统计已判分提交的平均/最高/最低分与通过数
func (s *ExamService) GetExamStats(p Principal, examID uint) (*ExamStats, error) {
	exam, err := s.findExam(examID)
	if err != nil {
		return nil, err
	}
	if !CanManageExam(p, exam) {
		return nil, util.ForbiddenError("you don't have permission to view exam statistics")
	}

	submissions, err := s.SubmissionRepo.FindByExam(examID)
	if err != nil {
		return nil, err
	}
	return ComputeExamStats(examID, submissions), nil
}

// ComputeExamStats 纯统计计算，未判分的提交不计入分数统计
func ComputeExamStats(examID uint, submissions []model.Submission) *ExamStats {
	stats := &ExamStats{ExamID: examID, SubmissionCount: len(submissions)}

	var sum float64
	first := true
	for _, sub := range submissions {
		if !sub.Graded || sub.Score == nil {
			continue
		}
		stats.GradedCount++
		percentage := sub.Score.PercentageScore
		sum += percentage
		if first {
			stats.HighestScore = percentage
			stats.LowestScore = percentage
			first = false
		} else {
			if percentage > stats.HighestScore {
				stats.HighestScore = percentage
			}
			if percentage < stats.LowestScore {
				stats.LowestScore = percentage
			}
		}
		switch sub.Score.Status {
		case model.ScorePass:
			stats.PassCount++
		case model.ScoreFail:
			stats.FailCount++
		}
	}
	if stats.GradedCount > 0 {
		stats.AverageScore = sum / float64(stats.GradedCount)
		stats.PassRate = float64(stats.PassCount) / float64(stats.GradedCount) * 100
	}
	return stats
}

func (s *ExamService) findExam(id uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("exam", id)
		}
		return nil, err
	}
	return exam, nil
}
