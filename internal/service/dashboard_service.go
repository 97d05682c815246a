package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"online_exam_backend/internal/config"
	"online_exam_backend/internal/model"
	"online_exam_backend/internal/repository"
	"online_exam_backend/internal/util"
	"online_exam_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type DashboardService struct {
	CourseRepo     *repository.CourseRepository
	ExamRepo       *repository.ExamRepository
	SubmissionRepo *repository.SubmissionRepository
	Redis          *redis.Client
	Config         *config.Config
}

func NewDashboardService(
	courseRepo *repository.CourseRepository,
	examRepo *repository.ExamRepository,
	submissionRepo *repository.SubmissionRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *DashboardService {
	return &DashboardService{
		CourseRepo:     courseRepo,
		ExamRepo:       examRepo,
		SubmissionRepo: submissionRepo,
		Redis:          rdb,
		Config:         cfg,
	}
}

// StudentDashboard 学生首页汇总
type StudentDashboard struct {
	EnrolledCourses  int                `json:"enrolledCourses"`
	CourseProgress   []CourseProgress   `json:"courseProgress"`
	UpcomingExams    []model.Exam       `json:"upcomingExams"`
	AvailableExams   []model.Exam       `json:"availableExams"`
	RecentResults    []model.Submission `json:"recentResults"`
	AverageScore     float64            `json:"averageScore"`
	GradedSubmission int                `json:"gradedSubmissions"`
}

// CourseProgress 单门课程的答题进度
type CourseProgress struct {
	CourseID       uint   `json:"courseId"`
	CourseTitle    string `json:"courseTitle"`
	PublishedExams int    `json:"publishedExams"`
	SubmittedExams int    `json:"submittedExams"`
}

// TeacherDashboard 教师首页汇总
type TeacherDashboard struct {
	Courses        []model.Course   `json:"courses"`
	ExamCount      int              `json:"examCount"`
	PendingGrading int              `json:"pendingGrading"`
	ExamStats      []CachedExamStat `json:"examStats"`
}

// CachedExamStat 教师视图下的单场考试概览，经Redis缓存
type CachedExamStat struct {
	ExamID    uint   `json:"examId"`
	ExamTitle string `json:"examTitle"`
	ExamStats
}

func (s *DashboardService) GetStudentDashboard(p Principal) (*StudentDashboard, error) {
	if p.Role != model.Student {
		return nil, util.ForbiddenError("student dashboard is only available to students")
	}

	courses, err := s.CourseRepo.FindByStudent(p.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	upcoming, err := s.ExamRepo.FindUpcomingForStudent(p.ID, now)
	if err != nil {
		return nil, err
	}
	available, err := s.ExamRepo.FindAvailableForStudent(p.ID, now)
	if err != nil {
		return nil, err
	}

	submissions, err := s.SubmissionRepo.FindByStudent(p.ID)
	if err != nil {
		return nil, err
	}

	dashboard := &StudentDashboard{
		EnrolledCourses: len(courses),
		UpcomingExams:   upcoming,
		AvailableExams:  available,
		RecentResults:   submissions,
	}

	submittedByExam := make(map[uint]bool, len(submissions))
	for _, sub := range submissions {
		submittedByExam[sub.ExamID] = true
	}
	for _, course := range courses {
		exams, err := s.ExamRepo.FindByCourse(course.ID, true)
		if err != nil {
			return nil, err
		}
		progress := CourseProgress{
			CourseID:       course.ID,
			CourseTitle:    course.Title,
			PublishedExams: len(exams),
		}
		for _, exam := range exams {
			if submittedByExam[exam.ID] {
				progress.SubmittedExams++
			}
		}
		dashboard.CourseProgress = append(dashboard.CourseProgress, progress)
	}

	var sum float64
	for _, sub := range submissions {
		if sub.Graded && sub.Score != nil {
			dashboard.GradedSubmission++
			sum += sub.Score.PercentageScore
		}
	}
	if dashboard.GradedSubmission > 0 {
		dashboard.AverageScore = sum / float64(dashboard.GradedSubmission)
	}

	return dashboard, nil
}

func (s *DashboardService) GetTeacherDashboard(p Principal) (*TeacherDashboard, error) {
	if p.Role != model.Teacher && p.Role != model.Admin {
		return nil, util.ForbiddenError("teacher dashboard is only available to teachers")
	}

	courses, err := s.CourseRepo.FindByTeacher(p.ID)
	if err != nil {
		return nil, err
	}

	exams, err := s.ExamRepo.FindByTeacher(p.ID)
	if err != nil {
		return nil, err
	}

	dashboard := &TeacherDashboard{
		Courses:   courses,
		ExamCount: len(exams),
	}

	for _, exam := range exams {
		stat, err := s.examStat(context.Background(), &exam)
		if err != nil {
			return nil, err
		}
		dashboard.PendingGrading += stat.SubmissionCount - stat.GradedCount
		dashboard.ExamStats = append(dashboard.ExamStats, *stat)
	}

	return dashboard, nil
}

// examStat 单场考试统计，带Redis缓存。缓存未命中或Redis不可用时直接回源计算。
func (s *DashboardService) examStat(ctx context.Context, exam *model.Exam) (*CachedExamStat, error) {
	ttl := time.Duration(s.Config.Grading.StatsCacheSeconds) * time.Second
	key := fmt.Sprintf("exam:stats:%d", exam.ID)

	if s.Redis != nil && ttl > 0 {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var stat CachedExamStat
			if err := json.Unmarshal([]byte(cached), &stat); err == nil {
				return &stat, nil
			}
		}
	}

	submissions, err := s.SubmissionRepo.FindByExam(exam.ID)
	if err != nil {
		return nil, err
	}

	stat := &CachedExamStat{
		ExamID:    exam.ID,
		ExamTitle: exam.Title,
		ExamStats: *ComputeExamStats(exam.ID, submissions),
	}

	if s.Redis != nil && ttl > 0 {
		if data, err := json.Marshal(stat); err == nil {
			if err := s.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
				logger.Log.Warn("Failed to cache exam stats", zap.Uint("exam_id", exam.ID), zap.Error(err))
			}
		}
	}

	return stat, nil
}

// InvalidateExamStats 提交或评分后失效对应考试的统计缓存
func (s *DashboardService) InvalidateExamStats(ctx context.Context, examID uint) {
	if s.Redis == nil {
		return
	}
	key := fmt.Sprintf("exam:stats:%d", examID)
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate exam stats cache", zap.Uint("exam_id", examID), zap.Error(err))
	}
}
