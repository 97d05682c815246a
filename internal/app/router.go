package app

import (
	"online_exam_backend/docs"
	"online_exam_backend/internal/config"
	"online_exam_backend/internal/middleware"
	"online_exam_backend/internal/model"
	"online_exam_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		// 用户
		authGroup.GET("/users/me", c.user.GetProfile)
		authGroup.GET("/users", middleware.RoleMiddleware(model.Admin), c.user.ListUsers)
		authGroup.GET("/users/:id", c.user.GetUser)
		authGroup.PUT("/users/:id", c.user.UpdateUser)
		authGroup.DELETE("/users/:id", middleware.RoleMiddleware(model.Admin), c.user.DeleteUser)

		// 课程
		authGroup.POST("/courses", middleware.RoleMiddleware(model.Teacher), c.course.CreateCourse)
		authGroup.GET("/courses", c.course.ListCourses)
		authGroup.GET("/courses/catalog", c.course.BrowseCourses)
		authGroup.GET("/courses/:id", c.course.GetCourse)
		authGroup.PUT("/courses/:id", middleware.RoleMiddleware(model.Teacher), c.course.UpdateCourse)
		authGroup.DELETE("/courses/:id", middleware.RoleMiddleware(model.Teacher), c.course.DeleteCourse)
		authGroup.POST("/courses/:id/enroll", middleware.RoleMiddleware(model.Student), c.course.Enroll)
		authGroup.DELETE("/courses/:id/enroll", middleware.RoleMiddleware(model.Student), c.course.Unenroll)
		authGroup.GET("/courses/:id/students", middleware.RoleMiddleware(model.Teacher), c.course.GetStudents)

		// 课程下的考试（gin同一前缀的路径参数名必须一致，故复用 :id）
		authGroup.POST("/courses/:id/exams", middleware.RoleMiddleware(model.Teacher), withParamAlias("id", "courseId", c.exam.CreateExam))
		authGroup.GET("/courses/:id/exams", withParamAlias("id", "courseId", c.exam.ListExamsByCourse))

		// 考试
		authGroup.GET("/exams", c.exam.ListExams)
		authGroup.GET("/exams/upcoming", middleware.RoleMiddleware(model.Student), c.exam.ListUpcomingExams)
		authGroup.GET("/exams/available", middleware.RoleMiddleware(model.Student), c.exam.ListAvailableExams)
		authGroup.GET("/exams/:id", c.exam.GetExam)
		authGroup.GET("/exams/:id/take", c.exam.GetExamForTaking)
		authGroup.PUT("/exams/:id", middleware.RoleMiddleware(model.Teacher), c.exam.UpdateExam)
		authGroup.DELETE("/exams/:id", middleware.RoleMiddleware(model.Teacher), c.exam.DeleteExam)
		authGroup.POST("/exams/:id/publish", middleware.RoleMiddleware(model.Teacher), c.exam.PublishExam)
		authGroup.DELETE("/exams/:id/publish", middleware.RoleMiddleware(model.Teacher), c.exam.UnpublishExam)
		authGroup.GET("/exams/:id/stats", middleware.RoleMiddleware(model.Teacher), c.exam.GetExamStats)

		// 题目
		authGroup.POST("/exams/:id/questions", middleware.RoleMiddleware(model.Teacher), withParamAlias("id", "examId", c.question.AddQuestion))
		authGroup.GET("/exams/:id/questions", middleware.RoleMiddleware(model.Teacher), withParamAlias("id", "examId", c.question.ListQuestions))
		authGroup.GET("/questions/:id", middleware.RoleMiddleware(model.Teacher), c.question.GetQuestion)
		authGroup.PUT("/questions/:id", middleware.RoleMiddleware(model.Teacher), c.question.UpdateQuestion)
		authGroup.DELETE("/questions/:id", middleware.RoleMiddleware(model.Teacher), c.question.DeleteQuestion)

		// 提交与评分
		authGroup.POST("/submissions", middleware.RoleMiddleware(model.Student), c.submission.SubmitExam)
		authGroup.GET("/submissions/mine", middleware.RoleMiddleware(model.Student), c.submission.GetMySubmissions)
		authGroup.GET("/exams/:id/submissions", middleware.RoleMiddleware(model.Teacher), withParamAlias("id", "examId", c.submission.GetSubmissionsByExam))
		authGroup.GET("/submissions/:id", c.submission.GetSubmission)
		authGroup.GET("/submissions/:id/results", c.submission.GetSubmissionResults)
		authGroup.GET("/submissions/:id/answers", c.submission.ListAnswers)
		authGroup.POST("/submissions/:id/grade", middleware.RoleMiddleware(model.Teacher), c.submission.GradeSubmission)
		authGroup.PUT("/answers/:id", middleware.RoleMiddleware(model.Student), c.submission.UpdateAnswer)

		// 评分配置
		authGroup.GET("/grading-configurations/active", c.grading.GetActive)
		authGroup.GET("/grading-configurations", middleware.RoleMiddleware(model.Admin), c.grading.List)
		authGroup.GET("/grading-configurations/:id", middleware.RoleMiddleware(model.Admin), c.grading.Get)
		authGroup.POST("/grading-configurations", middleware.RoleMiddleware(model.Admin), c.grading.Create)
		authGroup.PUT("/grading-configurations/:id", middleware.RoleMiddleware(model.Admin), c.grading.Update)
		authGroup.POST("/grading-configurations/:id/activate", middleware.RoleMiddleware(model.Admin), c.grading.Activate)
		authGroup.DELETE("/grading-configurations/:id", middleware.RoleMiddleware(model.Admin), c.grading.Delete)

		// 看板
		authGroup.GET("/dashboard/student", middleware.RoleMiddleware(model.Student), c.dashboard.StudentDashboard)
		authGroup.GET("/dashboard/teacher", middleware.RoleMiddleware(model.Teacher), c.dashboard.TeacherDashboard)
	}
}

// withParamAlias 把路径参数以别名再注册一份，供处理器用语义化的名字读取
func withParamAlias(from, to string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: to, Value: c.Param(from)})
		handler(c)
	}
}
