package database

import (
	"fmt"
	"log"

	"online_exam_backend/internal/config"
	"online_exam_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !shouldMigrate(cfg) {
		log.Println("Database migration skipped (release mode, -migrate not set)")
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseStudent{},
		&model.Exam{},
		&model.Question{},
		&model.Option{},
		&model.Submission{},
		&model.Answer{},
		&model.Score{},
		&model.GradingConfiguration{},
		&model.GradeLevel{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedDefaultGradingConfiguration(db); err != nil {
		return nil, err
	}

	if err := seedAdminUser(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

// shouldMigrate release 模式下迁移默认关闭，-migrate 可强制打开
func shouldMigrate(cfg *config.Config) bool {
	return cfg.Server.Mode != "release" || cfg.ForceMigrate
}

// 默认评分配置：六档读数，60分及格。没有任何配置时插入并激活。
func seedDefaultGradingConfiguration(db *gorm.DB) error {
	var count int64
	db.Model(&model.GradingConfiguration{}).Count(&count)
	if count > 0 {
		return nil
	}

	// 左闭右开区间首尾相接，上一带的下界即下一带的上界
	defaultConfig := &model.GradingConfiguration{
		Name:         "Standard Percentage Bands",
		Description:  "默认六档百分比评分，60分及格",
		PassingScore: 60,
		Active:       true,
		GradeLevels: []model.GradeLevel{
			{GradeName: "Excellent", MinScore: 90, MaxScore: 100, GradePoint: 4.0},
			{GradeName: "Very Good", MinScore: 80, MaxScore: 90, GradePoint: 3.5},
			{GradeName: "Good", MinScore: 70, MaxScore: 80, GradePoint: 3.0},
			{GradeName: "Satisfactory", MinScore: 60, MaxScore: 70, GradePoint: 2.0},
			{GradeName: "Marginal", MinScore: 50, MaxScore: 60, GradePoint: 1.0},
			{GradeName: "Unsatisfactory", MinScore: 0, MaxScore: 50, GradePoint: 0},
		},
	}
	return db.Create(defaultConfig).Error
}

// 初始管理员账号，仅当库中不存在管理员时播种
func seedAdminUser(db *gorm.DB, cfg *config.Config) error {
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count)
	if count > 0 {
		return nil
	}

	email := cfg.Grading.AdminEmail
	password := cfg.Grading.AdminPassword
	if email == "" || password == "" {
		log.Println("Admin seed skipped: admin_email/admin_password not configured")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     model.Admin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Admin account seeded: %s", email)
	return nil
}
