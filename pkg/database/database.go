package database

import (
	"fmt"
	"log"

	"ai_tutor_backend/internal/config"
	"ai_tutor_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Conversation{},
		&model.Message{},
		&model.Quiz{},
		&model.QuizAttempt{},
		&model.UserProgress{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed a starter quiz so a fresh install has something to take.
	var quizCount int64
	db.Model(&model.Quiz{}).Count(&quizCount)
	if quizCount == 0 {
		starter := &model.Quiz{
			Topic: string(model.TopicPython),
			Title: "Python Functions Quiz",
			Questions: []model.QuizQuestion{
				{
					ID:       1,
					Question: "What is the correct syntax for defining a function in Python?",
					Options: []string{
						"function myFunction():",
						"def myFunction():",
						"define myFunction():",
						"func myFunction():",
					},
					CorrectAnswer: 1,
				},
				{
					ID:       2,
					Question: "How do you call a function named 'greet' with parameter 'name'?",
					Options: []string{
						"greet(name)",
						"call greet(name)",
						"execute greet(name)",
						"run greet(name)",
					},
					CorrectAnswer: 0,
				},
			},
		}
		db.Create(starter)
	}

	return db, nil
}
