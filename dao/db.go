package dao

import (
	"fmt"
	"symposium-agent-backend/config"
	"symposium-agent-backend/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB 全局数据库连接
var DB *gorm.DB

func Init() error {
	cfg := config.Cfg.MySQL
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to mysql: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Symposium{},
		&model.Consultant{},
		&model.APIConfig{},
		&model.Template{},
		&model.Message{},
		&model.MessageVisibility{},
		&model.KnowledgeCard{},
		&model.Tag{},
		&model.SymposiumCard{},
		&model.APICallLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %v", err)
	}

	DB = db

	if err := seedTemplates(); err != nil {
		return fmt.Errorf("failed to seed consultant templates: %v", err)
	}

	return nil
}
