package database

import (
	"cyberar_admin_backend/internal/config"
	"cyberar_admin_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the MySQL database backing the SQL document store.
func InitDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logMode := logger.Warn
	if debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := db.AutoMigrate(&model.DocumentRow{}); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}
