package database

import (
	"fmt"

	"canova-go/internal/config"
	logging "canova-go/internal/logging"
	"canova-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.Page{},
		&models.Question{},
		&models.Condition{},
		&models.Rule{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	// Two conditions on one source page may never reference the same
	// question set. The create path checks this before writing; the unique
	// index closes the race between concurrent creations.
	dedupIndex := `CREATE UNIQUE INDEX IF NOT EXISTS idx_conditions_dedup ON conditions (form_id, source_page, question_key);`
	if err := DB.Exec(dedupIndex).Error; err != nil {
		log.Fatal("Failed to create unique index on conditions table", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
