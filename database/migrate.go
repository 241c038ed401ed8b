package database

import (
	"fmt"
	"strings"

	"audition_backend/internal/logger"
	"audition_backend/internal/models"

	"gorm.io/gorm"
)

// Models - все таблицы сервиса в порядке создания
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.ApplicantProfile{},
		&models.BusinessProfile{},
		&models.Audition{},
		&models.Application{},
		&models.VideoContent{},
		&models.AuditionOffer{},
	}
}

// Migrate выполняет миграцию всех моделей и создает индексы,
// которые нельзя описать тегами GORM.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := createEmailIndex(db); err != nil {
		return err
	}

	logger.Info("Database migrated", "dialect", db.Dialector.Name())
	return nil
}

const emailIndexName = "idx_users_email_active"

// EmailIndexStatements - DDL уникальности email среди не удаленных
// пользователей. В MySQL нет частичных индексов: индекс строится по
// генерируемой колонке, которая равна NULL у удаленных строк.
func EmailIndexStatements(dialect string) []string {
	if dialect == "mysql" {
		return []string{
			"ALTER TABLE users ADD COLUMN email_active VARCHAR(255) " +
				"GENERATED ALWAYS AS (CASE WHEN deleted_at IS NULL THEN email END) VIRTUAL",
			"CREATE UNIQUE INDEX " + emailIndexName + " ON users (email_active)",
		}
	}
	return []string{
		"CREATE UNIQUE INDEX " + emailIndexName + " ON users (email) WHERE deleted_at IS NULL",
	}
}

func createEmailIndex(db *gorm.DB) error {
	if db.Migrator().HasIndex(&models.User{}, emailIndexName) {
		return nil
	}

	dialect := db.Dialector.Name()
	for _, stmt := range EmailIndexStatements(dialect) {
		// колонка могла остаться от прерванной миграции
		if dialect == "mysql" && db.Migrator().HasColumn(&models.User{}, "email_active") &&
			strings.HasPrefix(stmt, "ALTER TABLE") {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create email index: %w", err)
		}
	}
	return nil
}
