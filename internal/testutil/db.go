// Package testutil содержит общие заготовки для тестов: in-memory SQLite
// со схемой сервиса и фабрики записей.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"audition_backend/database"
	"audition_backend/internal/config"
	"audition_backend/internal/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func init() {
	logger.Init("test")
}

// NewDB открывает отдельную in-memory SQLite базу на тест и мигрирует схему.
// Пул ограничен одним соединением: так все запросы видят одну и ту же базу.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared&_foreign_keys=1", name, uuid.NewString()[:8])

	db, err := database.Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
