package testutil

import (
	"fmt"
	"strings"
	"testing"

	"stoktakip-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB: Test başına izole in-memory SQLite açar ve migration'ları koşar.
// cache=shared olmadan GORM'un connection pool'undaki her bağlantı ayrı
// (boş) bir veritabanı görür; isimli DSN testler arası izolasyonu sağlar.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.CompanyDetail{},
		&models.Product{},
		&models.ProductSku{},
		&models.StockIn{},
		&models.StockInDetail{},
		&models.StockOut{},
		&models.StockOutDetail{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("test migration hatası: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}
