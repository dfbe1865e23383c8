package stock

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"stoktakip-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fiş numarası önekleri: mal kabul "SI", sevk "SO".
const (
	StockInPrefix  = "SI"
	StockOutPrefix = "SO"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// nextNumberFrom: kayıtlı son numaradan sıradaki fiş numarasını üretir.
// Rakam dışı karakterler atılır; kalan parse edilemezse veya boşsa
// numaralandırma 1'den başlar. %03d minimum genişliktir, kesme yapmaz
// (999 -> SI999, 1000 -> SI1000).
func nextNumberFrom(last, prefix string) string {
	next := 1
	if digits := nonDigits.ReplaceAllString(last, ""); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next)
}

// lastRowLock: Aynı tenant için eşzamanlı fiş oluşturma, son satırı iki kez
// okuyup aynı numarayı üretebilir; satır kilidi bunu engeller.
// SQLite (test ortamı) FOR UPDATE desteklemez.
func lastRowLock(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// NextStockInNumber: Tenant'ın sıradaki mal kabul fiş numarası.
// Fiş oluşturma transaction'ının içinden çağrılmalı.
func NextStockInNumber(db *gorm.DB, tenantID uint) (string, error) {
	var last models.StockIn
	err := lastRowLock(db).
		Where("tenant_id = ?", tenantID).
		Order("id DESC").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StockInPrefix + "001", nil
		}
		return "", err
	}
	return nextNumberFrom(last.RunningNumber, StockInPrefix), nil
}

// NextStockOutNumber: Tenant'ın sıradaki sevk fiş numarası.
func NextStockOutNumber(db *gorm.DB, tenantID uint) (string, error) {
	var last models.StockOut
	err := lastRowLock(db).
		Where("tenant_id = ?", tenantID).
		Order("id DESC").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StockOutPrefix + "001", nil
		}
		return "", err
	}
	return nextNumberFrom(last.RunningNumber, StockOutPrefix), nil
}
