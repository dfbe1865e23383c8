package stock

import (
	"errors"
	"strings"

	"stoktakip-backend/internal/models"

	"gorm.io/gorm"
)

// findSku: (sku_code, tenant) ile ilk eşleşen SKU. Aynı tenant içinde mükerrer
// sku kodu varsa id sırasına göre ilki alınır.
func findSku(db *gorm.DB, tenantID uint, skuCode string) (*models.ProductSku, error) {
	var sku models.ProductSku
	err := db.
		Where("sku_code = ? AND tenant_id = ?", skuCode, tenantID).
		Order("id").
		First(&sku).Error
	if err != nil {
		return nil, err
	}
	return &sku, nil
}

// AdjustSkuQuantity: SKU'nun mevcut miktarına delta ekler.
// Fiş satırları sku kodunu serbest metin olarak taşır; kod katalogda yoksa
// düzeltme sessizce atlanır, hata sayılmaz. Alt sınır kontrolü yapılmaz,
// negatife düşebilir (yetersiz stok kontrolü sadece sevk kesinleştirmede).
func AdjustSkuQuantity(db *gorm.DB, tenantID uint, skuCode string, delta int) error {
	if tenantID == 0 || strings.TrimSpace(skuCode) == "" {
		return nil
	}

	sku, err := findSku(db, tenantID, skuCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	sku.QuantityAvailable += delta
	return db.Save(sku).Error
}
