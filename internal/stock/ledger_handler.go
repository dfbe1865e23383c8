package stock

import (
	"sort"
	"time"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// StockLedgerEntry: Tek bir stok hareket satırının birleşik görünümü.
// Kalıcı değildir, her istekte fişlerden türetilir.
type StockLedgerEntry struct {
	Type          string     `json:"type"` // "IN" veya "OUT"
	RecordID      uint       `json:"record_id"`
	RunningNumber string     `json:"running_number"`
	Date          *time.Time `json:"date"`
	ProductName   string     `json:"product_name"`
	Sku           string     `json:"sku"`
	Quantity      int        `json:"quantity"`
	CreatedByID   *uint      `json:"created_by_id"`
	CreatedByName string     `json:"created_by_name"`
}

// GET /api/stock-ledger/tenant/:tenantId
// Tüm giriş/çıkış satırlarını tek listede, tarihe göre yeniden eskiye
// sıralı döndürür. Tarihi olmayan kayıtlar her zaman en sona gider.
func LedgerByTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, err := c.ParamsInt("tenantId")
		if err != nil || tenantID < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tenant ID")
		}

		var stockIns []models.StockIn
		if err := database.DB.Preload("Details").
			Where("tenant_id = ?", tenantID).
			Find(&stockIns).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mal kabul fişleri okunamadı")
		}

		var stockOuts []models.StockOut
		if err := database.DB.Preload("Details").
			Where("tenant_id = ?", tenantID).
			Find(&stockOuts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevk fişleri okunamadı")
		}

		// Oluşturan kullanıcıları tek sorguda topla; bulunamayan id'ler
		// hatasız boş isme çözülür.
		userIDSet := make(map[uint]struct{})
		for _, si := range stockIns {
			if si.CreatedBy != nil {
				userIDSet[*si.CreatedBy] = struct{}{}
			}
		}
		for _, so := range stockOuts {
			if so.CreatedBy != nil {
				userIDSet[*so.CreatedBy] = struct{}{}
			}
		}

		userNames := make(map[uint]string, len(userIDSet))
		if len(userIDSet) > 0 {
			ids := make([]uint, 0, len(userIDSet))
			for id := range userIDSet {
				ids = append(ids, id)
			}
			var users []models.User
			if err := database.DB.Where("id IN ?", ids).Find(&users).Error; err == nil {
				for _, u := range users {
					userNames[u.ID] = u.Name
				}
			}
		}

		entries := make([]StockLedgerEntry, 0)
		for _, si := range stockIns {
			var createdByName string
			if si.CreatedBy != nil {
				createdByName = userNames[*si.CreatedBy]
			}
			for _, detail := range si.Details {
				entries = append(entries, StockLedgerEntry{
					Type:          "IN",
					RecordID:      si.ID,
					RunningNumber: si.RunningNumber,
					Date:          si.Date,
					ProductName:   detail.ProductName,
					Sku:           detail.Sku,
					Quantity:      detail.Quantity,
					CreatedByID:   si.CreatedBy,
					CreatedByName: createdByName,
				})
			}
		}
		for _, so := range stockOuts {
			var createdByName string
			if so.CreatedBy != nil {
				createdByName = userNames[*so.CreatedBy]
			}
			for _, detail := range so.Details {
				entries = append(entries, StockLedgerEntry{
					Type:          "OUT",
					RecordID:      so.ID,
					RunningNumber: so.RunningNumber,
					Date:          so.Date,
					ProductName:   detail.ProductName,
					Sku:           detail.Sku,
					Quantity:      detail.Quantity,
					CreatedByID:   so.CreatedBy,
					CreatedByName: createdByName,
				})
			}
		}

		// Kararlı sıralama: eşit tarihlerde mevcut sıra korunur
		sort.SliceStable(entries, func(i, j int) bool {
			di, dj := entries[i].Date, entries[j].Date
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return di.After(*dj)
		})

		return c.JSON(entries)
	}
}
