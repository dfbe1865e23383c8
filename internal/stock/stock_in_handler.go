package stock

import (
	"fmt"
	"time"

	"stoktakip-backend/internal/audit"
	"stoktakip-backend/internal/auth"
	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockInRequest struct {
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	CreatedBy   *uint      `json:"created_by"`
	TenantID    uint       `json:"tenant_id"`
}

// Yardımcı: Stok işlemleri için audit log yaz. Oturum bilgisi yoksa
// (ör. testler) sessizce atlanır.
func writeStockAudit(c *fiber.Ctx, tenantID uint, entityType string, entityID uint, action models.AuditAction, description string, before, after any) {
	session, err := auth.SessionFromContext(c)
	if err != nil {
		return
	}
	_ = audit.WriteLog(audit.LogOptions{
		TenantID:    &tenantID,
		UserID:      session.UserID,
		UserName:    session.Name,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	})
}

// GET /api/stock-in/tenant/:tenantId
func ListStockInsByTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, err := c.ParamsInt("tenantId")
		if err != nil || tenantID < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tenant ID")
		}

		var stockIns []models.StockIn
		if err := database.DB.Preload("Details").
			Where("tenant_id = ?", tenantID).
			Find(&stockIns).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mal kabul fişleri listelenemedi")
		}

		return c.JSON(stockIns)
	}
}

// GET /api/stock-in/:id
func GetStockInHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var stockIn models.StockIn
		if err := database.DB.Preload("Details").First(&stockIn, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mal kabul fişi bulunamadı")
		}

		return c.JSON(stockIn)
	}
}

// POST /api/stock-in
func CreateStockInHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StockInRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.TenantID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "tenant_id zorunlu")
		}

		date := body.Date
		if date == nil {
			now := time.Now()
			date = &now
		}

		stockIn := models.StockIn{
			Description: body.Description,
			Date:        date,
			CreatedBy:   body.CreatedBy,
			TenantID:    body.TenantID,
		}

		// Numara tahsisi ve insert aynı transaction'da: son satır kilitli
		// okunur, iki eşzamanlı istek aynı numarayı alamaz.
		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		number, err := NextStockInNumber(tx, stockIn.TenantID)
		if err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş numarası üretilemedi")
		}
		stockIn.RunningNumber = number

		if err := tx.Create(&stockIn).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Mal kabul fişi oluşturulamadı")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mal kabul fişi oluşturulamadı")
		}

		writeStockAudit(c, stockIn.TenantID, "stock_in", stockIn.ID, models.AuditActionCreate,
			fmt.Sprintf("Mal kabul fişi oluşturuldu: %s", stockIn.RunningNumber), nil, stockIn)

		return c.Status(fiber.StatusCreated).JSON(stockIn)
	}
}

// PUT /api/stock-in/:id
// Başlık güncellemesi stok miktarlarına dokunmaz.
func UpdateStockInHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body StockInRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var stockIn models.StockIn
		if err := database.DB.First(&stockIn, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mal kabul fişi bulunamadı")
		}

		before := stockIn

		stockIn.Description = body.Description
		if body.Date != nil {
			stockIn.Date = body.Date
		}
		if body.CreatedBy != nil {
			stockIn.CreatedBy = body.CreatedBy
		}

		if err := database.DB.Save(&stockIn).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mal kabul fişi güncellenemedi")
		}

		writeStockAudit(c, stockIn.TenantID, "stock_in", stockIn.ID, models.AuditActionUpdate,
			fmt.Sprintf("Mal kabul fişi güncellendi: %s", stockIn.RunningNumber), before, stockIn)

		return c.JSON(stockIn)
	}
}

// DELETE /api/stock-in/:id
// Fiş silinirken her satırın stok etkisi geri alınır, yoksa miktarlar
// kalıcı olarak kayar.
func DeleteStockInHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var stockIn models.StockIn
		if err := database.DB.Preload("Details").First(&stockIn, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mal kabul fişi bulunamadı")
		}

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		for _, detail := range stockIn.Details {
			if err := AdjustSkuQuantity(tx, stockIn.TenantID, detail.Sku, -detail.Quantity); err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "Stok miktarı geri alınamadı")
			}
		}

		if err := tx.Where("stock_in_id = ?", stockIn.ID).Delete(&models.StockInDetail{}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırları silinemedi")
		}
		if err := tx.Delete(&stockIn).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Mal kabul fişi silinemedi")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mal kabul fişi silinemedi")
		}

		writeStockAudit(c, stockIn.TenantID, "stock_in", stockIn.ID, models.AuditActionDelete,
			fmt.Sprintf("Mal kabul fişi silindi: %s", stockIn.RunningNumber), stockIn, nil)

		return c.JSON(fiber.Map{
			"message": "Mal kabul fişi silindi",
		})
	}
}

// GET /api/stock-in/next-number/tenant/:tenantId
func NextStockInNumberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, err := c.ParamsInt("tenantId")
		if err != nil || tenantID < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tenant ID")
		}

		number, err := NextStockInNumber(database.DB, uint(tenantID))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş numarası üretilemedi")
		}

		return c.JSON(fiber.Map{
			"running_number": number,
		})
	}
}
