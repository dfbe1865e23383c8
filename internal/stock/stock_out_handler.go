package stock

import (
	"fmt"
	"strings"
	"time"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockOutRequest struct {
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	CreatedBy   *uint      `json:"created_by"`
	TenantID    uint       `json:"tenant_id"`
}

// GET /api/stock-out/tenant/:tenantId
func ListStockOutsByTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, err := c.ParamsInt("tenantId")
		if err != nil || tenantID < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tenant ID")
		}

		var stockOuts []models.StockOut
		if err := database.DB.Preload("Details").
			Where("tenant_id = ?", tenantID).
			Find(&stockOuts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevk fişleri listelenemedi")
		}

		return c.JSON(stockOuts)
	}
}

// GET /api/stock-out/:id
func GetStockOutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var stockOut models.StockOut
		if err := database.DB.Preload("Details").First(&stockOut, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sevk fişi bulunamadı")
		}

		return c.JSON(stockOut)
	}
}

// POST /api/stock-out
func CreateStockOutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StockOutRequest
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

		stockOut := models.StockOut{
			Description: body.Description,
			Date:        date,
			CreatedBy:   body.CreatedBy,
			TenantID:    body.TenantID,
			Finalized:   false,
		}

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		number, err := NextStockOutNumber(tx, stockOut.TenantID)
		if err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş numarası üretilemedi")
		}
		stockOut.RunningNumber = number

		if err := tx.Create(&stockOut).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Sevk fişi oluşturulamadı")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevk fişi oluşturulamadı")
		}

		writeStockAudit(c, stockOut.TenantID, "stock_out", stockOut.ID, models.AuditActionCreate,
			fmt.Sprintf("Sevk fişi oluşturuldu: %s", stockOut.RunningNumber), nil, stockOut)

		return c.Status(fiber.StatusCreated).JSON(stockOut)
	}
}

// PUT /api/stock-out/:id
func UpdateStockOutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body StockOutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var stockOut models.StockOut
		if err := database.DB.First(&stockOut, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sevk fişi bulunamadı")
		}

		if stockOut.Finalized {
			return fiber.NewError(fiber.StatusBadRequest, "Kesinleşmiş sevk fişi düzenlenemez")
		}

		before := stockOut

		stockOut.Description = body.Description
		if body.Date != nil {
			stockOut.Date = body.Date
		}
		if body.CreatedBy != nil {
			stockOut.CreatedBy = body.CreatedBy
		}

		if err := database.DB.Save(&stockOut).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevk fişi güncellenemedi")
		}

		writeStockAudit(c, stockOut.TenantID, "stock_out", stockOut.ID, models.AuditActionUpdate,
			fmt.Sprintf("Sevk fişi güncellendi: %s", stockOut.RunningNumber), before, stockOut)

		return c.JSON(stockOut)
	}
}

// DELETE /api/stock-out/:id
// Kesinleşmemiş fiş henüz stok düşmediği için silerken geri alınacak
// miktar yoktur.
func DeleteStockOutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var stockOut models.StockOut
		if err := database.DB.First(&stockOut, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sevk fişi bulunamadı")
		}

		if stockOut.Finalized {
			return fiber.NewError(fiber.StatusBadRequest, "Kesinleşmiş sevk fişi silinemez")
		}

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Where("stock_out_id = ?", stockOut.ID).Delete(&models.StockOutDetail{}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırları silinemedi")
		}
		if err := tx.Delete(&stockOut).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Sevk fişi silinemedi")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevk fişi silinemedi")
		}

		writeStockAudit(c, stockOut.TenantID, "stock_out", stockOut.ID, models.AuditActionDelete,
			fmt.Sprintf("Sevk fişi silindi: %s", stockOut.RunningNumber), stockOut, nil)

		return c.JSON(fiber.Map{
			"message": "Sevk fişi silindi",
		})
	}
}

// POST /api/stock-out/:id/finalize
// İki aşamalı kesinleştirme: önce TÜM satırlar doğrulanır, sonra düşülür.
// Herhangi bir satır doğrulamadan geçemezse hiçbir SKU'dan düşüm yapılmaz.
func FinalizeStockOutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var stockOut models.StockOut
		if err := database.DB.First(&stockOut, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sevk fişi bulunamadı")
		}

		if stockOut.Finalized {
			return fiber.NewError(fiber.StatusBadRequest, "Sevk fişi zaten kesinleşmiş")
		}

		var details []models.StockOutDetail
		if err := database.DB.Where("stock_out_id = ?", stockOut.ID).Find(&details).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırları okunamadı")
		}

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		// 1. aşama: doğrulama. Aynı SKU birden fazla satırda geçebilir,
		// yeterlilik satır bazında değil toplam talep üzerinden kontrol edilir.
		type pendingDebit struct {
			sku   *models.ProductSku
			total int
		}
		debits := make(map[uint]*pendingDebit)
		order := make([]uint, 0, len(details))

		for _, detail := range details {
			if strings.TrimSpace(detail.Sku) == "" {
				continue
			}

			sku, err := findSku(tx, stockOut.TenantID, detail.Sku)
			if err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("SKU bulunamadı: %s", detail.Sku))
			}

			p, ok := debits[sku.ID]
			if !ok {
				p = &pendingDebit{sku: sku}
				debits[sku.ID] = p
				order = append(order, sku.ID)
			}
			p.total += detail.Quantity

			if p.sku.QuantityAvailable < p.total {
				tx.Rollback()
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Yetersiz stok: %s (mevcut %d, istenen %d)",
						detail.Sku, p.sku.QuantityAvailable, p.total))
			}
		}

		// 2. aşama: düşüm ve kesinleştirme
		for _, skuID := range order {
			p := debits[skuID]
			p.sku.QuantityAvailable -= p.total
			if err := tx.Save(p.sku).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "Stok miktarı düşülemedi")
			}
		}

		stockOut.Finalized = true
		if err := tx.Save(&stockOut).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Sevk fişi kesinleştirilemedi")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevk fişi kesinleştirilemedi")
		}

		writeStockAudit(c, stockOut.TenantID, "stock_out", stockOut.ID, models.AuditActionFinalize,
			fmt.Sprintf("Sevk fişi kesinleşti: %s", stockOut.RunningNumber), nil, stockOut)

		return c.JSON(stockOut)
	}
}

// GET /api/stock-out/next-number/tenant/:tenantId
func NextStockOutNumberHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, err := c.ParamsInt("tenantId")
		if err != nil || tenantID < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tenant ID")
		}

		number, err := NextStockOutNumber(database.DB, uint(tenantID))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş numarası üretilemedi")
		}

		return c.JSON(fiber.Map{
			"running_number": number,
		})
	}
}
