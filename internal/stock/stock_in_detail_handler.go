package stock

import (
	"fmt"
	"strings"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockDetailRequest struct {
	ProductName string `json:"product_name"`
	Sku         string `json:"sku"`
	Quantity    int    `json:"quantity"`
}

// GET /api/stock-in-details/stock-in/:stockInId
func ListStockInDetailsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stockInID := c.Params("stockInId")

		var details []models.StockInDetail
		if err := database.DB.Where("stock_in_id = ?", stockInID).Find(&details).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırları listelenemedi")
		}

		return c.JSON(details)
	}
}

// GET /api/stock-in-details/:id
func GetStockInDetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var detail models.StockInDetail
		if err := database.DB.First(&detail, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fiş satırı bulunamadı")
		}

		return c.JSON(detail)
	}
}

// POST /api/stock-in-details/stock-in/:stockInId
// Satır oluşturulur oluşturulmaz SKU miktarına eklenir.
func CreateStockInDetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stockInID := c.Params("stockInId")

		var body StockDetailRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.ProductName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı zorunlu")
		}

		var stockIn models.StockIn
		if err := database.DB.First(&stockIn, "id = ?", stockInID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mal kabul fişi bulunamadı")
		}

		detail := models.StockInDetail{
			StockInID:   stockIn.ID,
			ProductName: body.ProductName,
			Sku:         body.Sku,
			Quantity:    body.Quantity,
		}

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Create(&detail).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırı oluşturulamadı")
		}

		if err := AdjustSkuQuantity(tx, stockIn.TenantID, detail.Sku, detail.Quantity); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Stok miktarı güncellenemedi")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırı oluşturulamadı")
		}

		writeStockAudit(c, stockIn.TenantID, "stock_in_detail", detail.ID, models.AuditActionCreate,
			fmt.Sprintf("Mal kabul satırı: %s x%d", detail.ProductName, detail.Quantity), nil, detail)

		return c.Status(fiber.StatusCreated).JSON(detail)
	}
}

// PUT /api/stock-in-details/:id
// Eski miktar eski sku'dan düşülür, yeni miktar yeni sku'ya eklenir.
// Sku değişmediyse net etki farktır ama iki ayrı düzeltme olarak uygulanır.
func UpdateStockInDetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body StockDetailRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var detail models.StockInDetail
		if err := database.DB.First(&detail, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fiş satırı bulunamadı")
		}

		var stockIn models.StockIn
		if err := database.DB.First(&stockIn, "id = ?", detail.StockInID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fişin başlığı bulunamadı")
		}

		before := detail
		oldSku := detail.Sku
		oldQuantity := detail.Quantity

		detail.ProductName = body.ProductName
		detail.Sku = body.Sku
		detail.Quantity = body.Quantity

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Save(&detail).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırı güncellenemedi")
		}

		if err := AdjustSkuQuantity(tx, stockIn.TenantID, oldSku, -oldQuantity); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Stok miktarı güncellenemedi")
		}
		if err := AdjustSkuQuantity(tx, stockIn.TenantID, detail.Sku, detail.Quantity); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Stok miktarı güncellenemedi")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırı güncellenemedi")
		}

		writeStockAudit(c, stockIn.TenantID, "stock_in_detail", detail.ID, models.AuditActionUpdate,
			fmt.Sprintf("Mal kabul satırı güncellendi: %s x%d", detail.ProductName, detail.Quantity), before, detail)

		return c.JSON(detail)
	}
}

// DELETE /api/stock-in-details/:id
// Satır silinince stok etkisi geri alınır.
func DeleteStockInDetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var detail models.StockInDetail
		if err := database.DB.First(&detail, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fiş satırı bulunamadı")
		}

		var stockIn models.StockIn
		if err := database.DB.First(&stockIn, "id = ?", detail.StockInID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fişin başlığı bulunamadı")
		}

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := AdjustSkuQuantity(tx, stockIn.TenantID, detail.Sku, -detail.Quantity); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Stok miktarı geri alınamadı")
		}

		if err := tx.Delete(&detail).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırı silinemedi")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırı silinemedi")
		}

		writeStockAudit(c, stockIn.TenantID, "stock_in_detail", detail.ID, models.AuditActionDelete,
			fmt.Sprintf("Mal kabul satırı silindi: %s x%d", detail.ProductName, detail.Quantity), detail, nil)

		return c.JSON(fiber.Map{
			"message": "Fiş satırı silindi",
		})
	}
}
