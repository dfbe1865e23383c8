package stock

import (
	"fmt"
	"strings"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/stock-out-details/stock-out/:stockOutId
func ListStockOutDetailsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stockOutID := c.Params("stockOutId")

		var details []models.StockOutDetail
		if err := database.DB.Where("stock_out_id = ?", stockOutID).Find(&details).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırları listelenemedi")
		}

		return c.JSON(details)
	}
}

// GET /api/stock-out-details/:id
func GetStockOutDetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var detail models.StockOutDetail
		if err := database.DB.First(&detail, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fiş satırı bulunamadı")
		}

		return c.JSON(detail)
	}
}

// POST /api/stock-out-details/stock-out/:stockOutId
// Sevk satırları kesinleştirmeye kadar stok miktarına dokunmaz.
func CreateStockOutDetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stockOutID := c.Params("stockOutId")

		var body StockDetailRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.ProductName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı zorunlu")
		}

		var stockOut models.StockOut
		if err := database.DB.First(&stockOut, "id = ?", stockOutID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sevk fişi bulunamadı")
		}

		if stockOut.Finalized {
			return fiber.NewError(fiber.StatusBadRequest, "Kesinleşmiş sevk fişine satır eklenemez")
		}

		detail := models.StockOutDetail{
			StockOutID:  stockOut.ID,
			ProductName: body.ProductName,
			Sku:         body.Sku,
			Quantity:    body.Quantity,
		}

		if err := database.DB.Create(&detail).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırı oluşturulamadı")
		}

		writeStockAudit(c, stockOut.TenantID, "stock_out_detail", detail.ID, models.AuditActionCreate,
			fmt.Sprintf("Sevk satırı: %s x%d", detail.ProductName, detail.Quantity), nil, detail)

		return c.Status(fiber.StatusCreated).JSON(detail)
	}
}

// PUT /api/stock-out-details/:id
func UpdateStockOutDetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body StockDetailRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var detail models.StockOutDetail
		if err := database.DB.First(&detail, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fiş satırı bulunamadı")
		}

		var stockOut models.StockOut
		if err := database.DB.First(&stockOut, "id = ?", detail.StockOutID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fişin başlığı bulunamadı")
		}

		if stockOut.Finalized {
			return fiber.NewError(fiber.StatusBadRequest, "Kesinleşmiş sevk fişinin satırı düzenlenemez")
		}

		before := detail

		detail.ProductName = body.ProductName
		detail.Sku = body.Sku
		detail.Quantity = body.Quantity

		if err := database.DB.Save(&detail).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırı güncellenemedi")
		}

		writeStockAudit(c, stockOut.TenantID, "stock_out_detail", detail.ID, models.AuditActionUpdate,
			fmt.Sprintf("Sevk satırı güncellendi: %s x%d", detail.ProductName, detail.Quantity), before, detail)

		return c.JSON(detail)
	}
}

// DELETE /api/stock-out-details/:id
func DeleteStockOutDetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var detail models.StockOutDetail
		if err := database.DB.First(&detail, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fiş satırı bulunamadı")
		}

		var stockOut models.StockOut
		if err := database.DB.First(&stockOut, "id = ?", detail.StockOutID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fişin başlığı bulunamadı")
		}

		if stockOut.Finalized {
			return fiber.NewError(fiber.StatusBadRequest, "Kesinleşmiş sevk fişinin satırı silinemez")
		}

		if err := database.DB.Delete(&detail).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş satırı silinemedi")
		}

		writeStockAudit(c, stockOut.TenantID, "stock_out_detail", detail.ID, models.AuditActionDelete,
			fmt.Sprintf("Sevk satırı silindi: %s x%d", detail.ProductName, detail.Quantity), detail, nil)

		return c.JSON(fiber.Map{
			"message": "Fiş satırı silindi",
		})
	}
}
