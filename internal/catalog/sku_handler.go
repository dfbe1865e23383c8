package catalog

import (
	"fmt"
	"strings"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductSkuRequest struct {
	SkuCode           string `json:"sku_code"`
	Colour            string `json:"colour"`
	Size              string `json:"size"`
	QuantityAvailable int    `json:"quantity_available"`
	Image             string `json:"image"`
}

// GET /api/product-skus/tenant/:tenantId
func ListSkusByTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, err := c.ParamsInt("tenantId")
		if err != nil || tenantID < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tenant ID")
		}

		var skus []models.ProductSku
		if err := database.DB.Where("tenant_id = ?", tenantID).Find(&skus).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "SKU'lar listelenemedi")
		}

		return c.JSON(skus)
	}
}

// GET /api/product-skus/product/:productId
func ListSkusByProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID := c.Params("productId")

		var skus []models.ProductSku
		if err := database.DB.Where("product_id = ?", productID).Find(&skus).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "SKU'lar listelenemedi")
		}

		return c.JSON(skus)
	}
}

// POST /api/product-skus/product/:productId
// SKU her zaman bağlı olduğu ürünün tenant'ına yazılır; gövdeden gelen
// tenant bilgisine güvenilmez.
func CreateSkuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID := c.Params("productId")

		var body ProductSkuRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.SkuCode) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "SKU kodu zorunlu")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", productID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		sku := models.ProductSku{
			ProductID:         product.ID,
			SkuCode:           body.SkuCode,
			Colour:            body.Colour,
			Size:              body.Size,
			QuantityAvailable: body.QuantityAvailable,
			Image:             body.Image,
			TenantID:          product.TenantID,
		}

		if err := database.DB.Create(&sku).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "SKU oluşturulamadı")
		}

		writeCatalogAudit(c, sku.TenantID, "product_sku", sku.ID, models.AuditActionCreate,
			fmt.Sprintf("SKU oluşturuldu: %s", sku.SkuCode), nil, sku)

		return c.Status(fiber.StatusCreated).JSON(sku)
	}
}

// PUT /api/product-skus/:id
// Miktar burada elle düzeltilebilir; stok hareketleri dışındaki
// sayım düzeltmeleri için.
func UpdateSkuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body ProductSkuRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var sku models.ProductSku
		if err := database.DB.First(&sku, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "SKU bulunamadı")
		}

		before := sku

		sku.SkuCode = body.SkuCode
		sku.Colour = body.Colour
		sku.Size = body.Size
		sku.QuantityAvailable = body.QuantityAvailable
		sku.Image = body.Image

		if err := database.DB.Save(&sku).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "SKU güncellenemedi")
		}

		writeCatalogAudit(c, sku.TenantID, "product_sku", sku.ID, models.AuditActionUpdate,
			fmt.Sprintf("SKU güncellendi: %s", sku.SkuCode), before, sku)

		return c.JSON(sku)
	}
}

// DELETE /api/product-skus/:id
func DeleteSkuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sku models.ProductSku
		if err := database.DB.First(&sku, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "SKU bulunamadı")
		}

		if err := database.DB.Delete(&sku).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "SKU silinemedi")
		}

		writeCatalogAudit(c, sku.TenantID, "product_sku", sku.ID, models.AuditActionDelete,
			fmt.Sprintf("SKU silindi: %s", sku.SkuCode), sku, nil)

		return c.JSON(fiber.Map{
			"message": "SKU silindi",
		})
	}
}
