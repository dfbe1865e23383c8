package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stoktakip-backend/internal/audit"
	"stoktakip-backend/internal/auth"
	"stoktakip-backend/internal/config"
	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductRequest struct {
	ProductName  string `json:"product_name"`
	Description  string `json:"description"`
	ProductImage string `json:"product_image"`
	CreatedBy    *uint  `json:"created_by"`
	TenantID     uint   `json:"tenant_id"`
}

// Yardımcı: Katalog işlemleri için audit log yaz.
func writeCatalogAudit(c *fiber.Ctx, tenantID uint, entityType string, entityID uint, action models.AuditAction, description string, before, after any) {
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

// GET /api/products/tenant/:tenantId
func ListProductsByTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, err := c.ParamsInt("tenantId")
		if err != nil || tenantID < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tenant ID")
		}

		var products []models.Product
		if err := database.DB.Where("tenant_id = ?", tenantID).Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		return c.JSON(products)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		return c.JSON(product)
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.ProductName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı zorunlu")
		}
		if body.TenantID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "tenant_id zorunlu")
		}

		product := models.Product{
			ProductName:  body.ProductName,
			Description:  body.Description,
			ProductImage: body.ProductImage,
			CreatedBy:    body.CreatedBy,
			TenantID:     body.TenantID,
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		writeCatalogAudit(c, product.TenantID, "product", product.ID, models.AuditActionCreate,
			fmt.Sprintf("Ürün oluşturuldu: %s", product.ProductName), nil, product)

		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		before := product

		product.ProductName = body.ProductName
		product.Description = body.Description
		product.ProductImage = body.ProductImage

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		writeCatalogAudit(c, product.TenantID, "product", product.ID, models.AuditActionUpdate,
			fmt.Sprintf("Ürün güncellendi: %s", product.ProductName), before, product)

		return c.JSON(product)
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductSku{}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün SKU'ları silinemedi")
		}
		if err := tx.Delete(&product).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		writeCatalogAudit(c, product.TenantID, "product", product.ID, models.AuditActionDelete,
			fmt.Sprintf("Ürün silindi: %s", product.ProductName), product, nil)

		return c.JSON(fiber.Map{
			"message": "Ürün silindi",
		})
	}
}

// POST /api/products/upload-image
// Dosya adı tahmin edilemesin diye UUID ile yeniden adlandırılır,
// sadece uzantı korunur.
func UploadProductImageHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya zorunlu")
		}

		uploadDir := filepath.Join(cfg.UploadPath, "products")
		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yükleme klasörü oluşturulamadı")
		}

		extension := filepath.Ext(fileHeader.Filename)
		filename := uuid.NewString() + extension
		target := filepath.Join(uploadDir, filename)

		if err := c.SaveFile(fileHeader, target); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi")
		}

		return c.JSON(fiber.Map{
			"path": "/uploads/products/" + filename,
		})
	}
}
