package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// POST /api/product-skus/import
// Form alanları: product_id + file (.xlsx).
// Kolonlar: SKU kodu | renk | beden | miktar. İlk satır başlıksa atlanır.
func ImportSkusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := strconv.Atoi(c.FormValue("product_id"))
		if err != nil || productID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id zorunlu")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", productID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sheet bulunamadı")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası boş")
		}

		// İlk satır "SKU" / "KOD" gibi bir başlıksa atla
		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(firstCell, "SKU") || strings.Contains(firstCell, "KOD") {
				startIndex = 1
			}
		}

		imported := 0
		skipped := make([]string, 0)

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			if len(row) == 0 {
				continue
			}

			skuCode := strings.TrimSpace(row[0])
			if skuCode == "" {
				continue
			}

			colour := ""
			if len(row) > 1 {
				colour = strings.TrimSpace(row[1])
			}
			size := ""
			if len(row) > 2 {
				size = strings.TrimSpace(row[2])
			}
			quantity := 0
			if len(row) > 3 {
				q, qErr := strconv.Atoi(strings.TrimSpace(row[3]))
				if qErr != nil {
					skipped = append(skipped, fmt.Sprintf("satır %d: miktar sayı değil (%s)", i+1, row[3]))
					continue
				}
				quantity = q
			}

			sku := models.ProductSku{
				ProductID:         product.ID,
				SkuCode:           skuCode,
				Colour:            colour,
				Size:              size,
				QuantityAvailable: quantity,
				TenantID:          product.TenantID,
			}

			if err := database.DB.Create(&sku).Error; err != nil {
				skipped = append(skipped, fmt.Sprintf("satır %d: kaydedilemedi (%s)", i+1, skuCode))
				continue
			}
			imported++
		}

		writeCatalogAudit(c, product.TenantID, "product", product.ID, models.AuditActionUpdate,
			fmt.Sprintf("Excel'den %d SKU içe aktarıldı: %s", imported, product.ProductName), nil, nil)

		return c.JSON(fiber.Map{
			"imported": imported,
			"skipped":  skipped,
		})
	}
}
