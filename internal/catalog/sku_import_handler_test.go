package catalog

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// buildXlsx: verilen satırlardan bellek içi bir .xlsx dosyası üretir.
func buildXlsx(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("hücre adresi üretilemedi: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("satır yazılamadı: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("excel dosyası yazılamadı: %v", err)
	}
	return buf.Bytes()
}

func postImport(t *testing.T, app *fiber.App, productID uint, filename string, content []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("product_id", fmt.Sprintf("%d", productID)); err != nil {
		t.Fatalf("form alanı yazılamadı: %v", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form dosyası oluşturulamadı: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("dosya içeriği yazılamadı: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("form kapatılamadı: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/api/product-skus/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("istek gönderilemedi: %v", err)
	}
	return resp
}

func TestImportSkusFromXlsx(t *testing.T) {
	app := newCatalogApp(t)

	product := createProduct(t, app, ProductRequest{ProductName: "Tişört", TenantID: 3})

	content := buildXlsx(t, [][]any{
		{"SKU Kodu", "Renk", "Beden", "Miktar"},
		{"TSH-RED-M", "Kırmızı", "M", 10},
		{"TSH-RED-L", "Kırmızı", "L", 4},
		{"TSH-BLU-M", "Mavi", "M", "bozuk"},
		{"", "Boş satır atlanır", "", 1},
	})

	resp := postImport(t, app, product.ID, "skular.xlsx", content)
	wantStatus(t, resp, fiber.StatusOK)

	var result struct {
		Imported int      `json:"imported"`
		Skipped  []string `json:"skipped"`
	}
	decodeJSON(t, resp, &result)

	if result.Imported != 2 {
		t.Errorf("içe aktarılan = %d, beklenen 2", result.Imported)
	}
	if len(result.Skipped) != 1 {
		t.Errorf("atlanan satır sayısı = %d, beklenen 1 (bozuk miktar)", len(result.Skipped))
	}

	var skus []models.ProductSku
	if err := database.DB.Where("product_id = ?", product.ID).Order("id").Find(&skus).Error; err != nil {
		t.Fatalf("SKU'lar okunamadı: %v", err)
	}
	if len(skus) != 2 {
		t.Fatalf("SKU sayısı = %d, beklenen 2", len(skus))
	}
	if skus[0].SkuCode != "TSH-RED-M" || skus[0].QuantityAvailable != 10 {
		t.Errorf("ilk SKU yanlış aktarılmış: %+v", skus[0])
	}
	if skus[0].TenantID != 3 {
		t.Errorf("SKU tenant_id = %d, ürünün tenant'ı (3) olmalıydı", skus[0].TenantID)
	}
}

func TestImportSkusWithoutHeaderRow(t *testing.T) {
	app := newCatalogApp(t)

	product := createProduct(t, app, ProductRequest{ProductName: "Tişört", TenantID: 1})

	content := buildXlsx(t, [][]any{
		{"TSH-RED-M", "Kırmızı", "M", 5},
	})

	resp := postImport(t, app, product.ID, "skular.xlsx", content)
	wantStatus(t, resp, fiber.StatusOK)

	var result struct {
		Imported int `json:"imported"`
	}
	decodeJSON(t, resp, &result)
	if result.Imported != 1 {
		t.Errorf("içe aktarılan = %d, başlıksız dosyada ilk satır veri sayılmalıydı", result.Imported)
	}
}

func TestImportSkusRejectsNonXlsx(t *testing.T) {
	app := newCatalogApp(t)

	product := createProduct(t, app, ProductRequest{ProductName: "Tişört", TenantID: 1})

	resp := postImport(t, app, product.ID, "skular.csv", []byte("TSH-RED-M,Kırmızı,M,5"))
	wantStatus(t, resp, fiber.StatusBadRequest)
}

func TestImportSkusUnknownProduct(t *testing.T) {
	app := newCatalogApp(t)

	content := buildXlsx(t, [][]any{
		{"TSH-RED-M", "Kırmızı", "M", 5},
	})

	resp := postImport(t, app, 999, "skular.xlsx", content)
	wantStatus(t, resp, fiber.StatusNotFound)
}
