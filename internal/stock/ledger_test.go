package stock

import (
	"testing"
	"time"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func ledgerEntries(t *testing.T, app *fiber.App, path string) []StockLedgerEntry {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodGet, path, nil)
	wantStatus(t, resp, fiber.StatusOK)

	var entries []StockLedgerEntry
	decodeJSON(t, resp, &entries)
	return entries
}

func TestLedgerMergesBothDocumentTypesNewestFirst(t *testing.T) {
	app := newStockApp(t)

	user := models.User{Email: "ayse@firma.com", Name: "Ayşe", TenantID: 1}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("kullanıcı oluşturulamadı: %v", err)
	}

	older := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	stockIn := models.StockIn{
		RunningNumber: "SI001", TenantID: 1, Date: &older, CreatedBy: &user.ID,
		Details: []models.StockInDetail{
			{ProductName: "Tişört", Sku: "TSH-RED-M", Quantity: 5},
		},
	}
	if err := database.DB.Create(&stockIn).Error; err != nil {
		t.Fatalf("mal kabul fişi oluşturulamadı: %v", err)
	}

	stockOut := models.StockOut{
		RunningNumber: "SO001", TenantID: 1, Date: &newer, CreatedBy: &user.ID,
		Details: []models.StockOutDetail{
			{ProductName: "Tişört", Sku: "TSH-RED-M", Quantity: 2},
		},
	}
	if err := database.DB.Create(&stockOut).Error; err != nil {
		t.Fatalf("sevk fişi oluşturulamadı: %v", err)
	}

	entries := ledgerEntries(t, app, "/api/stock-ledger/tenant/1")
	if len(entries) != 2 {
		t.Fatalf("kayıt sayısı = %d, beklenen 2", len(entries))
	}

	if entries[0].Type != "OUT" || entries[0].RunningNumber != "SO001" {
		t.Errorf("ilk kayıt = %s %s, en yeni tarihli sevk olmalıydı", entries[0].Type, entries[0].RunningNumber)
	}
	if entries[1].Type != "IN" || entries[1].RunningNumber != "SI001" {
		t.Errorf("ikinci kayıt = %s %s, beklenen IN SI001", entries[1].Type, entries[1].RunningNumber)
	}

	for _, e := range entries {
		if e.CreatedByName != "Ayşe" {
			t.Errorf("oluşturan adı = %q, beklenen Ayşe", e.CreatedByName)
		}
	}

	if entries[0].Quantity != 2 || entries[0].Sku != "TSH-RED-M" {
		t.Errorf("sevk satırı yanlış düzleştirilmiş: %+v", entries[0])
	}
}

func TestLedgerNilDatesSortLast(t *testing.T) {
	app := newStockApp(t)

	dated := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	undatedDoc := models.StockIn{
		RunningNumber: "SI001", TenantID: 1, Date: nil,
		Details: []models.StockInDetail{
			{ProductName: "Tişört", Sku: "A", Quantity: 1},
		},
	}
	if err := database.DB.Create(&undatedDoc).Error; err != nil {
		t.Fatalf("fiş oluşturulamadı: %v", err)
	}

	datedDoc := models.StockIn{
		RunningNumber: "SI002", TenantID: 1, Date: &dated,
		Details: []models.StockInDetail{
			{ProductName: "Tişört", Sku: "B", Quantity: 1},
		},
	}
	if err := database.DB.Create(&datedDoc).Error; err != nil {
		t.Fatalf("fiş oluşturulamadı: %v", err)
	}

	entries := ledgerEntries(t, app, "/api/stock-ledger/tenant/1")
	if len(entries) != 2 {
		t.Fatalf("kayıt sayısı = %d, beklenen 2", len(entries))
	}
	if entries[0].RunningNumber != "SI002" {
		t.Errorf("ilk kayıt = %s, tarihli fiş önce gelmeliydi", entries[0].RunningNumber)
	}
	if entries[1].Date != nil {
		t.Error("tarihsiz fiş sona sıralanmalıydı")
	}
}

func TestLedgerUnknownCreatorLeavesNameEmpty(t *testing.T) {
	app := newStockApp(t)

	ghost := uint(999)
	now := time.Now()
	stockIn := models.StockIn{
		RunningNumber: "SI001", TenantID: 1, Date: &now, CreatedBy: &ghost,
		Details: []models.StockInDetail{
			{ProductName: "Tişört", Sku: "A", Quantity: 1},
		},
	}
	if err := database.DB.Create(&stockIn).Error; err != nil {
		t.Fatalf("fiş oluşturulamadı: %v", err)
	}

	entries := ledgerEntries(t, app, "/api/stock-ledger/tenant/1")
	if len(entries) != 1 {
		t.Fatalf("kayıt sayısı = %d, beklenen 1", len(entries))
	}
	if entries[0].CreatedByName != "" {
		t.Errorf("silinmiş kullanıcının adı = %q, boş olmalıydı", entries[0].CreatedByName)
	}
}

func TestLedgerTenantIsolation(t *testing.T) {
	app := newStockApp(t)

	now := time.Now()
	mine := models.StockIn{
		RunningNumber: "SI001", TenantID: 1, Date: &now,
		Details: []models.StockInDetail{
			{ProductName: "Tişört", Sku: "A", Quantity: 1},
		},
	}
	other := models.StockIn{
		RunningNumber: "SI001", TenantID: 2, Date: &now,
		Details: []models.StockInDetail{
			{ProductName: "Tişört", Sku: "B", Quantity: 1},
		},
	}
	if err := database.DB.Create(&mine).Error; err != nil {
		t.Fatalf("fiş oluşturulamadı: %v", err)
	}
	if err := database.DB.Create(&other).Error; err != nil {
		t.Fatalf("fiş oluşturulamadı: %v", err)
	}

	entries := ledgerEntries(t, app, "/api/stock-ledger/tenant/1")
	if len(entries) != 1 {
		t.Fatalf("kayıt sayısı = %d, beklenen 1", len(entries))
	}
	if entries[0].Sku != "A" {
		t.Errorf("yanlış tenant'ın kaydı döndü: %+v", entries[0])
	}
}
