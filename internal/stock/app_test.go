package stock

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
)

// newStockApp: Stok rotalarıyla test uygulaması kurar ve global DB'yi
// teste özel in-memory veritabanına bağlar.
func newStockApp(t *testing.T) *fiber.App {
	t.Helper()

	database.DB = testutil.OpenDB(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	api := app.Group("/api")

	api.Get("/stock-in/tenant/:tenantId", ListStockInsByTenantHandler())
	api.Get("/stock-in/next-number/tenant/:tenantId", NextStockInNumberHandler())
	api.Get("/stock-in/:id", GetStockInHandler())
	api.Post("/stock-in", CreateStockInHandler())
	api.Put("/stock-in/:id", UpdateStockInHandler())
	api.Delete("/stock-in/:id", DeleteStockInHandler())

	api.Get("/stock-in-details/stock-in/:stockInId", ListStockInDetailsHandler())
	api.Get("/stock-in-details/:id", GetStockInDetailHandler())
	api.Post("/stock-in-details/stock-in/:stockInId", CreateStockInDetailHandler())
	api.Put("/stock-in-details/:id", UpdateStockInDetailHandler())
	api.Delete("/stock-in-details/:id", DeleteStockInDetailHandler())

	api.Get("/stock-out/tenant/:tenantId", ListStockOutsByTenantHandler())
	api.Get("/stock-out/next-number/tenant/:tenantId", NextStockOutNumberHandler())
	api.Get("/stock-out/:id", GetStockOutHandler())
	api.Post("/stock-out", CreateStockOutHandler())
	api.Put("/stock-out/:id", UpdateStockOutHandler())
	api.Delete("/stock-out/:id", DeleteStockOutHandler())
	api.Post("/stock-out/:id/finalize", FinalizeStockOutHandler())

	api.Get("/stock-out-details/stock-out/:stockOutId", ListStockOutDetailsHandler())
	api.Get("/stock-out-details/:id", GetStockOutDetailHandler())
	api.Post("/stock-out-details/stock-out/:stockOutId", CreateStockOutDetailHandler())
	api.Put("/stock-out-details/:id", UpdateStockOutDetailHandler())
	api.Delete("/stock-out-details/:id", DeleteStockOutDetailHandler())

	api.Get("/stock-ledger/tenant/:tenantId", LedgerByTenantHandler())

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("istek gövdesi oluşturulamadı: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("istek gönderilemedi: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("cevap çözümlenemedi: %v", err)
	}
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()

	if resp.StatusCode != want {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("durum kodu = %d, beklenen %d (gövde: %s)", resp.StatusCode, want, raw)
	}
}
