package main

import (
	"log"
	"strings"

	"stoktakip-backend/internal/audit"
	"stoktakip-backend/internal/auth"
	"stoktakip-backend/internal/catalog"
	"stoktakip-backend/internal/config"
	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Yüklenen ürün fotoğrafları
	app.Static("/uploads", cfg.UploadPath)

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler())
	api.Post("/auth/company-register", auth.CompanyRegisterHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/logout", auth.LogoutHandler())
	protected.Get("/auth/employees", auth.EmployeesHandler())
	protected.Put("/auth/users/:id", auth.UpdateUserHandler())

	// Ürün kataloğu
	protected.Get("/products/tenant/:tenantId", catalog.ListProductsByTenantHandler())
	protected.Post("/products/upload-image", catalog.UploadProductImageHandler(cfg))
	protected.Get("/products/:id", catalog.GetProductHandler())
	protected.Post("/products", catalog.CreateProductHandler())
	protected.Put("/products/:id", catalog.UpdateProductHandler())
	protected.Delete("/products/:id", catalog.DeleteProductHandler())

	// SKU'lar
	protected.Get("/product-skus/tenant/:tenantId", catalog.ListSkusByTenantHandler())
	protected.Get("/product-skus/product/:productId", catalog.ListSkusByProductHandler())
	protected.Post("/product-skus/product/:productId", catalog.CreateSkuHandler())
	protected.Post("/product-skus/import", catalog.ImportSkusHandler())
	protected.Put("/product-skus/:id", catalog.UpdateSkuHandler())
	protected.Delete("/product-skus/:id", catalog.DeleteSkuHandler())

	// Mal kabul fişleri
	protected.Get("/stock-in/tenant/:tenantId", stock.ListStockInsByTenantHandler())
	protected.Get("/stock-in/next-number/tenant/:tenantId", stock.NextStockInNumberHandler())
	protected.Get("/stock-in/:id", stock.GetStockInHandler())
	protected.Post("/stock-in", stock.CreateStockInHandler())
	protected.Put("/stock-in/:id", stock.UpdateStockInHandler())
	protected.Delete("/stock-in/:id", stock.DeleteStockInHandler())

	// Mal kabul satırları
	protected.Get("/stock-in-details/stock-in/:stockInId", stock.ListStockInDetailsHandler())
	protected.Get("/stock-in-details/:id", stock.GetStockInDetailHandler())
	protected.Post("/stock-in-details/stock-in/:stockInId", stock.CreateStockInDetailHandler())
	protected.Put("/stock-in-details/:id", stock.UpdateStockInDetailHandler())
	protected.Delete("/stock-in-details/:id", stock.DeleteStockInDetailHandler())

	// Sevk fişleri
	protected.Get("/stock-out/tenant/:tenantId", stock.ListStockOutsByTenantHandler())
	protected.Get("/stock-out/next-number/tenant/:tenantId", stock.NextStockOutNumberHandler())
	protected.Get("/stock-out/:id", stock.GetStockOutHandler())
	protected.Post("/stock-out", stock.CreateStockOutHandler())
	protected.Put("/stock-out/:id", stock.UpdateStockOutHandler())
	protected.Delete("/stock-out/:id", stock.DeleteStockOutHandler())
	protected.Post("/stock-out/:id/finalize", stock.FinalizeStockOutHandler())

	// Sevk satırları
	protected.Get("/stock-out-details/stock-out/:stockOutId", stock.ListStockOutDetailsHandler())
	protected.Get("/stock-out-details/:id", stock.GetStockOutDetailHandler())
	protected.Post("/stock-out-details/stock-out/:stockOutId", stock.CreateStockOutDetailHandler())
	protected.Put("/stock-out-details/:id", stock.UpdateStockOutDetailHandler())
	protected.Delete("/stock-out-details/:id", stock.DeleteStockOutDetailHandler())

	// Stok hareket defteri
	protected.Get("/stock-ledger/tenant/:tenantId", stock.LedgerByTenantHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
