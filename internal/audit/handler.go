package audit

import (
	"stoktakip-backend/internal/auth"
	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entity_type=stock_in&entity_id=1
// Loglar her zaman oturumdaki tenant ile sınırlıdır.
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFromContext(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.AuditLog{}).
			Where("tenant_id = ?", session.TenantID)

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if entityID := c.QueryInt("entity_id"); entityID > 0 {
			dbq = dbq.Where("entity_id = ?", entityID)
		}

		limit := c.QueryInt("limit", 200)
		if limit <= 0 || limit > 1000 {
			limit = 200
		}

		var logs []models.AuditLog
		if err := dbq.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit loglar listelenemedi")
		}

		return c.JSON(logs)
	}
}
