package auth

import (
	"fmt"
	"strings"

	"stoktakip-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey           = "user_id"
	CtxEmailKey            = "email"
	CtxNameKey             = "name"
	CtxCompanyNameKey      = "company_name"
	CtxTenantIDKey         = "tenant_id"
	CtxEmploymentStatusKey = "employment_status"
)

// Session: Giriş yapan kullanıcının oturum bilgisi (login cevabı ve /me ile
// aynı şekil).
type Session struct {
	UserID           uint   `json:"user_id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	CompanyName      string `json:"company_name"`
	TenantID         uint   `json:"tenant_id"`
	EmploymentStatus int    `json:"employment_status"`
}

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		tokenStr := parts[1]

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("geçersiz imzalama yöntemi")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxNameKey, claims.Name)
		c.Locals(CtxCompanyNameKey, claims.CompanyName)
		c.Locals(CtxTenantIDKey, claims.TenantID)
		c.Locals(CtxEmploymentStatusKey, claims.EmploymentStatus)

		return c.Next()
	}
}

// SessionFromContext: Middleware'in locals'a koyduğu oturum bilgisini toplar.
func SessionFromContext(c *fiber.Ctx) (*Session, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return nil, fiber.NewError(fiber.StatusForbidden, "Oturum bilgisi alınamadı")
	}

	email, _ := c.Locals(CtxEmailKey).(string)
	name, _ := c.Locals(CtxNameKey).(string)
	companyName, _ := c.Locals(CtxCompanyNameKey).(string)
	tenantID, _ := c.Locals(CtxTenantIDKey).(uint)
	employmentStatus, _ := c.Locals(CtxEmploymentStatusKey).(int)

	return &Session{
		UserID:           userID,
		Email:            email,
		Name:             name,
		CompanyName:      companyName,
		TenantID:         tenantID,
		EmploymentStatus: employmentStatus,
	}, nil
}
