package auth

import (
	"time"

	"stoktakip-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// JWTCustomClaims: Oturum bilgisinin tamamı token içinde taşınır,
// istek başına ayrıca veritabanına gidilmez.
type JWTCustomClaims struct {
	UserID           uint   `json:"user_id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	CompanyName      string `json:"company_name"`
	TenantID         uint   `json:"tenant_id"`
	EmploymentStatus int    `json:"employment_status"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, user *models.User) (string, error) {
	claims := &JWTCustomClaims{
		UserID:           user.ID,
		Email:            user.Email,
		Name:             user.Name,
		CompanyName:      user.CompanyName,
		TenantID:         user.TenantID,
		EmploymentStatus: user.EmploymentStatus,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // 1 gün
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
