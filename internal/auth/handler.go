package auth

import (
	"strings"

	"stoktakip-backend/internal/config"
	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Name             string `json:"name"`
	CompanyName      string `json:"company_name"`
	EmploymentStatus int    `json:"employment_status"`
	IsDeleted        bool   `json:"is_deleted"`
	TenantID         uint   `json:"tenant_id"`
}

type CompanyRegisterRequest struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func RegisterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email ve şifre zorunlu")
		}

		var count int64
		database.DB.Model(&models.User{}).
			Where("email = ?", body.Email).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu email zaten kayıtlı")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			Email:            body.Email,
			PasswordHash:     string(hash),
			Name:             body.Name,
			CompanyName:      body.CompanyName,
			EmploymentStatus: body.EmploymentStatus,
			IsDeleted:        body.IsDeleted,
			TenantID:         body.TenantID,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":        user.ID,
			"email":     user.Email,
			"tenant_id": user.TenantID,
		})
	}
}

// PUT /api/auth/users/:id
// Çalışanlar (employment_status = 1) sadece kendi kayıtlarını güncelleyebilir.
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı ID")
		}

		session, err := SessionFromContext(c)
		if err != nil {
			return err
		}

		if session.EmploymentStatus == models.EmploymentEmployee && session.UserID != uint(id) {
			return fiber.NewError(fiber.StatusForbidden, "Bu kullanıcıyı düzenleme yetkiniz yok")
		}

		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		// Email benzersizliği (kendi kaydı hariç)
		var count int64
		database.DB.Model(&models.User{}).
			Where("email = ? AND id <> ?", body.Email, user.ID).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu email zaten kayıtlı")
		}

		user.Email = body.Email
		user.Name = body.Name
		user.CompanyName = body.CompanyName
		user.EmploymentStatus = body.EmploymentStatus
		user.IsDeleted = body.IsDeleted
		user.TenantID = body.TenantID

		if strings.TrimSpace(body.Password) != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
			}
			user.PasswordHash = string(hash)
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Kullanıcı güncellendi",
		})
	}
}

// POST /api/auth/company-register
func CompanyRegisterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CompanyRegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.CompanyName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Firma adı zorunlu")
		}

		company := models.CompanyDetail{
			CompanyName: body.CompanyName,
			Address:     body.Address,
			Phone:       body.Phone,
		}

		if err := database.DB.Create(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Firma kaydı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id": company.ID,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": Session{
				UserID:           user.ID,
				Email:            user.Email,
				Name:             user.Name,
				CompanyName:      user.CompanyName,
				TenantID:         user.TenantID,
				EmploymentStatus: user.EmploymentStatus,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := SessionFromContext(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Giriş yapılmamış")
		}

		// Güncel kullanıcı bilgisini veritabanından çek
		var user models.User
		if dbErr := database.DB.First(&user, "id = ?", session.UserID).Error; dbErr == nil {
			return c.JSON(Session{
				UserID:           user.ID,
				Email:            user.Email,
				Name:             user.Name,
				CompanyName:      user.CompanyName,
				TenantID:         user.TenantID,
				EmploymentStatus: user.EmploymentStatus,
			})
		}

		// Fallback: veritabanından çekilemezse token'daki bilgiyi döndür
		return c.JSON(session)
	}
}

// POST /api/auth/logout
// Token sunucu tarafında tutulmaz; client token'ı atınca oturum kapanmış olur.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Çıkış yapıldı",
		})
	}
}

// GET /api/auth/employees
// Çalışanlar sadece kendi kaydını görür, yöneticiler tenant'taki herkesi.
func EmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := SessionFromContext(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Giriş yapılmamış")
		}

		if session.EmploymentStatus == models.EmploymentEmployee {
			var user models.User
			if err := database.DB.First(&user, "id = ?", session.UserID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
			}
			return c.JSON([]models.User{user})
		}

		var employees []models.User
		if err := database.DB.Where("tenant_id = ?", session.TenantID).Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışanlar listelenemedi")
		}

		return c.JSON(employees)
	}
}
