package models

import "time"

// Çalışma durumu: 0 = yönetici, 1 = çalışan.
// Çalışanlar sadece kendi kayıtlarını görebilir ve düzenleyebilir.
const (
	EmploymentManager  = 0
	EmploymentEmployee = 1
)

type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Email            string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"size:255;not null" json:"-"`
	Name             string    `gorm:"size:100;not null" json:"name"`
	CompanyName      string    `gorm:"size:100;not null" json:"company_name"`
	EmploymentStatus int       `json:"employment_status"`
	IsDeleted        bool      `gorm:"not null;default:false" json:"is_deleted"`
	TenantID         uint      `gorm:"index" json:"tenant_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
