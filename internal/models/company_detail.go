package models

import "time"

// CompanyDetail: Firma kayıt formundan gelen bağımsız kayıt.
// User/tenant tarafına foreign key ile bağlanmaz.
type CompanyDetail struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyName string    `gorm:"size:255;not null" json:"company_name"`
	Address     string    `gorm:"size:255" json:"address"`
	Phone       string    `gorm:"size:50" json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
