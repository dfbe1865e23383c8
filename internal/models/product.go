package models

import "time"

type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductName  string    `gorm:"size:255;not null" json:"product_name"`
	Description  string    `gorm:"size:2000" json:"description"`
	ProductImage string    `gorm:"size:2000" json:"product_image"`
	CreatedBy    *uint     `json:"created_by"`
	TenantID     uint      `gorm:"index;not null" json:"tenant_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Skus []ProductSku `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"skus,omitempty"`
}
