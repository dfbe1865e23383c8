package models

import "time"

// ProductSku: Bir ürünün satılabilir varyantı (renk/beden kombinasyonu).
// Stok hareket satırları sku koduna serbest metin olarak referans verir,
// foreign key yoktur.
type ProductSku struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProductID         uint      `gorm:"index;not null" json:"product_id"`
	SkuCode           string    `gorm:"size:100;index;not null" json:"sku_code"`
	Colour            string    `gorm:"size:50" json:"colour"`
	Size              string    `gorm:"size:50" json:"size"`
	QuantityAvailable int       `gorm:"not null" json:"quantity_available"`
	Image             string    `gorm:"size:2000" json:"image"`
	TenantID          uint      `gorm:"index;not null" json:"tenant_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
