package models

import "time"

// StockOut: Sevk fişi. Finalized true olduktan sonra fiş ve satırları
// değiştirilemez; geri dönüşü olmayan bir geçiştir.
type StockOut struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RunningNumber string     `gorm:"size:20;index" json:"running_number"`
	Description   string     `gorm:"size:2000" json:"description"`
	Date          *time.Time `gorm:"column:stock_date;index" json:"date"`
	CreatedBy     *uint      `json:"created_by"`
	TenantID      uint       `gorm:"index;not null" json:"tenant_id"`
	Finalized     bool       `gorm:"not null;default:false" json:"finalized"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Details []StockOutDetail `gorm:"foreignKey:StockOutID;constraint:OnDelete:CASCADE" json:"details"`
}

type StockOutDetail struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StockOutID  uint      `gorm:"index;not null" json:"stock_out_id"`
	ProductName string    `gorm:"size:255;not null" json:"product_name"`
	Sku         string    `gorm:"size:100" json:"sku"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
