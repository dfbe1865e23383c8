package models

import "time"

// StockIn: Mal kabul fişi. Detay satırlarını cascade ile sahiplenir,
// fiş silinince satırlar da silinir.
type StockIn struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RunningNumber string     `gorm:"size:20;index" json:"running_number"`
	Description   string     `gorm:"size:2000" json:"description"`
	Date          *time.Time `gorm:"column:stock_date;index" json:"date"`
	CreatedBy     *uint      `json:"created_by"`
	TenantID      uint       `gorm:"index;not null" json:"tenant_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Details []StockInDetail `gorm:"foreignKey:StockInID;constraint:OnDelete:CASCADE" json:"details"`
}

// StockInDetail: Fiş satırı. Ürün adı ve sku anlık görüntü olarak
// serbest metin tutulur.
type StockInDetail struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StockInID   uint      `gorm:"index;not null" json:"stock_in_id"`
	ProductName string    `gorm:"size:255;not null" json:"product_name"`
	Sku         string    `gorm:"size:100" json:"sku"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
