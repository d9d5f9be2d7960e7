package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TotalPriceは検証時点の単価スナップショット。後で商品価格が変わっても再計算しない。
type OrderItem struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID          int64           `gorm:"not null;index" json:"order_id"`
	ProductID        int64           `gorm:"not null;index" json:"product_id"`
	QuantityRequired int64           `gorm:"not null" json:"quantity_required"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
