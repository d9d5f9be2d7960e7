package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Numberは外部に見せる注文番号（UUID）。OwnerIDは作成後に変わらない。
type Order struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Number    string      `gorm:"type:varchar(36);not null;uniqueIndex" json:"number"`
	OwnerID   int64       `gorm:"not null;index" json:"owner_id"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
