package repository

import (
	"context"
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 頻度レポートの1行。商品ごとに数量と支出を集計したもの。
type FrequentProductRow struct {
	ProductID        int64           `json:"product_id"`
	ProductName      string          `json:"product_name"`
	TotalQuantity    int64           `json:"total_quantity_required"`
	TotalExpenditure decimal.Decimal `json:"total_expenditure_on_product"`
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	FindByID(ctx context.Context, itemID int64) (model.OrderItem, error)
	Update(ctx context.Context, item model.OrderItem) error
	DeleteByOrderID(ctx context.Context, orderID int64) error

	//親注文のcreated_atが[from, to]に入る明細（両端含む）
	ListByOrderCreatedRange(ctx context.Context, from time.Time, to time.Time) ([]model.OrderItem, error)
	//オーナーの注文明細を商品ごとに集計し、数量の多い順で返す
	FrequentByOwner(ctx context.Context, ownerID int64) ([]FrequentProductRow, error)
}
