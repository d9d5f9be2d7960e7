package repository

import (
	"context"

	"app/internal/domain/model"
)

// OwnerIDは一般ユーザーのスコープ絞り込みにも使う（usecaseが必ず詰める）。
type OrderListFilter struct {
	Page    int
	Limit   int
	Status  string
	OwnerID *int64
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error
}
