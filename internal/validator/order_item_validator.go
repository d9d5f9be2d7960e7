package validator

import (
	"context"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
)

type orderItemValidator struct{}

// Usecaseは interface を依存注入
func NewOrderItemValidator() usecase.OrderItemValidator {
	return &orderItemValidator{}
}

// 明細1件を検証する。副作用なし（在庫は減らさない）。
// 合計金額は検証時点の商品価格で確定し、小数2桁に四捨五入で丸める。
func (v *orderItemValidator) Validate(ctx context.Context, products repository.ProductRepository, in usecase.OrderItemInput) (model.OrderItem, error) {
	if in.QuantityRequired <= 0 {
		return model.OrderItem{}, usecase.ErrInvalidQuantity
	}

	p, err := products.FindByID(ctx, in.ProductID)
	if err == repository.ErrNotFound {
		return model.OrderItem{}, usecase.ErrUnknownProduct
	}
	if err != nil {
		return model.OrderItem{}, err
	}

	total := p.Price.Mul(decimal.NewFromInt(in.QuantityRequired)).Round(2)

	return model.OrderItem{
		ProductID:        in.ProductID,
		QuantityRequired: in.QuantityRequired,
		TotalPrice:       total,
	}, nil
}
