package validator_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) List(ctx context.Context, q repository.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(q)
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) ListLowStock(ctx context.Context, threshold int64, page int, limit int) ([]model.Product, int64, error) {
	args := m.Called(threshold, page, limit)
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(p)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p model.Product) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Test: 合計は 数量×現在価格 を2桁に丸めた値
func TestValidateComputesTotal(t *testing.T) {
	v := validator.NewOrderItemValidator()
	products := new(mockProductRepo)

	products.On("FindByID", int64(101)).Return(model.Product{ID: 101, Price: d("3.00")}, nil)

	item, err := v.Validate(context.Background(), products, usecase.OrderItemInput{
		ProductID:        101,
		QuantityRequired: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(101), item.ProductID)
	assert.Equal(t, int64(2), item.QuantityRequired)
	assert.True(t, item.TotalPrice.Equal(d("6.00")))
}

// Test: 端数は四捨五入（1.005 → 1.01）
func TestValidateRoundsHalfUp(t *testing.T) {
	v := validator.NewOrderItemValidator()
	products := new(mockProductRepo)

	products.On("FindByID", int64(101)).Return(model.Product{ID: 101, Price: d("1.005")}, nil)

	item, err := v.Validate(context.Background(), products, usecase.OrderItemInput{
		ProductID:        101,
		QuantityRequired: 1,
	})

	assert.NoError(t, err)
	assert.True(t, item.TotalPrice.Equal(d("1.01")), "got %s", item.TotalPrice)
}

// Test: 数量0以下は弾く
func TestValidateRejectsNonPositiveQuantity(t *testing.T) {
	v := validator.NewOrderItemValidator()
	products := new(mockProductRepo)

	for _, qty := range []int64{0, -1} {
		_, err := v.Validate(context.Background(), products, usecase.OrderItemInput{
			ProductID:        101,
			QuantityRequired: qty,
		})
		assert.ErrorIs(t, err, usecase.ErrInvalidQuantity)
	}

	//商品は引かない
	products.AssertNotCalled(t, "FindByID", mock.Anything)
}

// Test: 存在しない商品は弾く
func TestValidateRejectsUnknownProduct(t *testing.T) {
	v := validator.NewOrderItemValidator()
	products := new(mockProductRepo)

	products.On("FindByID", int64(999)).Return(model.Product{}, repository.ErrNotFound)

	_, err := v.Validate(context.Background(), products, usecase.OrderItemInput{
		ProductID:        999,
		QuantityRequired: 1,
	})

	assert.ErrorIs(t, err, usecase.ErrUnknownProduct)
}
