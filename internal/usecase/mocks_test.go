package usecase_test

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Mocking repositories

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *mockOrderRepo) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(f)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(orderID, status)
	return args.Error(0)
}

func (m *mockOrderRepo) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(orderID)
	return args.Error(0)
}

type mockOrderItemRepo struct {
	mock.Mock
}

func (m *mockOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(orderID, items)
	return args.Error(0)
}

func (m *mockOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(orderID)
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

func (m *mockOrderItemRepo) FindByID(ctx context.Context, itemID int64) (model.OrderItem, error) {
	args := m.Called(itemID)
	return args.Get(0).(model.OrderItem), args.Error(1)
}

func (m *mockOrderItemRepo) Update(ctx context.Context, item model.OrderItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *mockOrderItemRepo) DeleteByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(orderID)
	return args.Error(0)
}

func (m *mockOrderItemRepo) ListByOrderCreatedRange(ctx context.Context, from time.Time, to time.Time) ([]model.OrderItem, error) {
	args := m.Called(from, to)
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

func (m *mockOrderItemRepo) FrequentByOwner(ctx context.Context, ownerID int64) ([]repo.FrequentProductRow, error) {
	args := m.Called(ownerID)
	return args.Get(0).([]repo.FrequentProductRow), args.Error(1)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
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

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(log)
	return args.Error(0)
}

func (m *mockAuditRepo) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

// WithinTxをそのまま実行するTxRepos/TransactionManager

type mockTxRepos struct {
	orders     *mockOrderRepo
	orderItems *mockOrderItemRepo
	products   *mockProductRepo
}

func (m *mockTxRepos) Orders() repo.OrderRepository         { return m.orders }
func (m *mockTxRepos) OrderItems() repo.OrderItemRepository { return m.orderItems }
func (m *mockTxRepos) Products() repo.ProductRepository     { return m.products }

type mockTxManager struct {
	repos *mockTxRepos
}

func (m *mockTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

func newTxEnv() (*mockTxManager, *mockOrderRepo, *mockOrderItemRepo, *mockProductRepo) {
	orders := new(mockOrderRepo)
	orderItems := new(mockOrderItemRepo)
	products := new(mockProductRepo)
	tx := &mockTxManager{repos: &mockTxRepos{
		orders:     orders,
		orderItems: orderItems,
		products:   products,
	}}
	return tx, orders, orderItems, products
}

// usecaseに渡す固定部品

type fixedIDGen struct {
	id string
}

func (g *fixedIDGen) NewID() string { return g.id }

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }
