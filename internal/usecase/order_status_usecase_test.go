package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newStatusEnv() (*usecase.OrderStatusUsecase, *mockOrderRepo, *mockAuditRepo) {
	tx, orders, _, _ := newTxEnv()
	audit := new(mockAuditRepo)
	uc := usecase.NewOrderStatusUsecase(tx, audit, &fixedClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)})
	return uc, orders, audit
}

// Test: ステータス変更は管理者専用
func TestTransitionForbiddenForRegularUser(t *testing.T) {
	uc, orders, audit := newStatusEnv()

	err := uc.Transition(context.Background(), regularUser, 1, model.OrderStatusCompleted)

	requireHTTPStatus(t, err, http.StatusForbidden)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything)
}

// Test: 同じステータスへの再適用も成功する（冪等）
func TestTransitionIsIdempotent(t *testing.T) {
	uc, orders, audit := newStatusEnv()

	orders.On("FindByID", int64(1)).Return(model.Order{ID: 1, OwnerID: 5, Status: model.OrderStatusCompleted}, nil)
	orders.On("UpdateStatus", int64(1), model.OrderStatusCompleted).Return(nil)
	audit.On("Create", mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus &&
			l.ResourceID == 1 &&
			l.BeforeJSON == `{"status":"completed"}` &&
			l.AfterJSON == `{"status":"completed"}`
	})).Return(nil)

	err := uc.Transition(context.Background(), adminUser, 1, model.OrderStatusCompleted)

	assert.NoError(t, err)
	orders.AssertExpectations(t)
	audit.AssertExpectations(t)
}

// Test: cancelledからpendingへ戻すのも許可される
func TestTransitionCancelledBackToPending(t *testing.T) {
	uc, orders, audit := newStatusEnv()

	orders.On("FindByID", int64(2)).Return(model.Order{ID: 2, OwnerID: 5, Status: model.OrderStatusCancelled}, nil)
	orders.On("UpdateStatus", int64(2), model.OrderStatusPending).Return(nil)
	audit.On("Create", mock.MatchedBy(func(l model.AuditLog) bool {
		return l.BeforeJSON == `{"status":"cancelled"}` && l.AfterJSON == `{"status":"pending"}`
	})).Return(nil)

	err := uc.Transition(context.Background(), adminUser, 2, model.OrderStatusPending)

	assert.NoError(t, err)
	orders.AssertExpectations(t)
}

// Test: 存在しない注文は404
func TestTransitionUnknownOrderIsNotFound(t *testing.T) {
	uc, orders, audit := newStatusEnv()

	orders.On("FindByID", int64(404)).Return(model.Order{}, repo.ErrNotFound)

	err := uc.Transition(context.Background(), adminUser, 404, model.OrderStatusCancelled)

	requireHTTPStatus(t, err, http.StatusNotFound)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything)
}

// Test: 未知のステータス値は400
func TestTransitionInvalidStatus(t *testing.T) {
	uc, orders, _ := newStatusEnv()

	err := uc.Transition(context.Background(), adminUser, 1, model.OrderStatus("shipped"))

	requireHTTPStatus(t, err, http.StatusBadRequest)
	orders.AssertNotCalled(t, "FindByID", mock.Anything)
}
