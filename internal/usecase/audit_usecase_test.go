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

// Test: 絞り込み条件がそのままフィルタに入る
func TestListAuditLogsPassesFilter(t *testing.T) {
	audit := new(mockAuditRepo)
	uc := usecase.NewAuditUsecase(audit)

	audit.On("List", mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.Action != nil && *f.Action == model.AuditActionUpdateOrderStatus &&
			f.ResourceType != nil && *f.ResourceType == model.AuditResourceOrder &&
			f.ResourceID != nil && *f.ResourceID == 10 &&
			f.Limit == 20 && f.Offset == 0
	})).Return([]model.AuditLog{
		{ID: 1, Action: model.AuditActionUpdateOrderStatus, ResourceType: model.AuditResourceOrder, ResourceID: 10, CreatedAt: time.Now()},
	}, nil)

	out, err := uc.ListAuditLogs(context.Background(), adminUser, usecase.ListAuditLogsInput{
		Action:       "UPDATE_ORDER_STATUS",
		ResourceType: "order",
		ResourceID:   "10",
		Limit:        20,
	})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	audit.AssertExpectations(t)
}

// Test: 監査ログの閲覧は管理者専用
func TestListAuditLogsForbiddenForRegularUser(t *testing.T) {
	audit := new(mockAuditRepo)
	uc := usecase.NewAuditUsecase(audit)

	_, err := uc.ListAuditLogs(context.Background(), regularUser, usecase.ListAuditLogsInput{})

	requireHTTPStatus(t, err, http.StatusForbidden)
	audit.AssertNotCalled(t, "List", mock.Anything)
}

// Test: 数値でないresource_idは400
func TestListAuditLogsInvalidResourceID(t *testing.T) {
	audit := new(mockAuditRepo)
	uc := usecase.NewAuditUsecase(audit)

	_, err := uc.ListAuditLogs(context.Background(), adminUser, usecase.ListAuditLogsInput{
		ResourceID: "abc",
	})

	requireHTTPStatus(t, err, http.StatusBadRequest)
	audit.AssertNotCalled(t, "List", mock.Anything)
}
